package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"candidate-service/internal/models"
	"candidate-service/internal/repository"
)

// ==========================
// In-Memory Repository Fakes
// ==========================

type fakeCandidateRepo struct {
	mu      sync.Mutex
	byID    map[string]models.Candidate
	nextID  int
	saveErr error
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{byID: map[string]models.Candidate{}}
}

func (f *fakeCandidateRepo) FindByID(_ context.Context, id string) (*models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCandidateRepo) FindAll(_ context.Context) ([]models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Candidate, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCandidateRepo) FindByName(_ context.Context, name string) ([]models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Candidate{}
	for _, c := range f.byID {
		if strings.EqualFold(c.Name, name) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCandidateRepo) FindByAssignedTo(_ context.Context, assignedTo string) ([]models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Candidate{}
	for _, c := range f.byID {
		if c.AssignedTo == assignedTo {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCandidateRepo) FindByPositionID(_ context.Context, positionID string) ([]models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Candidate{}
	for _, c := range f.byID {
		if c.PositionID == positionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCandidateRepo) CountByPositionID(ctx context.Context, positionID string) (int64, error) {
	found, err := f.FindByPositionID(ctx, positionID)
	if err != nil {
		return 0, err
	}
	return int64(len(found)), nil
}

func (f *fakeCandidateRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeCandidateRepo) ExistsByPhoneNumber(_ context.Context, phoneNumber string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if c.PhoneNumber == phoneNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCandidateRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCandidateRepo) Save(_ context.Context, candidate models.Candidate) (*models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if candidate.ID == "" {
		f.nextID++
		candidate.ID = fmt.Sprintf("cand-%d", f.nextID)
	}
	f.byID[candidate.ID] = candidate
	return &candidate, nil
}

func (f *fakeCandidateRepo) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakePositionRepo struct {
	mu      sync.Mutex
	byID    map[string]models.Position
	nextID  int
	saveErr error
}

func newFakePositionRepo() *fakePositionRepo {
	return &fakePositionRepo{byID: map[string]models.Position{}}
}

func (f *fakePositionRepo) FindByID(_ context.Context, id string) (*models.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f *fakePositionRepo) FindAll(_ context.Context) ([]models.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Position, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePositionRepo) FindByName(_ context.Context, name string) ([]models.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Position{}
	for _, p := range f.byID {
		if p.Name == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePositionRepo) FindByStatus(_ context.Context, status models.Status) ([]models.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Position{}
	for _, p := range f.byID {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePositionRepo) FindByStatusAndSubStatus(_ context.Context, status models.Status, subStatus models.SubStatus) ([]models.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Position{}
	for _, p := range f.byID {
		if p.Status == status && p.SubStatus == subStatus {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePositionRepo) FindByStatuses(_ context.Context, status1, status2 models.Status) ([]models.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Position{}
	for _, p := range f.byID {
		if p.Status == status1 || p.Status == status2 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePositionRepo) Save(_ context.Context, position models.Position) (*models.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if position.ID == "" {
		f.nextID++
		position.ID = fmt.Sprintf("pos-%d", f.nextID)
	}
	f.byID[position.ID] = position
	return &position, nil
}
