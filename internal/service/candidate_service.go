// internal/service/candidate_service.go
package service

import (
	"context"
	stderrors "errors"

	"candidate-service/internal/common/errors"
	"candidate-service/internal/common/logger"
	"candidate-service/internal/models"
	"candidate-service/internal/repository"
)

// CandidateService manages candidate records. Field shape is validated at the
// HTTP layer; this layer enforces the cross-entity rules, which means the
// position link and the phone/email uniqueness checks.
type CandidateService struct {
	candidates repository.CandidateRepository
	positions  repository.PositionRepository
	logger     logger.Logger
}

func NewCandidateService(candidates repository.CandidateRepository, positions repository.PositionRepository, log logger.Logger) *CandidateService {
	return &CandidateService{
		candidates: candidates,
		positions:  positions,
		logger:     log.WithFields(map[string]interface{}{"service": "candidate"}),
	}
}

// Add creates a candidate. The position link is resolved before the
// uniqueness checks, and phone is checked before email. Hired is forced
// false on create. The checks race concurrent inserts; the unique indexes
// on phoneNumber and email are the backstop.
func (s *CandidateService) Add(ctx context.Context, candidate models.Candidate) (*models.Candidate, error) {
	if _, err := s.positions.FindByID(ctx, candidate.PositionID); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewPositionNotFoundError(candidate.PositionID)
		}
		return nil, errors.NewInternalError(err)
	}

	phoneTaken, err := s.candidates.ExistsByPhoneNumber(ctx, candidate.PhoneNumber)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if phoneTaken {
		return nil, errors.NewDuplicateCandidateError("phone number")
	}

	emailTaken, err := s.candidates.ExistsByEmail(ctx, candidate.Email)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if emailTaken {
		return nil, errors.NewDuplicateCandidateError("email")
	}

	candidate.ID = ""
	candidate.Hired = false

	saved, err := s.candidates.Save(ctx, candidate)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	s.logger.Info("candidate created", map[string]interface{}{
		"candidateId": saved.ID,
		"positionId":  saved.PositionID,
	})
	return saved, nil
}

// Update replaces every writable field of an existing candidate. Hired is
// owned by the position fill flow and left untouched; duplicate checks are
// not re-run on update.
func (s *CandidateService) Update(ctx context.Context, id string, candidate models.Candidate) (*models.Candidate, error) {
	current, err := s.candidates.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewCandidateNotFoundError(id)
		}
		return nil, errors.NewInternalError(err)
	}

	current.Name = candidate.Name
	current.PositionID = candidate.PositionID
	current.PhoneNumber = candidate.PhoneNumber
	current.Email = candidate.Email
	current.CVLink = candidate.CVLink
	current.InterviewDate = candidate.InterviewDate
	current.DocumentID = candidate.DocumentID
	current.AssignedTo = candidate.AssignedTo

	saved, err := s.candidates.Save(ctx, *current)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return saved, nil
}

func (s *CandidateService) Delete(ctx context.Context, id string) error {
	err := s.candidates.DeleteByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewCandidateNotFoundError(id)
		}
		return errors.NewInternalError(err)
	}
	s.logger.Info("candidate deleted", map[string]interface{}{"candidateId": id})
	return nil
}

// GetAll returns all candidates sorted by name ascending.
func (s *CandidateService) GetAll(ctx context.Context) ([]models.Candidate, error) {
	candidates, err := s.candidates.FindAll(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return candidates, nil
}

func (s *CandidateService) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	candidate, err := s.candidates.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewCandidateNotFoundError(id)
		}
		return nil, errors.NewInternalError(err)
	}
	return candidate, nil
}

// GetByName matches the name exactly but case-insensitively. An empty result
// is not an error.
func (s *CandidateService) GetByName(ctx context.Context, name string) ([]models.Candidate, error) {
	candidates, err := s.candidates.FindByName(ctx, name)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return candidates, nil
}

func (s *CandidateService) GetByPositionID(ctx context.Context, positionID string) ([]models.Candidate, error) {
	candidates, err := s.candidates.FindByPositionID(ctx, positionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return candidates, nil
}

// FindByAssignedTo returns the candidates assigned to the given assignee and
// treats an empty result as an error.
func (s *CandidateService) FindByAssignedTo(ctx context.Context, assignedTo string) ([]models.Candidate, error) {
	candidates, err := s.candidates.FindByAssignedTo(ctx, assignedTo)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if len(candidates) == 0 {
		return nil, errors.NewNoCandidatesAssignedError(assignedTo)
	}
	return candidates, nil
}
