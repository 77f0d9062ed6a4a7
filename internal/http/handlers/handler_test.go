package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"candidate-service/internal/common/logger"
	"candidate-service/internal/models"
	"candidate-service/internal/repository"
	"candidate-service/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// In-Memory Stores
// ==========================

type memCandidateRepo struct {
	byID   map[string]models.Candidate
	nextID int
}

func newMemCandidateRepo() *memCandidateRepo {
	return &memCandidateRepo{byID: map[string]models.Candidate{}}
}

func (m *memCandidateRepo) FindByID(_ context.Context, id string) (*models.Candidate, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (m *memCandidateRepo) FindAll(_ context.Context) ([]models.Candidate, error) {
	out := make([]models.Candidate, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCandidateRepo) FindByName(_ context.Context, name string) ([]models.Candidate, error) {
	out := []models.Candidate{}
	for _, c := range m.byID {
		if strings.EqualFold(c.Name, name) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCandidateRepo) FindByAssignedTo(_ context.Context, assignedTo string) ([]models.Candidate, error) {
	out := []models.Candidate{}
	for _, c := range m.byID {
		if c.AssignedTo == assignedTo {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCandidateRepo) FindByPositionID(_ context.Context, positionID string) ([]models.Candidate, error) {
	out := []models.Candidate{}
	for _, c := range m.byID {
		if c.PositionID == positionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCandidateRepo) CountByPositionID(ctx context.Context, positionID string) (int64, error) {
	found, _ := m.FindByPositionID(ctx, positionID)
	return int64(len(found)), nil
}

func (m *memCandidateRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *memCandidateRepo) ExistsByPhoneNumber(_ context.Context, phoneNumber string) (bool, error) {
	for _, c := range m.byID {
		if c.PhoneNumber == phoneNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCandidateRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, c := range m.byID {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCandidateRepo) Save(_ context.Context, candidate models.Candidate) (*models.Candidate, error) {
	if candidate.ID == "" {
		m.nextID++
		candidate.ID = fmt.Sprintf("cand-%d", m.nextID)
	}
	m.byID[candidate.ID] = candidate
	return &candidate, nil
}

func (m *memCandidateRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memPositionRepo struct {
	byID   map[string]models.Position
	nextID int
}

func newMemPositionRepo() *memPositionRepo {
	return &memPositionRepo{byID: map[string]models.Position{}}
}

func (m *memPositionRepo) FindByID(_ context.Context, id string) (*models.Position, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memPositionRepo) FindAll(_ context.Context) ([]models.Position, error) {
	out := make([]models.Position, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

func (m *memPositionRepo) FindByName(_ context.Context, name string) ([]models.Position, error) {
	out := []models.Position{}
	for _, p := range m.byID {
		if p.Name == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPositionRepo) FindByStatus(_ context.Context, status models.Status) ([]models.Position, error) {
	out := []models.Position{}
	for _, p := range m.byID {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPositionRepo) FindByStatusAndSubStatus(_ context.Context, status models.Status, subStatus models.SubStatus) ([]models.Position, error) {
	out := []models.Position{}
	for _, p := range m.byID {
		if p.Status == status && p.SubStatus == subStatus {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPositionRepo) FindByStatuses(_ context.Context, status1, status2 models.Status) ([]models.Position, error) {
	out := []models.Position{}
	for _, p := range m.byID {
		if p.Status == status1 || p.Status == status2 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPositionRepo) Save(_ context.Context, position models.Position) (*models.Position, error) {
	if position.ID == "" {
		m.nextID++
		position.ID = fmt.Sprintf("pos-%d", m.nextID)
	}
	m.byID[position.ID] = position
	return &position, nil
}

// ==========================
// Test Fixture
// ==========================

type fixture struct {
	router     *mux.Router
	candidates *memCandidateRepo
	positions  *memPositionRepo
}

// newFixture wires real services and handlers over the in-memory stores and
// registers the routes the way the production router does.
func newFixture(t *testing.T) *fixture {
	candidates := newMemCandidateRepo()
	positions := newMemPositionRepo()
	log := logger.NewTestLogger(t)

	positionSvc := service.NewPositionService(positions, candidates, log)
	candidateSvc := service.NewCandidateService(candidates, positions, log)

	ph := NewPositionHandler(positionSvc)
	ch := NewCandidateHandler(candidateSvc)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/positions/statuses", ph.GetByStatuses).Methods(http.MethodGet)
	api.HandleFunc("/positions/sub-status", ph.GetByStatusAndSubStatus).Methods(http.MethodGet)
	api.HandleFunc("/positions", ph.List).Methods(http.MethodGet)
	api.HandleFunc("/positions", ph.Create).Methods(http.MethodPost)
	api.HandleFunc("/positions/{id}/cancel", ph.Cancel).Methods(http.MethodPut)
	api.HandleFunc("/positions/{id}/fill", ph.Fill).Methods(http.MethodPut)
	api.HandleFunc("/positions/{id}", ph.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/positions/{id}", ph.Update).Methods(http.MethodPut)
	api.HandleFunc("/candidates", ch.List).Methods(http.MethodGet)
	api.HandleFunc("/candidates", ch.Create).Methods(http.MethodPost)
	api.HandleFunc("/candidates/{id}", ch.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/candidates/{id}", ch.Update).Methods(http.MethodPut)
	api.HandleFunc("/candidates/{id}", ch.Delete).Methods(http.MethodDelete)

	return &fixture{router: r, candidates: candidates, positions: positions}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func candidatePayload(positionID string) map[string]interface{} {
	return map[string]interface{}{
		"name":        "Alan Turing",
		"positionId":  positionID,
		"phoneNumber": "+4915112345678",
		"email":       "alan@example.com",
	}
}

// ==========================
// Position Endpoints
// ==========================

func TestPositionEndpoints_Lifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/positions", map[string]interface{}{"name": "Backend Engineer"})
	require.Equal(t, http.StatusOK, rec.Code)

	var created models.Position
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusOpen, created.Status)

	// Duplicate open name maps to 409.
	rec = f.do(t, http.MethodPost, "/api/v1/positions", map[string]interface{}{"name": "Backend Engineer"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "POSITION_ALREADY_EXISTS", decodeError(t, rec)["code"])

	rec = f.do(t, http.MethodPut, "/api/v1/positions/"+created.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cancelled models.Position
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cancelled))
	assert.Equal(t, models.StatusClosed, cancelled.Status)
	assert.Equal(t, models.SubStatusCancelled, cancelled.SubStatus)

	// Second cancel maps to 400.
	rec = f.do(t, http.MethodPut, "/api/v1/positions/"+created.ID+"/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "POSITION_ALREADY_DEACTIVATED", decodeError(t, rec)["code"])
}

func TestPositionEndpoints_Fill(t *testing.T) {
	f := newFixture(t)
	position, err := f.positions.Save(context.Background(), models.Position{Name: "SRE", Status: models.StatusOpen})
	require.NoError(t, err)
	candidate, err := f.candidates.Save(context.Background(), models.Candidate{
		Name: "Grace Hopper", PositionID: position.ID, AssignedTo: "recruiter-1",
	})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPut, "/api/v1/positions/"+position.ID+"/fill?hiredCandidateId="+candidate.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var filled models.Position
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filled))
	assert.Equal(t, models.SubStatusFilled, filled.SubStatus)
	assert.Equal(t, candidate.ID, filled.HiredCandidateID)

	hired, err := f.candidates.FindByID(context.Background(), candidate.ID)
	require.NoError(t, err)
	assert.True(t, hired.Hired)

	// Missing query parameter is a validation failure.
	rec = f.do(t, http.MethodPut, "/api/v1/positions/"+position.ID+"/fill", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPositionEndpoints_Queries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.positions.Save(ctx, models.Position{Name: "Backend", Status: models.StatusOpen})
	require.NoError(t, err)
	_, err = f.positions.Save(ctx, models.Position{
		Name: "Frontend", Status: models.StatusClosed, SubStatus: models.SubStatusFilled,
	})
	require.NoError(t, err)

	tests := []struct {
		name        string
		path        string
		expectedLen int
	}{
		{"all", "/api/v1/positions", 2},
		{"by status", "/api/v1/positions?status=OPEN", 1},
		{"by name", "/api/v1/positions?name=Backend", 1},
		{"by name is case-sensitive", "/api/v1/positions?name=backend", 0},
		{"by two statuses", "/api/v1/positions/statuses?status1=OPEN&status2=CLOSED", 2},
		{"by status and sub-status", "/api/v1/positions/sub-status?status=CLOSED&subStatus=FILLED", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			var out []models.Position
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			assert.Len(t, out, tt.expectedLen)
		})
	}

	t.Run("unknown status is rejected", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/positions?status=PAUSED", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing id maps to 404", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/positions/missing", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "POSITION_NOT_FOUND", decodeError(t, rec)["code"])
	})
}

// ==========================
// Candidate Endpoints
// ==========================

func TestCandidateEndpoints_Create(t *testing.T) {
	f := newFixture(t)
	position, err := f.positions.Save(context.Background(), models.Position{Name: "Backend", Status: models.StatusOpen})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/v1/candidates", candidatePayload(position.ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Hired)

	// Same phone again maps to 400 DUPLICATE_CANDIDATE.
	rec = f.do(t, http.MethodPost, "/api/v1/candidates", candidatePayload(position.ID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "DUPLICATE_CANDIDATE", decodeError(t, rec)["code"])

	// Unknown position maps to 404.
	payload := candidatePayload("missing")
	payload["phoneNumber"] = "+4915187654321"
	payload["email"] = "other@example.com"
	rec = f.do(t, http.MethodPost, "/api/v1/candidates", payload)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "POSITION_NOT_FOUND", decodeError(t, rec)["code"])
}

func TestCandidateEndpoints_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name            string
		mutate          func(payload map[string]interface{})
		expectedMessage string
	}{
		{
			name:            "short name",
			mutate:          func(p map[string]interface{}) { p["name"] = "Al" },
			expectedMessage: "Please provide a valid name",
		},
		{
			name:            "malformed phone",
			mutate:          func(p map[string]interface{}) { p["phoneNumber"] = "12ab" },
			expectedMessage: "Please provide a valid phone number",
		},
		{
			name:            "email without domain",
			mutate:          func(p map[string]interface{}) { p["email"] = "alan@" },
			expectedMessage: "Please provide a valid email address",
		},
		{
			name:            "malformed cv link",
			mutate:          func(p map[string]interface{}) { p["cvLink"] = "not a link" },
			expectedMessage: "Please provide a valid link",
		},
		{
			name:            "missing required field",
			mutate:          func(p map[string]interface{}) { delete(p, "positionId") },
			expectedMessage: "Please provide a valid position id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := candidatePayload("pos-1")
			tt.mutate(payload)

			rec := f.do(t, http.MethodPost, "/api/v1/candidates", payload)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "VALIDATION_FAILED", body["code"])
			assert.Equal(t, tt.expectedMessage, body["message"])
		})
	}
}

func TestCandidateEndpoints_UpdateDeleteGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	position, err := f.positions.Save(ctx, models.Position{Name: "Backend", Status: models.StatusOpen})
	require.NoError(t, err)
	candidate, err := f.candidates.Save(ctx, models.Candidate{
		Name: "Alan Turing", PositionID: position.ID,
		PhoneNumber: "+4915112345678", Email: "alan@example.com",
	})
	require.NoError(t, err)

	payload := candidatePayload(position.ID)
	payload["name"] = "Alan M. Turing"
	rec := f.do(t, http.MethodPut, "/api/v1/candidates/"+candidate.ID, payload)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/candidates/"+candidate.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Alan M. Turing", got.Name)

	rec = f.do(t, http.MethodDelete, "/api/v1/candidates/"+candidate.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/candidates/"+candidate.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCandidateEndpoints_AssignedToQuery(t *testing.T) {
	f := newFixture(t)
	_, err := f.candidates.Save(context.Background(), models.Candidate{
		Name: "Ada", PositionID: "pos-1", AssignedTo: "recruiter-1",
	})
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/api/v1/candidates?assignedTo=recruiter-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Empty result on this filter is a 404, unlike the other list reads.
	rec = f.do(t, http.MethodGet, "/api/v1/candidates?assignedTo=recruiter-2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "CANDIDATE_NOT_FOUND", decodeError(t, rec)["code"])
}
