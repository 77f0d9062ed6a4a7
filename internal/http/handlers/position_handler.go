// internal/http/handlers/position_handler.go
package handlers

import (
	"net/http"

	"candidate-service/internal/common/errors"
	"candidate-service/internal/common/validation"
	"candidate-service/internal/models"
	"candidate-service/internal/service"

	"github.com/gorilla/mux"
)

type PositionHandler struct {
	positions *service.PositionService
}

func NewPositionHandler(positions *service.PositionService) *PositionHandler {
	return &PositionHandler{positions: positions}
}

func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var position models.Position
	payload, err := decodeBody(r, &position)
	if err != nil {
		writeError(w, err)
		return
	}
	if msg, ok := validation.ValidatePositionCreate(payload); !ok {
		writeError(w, errors.NewValidationError(msg))
		return
	}

	created, err := h.positions.Add(r.Context(), position)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (h *PositionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var position models.Position
	payload, err := decodeBody(r, &position)
	if err != nil {
		writeError(w, err)
		return
	}
	if msg, ok := validation.ValidatePositionUpdate(payload); !ok {
		writeError(w, errors.NewValidationError(msg))
		return
	}

	updated, err := h.positions.Update(r.Context(), mux.Vars(r)["id"], position)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PositionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	cancelled, err := h.positions.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cancelled)
}

func (h *PositionHandler) Fill(w http.ResponseWriter, r *http.Request) {
	hiredCandidateID := r.URL.Query().Get("hiredCandidateId")
	if hiredCandidateID == "" {
		writeError(w, errors.NewValidationError("Please provide a hired candidate id"))
		return
	}

	filled, err := h.positions.Fill(r.Context(), mux.Vars(r)["id"], hiredCandidateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filled)
}

func (h *PositionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	position, err := h.positions.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, position)
}

// List serves plain listing plus the name and status query filters.
func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if name := query.Get("name"); name != "" {
		positions, err := h.positions.GetByName(r.Context(), name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, positions)
		return
	}

	if rawStatus := query.Get("status"); rawStatus != "" {
		status, ok := models.ParseStatus(rawStatus)
		if !ok {
			writeError(w, errors.NewValidationError("Please provide a valid status"))
			return
		}
		positions, err := h.positions.GetByStatus(r.Context(), status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, positions)
		return
	}

	positions, err := h.positions.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, positions)
}

// GetByStatuses serves /positions/statuses?status1=&status2=.
func (h *PositionHandler) GetByStatuses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status1, ok1 := models.ParseStatus(query.Get("status1"))
	status2, ok2 := models.ParseStatus(query.Get("status2"))
	if !ok1 || !ok2 {
		writeError(w, errors.NewValidationError("Please provide a valid status"))
		return
	}

	positions, err := h.positions.GetByStatuses(r.Context(), status1, status2)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, positions)
}

// GetByStatusAndSubStatus serves /positions/sub-status?status=&subStatus=.
func (h *PositionHandler) GetByStatusAndSubStatus(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status, ok := models.ParseStatus(query.Get("status"))
	if !ok {
		writeError(w, errors.NewValidationError("Please provide a valid status"))
		return
	}
	subStatus, ok := models.ParseSubStatus(query.Get("subStatus"))
	if !ok {
		writeError(w, errors.NewValidationError("Please provide a valid sub-status"))
		return
	}

	positions, err := h.positions.GetByStatusAndSubStatus(r.Context(), status, subStatus)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, positions)
}
