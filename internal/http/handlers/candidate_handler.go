// internal/http/handlers/candidate_handler.go
package handlers

import (
	"net/http"

	"candidate-service/internal/common/errors"
	"candidate-service/internal/common/validation"
	"candidate-service/internal/models"
	"candidate-service/internal/service"

	"github.com/gorilla/mux"
)

type CandidateHandler struct {
	candidates *service.CandidateService
}

func NewCandidateHandler(candidates *service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var candidate models.Candidate
	payload, err := decodeBody(r, &candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	if msg, ok := validation.ValidateCandidate(payload); !ok {
		writeError(w, errors.NewValidationError(msg))
		return
	}

	created, err := h.candidates.Add(r.Context(), candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var candidate models.Candidate
	payload, err := decodeBody(r, &candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	if msg, ok := validation.ValidateCandidate(payload); !ok {
		writeError(w, errors.NewValidationError(msg))
		return
	}

	updated, err := h.candidates.Update(r.Context(), mux.Vars(r)["id"], candidate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.candidates.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CandidateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.candidates.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

// List serves plain listing plus the name, positionId and assignedTo filters.
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if name := query.Get("name"); name != "" {
		candidates, err := h.candidates.GetByName(r.Context(), name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, candidates)
		return
	}

	if positionID := query.Get("positionId"); positionID != "" {
		candidates, err := h.candidates.GetByPositionID(r.Context(), positionID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, candidates)
		return
	}

	if assignedTo := query.Get("assignedTo"); assignedTo != "" {
		candidates, err := h.candidates.FindByAssignedTo(r.Context(), assignedTo)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, candidates)
		return
	}

	candidates, err := h.candidates.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}
