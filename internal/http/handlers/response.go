// internal/http/handlers/response.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"candidate-service/internal/common/errors"
	"candidate-service/internal/common/metrics"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps a domain error to its HTTP status and serializes the
// StandardError as the response body. Non-domain errors surface as 500.
func writeError(w http.ResponseWriter, err error) {
	stdErr, ok := err.(*errors.StandardError)
	if !ok {
		stdErr = errors.NewInternalError(err)
	}
	metrics.DomainErrorsTotal.WithLabelValues(string(stdErr.Code)).Inc()
	writeJSON(w, errors.HTTPStatus(stdErr.Code), stdErr)
}

// decodeBody reads the request body once and unmarshals it twice: into a map
// for schema validation and into the typed target for the service call.
func decodeBody(r *http.Request, target interface{}) (map[string]interface{}, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.NewValidationError("unable to read request body")
	}
	payload := map[string]interface{}{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errors.NewValidationError("invalid request body")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, errors.NewValidationError("invalid request body")
	}
	return payload, nil
}
