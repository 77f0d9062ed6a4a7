// internal/http/router.go
package http

import (
	"net/http"

	"candidate-service/internal/common/config"
	"candidate-service/internal/common/logger"
	"candidate-service/internal/common/observability"
	"candidate-service/internal/http/handlers"
	"candidate-service/internal/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Positions     *handlers.PositionHandler
	Candidates    *handlers.CandidateHandler
	Logger        logger.Logger
	Observability *observability.Observability
	RateLimiter   middleware.Limiter
	RateLimit     config.RateLimitConfig
}

// NewRouter builds the full route table with the middleware chain applied to
// the API subtree. /health and /metrics bypass rate limiting.
func NewRouter(deps RouterDeps) *mux.Router {
	root := mux.NewRouter()

	root.Use(middleware.RequestID)
	root.Use(middleware.Recover(deps.Logger))
	root.Use(middleware.Logging(deps.Logger))
	root.Use(middleware.Metrics(deps.Observability))

	root.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()
	if deps.RateLimit.Enabled && deps.RateLimiter != nil {
		api.Use(middleware.RateLimit(
			deps.RateLimiter,
			middleware.ClientIP,
			deps.RateLimit.Requests,
			deps.RateLimit.Window(),
		))
	}

	// Fixed paths are registered before the {id} patterns that would
	// otherwise shadow them.
	api.HandleFunc("/positions/statuses", deps.Positions.GetByStatuses).Methods(http.MethodGet)
	api.HandleFunc("/positions/sub-status", deps.Positions.GetByStatusAndSubStatus).Methods(http.MethodGet)
	api.HandleFunc("/positions", deps.Positions.List).Methods(http.MethodGet)
	api.HandleFunc("/positions", deps.Positions.Create).Methods(http.MethodPost)
	api.HandleFunc("/positions/{id}/cancel", deps.Positions.Cancel).Methods(http.MethodPut)
	api.HandleFunc("/positions/{id}/fill", deps.Positions.Fill).Methods(http.MethodPut)
	api.HandleFunc("/positions/{id}", deps.Positions.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/positions/{id}", deps.Positions.Update).Methods(http.MethodPut)

	api.HandleFunc("/candidates", deps.Candidates.List).Methods(http.MethodGet)
	api.HandleFunc("/candidates", deps.Candidates.Create).Methods(http.MethodPost)
	api.HandleFunc("/candidates/{id}", deps.Candidates.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/candidates/{id}", deps.Candidates.Update).Methods(http.MethodPut)
	api.HandleFunc("/candidates/{id}", deps.Candidates.Delete).Methods(http.MethodDelete)

	return root
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
