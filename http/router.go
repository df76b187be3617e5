package http

import (
	"net/http"

	"go.uber.org/zap"
)

// NewRouter wires the handlers behind the rate limiter and the request
// logger.
func NewRouter(
	simulationHandler *SimulationHandler,
	sessionHandler *SessionHandler,
	limiter *RateLimiter,
	lg *zap.SugaredLogger,
) http.Handler {
	mux := http.NewServeMux()

	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, h)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle("POST /simulation/validate", limited(simulationHandler.Validate))
	mux.Handle("POST /simulation/calculate", limited(simulationHandler.Calculate))
	mux.Handle("GET /simulations", limited(simulationHandler.History))

	mux.Handle("POST /sessions", limited(sessionHandler.Create))
	mux.Handle("GET /sessions/{id}", limited(sessionHandler.Get))
	mux.Handle("PATCH /sessions/{id}/inputs", limited(sessionHandler.SetInput))
	mux.Handle("POST /sessions/{id}/validate", limited(sessionHandler.Validate))
	mux.Handle("POST /sessions/{id}/simulate", limited(sessionHandler.Simulate))
	mux.Handle("POST /sessions/{id}/reset", limited(sessionHandler.Reset))
	mux.Handle("GET /sessions/{id}/insights", limited(sessionHandler.Insights))
	mux.Handle("GET /sessions/{id}/report", limited(sessionHandler.Report))

	return LoggingMiddleware(lg, mux)
}
