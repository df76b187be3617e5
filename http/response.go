package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"holding-sim/domain"
	"holding-sim/logger"
	"holding-sim/repository"
	"holding-sim/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string                  `json:"error"`
	Errors domain.ValidationErrors `json:"errors,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode does not leave
// a half written 200 behind.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.FromContext(r.Context()).Errorf("error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Warnf("error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

// writeServiceError maps service errors to status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:  "invalid simulation input",
			Errors: verr.Errors,
		})
	case errors.Is(err, repository.ErrSessionNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownField):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotSimulated):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		logger.FromContext(r.Context()).Errorf("request failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
