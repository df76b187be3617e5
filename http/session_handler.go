package http

import (
	"net/http"
	"time"

	"holding-sim/domain"
	"holding-sim/logger"
	"holding-sim/report"
	"holding-sim/service"
)

const maxWait = 30 * time.Second

type SessionHandler struct {
	sessions *service.SessionService
	insights *service.InsightService
}

func NewSessionHandler(sessions *service.SessionService, insights *service.InsightService) *SessionHandler {
	return &SessionHandler{sessions: sessions, insights: insights}
}

type sessionView struct {
	domain.Session
	Chart []domain.ChartPoint `json:"chart,omitempty"`
	KPIs  []domain.KPI        `json:"kpis,omitempty"`
}

func viewOf(s domain.Session) sessionView {
	v := sessionView{Session: s}
	if s.Result != nil {
		v.Chart = service.ChartSeries(*s.Result)
		v.KPIs = service.KPIs(*s.Result)
	}
	return v
}

type setInputRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Create(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, viewOf(session))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, viewOf(session))
}

func (h *SessionHandler) SetInput(w http.ResponseWriter, r *http.Request) {
	var req setInputRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessions.SetInput(r.Context(), r.PathValue("id"), req.Field, req.Value)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, viewOf(session))
}

func (h *SessionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	errs, err := h.sessions.Validate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, validateResponse{Valid: errs.Valid(), Errors: errs})
}

// Simulate starts a run and answers 202 right away. With ?wait=true the
// response is delayed until the run completes.
func (h *SessionHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	session, done, err := h.sessions.RunSimulation(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("wait") != "true" {
		writeJSON(w, r, http.StatusAccepted, viewOf(session))
		return
	}

	select {
	case finished, ok := <-done:
		if !ok {
			// failed or superseded; report whatever the session holds now
			current, err := h.sessions.Get(r.Context(), id)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			writeJSON(w, r, http.StatusOK, viewOf(current))
			return
		}
		writeJSON(w, r, http.StatusOK, viewOf(finished))
	case <-r.Context().Done():
		logger.FromContext(r.Context()).Infof("client gave up waiting for session %s", id)
	case <-time.After(maxWait):
		writeJSON(w, r, http.StatusAccepted, viewOf(session))
	}
}

func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Reset(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, viewOf(session))
}

func (h *SessionHandler) Insights(w http.ResponseWriter, r *http.Request) {
	input, result, err := h.sessions.Result(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, h.insights.Generate(r.Context(), input, result))
}

// Report returns the simulation report as markdown, or HTML with
// ?format=html.
func (h *SessionHandler) Report(w http.ResponseWriter, r *http.Request) {
	input, result, err := h.sessions.Result(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rep := report.New(input, result, h.insights.Generate(r.Context(), input, result))

	var (
		body        string
		contentType string
		ext         string
	)
	switch r.URL.Query().Get("format") {
	case "", "markdown", "md":
		body, contentType, ext = rep.Markdown(), "text/markdown; charset=utf-8", "md"
	case "html":
		body, err = rep.HTML()
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		contentType, ext = "text/html; charset=utf-8", "html"
	default:
		writeError(w, r, http.StatusBadRequest, "unsupported format")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `inline; filename="`+rep.Filename(ext)+`"`)
	if _, err := w.Write([]byte(body)); err != nil {
		logger.FromContext(r.Context()).Warnf("error writing report: %v", err)
	}
}
