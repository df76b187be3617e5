package http

import (
	"net/http"
	"strconv"

	"holding-sim/domain"
	"holding-sim/service"
)

type SimulationHandler struct {
	service *service.SimulationService
}

func NewSimulationHandler(service *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{service: service}
}

type validateResponse struct {
	Valid  bool                    `json:"valid"`
	Errors domain.ValidationErrors `json:"errors"`
}

type simulationResponse struct {
	ID     string                  `json:"id"`
	Input  domain.SimulationInput  `json:"input"`
	Result domain.SimulationResult `json:"result"`
	Chart  []domain.ChartPoint     `json:"chart"`
	KPIs   []domain.KPI            `json:"kpis"`
}

// decodeInput reads a SimulationInput, defaulting perfil when omitted.
func decodeInput(r *http.Request) (domain.SimulationInput, error) {
	input := domain.DefaultSimulationInput()
	if err := decodeJSON(r, &input); err != nil {
		return domain.SimulationInput{}, err
	}
	if input.Perfil == "" {
		input.Perfil = domain.DefaultPerfil
	}
	return input, nil
}

func (h *SimulationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInput(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	errs := h.service.Validate(input)
	writeJSON(w, r, http.StatusOK, validateResponse{Valid: errs.Valid(), Errors: errs})
}

func (h *SimulationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInput(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.service.Simulate(r.Context(), "", input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, simulationResponse{
		ID:     record.ID,
		Input:  record.Input,
		Result: record.Result,
		Chart:  service.ChartSeries(record.Result),
		KPIs:   service.KPIs(record.Result),
	})
}

func (h *SimulationHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, records)
}
