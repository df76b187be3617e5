package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"holding-sim/domain"
	"holding-sim/repository"
	"holding-sim/service"
)

const referenceBody = `{
	"patrimonio": "1000000",
	"empresas": "2",
	"perfil": "empresario",
	"herdeiros": "2",
	"imoveis": "3",
	"valorMercado": "1200000",
	"valorVenal": "900000"
}`

func newTestRouter(t *testing.T, capacity int) http.Handler {
	t.Helper()

	simulations := service.NewSimulationService(
		service.Validator{},
		repository.NewSimulationRepositoryMemory(),
		repository.NewMemoryCache(),
	)
	sessions := service.NewSessionService(
		repository.NewSessionRepositoryMemory(),
		simulations,
		service.NewRunner(simulations, 0),
	)
	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(
		NewSimulationHandler(simulations),
		NewSessionHandler(sessions, service.NewInsightService("", "")),
		limiter,
		zap.NewNop().Sugar(),
	)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestCalculateHandler_OK(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodPost, "/simulation/calculate", referenceBody)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	resp := decode[simulationResponse](t, w)
	require.NotEmpty(t, resp.ID)
	require.Equal(t, 62.5, resp.Result.EconomiaFiscal)
	require.Equal(t, 230000.0, resp.Result.CenarioAtual.CustoTotal)
	require.Len(t, resp.Chart, 3)
	require.Len(t, resp.KPIs, 4)
}

func TestCalculateHandler_MissingField(t *testing.T) {
	router := newTestRouter(t, 100)
	body := strings.Replace(referenceBody, `"empresas": "2"`, `"empresas": ""`, 1)

	w := do(t, router, http.MethodPost, "/simulation/calculate", body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode[errorResponse](t, w)
	require.Equal(t, domain.ValidationErrors{domain.FieldEmpresas: service.MsgEmpresasObrigatorio}, resp.Errors)

	history := decode[[]domain.SimulationRecord](t, do(t, router, http.MethodGet, "/simulations", ""))
	require.Empty(t, history)
}

func TestCalculateHandler_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodGet, "/simulation/calculate", "")

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCalculateHandler_BadRequest(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodPost, "/simulation/calculate", `{invalid-json}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateHandler(t *testing.T) {
	router := newTestRouter(t, 100)

	w := do(t, router, http.MethodPost, "/simulation/validate", `{"patrimonio": "10"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[validateResponse](t, w)
	require.False(t, resp.Valid)
	require.Len(t, resp.Errors, 5)
	require.NotContains(t, resp.Errors, domain.FieldPatrimonio)
	require.NotContains(t, resp.Errors, domain.FieldPerfil)

	w = do(t, router, http.MethodPost, "/simulation/validate", referenceBody)
	resp = decode[validateResponse](t, w)
	require.True(t, resp.Valid)
	require.Empty(t, resp.Errors)
}

func TestHistoryHandler(t *testing.T) {
	router := newTestRouter(t, 100)
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/simulation/calculate", referenceBody).Code)
	}

	w := do(t, router, http.MethodGet, "/simulations?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]domain.SimulationRecord](t, w), 1)

	w = do(t, router, http.MethodGet, "/simulations?limit=abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t, 2)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/simulation/validate", referenceBody).Code)
	}

	w := do(t, router, http.MethodPost, "/simulation/validate", referenceBody)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.NotEmpty(t, w.Header().Get("Retry-After"))

	// health checks are not limited
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/healthz", "").Code)
}
