package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"holding-sim/domain"
)

func titles(items []domain.Insight) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestInsights(t *testing.T) {
	t.Run("reference input", func(t *testing.T) {
		in := referenceInput()
		items := Insights(ParseInput(in), Calculate(in))

		require.Equal(t, []string{
			"Redução de custos",
			"Carga tributária",
			"Proteção patrimonial",
			"Sucessão",
			"Governança",
			"Integralização de imóveis",
		}, titles(items))
		require.Contains(t, items[0].Description, "R$ 150000.00")
		require.Contains(t, items[1].Description, "62.5%")
	})

	t.Run("no heirs, one company", func(t *testing.T) {
		in := referenceInput()
		in.Herdeiros = "0"
		in.Empresas = "1"
		in.ValorVenal = "1300000"
		items := Insights(ParseInput(in), Calculate(in))

		require.Len(t, items, 4)
		require.Contains(t, items[3].Description, "não se aplica")
	})
}

func TestInsightService_Disabled(t *testing.T) {
	s := NewInsightService("", "http://unused")
	in := referenceInput()

	report := s.Generate(context.Background(), in, Calculate(in))

	require.Empty(t, report.Explanation)
	require.NotEmpty(t, report.Items)
}

func TestInsightService_LLM(t *testing.T) {
	var got OpenAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  A holding reduz custos.  "}}]}`))
	}))
	defer server.Close()

	s := NewInsightService("key", server.URL)
	in := referenceInput()
	report := s.Generate(context.Background(), in, Calculate(in))

	require.Equal(t, "A holding reduz custos.", report.Explanation)
	require.Len(t, got.Messages, 2)
	require.True(t, strings.Contains(got.Messages[1].Content, "Economia fiscal: 62.5%"))
}

func TestInsightService_LLMFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := NewInsightService("key", server.URL)
	in := referenceInput()
	report := s.Generate(context.Background(), in, Calculate(in))

	require.Empty(t, report.Explanation)
	require.NotEmpty(t, report.Items)
}
