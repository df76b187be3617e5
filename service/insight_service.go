package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"holding-sim/domain"
	"holding-sim/logger"
)

type InsightService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewInsightService returns a service that narrates simulations through an
// OpenAI compatible chat endpoint. With an empty apiKey only the
// deterministic insights are produced.
func NewInsightService(apiKey, apiURL string) *InsightService {
	return &InsightService{
		apiKey:  apiKey,
		apiURL:  apiURL,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Generate returns the insight items for a simulation and, when the LLM is
// configured and answers, a narrative explanation.
func (s *InsightService) Generate(
	ctx context.Context,
	in domain.SimulationInput,
	result domain.SimulationResult,
) domain.InsightReport {
	report := domain.InsightReport{Items: Insights(ParseInput(in), result)}
	if !s.enabled {
		return report
	}

	explanation, err := s.callLLM(ctx, buildPrompt(ParseInput(in), result))
	if err != nil {
		logger.FromContext(ctx).Warnf("error calling AI service for insights: %v", err)
		return report
	}
	report.Explanation = strings.TrimSpace(explanation)
	return report
}

// Insights derives the deterministic analyses shown next to the charts.
func Insights(p domain.ParsedInput, r domain.SimulationResult) []domain.Insight {
	economia := r.CenarioAtual.CustoTotal - r.CenarioHolding.CustoTotal

	items := []domain.Insight{
		{
			Title: "Redução de custos",
			Description: fmt.Sprintf(
				"Com a holding, o custo projetado cai de R$ %.2f para R$ %.2f, uma economia de R$ %.2f.",
				r.CenarioAtual.CustoTotal, r.CenarioHolding.CustoTotal, economia),
		},
		{
			Title: "Carga tributária",
			Description: fmt.Sprintf(
				"A economia fiscal estimada é de %.1f%% sobre os impostos do cenário atual.",
				r.EconomiaFiscal),
		},
		{
			Title: "Proteção patrimonial",
			Description: fmt.Sprintf(
				"A exposição a riscos patrimoniais é reduzida em %.1f%%.",
				r.ProtecaoPatrimonial),
		},
	}

	if p.Herdeiros > 0 {
		items = append(items, domain.Insight{
			Title: "Sucessão",
			Description: fmt.Sprintf(
				"Com %d herdeiro(s), a holding permite planejar a sucessão em vida e evitar inventário.",
				p.Herdeiros),
		})
	} else {
		items = append(items, domain.Insight{
			Title:       "Sucessão",
			Description: "Sem herdeiros informados, o indicador de sucessão não se aplica.",
		})
	}

	if p.Empresas > 1 {
		items = append(items, domain.Insight{
			Title: "Governança",
			Description: fmt.Sprintf(
				"Centralizar as %d empresas em uma holding facilita a governança familiar.",
				p.Empresas),
		})
	}

	if p.Imoveis > 0 && p.ValorVenal > 0 && p.ValorMercado > p.ValorVenal {
		items = append(items, domain.Insight{
			Title: "Integralização de imóveis",
			Description: fmt.Sprintf(
				"Os %d imóvel(is) podem ser integralizados pelo valor venal (R$ %.2f), abaixo do valor de mercado (R$ %.2f).",
				p.Imoveis, p.ValorVenal, p.ValorMercado),
		})
	}

	return items
}

func buildPrompt(p domain.ParsedInput, r domain.SimulationResult) string {
	return fmt.Sprintf(`Analise esta simulação de holding patrimonial e gere uma explicação clara e educativa.

DADOS DO CLIENTE:
- Patrimônio total: R$ %.2f
- Perfil: %s
- Empresas: %d
- Herdeiros: %d
- Imóveis: %d (valor de mercado R$ %.2f, valor venal R$ %.2f)

RESULTADO:
- Sem holding: impostos R$ %.2f, riscos R$ %.2f, custo total R$ %.2f
- Com holding: impostos R$ %.2f, riscos R$ %.2f, custo total R$ %.2f
- Economia fiscal: %.1f%%
- Proteção patrimonial: %.1f%%
- Sucessão eficiente: %.0f%%
- Governança familiar: %.0f%%

Gere uma explicação de 3-4 frases, fácil de entender, sem prometer resultados garantidos.`,
		p.Patrimonio, p.Perfil, p.Empresas, p.Herdeiros, p.Imoveis, p.ValorMercado, p.ValorVenal,
		r.CenarioAtual.Impostos, r.CenarioAtual.Riscos, r.CenarioAtual.CustoTotal,
		r.CenarioHolding.Impostos, r.CenarioHolding.Riscos, r.CenarioHolding.CustoTotal,
		r.EconomiaFiscal, r.ProtecaoPatrimonial, r.SucessaoEficiente, r.GovernancaFamiliar)
}

func (s *InsightService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{
				Role:    "system",
				Content: "Você é um consultor especializado em planejamento patrimonial e holdings familiares no Brasil. Explica resultados de simulações de forma clara, precisa e em português.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}
