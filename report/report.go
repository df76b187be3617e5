package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"holding-sim/domain"
	"holding-sim/service"
)

// Report is the printable summary of a simulation handed to the export
// layer.
type Report struct {
	GeneratedAt time.Time
	Input       domain.SimulationInput
	Result      domain.SimulationResult
	Insights    domain.InsightReport
}

func New(in domain.SimulationInput, result domain.SimulationResult, insights domain.InsightReport) Report {
	return Report{
		GeneratedAt: time.Now().UTC(),
		Input:       in,
		Result:      result,
		Insights:    insights,
	}
}

func (r Report) Markdown() string {
	p := service.ParseInput(r.Input)
	var b strings.Builder

	b.WriteString("# Simulação de Holding Patrimonial\n\n")
	fmt.Fprintf(&b, "Gerado em %s\n\n", r.GeneratedAt.Format("02/01/2006 15:04 MST"))

	b.WriteString("## Dados informados\n\n")
	b.WriteString("| Campo | Valor |\n|---|---|\n")
	fmt.Fprintf(&b, "| Patrimônio total | %s |\n", FormatBRL(p.Patrimonio))
	fmt.Fprintf(&b, "| Perfil | %s |\n", PerfilLabel(p.Perfil))
	fmt.Fprintf(&b, "| Empresas | %d |\n", p.Empresas)
	fmt.Fprintf(&b, "| Herdeiros | %d |\n", p.Herdeiros)
	fmt.Fprintf(&b, "| Imóveis | %d |\n", p.Imoveis)
	fmt.Fprintf(&b, "| Valor de mercado | %s |\n", FormatBRL(p.ValorMercado))
	fmt.Fprintf(&b, "| Valor venal | %s |\n\n", FormatBRL(p.ValorVenal))

	b.WriteString("## Comparativo de cenários\n\n")
	b.WriteString("| | Sem holding | Com holding |\n|---|---:|---:|\n")
	for _, pt := range service.ChartSeries(r.Result) {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", pt.Name, FormatBRL(pt.SemHolding), FormatBRL(pt.ComHolding))
	}
	b.WriteString("\n")

	b.WriteString("## Indicadores\n\n")
	for _, k := range service.KPIs(r.Result) {
		fmt.Fprintf(&b, "- **%s**: %s\n", k.Title, FormatPercent(k.Value))
	}
	b.WriteString("\n")

	if len(r.Insights.Items) > 0 || r.Insights.Explanation != "" {
		b.WriteString("## Insights\n\n")
		for _, it := range r.Insights.Items {
			fmt.Fprintf(&b, "### %s\n\n%s\n\n", it.Title, it.Description)
		}
		if r.Insights.Explanation != "" {
			fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(r.Insights.Explanation, "\n", "\n> "))
		}
	}

	return b.String()
}

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML renders the markdown report as a standalone HTML document.
func (r Report) HTML() (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(r.Markdown()), &body); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"pt-BR\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Simulação de Holding Patrimonial</title>\n</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// Filename suggests a download name for the report.
func (r Report) Filename(ext string) string {
	return "simulacao-holding-" + strconv.FormatInt(r.GeneratedAt.Unix(), 10) + "." + ext
}
