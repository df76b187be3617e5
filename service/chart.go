package service

import "holding-sim/domain"

const (
	SerieCustosTotais = "Custos Totais"
	SerieImpostos     = "Impostos"
	SerieRiscos       = "Riscos"

	KPIEconomiaFiscal      = "Economia Fiscal"
	KPIProtecaoPatrimonial = "Proteção Patrimonial"
	KPISucessaoEficiente   = "Sucessão Eficiente"
	KPIGovernancaFamiliar  = "Governança Familiar"
)

// ChartSeries returns the points of the "sem holding" vs "com holding"
// comparison chart.
func ChartSeries(r domain.SimulationResult) []domain.ChartPoint {
	return []domain.ChartPoint{
		{Name: SerieCustosTotais, SemHolding: r.CenarioAtual.CustoTotal, ComHolding: r.CenarioHolding.CustoTotal},
		{Name: SerieImpostos, SemHolding: r.CenarioAtual.Impostos, ComHolding: r.CenarioHolding.Impostos},
		{Name: SerieRiscos, SemHolding: r.CenarioAtual.Riscos, ComHolding: r.CenarioHolding.Riscos},
	}
}

func KPIs(r domain.SimulationResult) []domain.KPI {
	return []domain.KPI{
		{Title: KPIEconomiaFiscal, Value: r.EconomiaFiscal, Suffix: "%"},
		{Title: KPIProtecaoPatrimonial, Value: r.ProtecaoPatrimonial, Suffix: "%"},
		{Title: KPISucessaoEficiente, Value: r.SucessaoEficiente, Suffix: "%"},
		{Title: KPIGovernancaFamiliar, Value: r.GovernancaFamiliar, Suffix: "%"},
	}
}
