package service

import "holding-sim/domain"

// Calculate projects the current and holding scenarios for in. It never
// fails: values that do not parse count as zero. The input is expected to
// have passed Validator.Validate.
func Calculate(in domain.SimulationInput) domain.SimulationResult {
	return CalculateParsed(ParseInput(in))
}

func CalculateParsed(p domain.ParsedInput) domain.SimulationResult {
	atual := scenario(p.Patrimonio, TaxRateAtual, RiskRateAtual)
	holding := scenario(p.Patrimonio, TaxRateHolding, RiskRateHolding)

	sucessao := SucessaoSemHerdeiros
	if p.Herdeiros > 0 {
		sucessao = SucessaoComHerdeiros
	}
	governanca := GovernancaBase
	if p.Empresas > 1 {
		governanca = GovernancaMultiEmpresas
	}

	return domain.SimulationResult{
		EconomiaFiscal:      reduction(atual.Impostos, holding.Impostos),
		ProtecaoPatrimonial: reduction(atual.Riscos, holding.Riscos),
		SucessaoEficiente:   sucessao,
		GovernancaFamiliar:  governanca,
		CenarioAtual:        atual,
		CenarioHolding:      holding,
	}
}

func scenario(patrimonio, taxRate, riskRate float64) domain.ScenarioMetrics {
	impostos := patrimonio * taxRate
	riscos := patrimonio * riskRate
	return domain.ScenarioMetrics{
		CustoTotal: impostos + riscos,
		Impostos:   impostos,
		Riscos:     riscos,
	}
}

// reduction is the percentage drop from before to after. A zero baseline
// has nothing to reduce and yields 0.
func reduction(before, after float64) float64 {
	if before == 0 {
		return 0
	}
	return (before - after) / before * 100
}
