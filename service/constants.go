package service

const (
	// Coeficientes do modelo de custos, sobre o patrimônio total
	TaxRateAtual    = 0.08
	RiskRateAtual   = 0.15
	TaxRateHolding  = 0.03
	RiskRateHolding = 0.05

	SucessaoComHerdeiros = 95.0
	SucessaoSemHerdeiros = 0.0

	GovernancaMultiEmpresas = 90.0 // mais de uma empresa
	GovernancaBase          = 70.0

	// Máximo de registros devolvidos pelo histórico
	MaxHistoryRecords = 100
)

// Mensagens de validação por campo.
const (
	MsgPatrimonioObrigatorio   = "Patrimônio total é obrigatório"
	MsgEmpresasObrigatorio     = "Número de empresas é obrigatório"
	MsgHerdeirosObrigatorio    = "Número de herdeiros é obrigatório"
	MsgImoveisObrigatorio      = "Número de imóveis é obrigatório"
	MsgValorMercadoObrigatorio = "Valor de mercado é obrigatório"
	MsgValorVenalObrigatorio   = "Valor venal é obrigatório"

	MsgNumeroInvalido = "Informe um número válido"
	MsgNumeroNegativo = "O valor não pode ser negativo"
	MsgPerfilInvalido = "Perfil inválido"
)
