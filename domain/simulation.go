package domain

// Campos do formulário de simulação.
const (
	FieldPatrimonio   = "patrimonio"
	FieldEmpresas     = "empresas"
	FieldPerfil       = "perfil"
	FieldHerdeiros    = "herdeiros"
	FieldImoveis      = "imoveis"
	FieldValorMercado = "valorMercado"
	FieldValorVenal   = "valorVenal"
)

const (
	PerfilEmpresario = "empresario"
	PerfilSociedade  = "sociedade"
	PerfilMEI        = "mei"

	DefaultPerfil = PerfilEmpresario
)

// Perfis lists the accepted values of SimulationInput.Perfil.
var Perfis = []string{PerfilEmpresario, PerfilSociedade, PerfilMEI}

// SimulationInput holds the raw values typed by the user. Every field is
// kept as text until it is validated and parsed.
type SimulationInput struct {
	Patrimonio   string `json:"patrimonio"`
	Empresas     string `json:"empresas"`
	Perfil       string `json:"perfil"`
	Herdeiros    string `json:"herdeiros"`
	Imoveis      string `json:"imoveis"`
	ValorMercado string `json:"valorMercado"`
	ValorVenal   string `json:"valorVenal"`
}

// DefaultSimulationInput returns an empty form with the default perfil.
func DefaultSimulationInput() SimulationInput {
	return SimulationInput{Perfil: DefaultPerfil}
}

// Get returns the raw value of field and whether the field exists.
func (in SimulationInput) Get(field string) (string, bool) {
	switch field {
	case FieldPatrimonio:
		return in.Patrimonio, true
	case FieldEmpresas:
		return in.Empresas, true
	case FieldPerfil:
		return in.Perfil, true
	case FieldHerdeiros:
		return in.Herdeiros, true
	case FieldImoveis:
		return in.Imoveis, true
	case FieldValorMercado:
		return in.ValorMercado, true
	case FieldValorVenal:
		return in.ValorVenal, true
	}
	return "", false
}

// With returns a copy of the input with field set to value. The second
// return value is false when field is not a known input field.
func (in SimulationInput) With(field, value string) (SimulationInput, bool) {
	switch field {
	case FieldPatrimonio:
		in.Patrimonio = value
	case FieldEmpresas:
		in.Empresas = value
	case FieldPerfil:
		in.Perfil = value
	case FieldHerdeiros:
		in.Herdeiros = value
	case FieldImoveis:
		in.Imoveis = value
	case FieldValorMercado:
		in.ValorMercado = value
	case FieldValorVenal:
		in.ValorVenal = value
	default:
		return in, false
	}
	return in, true
}

// ParsedInput is the numeric view of a SimulationInput. Values that could
// not be parsed are zero.
type ParsedInput struct {
	Patrimonio   float64
	Empresas     int
	Perfil       string
	Herdeiros    int
	Imoveis      int
	ValorMercado float64
	ValorVenal   float64
}

// ValidationErrors maps an input field to a human readable message. An
// empty map means the input is valid.
type ValidationErrors map[string]string

func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

// ScenarioMetrics is the projected cost of one scenario.
// CustoTotal is always Impostos + Riscos.
type ScenarioMetrics struct {
	CustoTotal float64 `json:"custoTotal"`
	Impostos   float64 `json:"impostos"`
	Riscos     float64 `json:"riscos"`
}

// SimulationResult compares the current patrimony against the same
// patrimony organised under a holding.
type SimulationResult struct {
	EconomiaFiscal      float64         `json:"economiaFiscal"`
	ProtecaoPatrimonial float64         `json:"protecaoPatrimonial"`
	SucessaoEficiente   float64         `json:"sucessaoEficiente"`
	GovernancaFamiliar  float64         `json:"governancaFamiliar"`
	CenarioAtual        ScenarioMetrics `json:"cenarioAtual"`
	CenarioHolding      ScenarioMetrics `json:"cenarioHolding"`
}
