package service

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"holding-sim/domain"
)

func keys(errs domain.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for k := range errs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestValidator_ValidInput(t *testing.T) {
	require.Empty(t, Validator{}.Validate(referenceInput()))
	require.Empty(t, Validator{Strict: true}.Validate(referenceInput()))
}

func TestValidator_EmptyEmpresas(t *testing.T) {
	in := referenceInput()
	in.Empresas = ""

	errs := Validator{}.Validate(in)

	require.Equal(t, domain.ValidationErrors{
		domain.FieldEmpresas: MsgEmpresasObrigatorio,
	}, errs)
}

func TestValidator_DefaultInput(t *testing.T) {
	errs := Validator{}.Validate(domain.DefaultSimulationInput())

	require.Equal(t, domain.ValidationErrors{
		domain.FieldPatrimonio:   MsgPatrimonioObrigatorio,
		domain.FieldEmpresas:     MsgEmpresasObrigatorio,
		domain.FieldHerdeiros:    MsgHerdeirosObrigatorio,
		domain.FieldImoveis:      MsgImoveisObrigatorio,
		domain.FieldValorMercado: MsgValorMercadoObrigatorio,
		domain.FieldValorVenal:   MsgValorVenalObrigatorio,
	}, errs)
}

// Every subset of blank required fields must be reported exactly.
func TestValidator_RequiredFieldCompleteness(t *testing.T) {
	fields := RequiredFields()
	require.Len(t, fields, 6)

	for mask := 1; mask < 1<<len(fields); mask++ {
		in := referenceInput()
		var blank []string
		for i, f := range fields {
			if mask&(1<<i) == 0 {
				continue
			}
			value := ""
			if i%2 == 0 {
				value = "  \t"
			}
			var ok bool
			in, ok = in.With(f, value)
			require.True(t, ok)
			blank = append(blank, f)
		}
		sort.Strings(blank)

		require.Equal(t, blank, keys(Validator{}.Validate(in)), "mask %b", mask)
	}
}

func TestValidator_PerfilNotRequired(t *testing.T) {
	in := referenceInput()
	in.Perfil = ""

	require.Empty(t, Validator{}.Validate(in))
}

func TestValidator_ReferenceModeAcceptsMalformedNumbers(t *testing.T) {
	in := referenceInput()
	in.Patrimonio = "muito dinheiro"
	in.Herdeiros = "-1"

	require.Empty(t, Validator{}.Validate(in))
}

func TestValidator_Strict(t *testing.T) {
	in := referenceInput()
	in.Patrimonio = "muito dinheiro"
	in.Herdeiros = "-1"
	in.Empresas = "1.5"
	in.ValorVenal = "NaN"
	in.Imoveis = ""
	in.Perfil = "autonomo"

	errs := Validator{Strict: true}.Validate(in)

	require.Equal(t, domain.ValidationErrors{
		domain.FieldPatrimonio: MsgNumeroInvalido,
		domain.FieldHerdeiros:  MsgNumeroNegativo,
		domain.FieldEmpresas:   MsgNumeroInvalido,
		domain.FieldValorVenal: MsgNumeroInvalido,
		domain.FieldImoveis:    MsgImoveisObrigatorio,
		domain.FieldPerfil:     MsgPerfilInvalido,
	}, errs)
}

func TestValidator_StrictAcceptsZero(t *testing.T) {
	in := domain.SimulationInput{
		Patrimonio: "0", Empresas: "0", Perfil: domain.PerfilMEI,
		Herdeiros: "0", Imoveis: "0", ValorMercado: "0", ValorVenal: "0",
	}

	require.Empty(t, Validator{Strict: true}.Validate(in))
}
