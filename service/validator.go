package service

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"holding-sim/domain"
)

type requiredField struct {
	name    string
	message string
	integer bool
}

var requiredFields = []requiredField{
	{domain.FieldPatrimonio, MsgPatrimonioObrigatorio, false},
	{domain.FieldEmpresas, MsgEmpresasObrigatorio, true},
	{domain.FieldHerdeiros, MsgHerdeirosObrigatorio, true},
	{domain.FieldImoveis, MsgImoveisObrigatorio, true},
	{domain.FieldValorMercado, MsgValorMercadoObrigatorio, false},
	{domain.FieldValorVenal, MsgValorVenalObrigatorio, false},
}

// RequiredFields returns the names of the fields that must be filled in.
func RequiredFields() []string {
	names := make([]string, len(requiredFields))
	for i, f := range requiredFields {
		names[i] = f.name
	}
	return names
}

// Validator checks a SimulationInput before it is simulated.
//
// By default only presence is checked: perfil always has a default and is
// skipped, every other field must be non-blank. With Strict set, non-blank
// values must also be non-negative numbers (whole numbers for counts) and
// perfil must be one of domain.Perfis.
type Validator struct {
	Strict bool
}

func (v Validator) Validate(in domain.SimulationInput) domain.ValidationErrors {
	errs := domain.ValidationErrors{}

	for _, f := range requiredFields {
		raw, _ := in.Get(f.name)
		value := strings.TrimSpace(raw)
		if value == "" {
			errs[f.name] = f.message
			continue
		}
		if !v.Strict {
			continue
		}
		if msg, ok := checkNumber(value, f.integer); !ok {
			errs[f.name] = msg
		}
	}

	if v.Strict && !slices.Contains(domain.Perfis, in.Perfil) {
		errs[domain.FieldPerfil] = MsgPerfilInvalido
	}

	return errs
}

func checkNumber(value string, integer bool) (string, bool) {
	var n float64
	if integer {
		i, err := strconv.Atoi(value)
		if err != nil {
			return MsgNumeroInvalido, false
		}
		n = float64(i)
	} else {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return MsgNumeroInvalido, false
		}
		n = f
	}
	if n < 0 {
		return MsgNumeroNegativo, false
	}
	return "", true
}
