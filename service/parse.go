package service

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"

	"holding-sim/domain"
)

// ParseInput converts the raw form values to numbers. A value that has no
// leading number, or is empty, becomes zero; trailing characters after the
// leading number are ignored ("12abc" is 12, "2.9" as an integer is 2).
func ParseInput(in domain.SimulationInput) domain.ParsedInput {
	return domain.ParsedInput{
		Patrimonio:   ParseFloatOrZero(in.Patrimonio),
		Empresas:     ParseIntOrZero(in.Empresas),
		Perfil:       in.Perfil,
		Herdeiros:    ParseIntOrZero(in.Herdeiros),
		Imoveis:      ParseIntOrZero(in.Imoveis),
		ValorMercado: ParseFloatOrZero(in.ValorMercado),
		ValorVenal:   ParseFloatOrZero(in.ValorVenal),
	}
}

func ParseFloatOrZero(s string) float64 {
	prefix := numericPrefix(s, true)
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v == 0 {
		// normalise -0
		return 0
	}
	return v
}

// ParseIntOrZero parses the leading integer of s. Values beyond the int
// range saturate at math.MaxInt or math.MinInt instead of turning into zero.
func ParseIntOrZero(s string) int {
	prefix := numericPrefix(s, false)
	if prefix == "" {
		return 0
	}
	v, err := strconv.Atoi(prefix)
	switch {
	case errors.Is(err, strconv.ErrRange):
		if prefix[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	case err != nil:
		return 0
	}
	return v
}

// numericPrefix returns the longest leading substring of s (after leading
// whitespace) that is a number. With decimal set, a fraction and an
// exponent are accepted.
func numericPrefix(s string, decimal bool) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if !decimal {
		if digits == 0 {
			return ""
		}
		return s[:i]
	}

	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			end = j
		}
	}
	return s[:end]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
