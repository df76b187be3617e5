package report

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"holding-sim/domain"
)

// FormatBRL formats value as Brazilian reais, rounded to centavos.
func FormatBRL(value float64) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, money.BRL).Currency()
	cents := decimal.NewFromFloat(value).Shift(int32(cur.Fraction)).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return formatLargeBRL(cur, decimal.NewFromFloat(value))
	}
	return cur.Formatter().Format(cents.IntPart())
}

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// formatLargeBRL formats amounts whose centavos do not fit in an int64,
// following the layout of the currency formatter.
func formatLargeBRL(cur money.Currency, value decimal.Decimal) string {
	fixed := value.Abs().StringFixed(int32(cur.Fraction))
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(cur.Thousand)
		}
		b.WriteRune(d)
	}
	if frac != "" {
		b.WriteString(cur.Decimal)
		b.WriteString(frac)
	}

	s := strings.Replace(cur.Template, "1", b.String(), 1)
	s = strings.Replace(s, "$", cur.Grapheme, 1)
	if value.IsNegative() {
		s = "-" + s
	}
	return s
}

// FormatPercent formats value with two decimals and a comma separator.
func FormatPercent(value float64) string {
	s := decimal.NewFromFloat(value).StringFixed(2)
	return strings.Replace(s, ".", ",", 1) + "%"
}

var perfilLabels = map[string]string{
	domain.PerfilEmpresario: "Empresário",
	domain.PerfilSociedade:  "Sociedade",
	domain.PerfilMEI:        "MEI",
}

func PerfilLabel(perfil string) string {
	if l, ok := perfilLabels[perfil]; ok {
		return l
	}
	return perfil
}
