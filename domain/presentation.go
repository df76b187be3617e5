package domain

// ChartPoint is one x-axis entry of the comparison line chart.
type ChartPoint struct {
	Name       string  `json:"name"`
	SemHolding float64 `json:"semHolding"`
	ComHolding float64 `json:"comHolding"`
}

// KPI is a single indicator card.
type KPI struct {
	Title  string  `json:"title"`
	Value  float64 `json:"value"`
	Suffix string  `json:"suffix,omitempty"`
}

// Insight is a short analysis derived from a simulation.
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type InsightReport struct {
	Items       []Insight `json:"items"`
	Explanation string    `json:"explanation,omitempty"` // narrativa gerada por IA, quando disponível
}
