package models

// EquityPoint is one sample of a cumulative equity curve. Dates are coarse
// calendar labels ("2021-03") taken verbatim from the fixture documents.
type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
}

// DrawdownPoint is one sample of a drawdown curve. Fixtures store drawdowns
// as signed percentage losses (≤ 0); consumers normalize to magnitude.
type DrawdownPoint struct {
	Date     string  `json:"date"`
	Drawdown float64 `json:"drawdown"`
}

// Magnitude returns the absolute drawdown percentage.
func (p DrawdownPoint) Magnitude() float64 {
	if p.Drawdown < 0 {
		return -p.Drawdown
	}
	return p.Drawdown
}

// MonthlyReturn is the realized return of a single (year, month) cell.
// Month is an English month name or three-letter abbreviation.
type MonthlyReturn struct {
	Year   int     `json:"year"`
	Month  string  `json:"month"`
	Return float64 `json:"return"`
}
