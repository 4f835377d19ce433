package models

import "time"

// ExtractedReport is the result of the simulated PDF report extraction.
// Values are produced by a seedable generator; nothing is parsed from the
// uploaded file beyond its name.
type ExtractedReport struct {
	PortfolioName  string          `json:"portfolio_name"`
	Metrics        MetricSet       `json:"metrics"`
	EquityCurve    []EquityPoint   `json:"equity_curve"`
	MonthlyReturns []MonthlyReturn `json:"monthly_returns"`
	DrawdownCurve  []DrawdownPoint `json:"drawdown_curve"`
	Instruments    []string        `json:"instruments"`
	Timeframe      string          `json:"timeframe"`
	Period         string          `json:"period"`
	ExtractionDate time.Time       `json:"extraction_date"`
	Confidence     int             `json:"confidence"`
}
