package fixtures

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"botfolio/internal/models"
)

// reportInstruments is the instrument list every extracted report claims.
var reportInstruments = []string{"EURUSD", "GBPUSD", "XAUUSD", "NASDAQ", "DAX"}

// Generator produces demo performance data for the simulated report
// extraction. It is seeded so extraction output is reproducible in tests;
// randomness never reaches the aggregation functions.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator seeded with the given value.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Report fabricates a full extraction result: a named portfolio with metrics,
// an 84-month equity curve, monthly returns for 2018-2024, and a decaying
// drawdown curve.
func (g *Generator) Report(now time.Time) models.ExtractedReport {
	return models.ExtractedReport{
		PortfolioName:  fmt.Sprintf("Portfolio %d", g.rng.Intn(100)+1),
		Metrics:        g.metrics(),
		EquityCurve:    g.equityCurve(),
		MonthlyReturns: g.monthlyReturns(),
		DrawdownCurve:  g.drawdownCurve(),
		Instruments:    reportInstruments,
		Timeframe:      "M15",
		Period:         "2018-2024",
		ExtractionDate: now,
		Confidence:     g.rng.Intn(20) + 80,
	}
}

func (g *Generator) metrics() models.MetricSet {
	return models.MetricSet{
		NetProfit:          decimal.NewFromInt(int64(g.rng.Intn(500000) + 100000)),
		TotalTrades:        g.rng.Intn(50000) + 10000,
		WinRatePercent:     roundTo(g.rng.Float64()*30+45, 1),
		SharpeRatio:        roundTo(g.rng.Float64()*5+3, 2),
		MaxDrawdownPercent: roundTo(g.rng.Float64()*10+5, 2),
		CAGRPercent:        roundTo(g.rng.Float64()*40+20, 1),
		ProfitFactor:       roundTo(g.rng.Float64()*2+1.5, 2),
		CalmarRatio:        roundTo(g.rng.Float64()*20+10, 1),
	}
}

// equityCurve compounds a 10000 starting balance by 2-12% per month over
// seven years of month labels.
func (g *Generator) equityCurve() []models.EquityPoint {
	points := make([]models.EquityPoint, 0, 84)
	value := 10000.0
	for i := 0; i < 84; i++ {
		growth := g.rng.Float64()*0.1 + 0.02
		value *= 1 + growth
		points = append(points, models.EquityPoint{
			Date:   monthLabel(i),
			Equity: math.Round(value),
		})
	}
	return points
}

func (g *Generator) monthlyReturns() []models.MonthlyReturn {
	returns := make([]models.MonthlyReturn, 0, 84)
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	for year := 2018; year <= 2024; year++ {
		for _, month := range months {
			returns = append(returns, models.MonthlyReturn{
				Year:   year,
				Month:  month,
				Return: roundTo(g.rng.Float64()*15-2.5, 1),
			})
		}
	}
	return returns
}

// drawdownCurve simulates drawdown periods: a 10% chance per month of a new
// drawdown up to -15%, followed by gradual recovery (20% decay per month,
// snapping to zero above -0.5%).
func (g *Generator) drawdownCurve() []models.DrawdownPoint {
	points := make([]models.DrawdownPoint, 0, 84)
	current := 0.0
	for i := 0; i < 84; i++ {
		if g.rng.Float64() < 0.1 {
			current = g.rng.Float64() * -15
		} else if current < 0 {
			current *= 0.8
			if current > -0.5 {
				current = 0
			}
		}
		points = append(points, models.DrawdownPoint{
			Date:     monthLabel(i),
			Drawdown: roundTo(current, 2),
		})
	}
	return points
}

func monthLabel(offset int) string {
	return time.Date(2018, time.January+time.Month(offset), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
