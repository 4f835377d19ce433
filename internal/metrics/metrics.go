// Package metrics derives summary statistics from portfolio time series.
// Every function is pure and total: no input, including the empty series,
// produces a panic, a NaN, or an infinity. Rendering layers rely on that.
package metrics

import (
	"math"
	"sort"
	"strings"

	"botfolio/internal/models"
)

// fallbackEquity is assumed when an equity curve is empty or starts at zero.
const fallbackEquity = 10000

// referenceReturnPct is the magnitude at which heatmap color intensity
// saturates.
const referenceReturnPct = 8.0

// DrawdownStats summarizes a drawdown curve.
type DrawdownStats struct {
	Max          float64 `json:"max_drawdown"`
	Average      float64 `json:"avg_drawdown"`
	RecoveryDays int     `json:"recovery_days"`
	Count        int     `json:"total_periods"`
}

// ComputeDrawdownStats reduces a drawdown series to its headline figures.
// Values are sign-normalized to magnitudes first.
//
// RecoveryDays uses a fixed 30-day estimate per detected recovery (a crossing
// from above 1% to below 1% between consecutive points) and defaults to 45
// when no crossing is seen. This deliberately reproduces the coarse heuristic
// of the reporting front end instead of true date-interval math, so both
// surfaces show the same number.
func ComputeDrawdownStats(series []models.DrawdownPoint) DrawdownStats {
	if len(series) == 0 {
		return DrawdownStats{}
	}

	var sum, max float64
	for _, p := range series {
		m := p.Magnitude()
		sum += m
		if m > max {
			max = m
		}
	}

	stats := DrawdownStats{
		Max:     round2(max),
		Average: round2(sum / float64(len(series))),
		Count:   len(series),
	}

	if len(series) < 2 {
		return stats
	}

	totalDays, periods := 0, 0
	for i := 0; i < len(series)-1; i++ {
		if series[i].Magnitude() > 1 && series[i+1].Magnitude() < 1 {
			periods++
			totalDays += 30
		}
	}
	if periods > 0 {
		stats.RecoveryDays = int(math.Round(float64(totalDays) / float64(periods)))
	} else {
		stats.RecoveryDays = 45
	}
	return stats
}

// monthAbbrevs orders the pivot columns. Fixture month names are matched
// case-insensitively against these three-letter prefixes.
var monthAbbrevs = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthCell identifies a single (month, year) return.
type MonthCell struct {
	Month  string  `json:"month"`
	Year   int     `json:"year"`
	Return float64 `json:"return"`
}

// YearRow is one row of the heatmap pivot: returns keyed by month
// abbreviation (nil for months without data) plus the year total.
type YearRow struct {
	Year   int                 `json:"year"`
	Months map[string]*float64 `json:"months"`
	Total  float64             `json:"total"`
}

// MonthlyReturnStats summarizes a monthly-return series.
type MonthlyReturnStats struct {
	TotalMonths    int        `json:"total_months"`
	PositiveMonths int        `json:"positive_months"`
	NegativeMonths int        `json:"negative_months"`
	WinRate        float64    `json:"win_rate"`
	AvgPositive    float64    `json:"avg_positive"`
	AvgNegative    float64    `json:"avg_negative"`
	BestMonth      float64    `json:"best_month"`
	WorstMonth     float64    `json:"worst_month"`
	Best           *MonthCell `json:"best,omitempty"`
	Worst          *MonthCell `json:"worst,omitempty"`
	Years          []YearRow  `json:"years"`
}

// ComputeMonthlyReturnStats partitions a monthly-return series into positive
// and negative months and builds the year-by-month pivot. An empty series
// yields zeros throughout, never NaN.
func ComputeMonthlyReturnStats(series []models.MonthlyReturn) MonthlyReturnStats {
	stats := MonthlyReturnStats{Years: []YearRow{}}
	if len(series) == 0 {
		return stats
	}

	var posSum, negSum float64
	best, worst := series[0].Return, series[0].Return
	for _, r := range series {
		switch {
		case r.Return > 0:
			stats.PositiveMonths++
			posSum += r.Return
		case r.Return < 0:
			stats.NegativeMonths++
			negSum += r.Return
		}
		if r.Return > best {
			best = r.Return
		}
		if r.Return < worst {
			worst = r.Return
		}
	}

	stats.TotalMonths = len(series)
	stats.WinRate = round1(float64(stats.PositiveMonths) / float64(len(series)) * 100)
	if stats.PositiveMonths > 0 {
		stats.AvgPositive = round2(posSum / float64(stats.PositiveMonths))
	}
	if stats.NegativeMonths > 0 {
		stats.AvgNegative = round2(negSum / float64(stats.NegativeMonths))
	}
	stats.BestMonth = round2(best)
	stats.WorstMonth = round2(worst)

	stats.Years = pivotByYear(series)
	stats.Best, stats.Worst = bestWorstCells(stats.Years)
	return stats
}

func pivotByYear(series []models.MonthlyReturn) []YearRow {
	yearSet := map[int]bool{}
	for _, r := range series {
		yearSet[r.Year] = true
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	rows := make([]YearRow, 0, len(years))
	for _, year := range years {
		row := YearRow{Year: year, Months: make(map[string]*float64, len(monthAbbrevs))}
		populated := 0
		for _, abbrev := range monthAbbrevs {
			if v, ok := findMonth(series, year, abbrev); ok {
				val := v
				row.Months[abbrev] = &val
				row.Total += v
				populated++
			} else {
				row.Months[abbrev] = nil
			}
		}
		// Years with no populated months report total 0, not null.
		if populated == 0 {
			row.Total = 0
		}
		rows = append(rows, row)
	}
	return rows
}

func findMonth(series []models.MonthlyReturn, year int, abbrev string) (float64, bool) {
	needle := strings.ToLower(abbrev)
	for _, r := range series {
		if r.Year == year && strings.Contains(strings.ToLower(r.Month), needle) {
			return r.Return, true
		}
	}
	return 0, false
}

func bestWorstCells(rows []YearRow) (best, worst *MonthCell) {
	for _, row := range rows {
		for _, abbrev := range monthAbbrevs {
			v := row.Months[abbrev]
			if v == nil {
				continue
			}
			cell := MonthCell{Month: abbrev, Year: row.Year, Return: *v}
			if best == nil || cell.Return > best.Return {
				c := cell
				best = &c
			}
			if worst == nil || cell.Return < worst.Return {
				c := cell
				worst = &c
			}
		}
	}
	return best, worst
}

// Bucket is a presentation color bucket for one heatmap cell: a sign and a
// four-level intensity tier, or the distinct no-data bucket.
type Bucket struct {
	Sign   int  `json:"sign"`
	Tier   int  `json:"tier"`
	NoData bool `json:"no_data,omitempty"`
}

// ColorBucket maps a signed percentage to its heatmap bucket. Intensity is
// normalized against an 8% reference magnitude with tier thresholds at
// 0.3/0.6/0.8. Zero keeps the loss sign, matching the rendered heatmap.
// Nil input yields the no-data bucket.
func ColorBucket(value *float64) Bucket {
	if value == nil {
		return Bucket{NoData: true}
	}

	intensity := math.Min(math.Abs(*value)/referenceReturnPct, 1)
	tier := 4
	switch {
	case intensity < 0.3:
		tier = 1
	case intensity < 0.6:
		tier = 2
	case intensity < 0.8:
		tier = 3
	}

	sign := -1
	if *value > 0 {
		sign = 1
	}
	return Bucket{Sign: sign, Tier: tier}
}

// EquitySummary summarizes an equity curve.
type EquitySummary struct {
	Initial            float64 `json:"initial_value"`
	Final              float64 `json:"final_value"`
	TotalReturnPercent float64 `json:"total_return"`
	Periods            int     `json:"periods"`
}

// ComputeEquitySummary reduces an equity curve to initial value, final value,
// and total return. An empty curve (or a zero-valued endpoint) falls back to
// the 10000 starting balance the demo fixtures assume.
func ComputeEquitySummary(series []models.EquityPoint) EquitySummary {
	summary := EquitySummary{Initial: fallbackEquity, Final: fallbackEquity, Periods: len(series)}
	if len(series) > 0 {
		if v := series[0].Equity; v != 0 {
			summary.Initial = v
		}
		if v := series[len(series)-1].Equity; v != 0 {
			summary.Final = v
		}
	}
	summary.TotalReturnPercent = round1((summary.Final - summary.Initial) / summary.Initial * 100)
	return summary
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
