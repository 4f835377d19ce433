package metrics

import (
	"math"
	"testing"

	"botfolio/internal/models"
)

func dd(values ...float64) []models.DrawdownPoint {
	series := make([]models.DrawdownPoint, 0, len(values))
	for _, v := range values {
		series = append(series, models.DrawdownPoint{Drawdown: v})
	}
	return series
}

func TestComputeDrawdownStats(t *testing.T) {
	t.Run("empty_series", func(t *testing.T) {
		stats := ComputeDrawdownStats(nil)
		if stats.Max != 0 || stats.Average != 0 || stats.RecoveryDays != 0 || stats.Count != 0 {
			t.Errorf("expected zero stats for empty series, got %+v", stats)
		}
	})

	t.Run("max_at_least_average", func(t *testing.T) {
		stats := ComputeDrawdownStats(dd(-2.5, -8.1, 0, -4.4, -1.2))
		if stats.Max < stats.Average {
			t.Errorf("expected max >= average, got max=%f average=%f", stats.Max, stats.Average)
		}
		if stats.Average < 0 {
			t.Errorf("expected non-negative average, got %f", stats.Average)
		}
		if stats.Max != 8.1 {
			t.Errorf("expected max 8.1, got %f", stats.Max)
		}
		if stats.Count != 5 {
			t.Errorf("expected count 5, got %d", stats.Count)
		}
	})

	t.Run("sign_normalized", func(t *testing.T) {
		// Positive and negative inputs with the same magnitudes agree.
		neg := ComputeDrawdownStats(dd(-3, -6, -1.5))
		pos := ComputeDrawdownStats(dd(3, 6, 1.5))
		if neg.Max != pos.Max || neg.Average != pos.Average {
			t.Errorf("expected sign-normalized stats to match: %+v vs %+v", neg, pos)
		}
	})

	t.Run("single_recovery", func(t *testing.T) {
		// One crossing from above 1% to below 1%.
		stats := ComputeDrawdownStats(dd(-5, -0.5))
		if stats.RecoveryDays != 30 {
			t.Errorf("expected 30 recovery days, got %d", stats.RecoveryDays)
		}
	})

	t.Run("no_recovery_defaults", func(t *testing.T) {
		stats := ComputeDrawdownStats(dd(-5, -4, -3.5))
		if stats.RecoveryDays != 45 {
			t.Errorf("expected 45 recovery days when no crossing, got %d", stats.RecoveryDays)
		}
	})

	t.Run("single_point_no_estimate", func(t *testing.T) {
		stats := ComputeDrawdownStats(dd(-5))
		if stats.RecoveryDays != 0 {
			t.Errorf("expected 0 recovery days for single point, got %d", stats.RecoveryDays)
		}
	})
}

func mr(entries ...models.MonthlyReturn) []models.MonthlyReturn { return entries }

func TestComputeMonthlyReturnStats(t *testing.T) {
	t.Run("empty_series", func(t *testing.T) {
		stats := ComputeMonthlyReturnStats(nil)
		if stats.TotalMonths != 0 || stats.WinRate != 0 {
			t.Errorf("expected zero stats for empty series, got %+v", stats)
		}
		if math.IsNaN(stats.WinRate) || math.IsNaN(stats.AvgPositive) || math.IsNaN(stats.AvgNegative) {
			t.Error("expected no NaN values for empty series")
		}
		if stats.Years == nil {
			t.Error("expected empty (not nil) years slice")
		}
	})

	t.Run("partitions_and_averages", func(t *testing.T) {
		stats := ComputeMonthlyReturnStats(mr(
			models.MonthlyReturn{Year: 2023, Month: "Jan", Return: 4},
			models.MonthlyReturn{Year: 2023, Month: "Feb", Return: -2},
			models.MonthlyReturn{Year: 2023, Month: "Mar", Return: 6},
			models.MonthlyReturn{Year: 2023, Month: "Apr", Return: 0},
		))

		if stats.PositiveMonths != 2 || stats.NegativeMonths != 1 {
			t.Errorf("expected 2 positive / 1 negative, got %d/%d", stats.PositiveMonths, stats.NegativeMonths)
		}
		if stats.TotalMonths != 4 {
			t.Errorf("expected 4 total months, got %d", stats.TotalMonths)
		}
		if stats.WinRate != 50 {
			t.Errorf("expected 50%% win rate, got %f", stats.WinRate)
		}
		if stats.AvgPositive != 5 {
			t.Errorf("expected avg positive 5, got %f", stats.AvgPositive)
		}
		if stats.AvgNegative != -2 {
			t.Errorf("expected avg negative -2, got %f", stats.AvgNegative)
		}
		if stats.BestMonth != 6 || stats.WorstMonth != -2 {
			t.Errorf("expected best 6 / worst -2, got %f/%f", stats.BestMonth, stats.WorstMonth)
		}
	})

	t.Run("year_pivot", func(t *testing.T) {
		stats := ComputeMonthlyReturnStats(mr(
			models.MonthlyReturn{Year: 2024, Month: "Jan", Return: 2},
			models.MonthlyReturn{Year: 2023, Month: "Dec", Return: 3},
			models.MonthlyReturn{Year: 2023, Month: "Jan", Return: -1},
		))

		if len(stats.Years) != 2 {
			t.Fatalf("expected 2 year rows, got %d", len(stats.Years))
		}
		if stats.Years[0].Year != 2023 || stats.Years[1].Year != 2024 {
			t.Errorf("expected ascending years, got %d, %d", stats.Years[0].Year, stats.Years[1].Year)
		}

		row := stats.Years[0]
		if row.Total != 2 {
			t.Errorf("expected 2023 total 2, got %f", row.Total)
		}
		if row.Months["Feb"] != nil {
			t.Error("expected nil for month without data")
		}
		if row.Months["Dec"] == nil || *row.Months["Dec"] != 3 {
			t.Error("expected Dec 2023 = 3")
		}
	})

	t.Run("full_month_names_matched", func(t *testing.T) {
		stats := ComputeMonthlyReturnStats(mr(
			models.MonthlyReturn{Year: 2023, Month: "January", Return: 1.5},
		))
		row := stats.Years[0]
		if row.Months["Jan"] == nil || *row.Months["Jan"] != 1.5 {
			t.Error("expected full month name to match its abbreviation")
		}
	})

	t.Run("best_worst_cells", func(t *testing.T) {
		stats := ComputeMonthlyReturnStats(mr(
			models.MonthlyReturn{Year: 2023, Month: "Jan", Return: -4},
			models.MonthlyReturn{Year: 2023, Month: "Feb", Return: 9},
			models.MonthlyReturn{Year: 2024, Month: "Mar", Return: 1},
		))
		if stats.Best == nil || stats.Best.Month != "Feb" || stats.Best.Year != 2023 {
			t.Errorf("unexpected best cell: %+v", stats.Best)
		}
		if stats.Worst == nil || stats.Worst.Month != "Jan" || stats.Worst.Year != 2023 {
			t.Errorf("unexpected worst cell: %+v", stats.Worst)
		}
	})
}

func TestColorBucket(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	t.Run("no_data", func(t *testing.T) {
		b := ColorBucket(nil)
		if !b.NoData {
			t.Error("expected no-data bucket for nil input")
		}
	})

	t.Run("zero_keeps_loss_sign", func(t *testing.T) {
		b := ColorBucket(f(0))
		if b.Sign != -1 {
			t.Errorf("expected sign -1 for zero, got %d", b.Sign)
		}
		if b.Tier != 1 {
			t.Errorf("expected tier 1 for zero, got %d", b.Tier)
		}
	})

	t.Run("tier_thresholds", func(t *testing.T) {
		cases := []struct {
			value float64
			sign  int
			tier  int
		}{
			{value: 1.0, sign: 1, tier: 1},   // intensity 0.125
			{value: 3.2, sign: 1, tier: 2},   // intensity 0.4
			{value: -5.0, sign: -1, tier: 3}, // intensity 0.625
			{value: 7.0, sign: 1, tier: 4},   // intensity 0.875
			{value: -20.0, sign: -1, tier: 4},
		}
		for _, c := range cases {
			b := ColorBucket(f(c.value))
			if b.Sign != c.sign || b.Tier != c.tier {
				t.Errorf("value %f: expected sign=%d tier=%d, got sign=%d tier=%d",
					c.value, c.sign, c.tier, b.Sign, b.Tier)
			}
			if b.NoData {
				t.Errorf("value %f: unexpected no-data bucket", c.value)
			}
		}
	})
}

func eq(values ...float64) []models.EquityPoint {
	series := make([]models.EquityPoint, 0, len(values))
	for _, v := range values {
		series = append(series, models.EquityPoint{Equity: v})
	}
	return series
}

func TestComputeEquitySummary(t *testing.T) {
	t.Run("empty_series_falls_back", func(t *testing.T) {
		summary := ComputeEquitySummary(nil)
		if summary.Initial != 10000 || summary.Final != 10000 {
			t.Errorf("expected 10000 fallback, got %+v", summary)
		}
		if summary.TotalReturnPercent != 0 {
			t.Errorf("expected 0%% return, got %f", summary.TotalReturnPercent)
		}
	})

	t.Run("zero_endpoint_falls_back", func(t *testing.T) {
		summary := ComputeEquitySummary(eq(0, 12000))
		if summary.Initial != 10000 {
			t.Errorf("expected zero initial to fall back to 10000, got %f", summary.Initial)
		}
		if summary.TotalReturnPercent != 20 {
			t.Errorf("expected 20%% return, got %f", summary.TotalReturnPercent)
		}
	})

	t.Run("total_return", func(t *testing.T) {
		summary := ComputeEquitySummary(eq(10000, 11000, 10500, 13370))
		if summary.Initial != 10000 || summary.Final != 13370 {
			t.Errorf("unexpected endpoints: %+v", summary)
		}
		if summary.TotalReturnPercent != 33.7 {
			t.Errorf("expected 33.7%% return, got %f", summary.TotalReturnPercent)
		}
		if summary.Periods != 4 {
			t.Errorf("expected 4 periods, got %d", summary.Periods)
		}
	})
}
