package services

import (
	apperrors "botfolio/internal/errors"
	"botfolio/internal/fixtures"
	"botfolio/internal/metrics"
	"botfolio/internal/models"
)

// Fixture catalog sources.
const (
	SourcePortfolio = "portfolio"
	SourceBot       = "bot"
)

// analyticsService derives chart statistics from the embedded fixture
// catalogs. It holds no mutable state.
type analyticsService struct {
	fixtures *fixtures.Catalog
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(fx *fixtures.Catalog) AnalyticsServicer {
	return &analyticsService{fixtures: fx}
}

func (s *analyticsService) resolve(source, id string) (fixtures.PortfolioData, error) {
	switch source {
	case SourcePortfolio:
		data, ok := s.fixtures.Portfolio(id)
		if !ok {
			return fixtures.PortfolioData{}, apperrors.ErrPortfolioNotFound
		}
		return data, nil
	case SourceBot:
		data, ok := s.fixtures.Bot(id)
		if !ok {
			return fixtures.PortfolioData{}, apperrors.ErrBotNotFound
		}
		return data, nil
	}
	return fixtures.PortfolioData{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown catalog source")
}

// EquitySummary returns the equity headline figures along with the raw curve.
func (s *analyticsService) EquitySummary(source, id string) (metrics.EquitySummary, []models.EquityPoint, error) {
	data, err := s.resolve(source, id)
	if err != nil {
		return metrics.EquitySummary{}, nil, err
	}
	return metrics.ComputeEquitySummary(data.EquityCurve), data.EquityCurve, nil
}

// DrawdownStats returns the drawdown headline figures along with the raw
// series, whichever document key carried it.
func (s *analyticsService) DrawdownStats(source, id string) (metrics.DrawdownStats, []models.DrawdownPoint, error) {
	data, err := s.resolve(source, id)
	if err != nil {
		return metrics.DrawdownStats{}, nil, err
	}
	series := data.Drawdowns()
	return metrics.ComputeDrawdownStats(series), series, nil
}

// MonthlyReturnStats returns the monthly-return summary and year pivot.
func (s *analyticsService) MonthlyReturnStats(source, id string) (metrics.MonthlyReturnStats, error) {
	data, err := s.resolve(source, id)
	if err != nil {
		return metrics.MonthlyReturnStats{}, err
	}
	return metrics.ComputeMonthlyReturnStats(data.MonthlyReturns), nil
}
