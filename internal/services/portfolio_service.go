package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"botfolio/internal/docstore"
	apperrors "botfolio/internal/errors"
	"botfolio/internal/fixtures"
	"botfolio/internal/logger"
	"botfolio/internal/models"
	"botfolio/internal/uuid"
)

// Catalog price bounds, in EUR.
var (
	minPrice = decimal.Zero
	maxPrice = decimal.NewFromInt(10000)
)

// portfolioService handles the admin catalog stored under the "catalog"
// document. Every save triggers an automatic backup.
type portfolioService struct {
	store    docstore.Store
	logs     ActivityLogServicer
	backups  BackupServicer
	fixtures *fixtures.Catalog
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(store docstore.Store, logs ActivityLogServicer, backups BackupServicer, fx *fixtures.Catalog) PortfolioServicer {
	return &portfolioService{store: store, logs: logs, backups: backups, fixtures: fx}
}

// load reads the catalog document, seeding it from the embedded fixtures on
// first access. A corrupt document is cleared and reseeded.
func (s *portfolioService) load() ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	found, err := s.store.Get(docstore.KeyCatalog, &portfolios)
	if err != nil {
		if errors.Is(err, docstore.ErrCorrupt) {
			logger.Get().Warnw("catalog document corrupt, reseeding", "error", err.Error())
			if delErr := s.store.Delete(docstore.KeyCatalog); delErr != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, delErr)
			}
			found = false
		} else {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if found {
		return portfolios, nil
	}

	portfolios = s.seed()
	if err := s.store.Put(docstore.KeyCatalog, portfolios); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolios, nil
}

// seedDefaults carries the catalog fields the fixture documents don't:
// the marketing tier and list price for the known fixture IDs.
var seedDefaults = map[string]struct {
	tier  models.Tier
	price int64
}{
	"elite_premium": {tier: models.TierElitePremium, price: 4999},
	"professional":  {tier: models.TierProfessional, price: 2999},
}

// seed builds the initial catalog from the embedded portfolio fixtures.
func (s *portfolioService) seed() []models.Portfolio {
	now := time.Now()
	portfolios := make([]models.Portfolio, 0)
	for _, id := range s.fixtures.PortfolioIDs() {
		data, _ := s.fixtures.Portfolio(id)
		tier, price := models.TierPremium, int64(1999)
		if d, ok := seedDefaults[id]; ok {
			tier, price = d.tier, d.price
		}
		portfolios = append(portfolios, models.Portfolio{
			ID:          id,
			Name:        data.Name,
			Description: fmt.Sprintf("%s automated trading portfolio with a verified multi-year track record.", data.Name),
			Price:       decimal.NewFromInt(price),
			Tier:        tier,
			Category:    "portfolio",
			Metrics: models.MetricSet{
				NetProfit:          data.Metrics.NetProfit,
				SharpeRatio:        data.Metrics.SharpeRatio,
				CAGRPercent:        data.Metrics.CAGR,
				MaxDrawdownPercent: data.Metrics.MaxDrawdown,
				TotalTrades:        data.Metrics.TotalTrades,
				WinRatePercent:     data.Metrics.WinningRate,
				ProfitFactor:       data.Metrics.ProfitFactor,
				CalmarRatio:        data.Metrics.CalmarRatio,
			},
			DataPoints: models.DataPointCounts{
				Equity:   len(data.EquityCurve),
				Monthly:  len(data.MonthlyReturns),
				Drawdown: len(data.Drawdowns()),
			},
			CreatedAt:    now,
			LastModified: now,
		})
	}
	return portfolios
}

// save rewrites the catalog document and takes the automatic backup every
// catalog save carries.
func (s *portfolioService) save(portfolios []models.Portfolio, actor string) error {
	if err := s.store.Put(docstore.KeyCatalog, portfolios); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if _, err := s.backups.Create(actor, models.BackupAutomatic); err != nil {
		return err
	}
	return nil
}

// List returns the full catalog.
func (s *portfolioService) List() ([]models.Portfolio, error) {
	return s.load()
}

// Get returns a catalog entry by ID.
func (s *portfolioService) Get(id string) (*models.Portfolio, error) {
	portfolios, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range portfolios {
		if portfolios[i].ID == id {
			return &portfolios[i], nil
		}
	}
	return nil, apperrors.ErrPortfolioNotFound
}

// Create validates and appends a new catalog entry.
func (s *portfolioService) Create(input PortfolioInput, actor string) (*models.Portfolio, error) {
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if err := validateTier(input.Tier); err != nil {
		return nil, err
	}
	if err := validateMetrics(input.Metrics); err != nil {
		return nil, err
	}

	portfolios, err := s.load()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	portfolio := models.Portfolio{
		ID:           uuid.New(),
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Tier:         input.Tier,
		Category:     input.Category,
		Metrics:      input.Metrics,
		CreatedAt:    now,
		LastModified: now,
	}

	portfolios = append(portfolios, portfolio)
	if err := s.save(portfolios, actor); err != nil {
		return nil, err
	}

	if _, err := s.logs.Append(actor, models.ActionCreate, fmt.Sprintf("Created portfolio: %s", portfolio.Name)); err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// UpdateField applies a single field-level edit and bumps last_modified.
func (s *portfolioService) UpdateField(id, field string, value any, actor string) (*models.Portfolio, error) {
	portfolios, err := s.load()
	if err != nil {
		return nil, err
	}

	idx := indexOf(portfolios, id)
	if idx < 0 {
		return nil, apperrors.ErrPortfolioNotFound
	}
	p := &portfolios[idx]

	switch field {
	case "name":
		name, ok := value.(string)
		if !ok || name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name must be a non-empty string")
		}
		p.Name = name
	case "description":
		desc, ok := value.(string)
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Description must be a string")
		}
		if err := validateDescription(desc); err != nil {
			return nil, err
		}
		p.Description = desc
	case "price":
		price, err := toDecimal(value)
		if err != nil {
			return nil, err
		}
		if err := validatePrice(price); err != nil {
			return nil, err
		}
		p.Price = price
	case "tier":
		tier, ok := value.(string)
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Tier must be a string")
		}
		if err := validateTier(models.Tier(tier)); err != nil {
			return nil, err
		}
		p.Tier = models.Tier(tier)
	case "category":
		category, ok := value.(string)
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category must be a string")
		}
		p.Category = category
	default:
		return nil, apperrors.ErrUnknownField
	}

	p.LastModified = time.Now()
	if err := s.save(portfolios, actor); err != nil {
		return nil, err
	}

	if _, err := s.logs.Append(actor, models.ActionEdit, fmt.Sprintf("Updated %s for portfolio: %s", field, p.Name)); err != nil {
		return nil, err
	}
	return p, nil
}

// metricRange bounds one editable metric.
type metricRange struct {
	min, max float64
}

var metricRanges = map[string]metricRange{
	"sharpe_ratio":  {min: 0, max: 20},
	"cagr":          {min: -100, max: 1000},
	"max_drawdown":  {min: 0, max: 100},
	"win_rate":      {min: 0, max: 100},
	"total_trades":  {min: 0, max: 10_000_000},
	"net_profit":    {min: -100_000_000, max: 100_000_000},
	"profit_factor": {min: 0, max: 100},
	"calmar_ratio":  {min: 0, max: 100},
}

// UpdateMetric applies a single metric-level edit, range-checked.
func (s *portfolioService) UpdateMetric(id, metric string, value float64, actor string) (*models.Portfolio, error) {
	bounds, ok := metricRanges[metric]
	if !ok {
		return nil, apperrors.ErrUnknownField
	}
	if value < bounds.min || value > bounds.max {
		return nil, apperrors.WithMessage(apperrors.ErrMetricOutOfRange,
			fmt.Sprintf("%s must be between %g and %g", metric, bounds.min, bounds.max))
	}

	portfolios, err := s.load()
	if err != nil {
		return nil, err
	}

	idx := indexOf(portfolios, id)
	if idx < 0 {
		return nil, apperrors.ErrPortfolioNotFound
	}
	p := &portfolios[idx]

	switch metric {
	case "net_profit":
		p.Metrics.NetProfit = decimal.NewFromFloat(value)
	case "sharpe_ratio":
		p.Metrics.SharpeRatio = value
	case "cagr":
		p.Metrics.CAGRPercent = value
	case "max_drawdown":
		p.Metrics.MaxDrawdownPercent = value
	case "total_trades":
		p.Metrics.TotalTrades = int(value)
	case "win_rate":
		p.Metrics.WinRatePercent = value
	case "profit_factor":
		p.Metrics.ProfitFactor = value
	case "calmar_ratio":
		p.Metrics.CalmarRatio = value
	}

	p.LastModified = time.Now()
	if err := s.save(portfolios, actor); err != nil {
		return nil, err
	}

	if _, err := s.logs.Append(actor, models.ActionEdit, fmt.Sprintf("Updated %s for portfolio: %s", metric, p.Name)); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a catalog entry.
func (s *portfolioService) Delete(id string, actor string) error {
	portfolios, err := s.load()
	if err != nil {
		return err
	}

	idx := indexOf(portfolios, id)
	if idx < 0 {
		return apperrors.ErrPortfolioNotFound
	}
	name := portfolios[idx].Name

	portfolios = append(portfolios[:idx], portfolios[idx+1:]...)
	if err := s.save(portfolios, actor); err != nil {
		return err
	}

	_, err = s.logs.Append(actor, models.ActionDelete, fmt.Sprintf("Deleted portfolio: %s", name))
	return err
}

// Dashboard aggregates the catalog for the admin dashboard header.
func (s *portfolioService) Dashboard() (DashboardStats, error) {
	portfolios, err := s.load()
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		TotalPortfolios: len(portfolios),
		AveragePrice:    decimal.Zero,
	}

	sum := decimal.Zero
	for _, p := range portfolios {
		sum = sum.Add(p.Price)
		if p.Tier == models.TierElitePremium {
			stats.EliteCount++
		}
		stats.TotalDataPoints += p.DataPoints.Equity + p.DataPoints.Monthly + p.DataPoints.Drawdown
	}
	if len(portfolios) > 0 {
		stats.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(portfolios)))).Round(2)
	}
	return stats, nil
}

func indexOf(portfolios []models.Portfolio, id string) int {
	for i := range portfolios {
		if portfolios[i].ID == id {
			return i
		}
	}
	return -1
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price must be a number")
		}
		return d, nil
	default:
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price must be a number")
	}
}

func validatePrice(price decimal.Decimal) error {
	if !price.GreaterThan(minPrice) || price.GreaterThan(maxPrice) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Price must be greater than 0 and at most 10000")
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) < 10 || len(description) > 500 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Description must be between 10 and 500 characters")
	}
	return nil
}

func validateTier(tier models.Tier) error {
	switch tier {
	case models.TierPremium, models.TierElitePremium, models.TierProfessional, models.TierInstitutional:
		return nil
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid tier")
}

func validateMetrics(m models.MetricSet) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"sharpe_ratio", m.SharpeRatio},
		{"cagr", m.CAGRPercent},
		{"max_drawdown", m.MaxDrawdownPercent},
		{"win_rate", m.WinRatePercent},
	}
	for _, c := range checks {
		bounds := metricRanges[c.name]
		if c.value < bounds.min || c.value > bounds.max {
			return apperrors.WithMessage(apperrors.ErrMetricOutOfRange,
				fmt.Sprintf("%s must be between %g and %g", c.name, bounds.min, bounds.max))
		}
	}
	return nil
}
