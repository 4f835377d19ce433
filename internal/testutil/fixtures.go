package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"botfolio/internal/docstore"
	"botfolio/internal/fixtures"
	"botfolio/internal/models"
)

// MustPut writes a document, failing the test on error.
func MustPut(t *testing.T, store docstore.Store, key string, doc any) {
	t.Helper()
	if err := store.Put(key, doc); err != nil {
		t.Fatalf("failed to put document %q: %v", key, err)
	}
}

// LoadFixtures parses the embedded fixture catalogs.
func LoadFixtures(t *testing.T) *fixtures.Catalog {
	t.Helper()
	catalog, err := fixtures.Load()
	if err != nil {
		t.Fatalf("failed to load fixture catalogs: %v", err)
	}
	return catalog
}

// NewTestSession returns an admin session for attribution in tests.
func NewTestSession() *models.Session {
	return &models.Session{
		Username:    "admin",
		DisplayName: "Administrator",
		Role:        models.RoleAdmin,
		LoginTime:   time.Now(),
	}
}

// NewTestPortfolio returns a valid catalog entry with a unique ID.
func NewTestPortfolio() models.Portfolio {
	n := counter.Add(1)
	now := time.Now()
	return models.Portfolio{
		ID:          fmt.Sprintf("test_portfolio_%d", n),
		Name:        fmt.Sprintf("Test Portfolio %d", n),
		Description: "A diversified automated trading portfolio used in tests.",
		Price:       decimal.NewFromInt(2999),
		Tier:        models.TierPremium,
		Category:    "portfolio",
		Metrics: models.MetricSet{
			NetProfit:          decimal.NewFromInt(125000),
			SharpeRatio:        4.2,
			CAGRPercent:        31.5,
			MaxDrawdownPercent: 8.1,
			TotalTrades:        18250,
			WinRatePercent:     61.3,
			ProfitFactor:       2.1,
			CalmarRatio:        11.4,
		},
		DataPoints: models.DataPointCounts{
			Equity:   16,
			Monthly:  16,
			Drawdown: 16,
		},
		CreatedAt:    now,
		LastModified: now,
	}
}

// SeedCatalog writes n test portfolios to the catalog document and returns
// them.
func SeedCatalog(t *testing.T, store docstore.Store, n int) []models.Portfolio {
	t.Helper()
	portfolios := make([]models.Portfolio, 0, n)
	for i := 0; i < n; i++ {
		portfolios = append(portfolios, NewTestPortfolio())
	}
	MustPut(t, store, docstore.KeyCatalog, portfolios)
	return portfolios
}
