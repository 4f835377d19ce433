// Package fixtures holds the read-only performance catalogs the marketing
// site renders: pre-packaged portfolios and individual bots, each with an
// equity curve, monthly returns, a drawdown curve, and headline metrics.
// The documents are embedded at build time and never written.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"botfolio/internal/models"
)

//go:embed data/portfolios.json
var portfolioData []byte

//go:embed data/bots.json
var botData []byte

// Metrics is the headline metric block of one fixture entry.
type Metrics struct {
	NetProfit    decimal.Decimal `json:"net_profit"`
	SharpeRatio  float64         `json:"sharpe_ratio"`
	CAGR         float64         `json:"cagr"`
	MaxDrawdown  float64         `json:"max_drawdown"`
	TotalTrades  int             `json:"total_trades"`
	WinningRate  float64         `json:"winning_rate"`
	ProfitFactor float64         `json:"profit_factor"`
	CalmarRatio  float64         `json:"calmar_ratio"`
	FactorK      float64         `json:"factor_k"`
}

// PortfolioData is one fixture entry. Older documents store the drawdown
// series under drawdown_data instead of drawdown_curve; both are accepted.
type PortfolioData struct {
	Name           string                 `json:"name"`
	EquityCurve    []models.EquityPoint   `json:"equity_curve"`
	MonthlyReturns []models.MonthlyReturn `json:"monthly_returns"`
	DrawdownCurve  []models.DrawdownPoint `json:"drawdown_curve"`
	DrawdownData   []models.DrawdownPoint `json:"drawdown_data"`
	Metrics        Metrics                `json:"metrics"`
}

// Drawdowns returns the drawdown series regardless of which key carried it.
func (p PortfolioData) Drawdowns() []models.DrawdownPoint {
	if len(p.DrawdownCurve) > 0 {
		return p.DrawdownCurve
	}
	return p.DrawdownData
}

// Catalog is the loaded set of fixture documents.
type Catalog struct {
	portfolios map[string]PortfolioData
	bots       map[string]PortfolioData
}

type portfolioDocument struct {
	Portfolios map[string]PortfolioData `json:"portfolios"`
}

// Load parses the embedded fixture documents.
func Load() (*Catalog, error) {
	var doc portfolioDocument
	if err := json.Unmarshal(portfolioData, &doc); err != nil {
		return nil, fmt.Errorf("parse portfolio fixtures: %w", err)
	}

	bots := map[string]PortfolioData{}
	if err := json.Unmarshal(botData, &bots); err != nil {
		return nil, fmt.Errorf("parse bot fixtures: %w", err)
	}

	return &Catalog{portfolios: doc.Portfolios, bots: bots}, nil
}

// Portfolio looks up a portfolio fixture by ID.
func (c *Catalog) Portfolio(id string) (PortfolioData, bool) {
	p, ok := c.portfolios[id]
	return p, ok
}

// Bot looks up an individual-bot fixture by ID.
func (c *Catalog) Bot(id string) (PortfolioData, bool) {
	b, ok := c.bots[id]
	return b, ok
}

// PortfolioIDs returns the portfolio fixture IDs in sorted order.
func (c *Catalog) PortfolioIDs() []string {
	return sortedKeys(c.portfolios)
}

// BotIDs returns the bot fixture IDs in sorted order.
func (c *Catalog) BotIDs() []string {
	return sortedKeys(c.bots)
}

func sortedKeys(m map[string]PortfolioData) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
