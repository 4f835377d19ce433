package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier is the marketing classification attached to a portfolio. It has no
// behavioral effect beyond display and filtering.
type Tier string

const (
	TierPremium       Tier = "Premium"
	TierElitePremium  Tier = "Elite Premium"
	TierProfessional  Tier = "Professional"
	TierInstitutional Tier = "Institutional"
)

// MetricSet holds the headline performance figures of a portfolio or bot.
// The underlying formulas are never computed here; fields are opaque numbers
// validated for range at the point of entry.
type MetricSet struct {
	NetProfit          decimal.Decimal `json:"net_profit"`
	SharpeRatio        float64         `json:"sharpe_ratio"`
	CAGRPercent        float64         `json:"cagr"`
	MaxDrawdownPercent float64         `json:"max_drawdown"`
	TotalTrades        int             `json:"total_trades"`
	WinRatePercent     float64         `json:"win_rate"`
	ProfitFactor       float64         `json:"profit_factor,omitempty"`
	CalmarRatio        float64         `json:"calmar_ratio,omitempty"`
}

// DataPointCounts records how many series points back a portfolio's charts.
type DataPointCounts struct {
	Equity   int `json:"equity"`
	Monthly  int `json:"monthly"`
	Drawdown int `json:"drawdown"`
}

// Portfolio is one entry of the admin catalog document. The catalog is stored
// as a single JSON array under the "catalog" key; there is no per-row identity
// beyond the ID field.
type Portfolio struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Tier         Tier            `json:"tier"`
	Category     string          `json:"category"`
	Metrics      MetricSet       `json:"metrics"`
	DataPoints   DataPointCounts `json:"data"`
	CreatedAt    time.Time       `json:"created_at"`
	LastModified time.Time       `json:"last_modified"`
}
