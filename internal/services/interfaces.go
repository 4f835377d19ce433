package services

import (
	"context"

	"github.com/shopspring/decimal"

	"botfolio/internal/metrics"
	"botfolio/internal/models"
)

// AuthServicer defines the contract for operator authentication.
type AuthServicer interface {
	Login(username, password string) (*models.Session, error)
	Logout(session *models.Session) error
	RestoreSession() (*models.Session, error)
}

// LogFilter holds the activity log query parameters. Empty (or "all") fields
// match everything; Search is a case-insensitive substring match against
// description, actor, and action.
type LogFilter struct {
	Action    string
	Actor     string
	DateRange string
	Search    string
}

// LogStats summarizes the full activity log.
type LogStats struct {
	Total            int               `json:"total"`
	Today            int               `json:"today"`
	Actions          map[string]int    `json:"actions"`
	Actors           map[string]int    `json:"users"`
	MostActiveActor  string            `json:"most_active_user"`
	MostCommonAction string            `json:"most_common_action"`
}

// ActivityLogServicer defines the contract for the bounded, append-only
// activity log.
type ActivityLogServicer interface {
	Append(actor string, action models.Action, description string) (models.LogEntry, error)
	Query(filter LogFilter) ([]models.LogEntry, error)
	Stats() (LogStats, error)
	Clear(actor string) error
	Export(filter LogFilter) ([]byte, string, error)
}

// BackupServicer defines the contract for the bounded snapshot list.
type BackupServicer interface {
	List() ([]models.Backup, error)
	Create(actor string, kind models.BackupKind) (*models.Backup, error)
	Restore(id int64, actor string) error
	Delete(id int64, actor string) error
	Import(data []byte, actor string) (*models.Backup, error)
	Export(id int64, actor string) ([]byte, string, error)
}

// DashboardStats aggregates the admin catalog for the dashboard header.
type DashboardStats struct {
	TotalPortfolios int             `json:"total_portfolios"`
	AveragePrice    decimal.Decimal `json:"average_price"`
	EliteCount      int             `json:"elite_count"`
	TotalDataPoints int             `json:"total_data_points"`
}

// PortfolioInput carries the fields of a new catalog entry.
type PortfolioInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Tier        models.Tier
	Category    string
	Metrics     models.MetricSet
}

// PortfolioServicer defines the contract for the admin portfolio catalog.
type PortfolioServicer interface {
	List() ([]models.Portfolio, error)
	Get(id string) (*models.Portfolio, error)
	Create(input PortfolioInput, actor string) (*models.Portfolio, error)
	UpdateField(id, field string, value any, actor string) (*models.Portfolio, error)
	UpdateMetric(id, metric string, value float64, actor string) (*models.Portfolio, error)
	Delete(id string, actor string) error
	Dashboard() (DashboardStats, error)
}

// AnalyticsServicer derives chart statistics from the fixture catalogs.
// Source selects between pre-packaged portfolios and individual bots.
type AnalyticsServicer interface {
	EquitySummary(source, id string) (metrics.EquitySummary, []models.EquityPoint, error)
	DrawdownStats(source, id string) (metrics.DrawdownStats, []models.DrawdownPoint, error)
	MonthlyReturnStats(source, id string) (metrics.MonthlyReturnStats, error)
}

// ExtractionServicer defines the contract for the simulated PDF report
// extraction.
type ExtractionServicer interface {
	Extract(ctx context.Context, actor, filename string) (*models.ExtractedReport, error)
}

// ContactServicer defines the contract for the public contact inbox.
type ContactServicer interface {
	Submit(msg models.ContactMessage) (*models.ContactMessage, error)
	List() ([]models.ContactMessage, error)
}
