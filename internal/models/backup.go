package models

import "time"

// BackupKind distinguishes operator-initiated backups from the automatic ones
// taken on every catalog save.
type BackupKind string

const (
	BackupManual    BackupKind = "manual"
	BackupAutomatic BackupKind = "automatic"
)

// BackupMetadata is the human-readable summary shown in the backup list.
type BackupMetadata struct {
	PortfolioCount int    `json:"portfolio_count"`
	LogCount       int    `json:"log_count"`
	CreatedBy      string `json:"created_by"`
}

// BackupPayload is the full point-in-time copy carried by a snapshot:
// the portfolio catalog, the most recent 100 log entries, and settings.
type BackupPayload struct {
	Portfolios []Portfolio    `json:"portfolios"`
	Logs       []LogEntry     `json:"logs"`
	Settings   Settings       `json:"settings"`
	Version    string         `json:"version"`
	Metadata   BackupMetadata `json:"metadata"`
}

// Backup is one snapshot of the backup list, stored newest-first under the
// "backups" key. The list keeps at most 20 snapshots, oldest dropped first.
type Backup struct {
	ID        int64         `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Actor     string        `json:"user"`
	Kind      BackupKind    `json:"type"`
	SizeLabel string        `json:"size"`
	Payload   BackupPayload `json:"data"`
}

// Settings is the opaque admin settings document. Nothing in the back office
// interprets individual keys; it is carried through backup and restore intact.
type Settings map[string]any
