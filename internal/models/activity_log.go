package models

import "time"

// Action identifies the kind of operator action recorded in the activity log.
type Action string

const (
	ActionLogin          Action = "login"
	ActionLogout         Action = "logout"
	ActionAccess         Action = "access"
	ActionCreate         Action = "create"
	ActionEdit           Action = "edit"
	ActionDelete         Action = "delete"
	ActionUpload         Action = "upload"
	ActionExtract        Action = "extract"
	ActionBackupCreate   Action = "backup_create"
	ActionBackupRestore  Action = "backup_restore"
	ActionBackupDelete   Action = "backup_delete"
	ActionBackupDownload Action = "backup_download"
	ActionBackupUpload   Action = "backup_upload"
	ActionLogsClear      Action = "logs_clear"
)

// LogEntry is one record of the append-only activity log. Entries are stored
// newest-first under the "activity_log" key; the log keeps at most 100 entries.
type LogEntry struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Actor       string    `json:"user"`
	Action      Action    `json:"action"`
	Description string    `json:"description"`
	SourceAddr  string    `json:"ip"`
}
