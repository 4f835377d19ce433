package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"botfolio/internal/docstore"
	apperrors "botfolio/internal/errors"
	"botfolio/internal/logger"
	"botfolio/internal/models"
)

// maxBackups bounds the snapshot list. Creates beyond the cap drop the oldest
// snapshot first.
const maxBackups = 20

// backupVersion tags every snapshot payload.
const backupVersion = "1.0"

// backupService handles the bounded point-in-time snapshot list.
type backupService struct {
	store docstore.Store
	logs  ActivityLogServicer
}

// NewBackupService creates a new BackupServicer.
func NewBackupService(store docstore.Store, logs ActivityLogServicer) BackupServicer {
	return &backupService{store: store, logs: logs}
}

func (s *backupService) load() ([]models.Backup, error) {
	var backups []models.Backup
	found, err := s.store.Get(docstore.KeyBackups, &backups)
	if err != nil {
		if errors.Is(err, docstore.ErrCorrupt) {
			logger.Get().Warnw("backup document corrupt, resetting", "error", err.Error())
			if delErr := s.store.Delete(docstore.KeyBackups); delErr != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, delErr)
			}
			return []models.Backup{}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !found {
		return []models.Backup{}, nil
	}
	return backups, nil
}

func (s *backupService) save(backups []models.Backup) error {
	if len(backups) > maxBackups {
		backups = backups[:maxBackups]
	}
	if err := s.store.Put(docstore.KeyBackups, backups); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// List returns all snapshots, newest first.
func (s *backupService) List() ([]models.Backup, error) {
	return s.load()
}

// snapshot assembles a point-in-time payload from the current catalog, log,
// and settings documents. Missing documents contribute empty collections.
func (s *backupService) snapshot(actor string) (models.BackupPayload, error) {
	var portfolios []models.Portfolio
	if _, err := s.store.Get(docstore.KeyCatalog, &portfolios); err != nil && !errors.Is(err, docstore.ErrCorrupt) {
		return models.BackupPayload{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if portfolios == nil {
		portfolios = []models.Portfolio{}
	}

	var entries []models.LogEntry
	if _, err := s.store.Get(docstore.KeyActivityLog, &entries); err != nil && !errors.Is(err, docstore.ErrCorrupt) {
		return models.BackupPayload{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	if len(entries) > maxLogEntries {
		entries = entries[:maxLogEntries]
	}

	settings := models.Settings{}
	if _, err := s.store.Get(docstore.KeySettings, &settings); err != nil && !errors.Is(err, docstore.ErrCorrupt) {
		return models.BackupPayload{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return models.BackupPayload{
		Portfolios: portfolios,
		Logs:       entries,
		Settings:   settings,
		Version:    backupVersion,
		Metadata: models.BackupMetadata{
			PortfolioCount: len(portfolios),
			LogCount:       len(entries),
			CreatedBy:      actor,
		},
	}, nil
}

// Create takes a snapshot of the current state and prepends it to the list.
// Manual backups emit an activity entry; automatic ones (taken on every
// catalog save) do not, so routine edits don't flood the log.
func (s *backupService) Create(actor string, kind models.BackupKind) (*models.Backup, error) {
	backups, err := s.load()
	if err != nil {
		return nil, err
	}

	payload, err := s.snapshot(actor)
	if err != nil {
		return nil, err
	}

	backup := models.Backup{
		ID:        nextID(backups, func(b models.Backup) int64 { return b.ID }),
		Timestamp: time.Now(),
		Actor:     actor,
		Kind:      kind,
		Payload:   payload,
	}
	backup.SizeLabel = sizeLabel(encodedSize(backup))

	backups = append([]models.Backup{backup}, backups...)
	if err := s.save(backups); err != nil {
		return nil, err
	}

	if kind == models.BackupManual {
		if _, err := s.logs.Append(actor, models.ActionBackupCreate, "Created manual backup"); err != nil {
			return nil, err
		}
	}
	return &backup, nil
}

// Restore overwrites the catalog, activity log, and settings documents with a
// snapshot's payload. The current state is captured in a fresh manual backup
// first, so a restore is always reversible.
func (s *backupService) Restore(id int64, actor string) error {
	backups, err := s.load()
	if err != nil {
		return err
	}
	backup, ok := findBackup(backups, id)
	if !ok {
		return apperrors.ErrBackupNotFound
	}

	if _, err := s.Create(actor, models.BackupManual); err != nil {
		return err
	}

	if err := s.store.Put(docstore.KeyCatalog, backup.Payload.Portfolios); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.store.Put(docstore.KeyActivityLog, backup.Payload.Logs); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.store.Put(docstore.KeySettings, backup.Payload.Settings); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	_, err = s.logs.Append(actor, models.ActionBackupRestore,
		fmt.Sprintf("Restored backup from %s", backup.Timestamp.Format("2006-01-02 15:04:05")))
	return err
}

// Delete removes one snapshot by ID.
func (s *backupService) Delete(id int64, actor string) error {
	backups, err := s.load()
	if err != nil {
		return err
	}

	remaining := make([]models.Backup, 0, len(backups))
	found := false
	for _, b := range backups {
		if b.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, b)
	}
	if !found {
		return apperrors.ErrBackupNotFound
	}

	if err := s.save(remaining); err != nil {
		return err
	}
	_, err = s.logs.Append(actor, models.ActionBackupDelete, "Deleted backup")
	return err
}

// importEnvelope checks an uploaded file for the required top-level fields
// before the full decode; data must be present and non-null.
type importEnvelope struct {
	Timestamp *time.Time      `json:"timestamp"`
	Payload   json.RawMessage `json:"data"`
}

// Import accepts a previously exported snapshot file. The snapshot keeps its
// original ID and timestamp so an export/import round trip is lossless.
func (s *backupService) Import(data []byte, actor string) (*models.Backup, error) {
	var envelope importEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidBackupFile, err)
	}
	if envelope.Timestamp == nil || len(envelope.Payload) == 0 || string(envelope.Payload) == "null" {
		return nil, apperrors.ErrInvalidBackupFile
	}

	var backup models.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidBackupFile, err)
	}
	backup.SizeLabel = sizeLabel(encodedSize(backup))

	backups, err := s.load()
	if err != nil {
		return nil, err
	}
	backups = append([]models.Backup{backup}, backups...)
	if err := s.save(backups); err != nil {
		return nil, err
	}

	if _, err := s.logs.Append(actor, models.ActionBackupUpload, "Imported backup from file"); err != nil {
		return nil, err
	}
	return &backup, nil
}

// Export serializes one snapshot as pretty-printed JSON and returns it with
// its dated download filename.
func (s *backupService) Export(id int64, actor string) ([]byte, string, error) {
	backups, err := s.load()
	if err != nil {
		return nil, "", err
	}
	backup, ok := findBackup(backups, id)
	if !ok {
		return nil, "", apperrors.ErrBackupNotFound
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.logs.Append(actor, models.ActionBackupDownload, "Downloaded backup file"); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("backup_%d_%s.json", backup.ID, backup.Timestamp.Format("2006-01-02"))
	return data, filename, nil
}

func findBackup(backups []models.Backup, id int64) (models.Backup, bool) {
	for _, b := range backups {
		if b.ID == id {
			return b, true
		}
	}
	return models.Backup{}, false
}

func encodedSize(backup models.Backup) int {
	data, err := json.Marshal(backup)
	if err != nil {
		return 0
	}
	return len(data)
}

// sizeLabel renders a byte count at 1024 thresholds with one decimal place.
func sizeLabel(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
