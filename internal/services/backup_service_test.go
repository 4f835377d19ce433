package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"botfolio/internal/docstore"
	"botfolio/internal/models"
	"botfolio/internal/testutil"
)

func newBackupService(t *testing.T) (BackupServicer, ActivityLogServicer, docstore.Store) {
	t.Helper()
	store := testutil.SetupTestStore(t)
	logs := NewActivityLogService(store)
	return NewBackupService(store, logs), logs, store
}

func TestBackupCreate(t *testing.T) {
	t.Run("captures_current_state", func(t *testing.T) {
		svc, _, store := newBackupService(t)
		portfolios := testutil.SeedCatalog(t, store, 3)

		backup, err := svc.Create("Administrator", models.BackupManual)
		testutil.AssertNoError(t, err)

		if backup.ID == 0 {
			t.Error("expected non-zero backup ID")
		}
		if backup.Kind != models.BackupManual {
			t.Errorf("expected manual backup, got %s", backup.Kind)
		}
		if len(backup.Payload.Portfolios) != len(portfolios) {
			t.Errorf("expected %d portfolios in payload, got %d", len(portfolios), len(backup.Payload.Portfolios))
		}
		if backup.Payload.Metadata.PortfolioCount != 3 || backup.Payload.Metadata.CreatedBy != "Administrator" {
			t.Errorf("unexpected metadata: %+v", backup.Payload.Metadata)
		}
		if backup.Payload.Version != "1.0" {
			t.Errorf("expected payload version 1.0, got %s", backup.Payload.Version)
		}
		if backup.SizeLabel == "" {
			t.Error("expected a size label")
		}
	})

	t.Run("manual_emits_activity_entry", func(t *testing.T) {
		svc, logs, _ := newBackupService(t)

		_, err := svc.Create("Administrator", models.BackupManual)
		testutil.AssertNoError(t, err)

		entries, err := logs.Query(LogFilter{Action: string(models.ActionBackupCreate)})
		testutil.AssertNoError(t, err)
		if len(entries) != 1 {
			t.Errorf("expected 1 backup_create entry, got %d", len(entries))
		}
	})

	t.Run("automatic_is_silent", func(t *testing.T) {
		svc, logs, _ := newBackupService(t)

		_, err := svc.Create("Administrator", models.BackupAutomatic)
		testutil.AssertNoError(t, err)

		entries, err := logs.Query(LogFilter{})
		testutil.AssertNoError(t, err)
		if len(entries) != 0 {
			t.Errorf("expected no activity entries for automatic backup, got %d", len(entries))
		}
	})

	t.Run("drops_oldest_past_cap", func(t *testing.T) {
		svc, _, _ := newBackupService(t)

		var firstID int64
		for i := 0; i < 21; i++ {
			backup, err := svc.Create("Administrator", models.BackupAutomatic)
			testutil.AssertNoError(t, err)
			if i == 0 {
				firstID = backup.ID
			}
		}

		backups, err := svc.List()
		testutil.AssertNoError(t, err)
		if len(backups) != 20 {
			t.Fatalf("expected 20 backups after 21 creates, got %d", len(backups))
		}
		for _, b := range backups {
			if b.ID == firstID {
				t.Error("expected oldest backup to be dropped")
			}
		}
	})
}

func TestBackupRestore(t *testing.T) {
	t.Run("overwrites_documents_and_keeps_safety_copy", func(t *testing.T) {
		svc, logs, store := newBackupService(t)
		testutil.SeedCatalog(t, store, 2)

		backup, err := svc.Create("Administrator", models.BackupManual)
		testutil.AssertNoError(t, err)

		// Mutate state after the snapshot.
		testutil.SeedCatalog(t, store, 5)

		before, err := svc.List()
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Restore(backup.ID, "Manager"))

		var portfolios []models.Portfolio
		if _, err := store.Get(docstore.KeyCatalog, &portfolios); err != nil {
			t.Fatalf("failed to read catalog: %v", err)
		}
		if len(portfolios) != 2 {
			t.Errorf("expected restored catalog of 2, got %d", len(portfolios))
		}

		// Restore adds exactly one net snapshot (the safety copy).
		after, err := svc.List()
		testutil.AssertNoError(t, err)
		if len(after) != len(before)+1 {
			t.Errorf("expected %d backups after restore, got %d", len(before)+1, len(after))
		}

		entries, err := logs.Query(LogFilter{Action: string(models.ActionBackupRestore)})
		testutil.AssertNoError(t, err)
		if len(entries) != 1 {
			t.Errorf("expected 1 backup_restore entry, got %d", len(entries))
		}
	})

	t.Run("unknown_id", func(t *testing.T) {
		svc, _, _ := newBackupService(t)
		testutil.AssertAppError(t, svc.Restore(12345, "Administrator"), "BACKUP_NOT_FOUND")
	})
}

func TestBackupDelete(t *testing.T) {
	svc, _, _ := newBackupService(t)

	backup, err := svc.Create("Administrator", models.BackupManual)
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.Delete(backup.ID, "Administrator"))

	backups, err := svc.List()
	testutil.AssertNoError(t, err)
	for _, b := range backups {
		if b.ID == backup.ID {
			t.Error("expected backup to be deleted")
		}
	}

	testutil.AssertAppError(t, svc.Delete(backup.ID, "Administrator"), "BACKUP_NOT_FOUND")
}

func TestBackupExportImport(t *testing.T) {
	t.Run("round_trip_preserves_identity", func(t *testing.T) {
		svc, _, store := newBackupService(t)
		testutil.SeedCatalog(t, store, 2)

		backup, err := svc.Create("Administrator", models.BackupManual)
		testutil.AssertNoError(t, err)

		data, filename, err := svc.Export(backup.ID, "Administrator")
		testutil.AssertNoError(t, err)

		want := fmt.Sprintf("backup_%d_%s.json", backup.ID, backup.Timestamp.Format("2006-01-02"))
		if filename != want {
			t.Errorf("expected filename %q, got %q", want, filename)
		}

		imported, err := svc.Import(data, "Manager")
		testutil.AssertNoError(t, err)

		if imported.ID != backup.ID {
			t.Errorf("expected imported ID %d, got %d", backup.ID, imported.ID)
		}
		if !imported.Timestamp.Equal(backup.Timestamp) {
			t.Errorf("expected imported timestamp %v, got %v", backup.Timestamp, imported.Timestamp)
		}
		if len(imported.Payload.Portfolios) != 2 {
			t.Errorf("expected payload to survive round trip, got %d portfolios", len(imported.Payload.Portfolios))
		}
	})

	t.Run("rejects_missing_timestamp", func(t *testing.T) {
		svc, _, _ := newBackupService(t)
		_, err := svc.Import([]byte(`{"id": 1, "data": {"portfolios": []}}`), "Administrator")
		testutil.AssertAppError(t, err, "INVALID_BACKUP_FILE")
	})

	t.Run("rejects_missing_data", func(t *testing.T) {
		svc, _, _ := newBackupService(t)
		payload := fmt.Sprintf(`{"id": 1, "timestamp": %q}`, time.Now().Format(time.RFC3339))
		_, err := svc.Import([]byte(payload), "Administrator")
		testutil.AssertAppError(t, err, "INVALID_BACKUP_FILE")

		payload = fmt.Sprintf(`{"id": 1, "timestamp": %q, "data": null}`, time.Now().Format(time.RFC3339))
		_, err = svc.Import([]byte(payload), "Administrator")
		testutil.AssertAppError(t, err, "INVALID_BACKUP_FILE")
	})

	t.Run("rejects_malformed_json", func(t *testing.T) {
		svc, _, _ := newBackupService(t)
		_, err := svc.Import([]byte("{not json"), "Administrator")
		testutil.AssertAppError(t, err, "INVALID_BACKUP_FILE")
	})

	t.Run("export_is_pretty_printed", func(t *testing.T) {
		svc, _, _ := newBackupService(t)

		backup, err := svc.Create("Administrator", models.BackupManual)
		testutil.AssertNoError(t, err)

		data, _, err := svc.Export(backup.ID, "Administrator")
		testutil.AssertNoError(t, err)

		if !strings.Contains(string(data), "\n  ") {
			t.Error("expected indented JSON export")
		}
		if !json.Valid(data) {
			t.Error("expected valid JSON export")
		}
	})
}

func TestSizeLabel(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{n: 512, want: "512 B"},
		{n: 1024, want: "1.0 KB"},
		{n: 1536, want: "1.5 KB"},
		{n: 1048576, want: "1.0 MB"},
		{n: 5242880, want: "5.0 MB"},
	}
	for _, c := range cases {
		if got := sizeLabel(c.n); got != c.want {
			t.Errorf("sizeLabel(%d): expected %q, got %q", c.n, c.want, got)
		}
	}
}
