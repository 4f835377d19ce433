// Package docstore implements the single-client document store the back
// office persists into: string keys mapping to whole JSON documents. Every
// write replaces the full document for its key; there is no multi-key
// atomicity and concurrent writers race last-writer-wins.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Well-known document keys.
const (
	KeyCatalog     = "catalog"
	KeyActivityLog = "activity_log"
	KeyBackups     = "backups"
	KeySettings    = "settings"
	KeySession     = "session"
	KeyContact     = "contact_messages"
)

// ErrCorrupt reports that a persisted document could not be deserialized.
// Callers are expected to clear the key and fall back to an empty default
// rather than propagate the failure.
var ErrCorrupt = errors.New("docstore: corrupt document")

// Document is the storage row backing one key. Value is the UTF-8 JSON
// encoding of the full document.
type Document struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time
}

// Store is the synchronous key-value contract every back-office store builds
// on. Get reports false for a missing key; a missing key is never an error.
type Store interface {
	Get(key string, out any) (bool, error)
	Put(key string, doc any) error
	Delete(key string) error
}

type gormStore struct {
	db *gorm.DB
}

// New returns a Store backed by the given database.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Get(key string, out any) (bool, error) {
	var doc Document
	if err := s.db.First(&doc, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("docstore get %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(doc.Value), out); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func (s *gormStore) Put(key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("docstore put %q: %w", key, err)
	}
	row := Document{Key: key, Value: string(data), UpdatedAt: time.Now()}
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("docstore put %q: %w", key, err)
	}
	return nil
}

func (s *gormStore) Delete(key string) error {
	if err := s.db.Delete(&Document{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("docstore delete %q: %w", key, err)
	}
	return nil
}
