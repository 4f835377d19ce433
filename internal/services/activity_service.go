package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"botfolio/internal/docstore"
	apperrors "botfolio/internal/errors"
	"botfolio/internal/logger"
	"botfolio/internal/models"
)

// maxLogEntries bounds the activity log. Appends beyond the cap evict the
// oldest entry.
const maxLogEntries = 100

// activityLogService handles the bounded, newest-first activity log.
type activityLogService struct {
	store docstore.Store
}

// NewActivityLogService creates a new ActivityLogServicer.
func NewActivityLogService(store docstore.Store) ActivityLogServicer {
	return &activityLogService{store: store}
}

// load reads the full log document. A corrupt document is cleared and
// replaced by the empty log rather than surfaced to callers.
func (s *activityLogService) load() ([]models.LogEntry, error) {
	var entries []models.LogEntry
	found, err := s.store.Get(docstore.KeyActivityLog, &entries)
	if err != nil {
		if errors.Is(err, docstore.ErrCorrupt) {
			logger.Get().Warnw("activity log document corrupt, resetting", "error", err.Error())
			if delErr := s.store.Delete(docstore.KeyActivityLog); delErr != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, delErr)
			}
			return []models.LogEntry{}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !found {
		return []models.LogEntry{}, nil
	}
	return entries, nil
}

// Append prepends a new entry and rewrites the whole document, evicting the
// oldest entry past the cap. Entry IDs are strictly increasing even when two
// appends land in the same millisecond.
func (s *activityLogService) Append(actor string, action models.Action, description string) (models.LogEntry, error) {
	entries, err := s.load()
	if err != nil {
		return models.LogEntry{}, err
	}

	entry := models.LogEntry{
		ID:          nextID(entries, func(e models.LogEntry) int64 { return e.ID }),
		Timestamp:   time.Now(),
		Actor:       actor,
		Action:      action,
		Description: description,
		SourceAddr:  "127.0.0.1",
	}

	entries = append([]models.LogEntry{entry}, entries...)
	if len(entries) > maxLogEntries {
		entries = entries[:maxLogEntries]
	}

	if err := s.store.Put(docstore.KeyActivityLog, entries); err != nil {
		return models.LogEntry{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// Query returns the entries matching the filter, newest first.
func (s *activityLogService) Query(filter LogFilter) ([]models.LogEntry, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}

	cutoff, hasCutoff := dateCutoff(filter.DateRange, time.Now())
	search := strings.ToLower(filter.Search)

	matched := make([]models.LogEntry, 0, len(entries))
	for _, e := range entries {
		if filter.Action != "" && filter.Action != "all" && string(e.Action) != filter.Action {
			continue
		}
		if filter.Actor != "" && filter.Actor != "all" && e.Actor != filter.Actor {
			continue
		}
		if hasCutoff && e.Timestamp.Before(cutoff) {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		matched = append(matched, e)
	}
	return matched, nil
}

// dateCutoff resolves a named range to its inclusive lower bound. "today" is
// the local midnight; week and month are rolling windows from now.
func dateCutoff(dateRange string, now time.Time) (time.Time, bool) {
	switch dateRange {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, 0, -30), true
	}
	return time.Time{}, false
}

func matchesSearch(e models.LogEntry, search string) bool {
	return strings.Contains(strings.ToLower(e.Description), search) ||
		strings.Contains(strings.ToLower(e.Actor), search) ||
		strings.Contains(strings.ToLower(string(e.Action)), search)
}

// Stats summarizes the full log. Most-active actor and most-common action
// break frequency ties alphabetically so the result is deterministic.
func (s *activityLogService) Stats() (LogStats, error) {
	entries, err := s.load()
	if err != nil {
		return LogStats{}, err
	}

	stats := LogStats{
		Total:   len(entries),
		Actions: map[string]int{},
		Actors:  map[string]int{},
	}

	midnight, _ := dateCutoff("today", time.Now())
	for _, e := range entries {
		stats.Actions[string(e.Action)]++
		stats.Actors[e.Actor]++
		if !e.Timestamp.Before(midnight) {
			stats.Today++
		}
	}

	stats.MostCommonAction = topKey(stats.Actions)
	stats.MostActiveActor = topKey(stats.Actors)
	return stats, nil
}

// topKey returns the highest-count key, alphabetically first on ties.
func topKey(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, bestCount := "", 0
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

// Clear replaces the log with a single synthetic entry recording the clear
// itself, attributed to the actor.
func (s *activityLogService) Clear(actor string) error {
	if err := s.store.Put(docstore.KeyActivityLog, []models.LogEntry{}); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	_, err := s.Append(actor, models.ActionLogsClear, "Cleared all activity logs")
	return err
}

// Export serializes the filtered view as pretty-printed JSON and returns it
// with its dated download filename.
func (s *activityLogService) Export(filter LogFilter) ([]byte, string, error) {
	entries, err := s.Query(filter)
	if err != nil {
		return nil, "", err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	filename := fmt.Sprintf("activity_logs_%s.json", time.Now().Format("2006-01-02"))
	return data, filename, nil
}

// nextID derives a strictly increasing identifier from the current time and
// the newest existing entry. Documents are newest-first, so index 0 carries
// the highest ID.
func nextID[T any](entries []T, id func(T) int64) int64 {
	candidate := time.Now().UnixMilli()
	if len(entries) > 0 && id(entries[0]) >= candidate {
		candidate = id(entries[0]) + 1
	}
	return candidate
}
