package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "botfolio/internal/errors"
	"botfolio/internal/fixtures"
	"botfolio/internal/models"
)

// extractionService simulates PDF report extraction: after a configurable
// processing delay it returns generated performance data. Nothing is parsed
// from the uploaded file beyond its name.
type extractionService struct {
	logs  ActivityLogServicer
	delay time.Duration

	mu  sync.Mutex
	gen *fixtures.Generator
}

// NewExtractionService creates a new ExtractionServicer with the given
// processing delay and generator seed.
func NewExtractionService(logs ActivityLogServicer, delay time.Duration, seed int64) ExtractionServicer {
	return &extractionService{
		logs:  logs,
		delay: delay,
		gen:   fixtures.NewGenerator(seed),
	}
}

// Extract waits out the simulated processing delay, then fabricates a report
// for the uploaded file. The wait is cooperative: a cancelled context aborts
// the extraction instead of holding the connection.
func (s *extractionService) Extract(ctx context.Context, actor, filename string) (*models.ExtractedReport, error) {
	if !strings.EqualFold(strings.TrimSpace(filenameExt(filename)), ".pdf") {
		return nil, apperrors.WithMessage(apperrors.ErrExtractionFailed, "Only PDF reports are supported")
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, apperrors.Wrap(apperrors.ErrExtractionFailed, ctx.Err())
	case <-timer.C:
	}

	s.mu.Lock()
	report := s.gen.Report(time.Now())
	s.mu.Unlock()

	if _, err := s.logs.Append(actor, models.ActionExtract,
		fmt.Sprintf("Extracted data from report: %s", filename)); err != nil {
		return nil, err
	}
	return &report, nil
}

func filenameExt(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i:]
	}
	return ""
}
