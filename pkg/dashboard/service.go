package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/per2jensen/clonepulse/internal/utils"
	"github.com/per2jensen/clonepulse/pkg/traffic"
	log "github.com/sirupsen/logrus"
)

const emptyDashboardMessage = "Not enough data to generate a dashboard.\nOne week's data needed."

// minDailyRecords is the smallest daily series that can cover a full week.
const minDailyRecords = 7

// Service renders the weekly dashboard for one invocation.
type Service interface {
	Render(ctx context.Context, params Params) error
}

type ServiceImpl struct {
	repo       traffic.Repository
	renderer   Renderer
	outputFile string
	clock      utils.Clock
}

func NewService(repo traffic.Repository, renderer Renderer, outputFile string) *ServiceImpl {
	return &ServiceImpl{
		repo:       repo,
		renderer:   renderer,
		outputFile: outputFile,
		clock:      &utils.SystemClock{},
	}
}

func (s *ServiceImpl) Render(ctx context.Context, params Params) error {
	// flags are validated before the store is consulted, so bad input
	// fails the same way regardless of how much data exists
	window, err := ResolveWindow(params, s.clock)
	if err != nil {
		return err
	}

	snapshot, err := s.repo.LoadOrInit(ctx)
	if err != nil {
		return err
	}

	if len(snapshot.Daily) == 0 {
		log.Warn("No daily clone data available.")
		return s.renderEmpty(emptyDashboardMessage)
	}

	now := s.clock.Now().UTC()
	if err := validateDaily(snapshot.Daily, now); err != nil {
		return err
	}

	if len(snapshot.Daily) < minDailyRecords {
		log.Warnf("Not enough daily data to generate a weekly chart (%d days).", len(snapshot.Daily))
		return s.renderEmpty(emptyDashboardMessage)
	}

	buckets := Aggregate(snapshot.Daily, window, now)
	if len(buckets) == 0 {
		message := "No data in the selected window."
		if window.Year != 0 {
			message = fmt.Sprintf("No data for year %d.", window.Year)
		}
		log.Warnf("No weekly data to plot: %s", message)
		return s.renderEmpty(message)
	}

	maxChars := s.renderer.MaxLabelChars()
	log.Debugf("Max annotation label characters allowed: %d", maxChars)
	PlaceAnnotations(buckets, snapshot.Annotations, window, now, maxChars)

	if err := s.renderer.RenderWeekly(buckets, s.outputFile); err != nil {
		return err
	}

	last := buckets[len(buckets)-1]
	log.Infof("Dashboard rendered with %d weeks.", len(buckets))
	log.Infof("Latest week: %s -> %s (reported on %s)",
		last.WeekStart.Format(traffic.DateFormat),
		last.WeekEnd().Format(traffic.DateFormat),
		last.ReportDate().Format(traffic.DateFormat))
	log.Infof("Output saved to: %s", s.outputFile)
	return nil
}

func (s *ServiceImpl) renderEmpty(message string) error {
	if err := s.renderer.RenderEmpty(message, s.outputFile); err != nil {
		return err
	}
	log.Infof("Output saved to: %s", s.outputFile)
	return nil
}

// validateDaily rejects records the fetcher could never have produced:
// future timestamps and negative counters indicate a corrupted store.
func validateDaily(daily []traffic.DailyRecord, now time.Time) error {
	for i, record := range daily {
		if record.Timestamp.After(now) {
			return fmt.Errorf("row %d timestamp is in the future: %s", i, record.Timestamp.Format(time.RFC3339))
		}
		if record.Count < 0 {
			return fmt.Errorf("row %d has invalid count: %d", i, record.Count)
		}
		if record.Uniques < 0 {
			return fmt.Errorf("row %d has invalid uniques: %d", i, record.Uniques)
		}
	}
	return nil
}
