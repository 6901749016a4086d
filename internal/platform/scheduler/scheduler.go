// Package scheduler runs the daily exchange rate refresh in the background.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
)

// RateRefreshScheduler fires the rate refresh job once a day at a configured
// hour. The job result is logged and otherwise discarded; a failed run leaves
// stored rates stale until the next firing.
type RateRefreshScheduler struct {
	cron       *cron.Cron
	refreshSvc portssvc.RateRefreshSvc
	logger     *slog.Logger
	hour       int
}

// New builds a scheduler firing daily at the given hour in the given
// timezone (IANA name, e.g. "Europe/Warsaw").
func New(refreshSvc portssvc.RateRefreshSvc, hour int, timezone string, logger *slog.Logger) (*RateRefreshScheduler, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", timezone, err)
	}

	return &RateRefreshScheduler{
		cron:       cron.New(cron.WithLocation(location)),
		refreshSvc: refreshSvc,
		logger:     logger,
		hour:       hour,
	}, nil
}

// Start registers the daily job and launches the cron loop in its own
// goroutine. Returns an error only if the schedule spec is rejected.
func (s *RateRefreshScheduler) Start() error {
	spec := fmt.Sprintf("0 %d * * *", s.hour)
	if _, err := s.cron.AddFunc(spec, s.runRefresh); err != nil {
		return fmt.Errorf("failed to schedule rate refresh: %w", err)
	}
	s.cron.Start()
	s.logger.Info("Rate refresh scheduler started", slog.Int("hour", s.hour))
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *RateRefreshScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Rate refresh scheduler stopped")
}

func (s *RateRefreshScheduler) runRefresh() {
	s.logger.Info("Starting daily exchange rate update")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	summary, err := s.refreshSvc.RefreshAllRates(ctx)
	if err != nil {
		s.logger.Error("Exchange rate update failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Exchange rate update finished",
		slog.Int("bases_attempted", summary.BasesAttempted),
		slog.Int("rates_saved", summary.RatesSaved),
		slog.Int("failures", summary.Failures),
	)
}
