package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/nightlife/internal/nightlife/store"
	"github.com/aussiebroadwan/nightlife/pkg/metrics"
	"github.com/robfig/cron/v3"
)

// DefaultHousekeepingSchedule runs cleanup hourly.
const DefaultHousekeepingSchedule = "@every 1h"

// HousekeepingService periodically removes expired sessions so the session
// table does not grow without bound.
type HousekeepingService struct {
	Sessions store.Sessions
	Logger   *slog.Logger
	Schedule string

	cron *cron.Cron
	wg   sync.WaitGroup
}

// NewHousekeepingService creates a housekeeping service. An empty schedule
// defaults to DefaultHousekeepingSchedule.
func NewHousekeepingService(sessions store.Sessions, logger *slog.Logger, schedule string) *HousekeepingService {
	if schedule == "" {
		schedule = DefaultHousekeepingSchedule
	}
	return &HousekeepingService{
		Sessions: sessions,
		Logger:   logger,
		Schedule: schedule,
	}
}

// Start runs one cleanup immediately and then schedules the rest. It is
// non-blocking; call Stop to shut the scheduler down.
func (s *HousekeepingService) Start() error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.Schedule, func() { s.cleanup(context.Background()) }); err != nil {
		return fmt.Errorf("housekeeping: invalid schedule %q: %w", s.Schedule, err)
	}
	s.cron = c

	s.wg.Go(func() { s.cleanup(context.Background()) })
	c.Start()
	s.Logger.Info("housekeeping service started", "schedule", s.Schedule)
	return nil
}

// Stop waits for any in-progress cleanup and stops the scheduler.
func (s *HousekeepingService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.Logger.Info("housekeeping service stopped")
}

// RunOnce deletes expired sessions and reports how many were removed.
func (s *HousekeepingService) RunOnce(ctx context.Context) (int64, error) {
	n, err := s.Sessions.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	metrics.RecordSessionsPurged(n)
	return n, nil
}

func (s *HousekeepingService) cleanup(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	n, err := s.RunOnce(ctx)
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
		return
	}
	s.Logger.Info("housekeeping cleanup completed", "sessions_deleted", n)
}
