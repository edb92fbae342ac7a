package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"newsdesk.app/internal/ports"
)

const sweepTimeout = 2 * time.Minute

// Sweeper moves overdue active subscriptions to expired
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// JobRecorder wraps a job run with instrumentation. Metrics.SweepJob satisfies it.
type JobRecorder func(trigger string, job func() error) error

// ExpiryScheduler runs the expiry sweep on a cron schedule
type ExpiryScheduler struct {
	sweeper  Sweeper
	logger   ports.Logger
	record   JobRecorder
	schedule string
	cron     *cron.Cron
	cancel   context.CancelFunc
}

// NewExpiryScheduler creates a scheduler for schedule, a standard five-field
// cron expression. record may be nil.
func NewExpiryScheduler(sweeper Sweeper, schedule string, logger ports.Logger, record JobRecorder) *ExpiryScheduler {
	if record == nil {
		record = func(_ string, job func() error) error { return job() }
	}
	return &ExpiryScheduler{
		sweeper:  sweeper,
		logger:   logger,
		record:   record,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the sweep and starts the cron runner
func (s *ExpiryScheduler) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(ctx, "cron") }); err != nil {
		cancel()
		return fmt.Errorf("schedule expiry sweep %q: %w", s.schedule, err)
	}

	s.cancel = cancel
	s.cron.Start()
	s.logger.Info("Expiry sweep scheduled", ports.F("schedule", s.schedule))
	return nil
}

// Stop cancels pending runs and waits for a running sweep to finish
func (s *ExpiryScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	s.logger.Info("Expiry scheduler stopped")
}

// RunOnce executes one sweep. Failures are logged, never propagated.
func (s *ExpiryScheduler) RunOnce(ctx context.Context, trigger string) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	err := s.record(trigger, func() error {
		count, err := s.sweeper.SweepExpired(ctx)
		if err != nil {
			return err
		}
		s.logger.Info("Expiry sweep finished", ports.F("trigger", trigger), ports.F("expired", count))
		return nil
	})
	if err != nil {
		s.logger.Error("Expiry sweep failed", ports.F("trigger", trigger), ports.F("error", err))
	}
}
