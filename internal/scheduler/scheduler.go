package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hoardwatch/ingestor/internal/adapter"
	"github.com/hoardwatch/ingestor/internal/logger"
)

// Job is one unit of periodic work. RunOnce must complete a full pass and
// return; the scheduler owns the looping and the cooldown between passes.
type Job interface {
	Name() string
	RunOnce(ctx context.Context) error
}

// Scheduler drives a Job on a fixed cooldown. The running guard keeps
// at-most-one concurrent pass; a stop request prevents the next pass from
// being scheduled but never preempts the one in flight.
type Scheduler struct {
	job      Job
	interval time.Duration
	clock    adapter.Clock

	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// New creates a scheduler for the given job and cooldown interval
func New(job Job, interval time.Duration, clock adapter.Clock) *Scheduler {
	return &Scheduler{
		job:       job,
		interval:  interval,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Start runs the job loop until the context is canceled or Stop is called.
// A pass's failure is logged and the next pass is scheduled regardless.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("scheduler for %s already running", s.job.Name())
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.Info("scheduler started",
		zap.String("job", s.job.Name()),
		zap.Duration("interval", s.interval),
	)

	for {
		// The pass in flight always completes; cancellation only takes
		// effect at the scheduling points below.
		if err := s.job.RunOnce(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error(err, zap.String("job", s.job.Name()))
			}
		}

		select {
		case <-ctx.Done():
			logger.Info("scheduler stopping, context canceled", zap.String("job", s.job.Name()))
			return nil
		case <-s.stopChan:
			logger.Info("scheduler stop requested", zap.String("job", s.job.Name()))
			return nil
		case <-s.clock.After(s.interval):
		}
	}
}

// Stop prevents the next pass and waits for the loop to exit, respecting
// the context deadline.
func (s *Scheduler) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.Info("scheduler stopped", zap.String("job", s.job.Name()))
		return nil
	case <-ctx.Done():
		logger.Warn("scheduler stop interrupted by context", zap.String("job", s.job.Name()))
		return ctx.Err()
	}
}
