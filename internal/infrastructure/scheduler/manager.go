// Package scheduler provides scheduled job management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages all scheduled jobs using gocron v2.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterAuthRequestSweep registers the pending auth request expiry sweep.
// Overdue pending requests are flipped to expired so that grantees stop
// seeing actionable requests that can no longer be completed.
func (m *SchedulerManager) RegisterAuthRequestSweep(sweepJob BatchJob, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			m.runAuthRequestSweep(ctx, sweepJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("delegation", "expire"),
		gocron.WithName("auth-request-sweep"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered auth request sweep", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) runAuthRequestSweep(ctx context.Context, sweepJob BatchJob) {
	m.logger.Debugw("auth request sweep started")

	startTime := time.Now()

	expiredCount, err := sweepJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("auth request sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if expiredCount > 0 {
		m.logger.Infow("expired auth requests processed",
			"count", expiredCount,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no expired auth requests to process",
			"duration", time.Since(startTime),
		)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler.
// It waits for all running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}
