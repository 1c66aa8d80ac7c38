package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sanjeevan43/LifeFlow/internal/logger"
)

// Job is one recurring trigger: a name, a cron spec, and the cycle to run.
// Jobs are registered once at startup from a plain table; there is no dynamic
// trigger binding.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context)
}

// Scheduler drives the recurring notification cycles with an in-process cron.
// Each firing runs as an independent unit of work with its own deadline and a
// fresh context; invocations share no state.
type Scheduler struct {
	cron    *cron.Cron
	logger  *logger.Logger
	timeout time.Duration
}

// New creates a scheduler whose cron specs and day boundaries are interpreted
// in the given location.
func New(location *time.Location, timeout time.Duration, logger *logger.Logger) *Scheduler {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(location)),
		logger:  logger.WithComponent("scheduler"),
		timeout: timeout,
	}
}

// Register adds a job to the schedule.
func (s *Scheduler) Register(job Job) error {
	if job.Name == "" || job.Spec == "" || job.Run == nil {
		return fmt.Errorf("incomplete job registration: name=%q spec=%q", job.Name, job.Spec)
	}

	_, err := s.cron.AddFunc(job.Spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		ctx = logger.WithTrigger(ctx, job.Name)
		ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())

		// Cycles absorb their own failures; LogOperation only records timing.
		_ = s.logger.LogOperation(ctx, job.Name, func() error {
			job.Run(ctx)
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", job.Name, err)
	}

	s.logger.Info("job registered",
		slog.String("job", job.Name),
		slog.String("spec", job.Spec))

	return nil
}

// Start launches the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the scheduler and waits for any in-flight cycle to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
