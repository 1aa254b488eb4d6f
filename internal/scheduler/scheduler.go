package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job is one unit of periodic work.
type Job interface {
	Run(ctx context.Context) error
}

type JobFunc func(ctx context.Context) error

func (f JobFunc) Run(ctx context.Context) error {
	return f(ctx)
}

const DefaultRunTimeout = 5 * time.Minute

type Scheduler struct {
	job        Job
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(job Job, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		job:        job,
		interval:   interval,
		runTimeout: DefaultRunTimeout,
		logger:     logger,
	}
}

// WithRunTimeout bounds each run. Non-positive values keep the default.
func (s *Scheduler) WithRunTimeout(d time.Duration) *Scheduler {
	if d > 0 {
		s.runTimeout = d
	}
	return s
}

// Start runs the job immediately and then on every tick until ctx is
// cancelled. A failed run is logged and does not stop the loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	if err := s.job.Run(runCtx); err != nil {
		s.logger.Error("scheduled run failed", "error", err)
	}
}
