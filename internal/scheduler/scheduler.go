package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/slinet/ehparse/internal/config"
)

// Runner is a job the scheduler can trigger.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error { return f(ctx) }

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron    *cron.Cron
	cfg     config.SchedulerConfig
	spool   Runner
	timeout time.Duration
	logger  *zap.Logger
	mu      sync.Mutex
}

// New creates a new scheduler. Each spool run is bounded by timeout; zero
// means no bound.
func New(cfg config.SchedulerConfig, spool Runner, timeout time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		cfg:     cfg,
		spool:   spool,
		timeout: timeout,
		logger:  logger,
	}
}

// Start registers the enabled tasks and starts the cron loop.
func (s *Scheduler) Start() error {
	// Spool conversion
	if s.cfg.SpoolEnabled {
		_, err := s.cron.AddFunc(s.cfg.SpoolCron, s.runSpool)
		if err != nil {
			return err
		}
		s.logger.Info("spool task registered", zap.String("cron", s.cfg.SpoolCron))
	} else {
		s.logger.Info("spool task is disabled")
	}

	s.cron.Start()
	s.logger.Info("scheduler started")
	return nil
}

// Entries returns the number of registered tasks.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Stop stops the scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// runSpool holds the lock so overlapping ticks never convert the same
// inbox twice.
func (s *Scheduler) runSpool() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Info("starting scheduled spool run")
	if err := s.spool.Run(ctx); err != nil {
		s.logger.Error("spool run failed", zap.Error(err))
		return
	}
	s.logger.Info("spool run completed")
}
