package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSchedulerRunning is returned when a job is registered on a started scheduler
var ErrSchedulerRunning = errors.New("scheduler is already running")

// Job is a named background task run on a fixed interval. Run receives a
// context bounded by the scheduler's job timeout.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context, now time.Time) error
}

// Config holds scheduler configuration
type Config struct {
	JobTimeout time.Duration
}

// Scheduler runs each registered job on its own ticker goroutine. Jobs are
// independent: a failing or panicking job never affects the others.
type Scheduler struct {
	config Config
	logger *zap.Logger
	clock  func() time.Time

	mu        sync.Mutex
	jobs      []Job
	isRunning bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func New(config Config, logger *zap.Logger) *Scheduler {
	if config.JobTimeout == 0 {
		config.JobTimeout = 10 * time.Minute
	}
	return &Scheduler{
		config: config,
		logger: logger,
		clock:  time.Now,
	}
}

// Register adds a job. All jobs must be registered before Start.
func (s *Scheduler) Register(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return ErrSchedulerRunning
	}
	s.jobs = append(s.jobs, job)
	return nil
}

// Start launches one goroutine per registered job. Calling Start on a
// running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	s.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, job)
	}

	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.jobs)))
	return nil
}

// Stop cancels all job loops and waits for in-flight runs to finish, or
// until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runLoop(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runJob(ctx, job)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Scheduled job panicked",
				zap.String("job", job.Name),
				zap.Any("panic", r),
				zap.Stack("stacktrace"),
			)
		}
	}()

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	now := s.clock()
	start := time.Now()
	if err := job.Run(jobCtx, now); err != nil {
		s.logger.Error("Scheduled job failed",
			zap.String("job", job.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("Scheduled job completed",
		zap.String("job", job.Name),
		zap.Duration("elapsed", time.Since(start)),
	)
}
