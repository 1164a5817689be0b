package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler repeats the retention sweep on a cron schedule (seconds field enabled).
type Scheduler struct {
	cron     *cron.Cron
	cleanup  *Cleanup
	schedule string
	log      zerolog.Logger
}

func NewScheduler(cleanup *Cleanup, schedule string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		cleanup:  cleanup,
		schedule: schedule,
		log:      log,
	}
}

// Start registers the sweep and starts the cron loop. An empty schedule
// leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.schedule == "" || s.cleanup == nil {
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.runCleanup); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("cleanup scheduler started")
	return nil
}

// Stop halts the scheduler and waits up to timeout for a running sweep.
func (s *Scheduler) Stop(timeout time.Duration) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(timeout):
		s.log.Warn().Msg("cleanup still running at shutdown")
	}
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	s.cleanup.Run(ctx)
}
