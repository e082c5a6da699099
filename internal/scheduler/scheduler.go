package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Flusher writes out deferred work.
type Flusher interface {
	Flush(ctx context.Context)
}

// Scheduler periodically flushes deferred preference writes so that toggles
// never wait on storage.
type Scheduler struct {
	scheduler *gocron.Scheduler
	flusher   Flusher
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, flusher Flusher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		flusher:   flusher,
		interval:  interval,
	}
}

// Start schedules the flush job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.flusher == nil {
		log.Println("scheduler: no flusher configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = time.Second
	}

	_, err := s.scheduler.Every(interval).Do(s.flush)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and runs one final flush.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	if s.flusher != nil {
		s.flush()
	}
}

func (s *Scheduler) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.flusher.Flush(ctx)
}
