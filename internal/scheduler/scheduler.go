// apps/tracker/internal/scheduler/scheduler.go
//
// Runs daily jobs at local midnight: refreshing the cached puzzle and
// announcing the previous day's winners. Jobs must tolerate running twice
// for the same day; RunNow may be called at any time.

package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Job is one daily task.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler fires its jobs once per day at 00:00 in loc.
type Scheduler struct {
	loc   *time.Location
	now   func() time.Time
	after func(time.Duration) <-chan time.Time
	jobs  []Job
	log   zerolog.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// New returns a stopped scheduler for jobs.
func New(loc *time.Location, jobs ...Job) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{loc: loc, now: time.Now, after: time.After, jobs: jobs, log: log.Logger}
}

// WithTimer replaces time.Now and time.After.
func (s *Scheduler) WithTimer(now func() time.Time, after func(time.Duration) <-chan time.Time) *Scheduler {
	s.now, s.after = now, after
	return s
}

// NextMidnight returns the first 00:00 in loc strictly after t.
func NextMidnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// Start launches the loop. It returns immediately; Stop or ctx ends it.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(ctx, s.stop, s.done)
}

// Stop ends the loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (s *Scheduler) loop(ctx context.Context, stop, done chan struct{}) {
	defer close(done)
	for {
		now := s.now()
		next := NextMidnight(now, s.loc)
		s.log.Debug().Time("next", next).Msg("scheduler sleeping")
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-s.after(next.Sub(now)):
			s.RunNow(ctx)
		}
	}
}

// RunNow runs every job in order. A failing job is logged and does not
// stop the others.
func (s *Scheduler) RunNow(ctx context.Context) {
	for _, j := range s.jobs {
		start := time.Now()
		if err := j.Run(ctx); err != nil {
			s.log.Warn().Err(err).Str("job", j.Name).Msg("scheduled job failed")
			continue
		}
		s.log.Info().Str("job", j.Name).Dur("took", time.Since(start)).Msg("scheduled job done")
	}
}
