package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNextMidnight(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	got := NextMidnight(time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC), est)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, est), got)

	got = NextMidnight(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got)

	got = NextMidnight(time.Date(2024, 12, 31, 5, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestScheduler_FiresJobsOnTick(t *testing.T) {
	ticks := make(chan time.Time)
	var waits []time.Duration
	waited := make(chan time.Duration, 8)

	var refreshed, announced atomic.Int32
	ran := make(chan struct{}, 8)
	s := New(time.UTC,
		Job{Name: "refresh", Run: func(ctx context.Context) error { refreshed.Add(1); return nil }},
		Job{Name: "announce", Run: func(ctx context.Context) error {
			announced.Add(1)
			ran <- struct{}{}
			return errors.New("channel gone")
		}},
	).WithTimer(
		func() time.Time { return time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC) },
		func(d time.Duration) <-chan time.Time { waited <- d; return ticks },
	)

	s.Start(context.Background())
	waits = append(waits, <-waited)
	ticks <- time.Now()
	<-ran
	waits = append(waits, <-waited)
	s.Stop()

	assert.Equal(t, int32(1), refreshed.Load())
	assert.Equal(t, int32(1), announced.Load())
	assert.Equal(t, []time.Duration{6 * time.Hour, 6 * time.Hour}, waits)
}

func TestScheduler_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(nil).WithTimer(time.Now, func(time.Duration) <-chan time.Time { return nil })
	s.Start(ctx)
	s.Start(ctx) // second start is a no-op
	cancel()
	s.Stop()
	s.Stop()
}

func TestScheduler_RunNowIsRepeatable(t *testing.T) {
	var n atomic.Int32
	s := New(time.UTC, Job{Name: "count", Run: func(ctx context.Context) error { n.Add(1); return nil }})
	s.RunNow(context.Background())
	s.RunNow(context.Background())
	assert.Equal(t, int32(2), n.Load())
}
