// apps/tracker/internal/daily/cache.go
//
// Cache holds the process-wide "today's puzzle" metadata.
//
// Behavior:
//   - Get(ctx, false) returns the cached value when its PrintDate is today.
//   - A stale or missing value (or force=true) triggers a refresh.
//   - A refresh makes FetchAttempts calls to the Source at most.
//   - When every attempt fails the previous value is served unchanged; with
//     no previous value a puzzle is synthesized from LaunchDate and cached.
//
// Readers load an atomic pointer and never block on a refresh. Concurrent
// refreshes for the same date share a single fetch via singleflight, and
// the swap itself is a single pointer store.

package daily

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// FetchAttempts is the number of Source calls made per refresh.
const FetchAttempts = 2

// ErrFetchExhausted is reported when every fetch attempt failed.
var ErrFetchExhausted = errors.New("daily: puzzle metadata fetch exhausted")

// Cache is safe for concurrent use.
type Cache struct {
	src     Source
	loc     *time.Location
	now     func() time.Time
	backoff time.Duration
	log     zerolog.Logger

	cur   atomic.Pointer[CurrentPuzzle]
	group singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithLocation sets the timezone that decides what "today" is.
func WithLocation(loc *time.Location) Option { return func(c *Cache) { c.loc = loc } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(c *Cache) { c.now = now } }

// WithBackoff sets the pause between fetch attempts.
func WithBackoff(d time.Duration) Option { return func(c *Cache) { c.backoff = d } }

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option { return func(c *Cache) { c.log = l } }

// NewCache constructs an empty cache over src. Nothing is fetched until the
// first Get.
func NewCache(src Source, opts ...Option) *Cache {
	c := &Cache{
		src: src,
		loc: time.UTC,
		now: time.Now,
		log: log.Logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Today returns the current date key in the cache's timezone.
func (c *Cache) Today() string { return DateKey(c.now(), c.loc) }

// Location returns the cache's timezone.
func (c *Cache) Location() *time.Location { return c.loc }

// Peek returns the cached value without refreshing.
func (c *Cache) Peek() (CurrentPuzzle, bool) {
	if p := c.cur.Load(); p != nil {
		return *p, true
	}
	return CurrentPuzzle{}, false
}

// Get returns today's puzzle metadata, refreshing when forced or stale.
// It always returns a usable value.
func (c *Cache) Get(ctx context.Context, force bool) CurrentPuzzle {
	now := c.now()
	today := DateKey(now, c.loc)
	if !force {
		if p := c.cur.Load(); p != nil && p.PrintDate == today {
			return *p
		}
	}

	// The fetch is shared by every caller waiting on this date, so it must
	// not die with the first caller's context.
	shared := context.WithoutCancel(ctx)
	v, _, _ := c.group.Do(today, func() (any, error) {
		// A flight that finished after our first look may already have stored today.
		if !force {
			if p := c.cur.Load(); p != nil && p.PrintDate == today {
				return *p, nil
			}
		}
		return c.refresh(shared, now, today), nil
	})
	return v.(CurrentPuzzle)
}

// Refresh forces a fetch. The scheduler calls it once a day.
func (c *Cache) Refresh(ctx context.Context) CurrentPuzzle { return c.Get(ctx, true) }

func (c *Cache) refresh(ctx context.Context, now time.Time, today string) CurrentPuzzle {
	p, err := c.fetch(ctx, today)
	if err == nil {
		c.cur.Store(&p)
		c.log.Info().Object("puzzle", p).Msg("daily puzzle refreshed")
		return p
	}

	if prev := c.cur.Load(); prev != nil {
		c.log.Warn().Err(err).Str("print_date", prev.PrintDate).Msg("serving stale daily puzzle")
		return *prev
	}

	syn := CurrentPuzzle{
		DayOffset: DaysSinceLaunch(now, c.loc),
		PrintDate: today,
	}
	if !c.cur.CompareAndSwap(nil, &syn) {
		return *c.cur.Load()
	}
	c.log.Warn().Err(err).Object("puzzle", syn).Msg("synthesized daily puzzle")
	return syn
}

func (c *Cache) fetch(ctx context.Context, today string) (CurrentPuzzle, error) {
	var last error
	for i := 1; i <= FetchAttempts; i++ {
		p, err := c.src.Fetch(ctx, today)
		if err == nil {
			if p.PrintDate == "" {
				p.PrintDate = today
			}
			return p, nil
		}
		last = err
		remaining := FetchAttempts - i
		c.log.Warn().Err(err).Int("attempts_remaining", remaining).Str("date", today).Msg("fetch daily puzzle")
		if remaining > 0 && c.backoff > 0 {
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return CurrentPuzzle{}, fmt.Errorf("%w: %w", ErrFetchExhausted, ctx.Err())
			}
		}
	}
	return CurrentPuzzle{}, fmt.Errorf("%w: %w", ErrFetchExhausted, last)
}
