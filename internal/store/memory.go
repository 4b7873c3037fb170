// apps/tracker/internal/store/memory.go
//
// In-memory implementation of Store.
// Used by tests and by `serve --db=:memory:` when durability is not required.
//
// Characteristics:
//   - Rows kept in insertion order in a slice; two index maps enforce the
//     uniqueness rules.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"strconv"
	"sync"
)

// memory is an in-memory slice-backed Store implementation.
type memory struct {
	mu     sync.RWMutex        // guards everything below
	rows   []Submission        // insertion order
	byDay  map[string]struct{} // submitted_by|day_offset
	byDate map[string]struct{} // submitted_by|submitted_date
	nextID int64
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		byDay:  make(map[string]struct{}),
		byDate: make(map[string]struct{}),
	}
}

func dayKey(s Submission) string  { return s.SubmittedBy + "|" + strconv.FormatUint(uint64(s.DayOffset), 10) }
func dateKey(s Submission) string { return s.SubmittedBy + "|" + s.SubmittedDate }

// Insert adds s unless it violates a uniqueness rule.
func (m *memory) Insert(ctx context.Context, s Submission) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byDay[dayKey(s)]; ok {
		return Submission{}, duplicate(ConflictDayOffset, s)
	}
	if _, ok := m.byDate[dateKey(s)]; ok {
		return Submission{}, duplicate(ConflictDate, s)
	}

	m.nextID++
	s.ID = m.nextID
	m.rows = append(m.rows, s)
	m.byDay[dayKey(s)] = struct{}{}
	m.byDate[dateKey(s)] = struct{}{}
	return s, nil
}

// ByDate returns the day's rows ordered by submission time.
func (m *memory) ByDate(ctx context.Context, date string) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Submission
	for _, s := range m.rows {
		if s.SubmittedDate == date {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return out, nil
}

// Recent returns the newest rows first. Default limit is 5.
func (m *memory) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 5
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]Submission(nil), m.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) Close() error { return nil }
