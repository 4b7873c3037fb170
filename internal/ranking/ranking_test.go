package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordle/apps/tracker/internal/store"
)

var t0 = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func sub(name string, attempts uint32, solved bool, minutes int, date string) store.Submission {
	return store.Submission{
		Submitter:     name,
		SubmittedBy:   name,
		SubmittedAt:   t0.Add(time.Duration(minutes) * time.Minute),
		SubmittedDate: date,
		Attempts:      attempts,
		Solved:        solved,
	}
}

func names(es []Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Submitter
	}
	return out
}

func ranks(es []Entry) []int {
	out := make([]int, len(es))
	for i, e := range es {
		out[i] = e.Rank
	}
	return out
}

func TestRank_Competition(t *testing.T) {
	subs := []store.Submission{
		sub("dave", 6, true, 1, "2024-01-01"),
		sub("bob", 2, true, 30, "2024-01-01"),
		sub("carol", 4, true, 5, "2024-01-01"),
		sub("alice", 2, true, 10, "2024-01-01"),
	}
	got := Rank(subs, "2024-01-01")
	assert.Equal(t, []int{1, 1, 3, 4}, ranks(got))
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, names(got))

	w := Winners(subs, "2024-01-01")
	assert.Equal(t, []string{"alice", "bob"}, names(w))
}

func TestRank_FiltersByDate(t *testing.T) {
	subs := []store.Submission{
		sub("alice", 3, true, 0, "2024-01-01"),
		sub("bob", 1, true, 0, "2023-12-31"),
	}
	got := Rank(subs, "2024-01-01")
	assert.Equal(t, []string{"alice"}, names(got))
	assert.Equal(t, []int{1}, ranks(got))
}

func TestRank_UnsolvedLast(t *testing.T) {
	subs := []store.Submission{
		sub("xavier", 6, false, 0, "2024-01-01"),
		sub("alice", 6, true, 5, "2024-01-01"),
		sub("yolanda", 6, false, 1, "2024-01-01"),
	}
	got := Rank(subs, "2024-01-01")
	assert.Equal(t, []string{"alice", "xavier", "yolanda"}, names(got))
	assert.Equal(t, []int{1, 2, 2}, ranks(got))
}

func TestRank_ManyTies(t *testing.T) {
	subs := []store.Submission{
		sub("a", 3, true, 0, "d"),
		sub("b", 3, true, 1, "d"),
		sub("c", 3, true, 2, "d"),
		sub("d", 4, true, 3, "d"),
		sub("e", 5, true, 4, "d"),
		sub("f", 5, true, 5, "d"),
		sub("g", 6, true, 6, "d"),
	}
	assert.Equal(t, []int{1, 1, 1, 4, 5, 5, 7}, ranks(Rank(subs, "d")))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil, "2024-01-01"))
	assert.Empty(t, Winners(nil, "2024-01-01"))
}
