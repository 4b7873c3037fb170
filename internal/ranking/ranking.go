// apps/tracker/internal/ranking/ranking.go
//
// Leaderboard math over one day's submissions.
//
// Ranking is standard competition ("1224") ranking on attempts, fewest
// first: tied entries share a rank and the next distinct score is ranked
// one past the number of entries strictly ahead of it. Unsolved entries
// rank behind every solved one. Within a rank, entries are listed by
// submission time.
//
// These are pure functions; callers fetch the rows.

package ranking

import (
	"sort"

	"github.com/robalobadob/wordle/apps/tracker/internal/store"
	"github.com/robalobadob/wordle/apps/tracker/internal/wordle"
)

// Entry is a submission annotated with its rank for the day.
type Entry struct {
	Rank int `json:"rank"`
	store.Submission
}

// score is the ranking key; lower is better.
func score(s store.Submission) uint32 {
	if !s.Solved {
		return wordle.MaxRows + 1
	}
	return s.Attempts
}

// Rank ranks the submissions made on date. Rows for other dates are ignored.
func Rank(subs []store.Submission, date string) []Entry {
	out := make([]Entry, 0, len(subs))
	for _, s := range subs {
		if s.SubmittedDate == date {
			out = append(out, Entry{Submission: s})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := score(out[i].Submission), score(out[j].Submission)
		if si != sj {
			return si < sj
		}
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})

	for i := range out {
		if i > 0 && score(out[i].Submission) == score(out[i-1].Submission) {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out
}

// Winners returns the rank-1 entries for date, earliest submission first.
func Winners(subs []store.Submission, date string) []Entry {
	ranked := Rank(subs, date)
	n := 0
	for n < len(ranked) && ranked[n].Rank == 1 {
		n++
	}
	return ranked[:n]
}
