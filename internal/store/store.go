// apps/tracker/internal/store/store.go
//
// Persistence for shared Wordle results.
//
// Every implementation enforces two uniqueness rules:
//   - one row per (SubmittedBy, DayOffset)
//   - one row per (SubmittedBy, SubmittedDate)
//
// A violation is reported as *DuplicateError naming the rule that fired.
// When both would fire, the DayOffset rule is reported.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/apps/tracker/internal/daily"
	"github.com/robalobadob/wordle/apps/tracker/internal/wordle"
)

// Submission is one stored result.
type Submission struct {
	ID            int64     `json:"id"`
	Submitter     string    `json:"submitter"`   // display name
	SubmittedBy   string    `json:"submittedBy"` // stable user id
	SubmittedAt   time.Time `json:"submittedAt"`
	SubmittedDate string    `json:"submittedDate"` // YYYY-MM-DD in the deployment timezone
	DayOffset     uint32    `json:"dayOffset"`
	Attempts      uint32    `json:"attempts"`
	Solved        bool      `json:"solved"`
	HardMode      bool      `json:"hardMode"`
	Puzzle        string    `json:"puzzle"` // canonical share text
}

// NewSubmission builds a row for p shared by userID at `at`.
func NewSubmission(userID, name string, p wordle.Puzzle, at time.Time, loc *time.Location) Submission {
	return Submission{
		Submitter:     name,
		SubmittedBy:   userID,
		SubmittedAt:   at.UTC(),
		SubmittedDate: daily.DateKey(at, loc),
		DayOffset:     p.DayOffset,
		Attempts:      p.Attempts,
		Solved:        p.Solved,
		HardMode:      p.HardMode,
		Puzzle:        p.String(),
	}
}

// Store defines the persistence interface for submissions.
type Store interface {
	// Insert stores s and returns it with ID set.
	Insert(ctx context.Context, s Submission) (Submission, error)

	// ByDate returns every submission for a date, oldest first.
	ByDate(ctx context.Context, date string) ([]Submission, error)

	// Recent returns up to limit submissions, newest first.
	Recent(ctx context.Context, limit int) ([]Submission, error)

	Close() error
}

// Conflict names the uniqueness rule a duplicate tripped.
type Conflict string

const (
	ConflictDayOffset Conflict = "day_offset"
	ConflictDate      Conflict = "submitted_date"
)

var (
	// ErrDuplicate matches any *DuplicateError.
	ErrDuplicate = errors.New("store: duplicate submission")
	// ErrPersistence wraps store failures that are not duplicates.
	ErrPersistence = errors.New("store: persistence failure")
)

// DuplicateError reports a uniqueness violation.
type DuplicateError struct {
	Conflict    Conflict
	SubmittedBy string
	DayOffset   uint32
	Date        string
}

func (e *DuplicateError) Error() string {
	if e.Conflict == ConflictDayOffset {
		return fmt.Sprintf("store: %s already submitted puzzle #%d", e.SubmittedBy, e.DayOffset)
	}
	return fmt.Sprintf("store: %s already submitted on %s", e.SubmittedBy, e.Date)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

func duplicate(c Conflict, s Submission) *DuplicateError {
	return &DuplicateError{Conflict: c, SubmittedBy: s.SubmittedBy, DayOffset: s.DayOffset, Date: s.SubmittedDate}
}
