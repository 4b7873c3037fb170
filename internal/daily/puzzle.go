// apps/tracker/internal/daily/puzzle.go
//
// CurrentPuzzle is the official metadata for one day's puzzle, as served by
// the puzzle-metadata endpoint:
//
//	{"id":1234,"days_since_launch":1100,"print_date":"2024-06-23","solution":"crane","editor":"..."}
//
// The solution is a spoiler. Every representation meant for humans or logs
// (String, GoString, JSON, zerolog) masks it; Reveal is the only way out.

package daily

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

const mask = "********"

// Secret is a string that never prints its contents.
type Secret string

// Reveal returns the underlying value.
func (s Secret) Reveal() string { return string(s) }

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return mask
}

func (s Secret) GoString() string { return fmt.Sprintf("%q", s.String()) }

// MarshalJSON emits the masked form.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// UnmarshalJSON accepts the plain string served by the metadata endpoint.
func (s *Secret) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Secret(v)
	return nil
}

// CurrentPuzzle is today's puzzle metadata. PrintDate is the watermark the
// cache compares against the current date.
type CurrentPuzzle struct {
	ID        int    `json:"id"`
	DayOffset int    `json:"days_since_launch"`
	PrintDate string `json:"print_date"`
	Solution  Secret `json:"solution"`
	Editor    string `json:"editor"`
}

func (p CurrentPuzzle) String() string {
	return fmt.Sprintf("CurrentPuzzle{id: %d, days_since_launch: %d, print_date: %s, solution: %s, editor: %s}",
		p.ID, p.DayOffset, p.PrintDate, p.Solution, p.Editor)
}

func (p CurrentPuzzle) GoString() string { return p.String() }

// MarshalZerologObject lets the puzzle be logged with .Object().
func (p CurrentPuzzle) MarshalZerologObject(e *zerolog.Event) {
	e.Int("id", p.ID).
		Int("days_since_launch", p.DayOffset).
		Str("print_date", p.PrintDate).
		Str("solution", p.Solution.String()).
		Str("editor", p.Editor)
}

// Synthesized reports whether p was computed locally instead of fetched.
func (p CurrentPuzzle) Synthesized() bool { return p.ID == 0 && p.Solution == "" }
