package wordle

import (
	"errors"
	"fmt"
)

// Kind classifies why share text failed to parse.
type Kind string

const (
	KindHeader  Kind = "malformed_header" // header grammar mismatch
	KindNumeric Kind = "malformed_number" // header matched but a number did not fit
	KindBoard   Kind = "malformed_board"  // row count, row length or single-row rule
	KindTile    Kind = "invalid_tile"     // unknown tile token
)

// Sentinels for errors.Is matching against a *ParseError's Kind.
var (
	ErrMalformedHeader  = errors.New("wordle: malformed header")
	ErrMalformedBoard   = errors.New("wordle: malformed board")
	ErrInvalidTileToken = errors.New("wordle: invalid tile token")
)

// ParseError is returned by ParseTile, ParseBoard and ParsePuzzle.
//
// Kind identifies which part of the share text was at fault. Line carries
// the offending board line for tile errors and is empty otherwise.
type ParseError struct {
	Kind   Kind
	Input  string
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line != "":
		return fmt.Sprintf("wordle: %s: %s %q in line %q", e.Kind, e.Reason, e.Input, e.Line)
	case e.Input != "":
		return fmt.Sprintf("wordle: %s: %s %q", e.Kind, e.Reason, e.Input)
	default:
		return fmt.Sprintf("wordle: %s: %s", e.Kind, e.Reason)
	}
}

// Is lets errors.Is match a ParseError against the package sentinels.
// Numeric failures count as header failures.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrMalformedHeader:
		return e.Kind == KindHeader || e.Kind == KindNumeric
	case ErrMalformedBoard:
		return e.Kind == KindBoard
	case ErrInvalidTileToken:
		return e.Kind == KindTile
	}
	return false
}
