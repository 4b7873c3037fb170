// apps/tracker/internal/wordle/board.go
//
// Board is the grid of tiles under the header of a shared Wordle result.
//
// Parsing rules:
//   - Lines are scanned top to bottom; blank lines are layout, not rows.
//   - Scanning stops once MaxRows rows are collected; later lines are ignored.
//   - A line containing "::" came from a platform that textualizes emoji
//     (":large_green_square::black_large_square:...") and uses the alias
//     tokenizer. Anything else is split into grapheme clusters.
//   - At most MaxCols tiles per row; a lone row must be all Green.

package wordle

import (
	"strings"

	"github.com/rivo/uniseg"
)

const (
	MaxRows = 6 // guesses allowed per game
	MaxCols = 5 // letters per word
)

// Board is an immutable grid of tile rows, first guess first.
type Board struct {
	rows [][]Tile
}

// tokenizer splits one board line into tile tokens.
type tokenizer func(line string) []string

// aliasTokens handles ":name::name:" lines.
func aliasTokens(line string) []string {
	parts := strings.Split(line, "::")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, ":", "")
	}
	return parts
}

// glyphTokens splits a line into user-perceived characters. Emoji
// presentation selectors (U+FE0F) are dropped from each glyph.
func glyphTokens(line string) []string {
	var out []string
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		s := strings.ReplaceAll(g.Str(), "\uFE0F", "")
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// tokenizerFor sniffs a line and picks the matching tokenizer.
func tokenizerFor(line string) tokenizer {
	if strings.Contains(line, "::") {
		return aliasTokens
	}
	return glyphTokens
}

// ParseBoard parses the multi-line board section of a share message.
func ParseBoard(text string) (Board, error) {
	var rows [][]Tile
	for _, line := range strings.Split(text, "\n") {
		if len(rows) == MaxRows {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		tokens := tokenizerFor(line)(line)
		if len(tokens) == 0 {
			continue // nothing but selectors
		}
		row := make([]Tile, 0, len(tokens))
		for _, tok := range tokens {
			t, err := ParseTile(tok)
			if err != nil {
				return Board{}, &ParseError{Kind: KindTile, Input: tok, Line: line, Reason: "unrecognized tile token"}
			}
			row = append(row, t)
		}
		if len(row) > MaxCols {
			return Board{}, &ParseError{Kind: KindBoard, Line: line, Reason: "row has more than 5 tiles"}
		}
		rows = append(rows, row)
	}
	return NewBoard(rows)
}

// NewBoard validates rows and returns a Board that owns a copy of them.
func NewBoard(rows [][]Tile) (Board, error) {
	switch {
	case len(rows) == 0:
		return Board{}, &ParseError{Kind: KindBoard, Reason: "no rows"}
	case len(rows) > MaxRows:
		return Board{}, &ParseError{Kind: KindBoard, Reason: "more than 6 rows"}
	}
	cp := make([][]Tile, len(rows))
	for i, r := range rows {
		if len(r) > MaxCols {
			return Board{}, &ParseError{Kind: KindBoard, Reason: "row has more than 5 tiles"}
		}
		cp[i] = append([]Tile(nil), r...)
	}
	if len(cp) == 1 && (len(cp[0]) != MaxCols || !allGreen(cp[0])) {
		return Board{}, &ParseError{Kind: KindBoard, Reason: "only one row and not a full green row"}
	}
	return Board{rows: cp}, nil
}

// Len returns the number of rows.
func (b Board) Len() int { return len(b.rows) }

// Rows returns a copy of the board's rows.
func (b Board) Rows() [][]Tile {
	out := make([][]Tile, len(b.rows))
	for i, r := range b.rows {
		out[i] = append([]Tile(nil), r...)
	}
	return out
}

// Solved reports whether the last row is a full row of Green tiles.
func (b Board) Solved() bool {
	if len(b.rows) == 0 {
		return false
	}
	last := b.rows[len(b.rows)-1]
	return len(last) == MaxCols && allGreen(last)
}

// Equal reports whether two boards hold the same tiles.
func (b Board) Equal(o Board) bool {
	if len(b.rows) != len(o.rows) {
		return false
	}
	for i := range b.rows {
		if len(b.rows[i]) != len(o.rows[i]) {
			return false
		}
		for j := range b.rows[i] {
			if b.rows[i][j] != o.rows[i][j] {
				return false
			}
		}
	}
	return true
}

// String encodes the board in canonical square form, one row per line.
func (b Board) String() string {
	var sb strings.Builder
	for i, r := range b.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, t := range r {
			sb.WriteString(t.String())
		}
	}
	return sb.String()
}

// MarshalText encodes the board in canonical form.
func (b Board) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText parses either tile alphabet.
func (b *Board) UnmarshalText(text []byte) error {
	parsed, err := ParseBoard(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// allGreen returns true if every tile is Green.
func allGreen(row []Tile) bool {
	for _, t := range row {
		if t != Green {
			return false
		}
	}
	return true
}
