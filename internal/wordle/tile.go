// apps/tracker/internal/wordle/tile.go
//
// Tile is the per-letter result symbol found in a shared Wordle board.
// Adapted from the engine's Mark enum: same three outcomes, but the textual
// forms are the ones chat platforms actually deliver.
//
// Accepted input alphabets:
//   - Unicode squares:  ⬛ 🟨 🟩
//   - Named aliases:    black_large_square, large_yellow_square, large_green_square
//
// Output is always the Unicode square.

package wordle

// Tile represents the evaluation result for a single letter of a guess.
type Tile uint8

const (
	Black  Tile = iota // letter not in the answer
	Yellow             // letter in the answer, wrong position
	Green              // letter in the correct position
)

var tileSquares = [...]string{
	Black:  "⬛",
	Yellow: "🟨",
	Green:  "🟩",
}

var tileTokens = map[string]Tile{
	"⬛":                   Black,
	"🟨":                   Yellow,
	"🟩":                   Green,
	"black_large_square":  Black,
	"large_yellow_square": Yellow,
	"large_green_square":  Green,
}

// ParseTile converts a single square glyph or alias token into a Tile.
// Matching is exact and case-sensitive.
func ParseTile(token string) (Tile, error) {
	if t, ok := tileTokens[token]; ok {
		return t, nil
	}
	return 0, &ParseError{Kind: KindTile, Input: token, Reason: "unrecognized tile token"}
}

// String returns the canonical Unicode square for t.
func (t Tile) String() string {
	if int(t) < len(tileSquares) {
		return tileSquares[t]
	}
	return "?"
}
