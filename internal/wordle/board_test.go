package wordle

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTile(t *testing.T) {
	cases := map[string]Tile{
		"⬛":                   Black,
		"🟨":                   Yellow,
		"🟩":                   Green,
		"black_large_square":  Black,
		"large_yellow_square": Yellow,
		"large_green_square":  Green,
	}
	for in, want := range cases {
		got, err := ParseTile(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "G", "Large_green_square", "🟥", "⬜", ":large_green_square:"} {
		_, err := ParseTile(bad)
		assert.ErrorIs(t, err, ErrInvalidTileToken, "%q", bad)
	}
}

func TestTileStringIsSquare(t *testing.T) {
	assert.Equal(t, "⬛", Black.String())
	assert.Equal(t, "🟨", Yellow.String())
	assert.Equal(t, "🟩", Green.String())
}

func TestParseBoard_SingleRow(t *testing.T) {
	b, err := ParseBoard("🟩🟩🟩🟩🟩")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
	assert.True(t, b.Solved())

	_, err = ParseBoard("🟩🟩🟩")
	assert.ErrorIs(t, err, ErrMalformedBoard, "a lone row must be a full word")

	_, err = ParseBoard("🟩🟩🟩🟩🟨")
	assert.ErrorIs(t, err, ErrMalformedBoard)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindBoard, pe.Kind)
}

func TestParseBoard_TruncatesAfterSixRows(t *testing.T) {
	rows := []string{
		"⬛⬛⬛⬛⬛",
		"🟨⬛⬛⬛⬛",
		"🟨🟨⬛⬛⬛",
		"🟩🟨⬛⬛⬛",
		"🟩🟩⬛⬛⬛",
		"🟩🟩🟩⬛⬛",
		"🟩🟩🟩🟩🟩",
	}
	b, err := ParseBoard(strings.Join(rows, "\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, b.Len())
	assert.Equal(t, strings.Join(rows[:6], "\n"), b.String())

	// The seventh line is never tokenized, so garbage there is harmless.
	b, err = ParseBoard(strings.Join(append(rows[:6:6], "not a row"), "\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, b.Len())
}

func TestParseBoard_AliasMatchesSquares(t *testing.T) {
	alias := ":large_green_square::large_green_square::large_green_square::large_green_square::large_green_square:"
	a, err := ParseBoard(alias)
	require.NoError(t, err)
	u, err := ParseBoard("🟩🟩🟩🟩🟩")
	require.NoError(t, err)
	assert.True(t, a.Equal(u))
	assert.Empty(t, cmp.Diff(u.Rows(), a.Rows()))

	mixed := ":black_large_square::large_yellow_square::black_large_square::black_large_square::black_large_square:\n" + alias
	b, err := ParseBoard(mixed)
	require.NoError(t, err)
	assert.Equal(t, "⬛🟨⬛⬛⬛\n🟩🟩🟩🟩🟩", b.String())
}

func TestParseBoard_SkipsBlankLinesAndSelectors(t *testing.T) {
	b, err := ParseBoard("\n\n⬛\uFE0F🟨⬛⬛⬛\r\n\n🟩🟩🟩🟩🟩\n")
	require.NoError(t, err)
	want := [][]Tile{
		{Black, Yellow, Black, Black, Black},
		{Green, Green, Green, Green, Green},
	}
	if diff := cmp.Diff(want, b.Rows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBoard_SelectorOnlyLineIsBlank(t *testing.T) {
	b, err := ParseBoard("\uFE0F\n⬛🟨⬛⬛⬛\n\uFE0F\uFE0F\n🟩🟩🟩🟩🟩")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "⬛🟨⬛⬛⬛\n🟩🟩🟩🟩🟩", b.String())

	p, err := ParsePuzzle("Wordle 926 2/6\n\n" + "\uFE0F\n⬛🟨⬛⬛⬛\n🟩🟩🟩🟩🟩")
	require.NoError(t, err)
	again, err := ParsePuzzle(p.String())
	require.NoError(t, err)
	assert.True(t, p.Board.Equal(again.Board))
	assert.Equal(t, 2, again.Board.Len())

	_, err = ParseBoard("\uFE0F")
	assert.ErrorIs(t, err, ErrMalformedBoard, "selectors alone are an empty board")
}

func TestParseBoard_Failures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrMalformedBoard},
		{"only blank lines", "\n \n\n", ErrMalformedBoard},
		{"row too long", "⬛⬛⬛⬛⬛⬛\n🟩🟩🟩🟩🟩", ErrMalformedBoard},
		{"unknown glyph", "⬛⬜⬛⬛⬛\n🟩🟩🟩🟩🟩", ErrInvalidTileToken},
		{"unknown alias", ":black_large_square::white_large_square:\n🟩🟩🟩🟩🟩", ErrInvalidTileToken},
		{"letters", "hello", ErrInvalidTileToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBoard(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseBoard_TileErrorCarriesLine(t *testing.T) {
	_, err := ParseBoard("⬛⬛x⬛⬛\n🟩🟩🟩🟩🟩")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindTile, pe.Kind)
	assert.Equal(t, "x", pe.Input)
	assert.Equal(t, "⬛⬛x⬛⬛", pe.Line)
}

func TestNewBoardValidates(t *testing.T) {
	_, err := NewBoard(nil)
	assert.ErrorIs(t, err, ErrMalformedBoard)

	seven := make([][]Tile, 7)
	for i := range seven {
		seven[i] = []Tile{Green, Green, Green, Green, Green}
	}
	_, err = NewBoard(seven)
	assert.ErrorIs(t, err, ErrMalformedBoard)

	src := [][]Tile{{Black, Black, Black, Black, Black}, {Green, Green, Green, Green, Green}}
	b, err := NewBoard(src)
	require.NoError(t, err)
	src[0][0] = Green
	assert.Equal(t, Black, b.Rows()[0][0], "board must not alias caller rows")
}
