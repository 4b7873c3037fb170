package wordle

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Wordle 1,234 4/6*

🟩⬛⬛🟨⬛
⬛🟨⬛⬛🟩
🟩🟩⬛🟩🟩
🟩🟩🟩🟩🟩`

func TestParsePuzzle_Sample(t *testing.T) {
	p, err := ParsePuzzle(sample)
	require.NoError(t, err)
	assert.Equal(t, uint32(1234), p.DayOffset)
	assert.Equal(t, uint32(4), p.Attempts)
	assert.True(t, p.Solved)
	assert.True(t, p.HardMode)
	assert.Equal(t, 4, p.Board.Len())
	assert.Equal(t, sample, p.String())
}

func TestParsePuzzle_Failed(t *testing.T) {
	text := "Wordle 987 X/6\n\n" +
		"⬛⬛⬛⬛⬛\n⬛⬛⬛⬛⬛\n⬛⬛⬛⬛⬛\n⬛⬛⬛⬛⬛\n⬛⬛⬛⬛⬛\n🟩🟩🟩🟩⬛"
	p, err := ParsePuzzle(text)
	require.NoError(t, err)
	assert.False(t, p.Solved)
	assert.False(t, p.HardMode)
	assert.Equal(t, uint32(MaxRows), p.Attempts)
	assert.Equal(t, uint32(987), p.DayOffset)
	assert.Equal(t, text, p.String())
}

func TestParsePuzzle_MalformedHeader(t *testing.T) {
	headers := []string{
		"wordle 123 4/6",
		"Wordle 1234 4/6",
		"Wordle 1,23 4/6",
		"Wordle 123 7/6",
		"Wordle 123 0/6",
		"Wordle 123 4/5",
		"Wordle 123 4/6**",
		"Wordle 123",
		"Wordle #123 4/6",
		"I got Wordle 123 4/6",
		"",
	}
	for _, h := range headers {
		// Board is invalid on purpose: a header failure must win.
		_, err := ParsePuzzle(h + "\n\nnot a board")
		require.Error(t, err, h)
		assert.ErrorIs(t, err, ErrMalformedHeader, "%q", h)

		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, KindHeader, pe.Kind, "%q", h)
	}
}

func TestParsePuzzle_DayOffsetOverflow(t *testing.T) {
	_, err := ParsePuzzle("Wordle 99,999,999,999 3/6\n\n⬛⬛⬛⬛⬛\n🟩🟩🟩🟩🟩")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, KindNumeric, pe.Kind)
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestParsePuzzle_BoardErrorsPropagate(t *testing.T) {
	_, err := ParsePuzzle("Wordle 1,000 1/6\n\n🟩🟩🟨🟩🟩")
	assert.ErrorIs(t, err, ErrMalformedBoard)

	_, err = ParsePuzzle("Wordle 1,000 2/6\n\n🟩🟩🟥🟩🟩\n🟩🟩🟩🟩🟩")
	assert.ErrorIs(t, err, ErrInvalidTileToken)

	_, err = ParsePuzzle("Wordle 1,000 2/6")
	assert.ErrorIs(t, err, ErrMalformedBoard)
}

func TestParsePuzzle_AliasBoard(t *testing.T) {
	text := "Wordle 1,001 2/6\n\n" +
		":black_large_square::large_yellow_square::black_large_square::black_large_square::large_green_square:\n" +
		":large_green_square::large_green_square::large_green_square::large_green_square::large_green_square:"
	p, err := ParsePuzzle(text)
	require.NoError(t, err)
	assert.Equal(t, "Wordle 1,001 2/6\n\n⬛🟨⬛⬛🟩\n🟩🟩🟩🟩🟩", p.String())
}

func TestDayOffsetGrouping(t *testing.T) {
	cases := map[uint32]string{
		0:          "0",
		7:          "7",
		999:        "999",
		1000:       "1,000",
		1234:       "1,234",
		12000:      "12,000",
		12345:      "12,345",
		999999:     "999,999",
		1000000:    "1,000,000",
		4294967295: "4,294,967,295",
	}
	for n, want := range cases {
		got := GroupDayOffset(n)
		assert.Equal(t, want, got)
		back, err := UngroupDayOffset(got)
		require.NoError(t, err)
		assert.Equal(t, n, back)
	}

	for n := uint32(0); n < 5000; n += 7 {
		back, err := UngroupDayOffset(GroupDayOffset(n))
		require.NoError(t, err)
		require.Equal(t, n, back)
	}
}

func TestPuzzleRoundTrip(t *testing.T) {
	green := []Tile{Green, Green, Green, Green, Green}
	miss := []Tile{Black, Yellow, Black, Black, Black}

	for attempts := 1; attempts <= MaxRows; attempts++ {
		rows := make([][]Tile, 0, attempts)
		for i := 1; i < attempts; i++ {
			rows = append(rows, miss)
		}
		rows = append(rows, green)
		board, err := NewBoard(rows)
		require.NoError(t, err)

		for _, hard := range []bool{false, true} {
			for _, day := range []uint32{0, 5, 999, 1000, 1234, 65432} {
				p := Puzzle{DayOffset: day, Attempts: uint32(attempts), Solved: true, HardMode: hard, Board: board}
				t.Run(fmt.Sprintf("%d-%v-%d", attempts, hard, day), func(t *testing.T) {
					got, err := ParsePuzzle(p.String())
					require.NoError(t, err)
					assert.Equal(t, p, got)
				})
			}
		}
	}

	failed := make([][]Tile, MaxRows)
	for i := range failed {
		failed[i] = miss
	}
	board, err := NewBoard(failed)
	require.NoError(t, err)
	p := Puzzle{DayOffset: 1500, Attempts: MaxRows, Solved: false, Board: board}
	got, err := ParsePuzzle(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestPuzzleJSON(t *testing.T) {
	p, err := ParsePuzzle(sample)
	require.NoError(t, err)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"dayOffset":1234`)

	var back Puzzle
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, p, back)
}
