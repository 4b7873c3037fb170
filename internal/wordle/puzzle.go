// apps/tracker/internal/wordle/puzzle.go
//
// Puzzle is one player's shared result, parsed from chat text such as:
//
//	Wordle 1,234 4/6*
//
//	🟩⬛⬛🟨⬛
//	⬛🟨⬛⬛🟩
//	🟩🟩⬛🟩🟩
//	🟩🟩🟩🟩🟩
//
// Header grammar: "Wordle " GROUPED_DAY " " ([1-6] | "X") "/6" ["*"].
// Only the first line is the header; everything after it is the board.

package wordle

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// FailedMarker replaces the attempt count when the puzzle was not solved.
	FailedMarker = "X"
	// HardModeMarker trails the header when the game was played in hard mode.
	HardModeMarker = "*"
)

var headerRe = regexp.MustCompile(`^Wordle (\d{1,3}(?:,\d{3})*) ([1-6]|X)/6(\*)?$`)

// Puzzle holds a parsed share message. Attempts is MaxRows when unsolved.
type Puzzle struct {
	DayOffset uint32 `json:"dayOffset"`
	Attempts  uint32 `json:"attempts"`
	Solved    bool   `json:"solved"`
	HardMode  bool   `json:"hardMode"`
	Board     Board  `json:"board"`
}

// ParsePuzzle parses share text into a Puzzle. A header that does not match
// the grammar fails before the board is looked at.
func ParsePuzzle(text string) (Puzzle, error) {
	header, body, _ := strings.Cut(text, "\n")
	header = strings.TrimSpace(header)

	m := headerRe.FindStringSubmatch(header)
	if m == nil {
		return Puzzle{}, &ParseError{Kind: KindHeader, Input: header, Reason: "not a Wordle header"}
	}

	day, err := UngroupDayOffset(m[1])
	if err != nil {
		return Puzzle{}, &ParseError{Kind: KindNumeric, Input: m[1], Reason: "day offset out of range"}
	}
	attempts, solved := parseAttempts(m[2])

	board, err := ParseBoard(body)
	if err != nil {
		return Puzzle{}, err
	}

	return Puzzle{
		DayOffset: day,
		Attempts:  attempts,
		Solved:    solved,
		HardMode:  m[3] == HardModeMarker,
		Board:     board,
	}, nil
}

// parseAttempts maps the attempts token. Anything other than a digit 1–6
// counts as unsolved at the maximum so ranking stays well defined.
func parseAttempts(tok string) (uint32, bool) {
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil || n < 1 || n > MaxRows {
		return MaxRows, false
	}
	return uint32(n), true
}

// String encodes p as canonical share text.
func (p Puzzle) String() string {
	var sb strings.Builder
	sb.WriteString("Wordle ")
	sb.WriteString(GroupDayOffset(p.DayOffset))
	sb.WriteByte(' ')
	if p.Solved {
		sb.WriteString(strconv.FormatUint(uint64(p.Attempts), 10))
	} else {
		sb.WriteString(FailedMarker)
	}
	sb.WriteString("/6")
	if p.HardMode {
		sb.WriteString(HardModeMarker)
	}
	sb.WriteString("\n\n")
	sb.WriteString(p.Board.String())
	return sb.String()
}

// GroupDayOffset formats n with a comma every three digits from the right.
func GroupDayOffset(n uint32) string {
	s := strconv.FormatUint(uint64(n), 10)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// UngroupDayOffset strips grouping commas and parses the result.
func UngroupDayOffset(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.ReplaceAll(s, ",", ""), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
