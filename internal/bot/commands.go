package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/tracker/internal/daily"
	"github.com/robalobadob/wordle/apps/tracker/internal/ranking"
	"github.com/robalobadob/wordle/apps/tracker/internal/store"
	"github.com/robalobadob/wordle/apps/tracker/internal/wordle"
)

// recentLimit is how many rows `wordle recent` lists.
const recentLimit = 5

// HandleCommand answers the `wordle` chat command and posts the reply to
// the message's channel. Arguments: today (default), yesterday, recent.
func (h *Handler) HandleCommand(ctx context.Context, msg Message, args []string) (string, error) {
	sub := "today"
	if len(args) > 0 {
		sub = strings.ToLower(strings.TrimSpace(args[0]))
	}

	var (
		reply string
		err   error
	)
	switch sub {
	case "today", "":
		reply, err = h.Leaderboard(ctx, h.today.Today())
	case "yesterday":
		reply, err = h.Leaderboard(ctx, daily.Yesterday(h.now(), h.today.Location()))
	case "recent":
		reply, err = h.recent(ctx)
	default:
		reply = "usage: wordle [today|yesterday|recent]"
	}
	if err != nil {
		h.log.Warn().Err(err).Str("command", sub).Msg("wordle command")
		return "", err
	}
	if err := h.sink.Send(ctx, msg.ChannelID, reply); err != nil {
		h.log.Warn().Err(err).Msg("send command reply")
	}
	return reply, nil
}

// Leaderboard renders the ranked submissions for date.
func (h *Handler) Leaderboard(ctx context.Context, date string) (string, error) {
	rows, err := h.store.ByDate(ctx, date)
	if err != nil {
		return "", err
	}
	ranked := ranking.Rank(rows, date)
	if len(ranked) == 0 {
		return fmt.Sprintf("No Wordle submissions for %s.", date), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Wordle #%s leaderboard for %s", wordle.GroupDayOffset(ranked[0].DayOffset), date)
	for _, e := range ranked {
		fmt.Fprintf(&sb, "\n%d. %s %s", e.Rank, e.Submitter, score(e.Submission))
	}
	return sb.String(), nil
}

// AnnounceWinners posts date's winners to channelID. Running it twice for
// the same date posts the same text twice; deduplication is the caller's.
func (h *Handler) AnnounceWinners(ctx context.Context, channelID, date string) (string, error) {
	rows, err := h.store.ByDate(ctx, date)
	if err != nil {
		return "", err
	}
	winners := ranking.Winners(rows, date)

	var text string
	if len(winners) == 0 {
		text = fmt.Sprintf("No Wordle submissions for %s.", date)
	} else {
		names := make([]string, len(winners))
		for i, w := range winners {
			names[i] = w.Submitter
		}
		text = fmt.Sprintf("Wordle #%s winners for %s: %s with %s",
			wordle.GroupDayOffset(winners[0].DayOffset), date, strings.Join(names, ", "), score(winners[0].Submission))
	}
	if err := h.sink.Send(ctx, channelID, text); err != nil {
		return text, err
	}
	return text, nil
}

func (h *Handler) recent(ctx context.Context) (string, error) {
	rows, err := h.store.Recent(ctx, recentLimit)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No Wordle submissions yet.", nil
	}
	var sb strings.Builder
	sb.WriteString("Recent Wordle submissions")
	for _, r := range rows {
		fmt.Fprintf(&sb, "\n#%s %s %s (%s)", wordle.GroupDayOffset(r.DayOffset), r.Submitter, score(r), r.SubmittedDate)
	}
	return sb.String(), nil
}

// score renders attempts the way the share header does: "3/6", "X/6*".
func score(s store.Submission) string {
	a := wordle.FailedMarker
	if s.Solved {
		a = fmt.Sprint(s.Attempts)
	}
	out := a + "/6"
	if s.HardMode {
		out += wordle.HardModeMarker
	}
	return out
}
