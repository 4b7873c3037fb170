// apps/tracker/internal/bot/handler.go
//
// Chat message handling for the tracker.
// Flow per inbound message (run to completion, no shared locks):
//   1. Ignore anything not posted by a user in a chat room.
//   2. Parse the text as a share. Text without a Wordle header is chatter
//      and is ignored; any other parse failure is rejected.
//   3. Compare the day offset with today's puzzle from the daily cache.
//   4. Insert; the store's uniqueness rules decide duplicates.
//   5. React: ✅ accepted, ❌ rejected, ❌📅 wrong day.

package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/tracker/internal/daily"
	"github.com/robalobadob/wordle/apps/tracker/internal/store"
	"github.com/robalobadob/wordle/apps/tracker/internal/wordle"
)

// ChannelKind distinguishes group chats from direct messages.
type ChannelKind string

const (
	ChatRoom ChannelKind = "chat_room"
	Direct   ChannelKind = "direct"
)

// Author is the user who posted a message.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Message is an inbound chat message.
type Message struct {
	ID          string      `json:"id"`
	ChannelID   string      `json:"channelId"`
	ChannelKind ChannelKind `json:"channelKind"`
	Author      *Author     `json:"author,omitempty"`
	Content     string      `json:"content"`
	SentAt      time.Time   `json:"sentAt"`
}

// Ref returns the reaction target for m.
func (m Message) Ref() MessageRef { return MessageRef{ID: m.ID, ChannelID: m.ChannelID} }

// Outcome is what happened to a message.
type Outcome string

const (
	OutcomeIgnored   Outcome = "ignored"
	OutcomeAccepted  Outcome = "accepted"
	OutcomeRejected  Outcome = "rejected"  // parse failure
	OutcomeWrongDay  Outcome = "wrong_day" // not today's puzzle
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeFailed    Outcome = "failed" // store failure
)

// InsertTimeout bounds the store write for one accepted share.
const InsertTimeout = 5 * time.Second

// ErrWrongPuzzleDay matches any *WrongDayError.
var ErrWrongPuzzleDay = errors.New("bot: wrong puzzle day")

// WrongDayError reports a share for a puzzle other than today's.
type WrongDayError struct {
	Got  uint32
	Want int
}

func (e *WrongDayError) Error() string {
	return fmt.Sprintf("bot: shared Wordle #%d, today is #%d", e.Got, e.Want)
}

func (e *WrongDayError) Is(target error) bool { return target == ErrWrongPuzzleDay }

// Today is the view of the daily cache the handler needs.
type Today interface {
	Get(ctx context.Context, force bool) daily.CurrentPuzzle
	Today() string
	Location() *time.Location
}

// Handler turns chat messages into stored submissions.
type Handler struct {
	today Today
	store store.Store
	sink  Sink
	now   func() time.Time
	log   zerolog.Logger
}

// NewHandler wires a Handler. sink may be nil, in which case LogSink is used.
func NewHandler(today Today, st store.Store, sink Sink) *Handler {
	if sink == nil {
		sink = LogSink{}
	}
	return &Handler{today: today, store: st, sink: sink, now: time.Now, log: log.Logger}
}

// WithClock replaces time.Now for submissions without a SentAt.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

// WithSink returns a copy of h that delivers to sink.
func (h *Handler) WithSink(sink Sink) *Handler {
	c := *h
	c.sink = sink
	return &c
}

// HandleMessage processes one inbound message. The returned error, when
// non-nil, explains a non-accepted outcome; it is never fatal.
func (h *Handler) HandleMessage(ctx context.Context, msg Message) (Outcome, error) {
	if msg.ChannelKind != ChatRoom || msg.Author == nil {
		return OutcomeIgnored, nil
	}

	puzzle, err := wordle.ParsePuzzle(msg.Content)
	if err != nil {
		var pe *wordle.ParseError
		if errors.As(err, &pe) && pe.Kind == wordle.KindHeader {
			return OutcomeIgnored, nil
		}
		h.log.Debug().Err(err).Str("user", msg.Author.Name).Msg("rejected share")
		h.react(ctx, msg, ReactReject)
		return OutcomeRejected, err
	}

	cur := h.today.Get(ctx, false)
	if int64(puzzle.DayOffset) != int64(cur.DayOffset) {
		h.react(ctx, msg, ReactReject, ReactWrongDay)
		return OutcomeWrongDay, &WrongDayError{Got: puzzle.DayOffset, Want: cur.DayOffset}
	}

	at := msg.SentAt
	if at.IsZero() {
		at = h.now()
	}
	sub := store.NewSubmission(msg.Author.ID, msg.Author.Name, puzzle, at, h.today.Location())

	// A slow metadata refresh may have used up the caller's deadline; the
	// share is valid regardless, so the write gets its own budget.
	insCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), InsertTimeout)
	defer cancel()
	if _, err := h.store.Insert(insCtx, sub); err != nil {
		var dup *store.DuplicateError
		switch {
		case errors.As(err, &dup) && dup.Conflict == store.ConflictDayOffset:
			h.log.Info().Msgf("%s has already submitted a puzzle for Wordle #%d", msg.Author.Name, puzzle.DayOffset)
		case errors.As(err, &dup):
			h.log.Info().Msgf("%s has already submitted a puzzle for today", msg.Author.Name)
		default:
			h.log.Warn().Err(err).Str("user", msg.Author.Name).Msg("store submission")
			h.react(ctx, msg, ReactReject)
			return OutcomeFailed, err
		}
		h.react(ctx, msg, ReactReject)
		return OutcomeDuplicate, err
	}

	h.log.Info().Str("user", msg.Author.Name).Uint32("day", puzzle.DayOffset).Uint32("attempts", puzzle.Attempts).Msg("recorded share")
	h.react(ctx, msg, ReactAccept)
	return OutcomeAccepted, nil
}

func (h *Handler) react(ctx context.Context, msg Message, emojis ...string) {
	for _, e := range emojis {
		if err := h.sink.React(ctx, msg.Ref(), e); err != nil {
			h.log.Warn().Err(err).Str("emoji", e).Msg("react")
		}
	}
}
