package bot

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Reactions requested from the chat platform.
const (
	ReactAccept   = "✅"
	ReactReject   = "❌"
	ReactWrongDay = "📅"
)

// MessageRef identifies a chat message to react to.
type MessageRef struct {
	ID        string `json:"id"`
	ChannelID string `json:"channelId"`
}

// Sink delivers reactions and messages to the chat platform.
type Sink interface {
	React(ctx context.Context, msg MessageRef, emoji string) error
	Send(ctx context.Context, channelID, content string) error
}

// LogSink only logs what it was asked to deliver.
type LogSink struct{}

func (LogSink) React(ctx context.Context, msg MessageRef, emoji string) error {
	log.Info().Str("message", msg.ID).Str("channel", msg.ChannelID).Str("emoji", emoji).Msg("react")
	return nil
}

func (LogSink) Send(ctx context.Context, channelID, content string) error {
	log.Info().Str("channel", channelID).Str("content", content).Msg("send")
	return nil
}

// Reaction is one recorded React call.
type Reaction struct {
	Message MessageRef `json:"message"`
	Emoji   string     `json:"emoji"`
}

// Post is one recorded Send call.
type Post struct {
	ChannelID string `json:"channelId"`
	Content   string `json:"content"`
}

// Recorder collects deliveries so a transport can return them to its caller.
type Recorder struct {
	mu        sync.Mutex
	Reactions []Reaction
	Posts     []Post
}

func (r *Recorder) React(ctx context.Context, msg MessageRef, emoji string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reactions = append(r.Reactions, Reaction{Message: msg, Emoji: emoji})
	return nil
}

func (r *Recorder) Send(ctx context.Context, channelID, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Posts = append(r.Posts, Post{ChannelID: channelID, Content: content})
	return nil
}

// Emojis returns the recorded reaction symbols in order.
func (r *Recorder) Emojis() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Reactions))
	for i, x := range r.Reactions {
		out[i] = x.Emoji
	}
	return out
}
