// apps/tracker/internal/httpserver/routes_chat.go
//
// Chat transport. A chat adapter forwards each room message here and relays
// the returned reactions/posts back to the platform.
//   - POST /messages → run the share handler on one message
//   - POST /commands → answer a `wordle [today|yesterday|recent]` command

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/tracker/internal/bot"
)

// mountChat registers the gated chat transport routes.
func (s *Server) mountChat() {
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Post("/messages", s.handleMessage)
		r.Post("/commands", s.handleCommand)
	})
}

type messageRes struct {
	MessageID string         `json:"messageId"`
	Outcome   bot.Outcome    `json:"outcome"`
	Error     string         `json:"error,omitempty"`
	Reactions []bot.Reaction `json:"reactions"`
}

// decodeMessage reads a bot.Message, assigning an ID when the adapter sent none.
func decodeMessage(w http.ResponseWriter, r *http.Request) (bot.Message, bool) {
	var m bot.Message
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return m, false
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.ChannelKind == "" {
		m.ChannelKind = bot.ChatRoom
	}
	return m, true
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	m, ok := decodeMessage(w, r)
	if !ok {
		return
	}
	rec := &bot.Recorder{}
	outcome, err := s.bot.WithSink(rec).HandleMessage(r.Context(), m)

	res := messageRes{MessageID: m.ID, Outcome: outcome, Reactions: rec.Reactions}
	if err != nil {
		res.Error = err.Error()
	}
	if res.Reactions == nil {
		res.Reactions = []bot.Reaction{}
	}
	if outcome == bot.OutcomeFailed {
		w.WriteHeader(http.StatusInternalServerError)
	}
	_ = json.NewEncoder(w).Encode(res)
}

type commandReq struct {
	bot.Message
	Args []string `json:"args"`
}

type commandRes struct {
	Reply string     `json:"reply"`
	Posts []bot.Post `json:"posts"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	args := req.Args
	if len(args) == 0 {
		// "wordle recent" in the content when no explicit args were sent
		if f := strings.Fields(req.Content); len(f) > 1 {
			args = f[1:]
		}
	}
	rec := &bot.Recorder{}
	reply, err := s.bot.WithSink(rec).HandleCommand(r.Context(), req.Message, args)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	posts := rec.Posts
	if posts == nil {
		posts = []bot.Post{}
	}
	_ = json.NewEncoder(w).Encode(commandRes{Reply: reply, Posts: posts})
}
