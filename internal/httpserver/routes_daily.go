// apps/tracker/internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle and its results.
//   - GET  /daily/today       → today's puzzle metadata (solution masked)
//   - POST /daily/refresh     → force a fetch from the upstream source (auth)
//   - GET  /daily/leaderboard → ranked submissions for today (or ?date=)
//   - GET  /daily/winners     → rank-1 submissions for today (or ?date=)
//   - GET  /submissions/recent → newest submissions (?limit=, default 5)

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/tracker/internal/daily"
	"github.com/robalobadob/wordle/apps/tracker/internal/ranking"
	"github.com/robalobadob/wordle/apps/tracker/internal/store"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily() {
	s.r.Route("/daily", func(r chi.Router) {
		r.Get("/today", s.handleToday)
		r.With(s.requireAuth()).Post("/refresh", s.handleRefresh)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/winners", s.handleWinners)
	})
	s.r.Get("/submissions/recent", s.handleRecent)
}

type todayRes struct {
	Date        string              `json:"date"`
	Puzzle      daily.CurrentPuzzle `json:"puzzle"`
	Synthesized bool                `json:"synthesized"`
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	p := s.puzzles.Get(r.Context(), false)
	_ = json.NewEncoder(w).Encode(todayRes{Date: s.puzzles.Today(), Puzzle: p, Synthesized: p.Synthesized()})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	p := s.puzzles.Refresh(r.Context())
	log.Info().Str("by", subjectFrom(r.Context())).Object("puzzle", p).Msg("manual refresh")
	_ = json.NewEncoder(w).Encode(todayRes{Date: s.puzzles.Today(), Puzzle: p, Synthesized: p.Synthesized()})
}

// lbRes is the leaderboard/winners response shape.
type lbRes struct {
	Date    string          `json:"date"`
	Entries []ranking.Entry `json:"entries"`
}

// dateParam returns ?date= (default today) or false after writing a 400.
func (s *Server) dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return s.puzzles.Today(), true
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, `{"error":"bad_date"}`, http.StatusBadRequest)
		return "", false
	}
	return date, true
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.writeRanking(w, r, ranking.Rank)
}

func (s *Server) handleWinners(w http.ResponseWriter, r *http.Request) {
	s.writeRanking(w, r, ranking.Winners)
}

func (s *Server) writeRanking(w http.ResponseWriter, r *http.Request, rank func([]store.Submission, string) []ranking.Entry) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}
	rows, err := s.store.ByDate(r.Context(), date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("load submissions")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	entries := rank(rows, date)
	if entries == nil {
		entries = []ranking.Entry{}
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Entries: entries})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
			return
		}
		limit = n
	}
	rows, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("load recent submissions")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []store.Submission{}
	}
	_ = json.NewEncoder(w).Encode(rows)
}
