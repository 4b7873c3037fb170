// apps/tracker/internal/httpserver/server.go
//
// HTTP server wiring for the Wordle share tracker.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", GET /daily/today, GET /daily/leaderboard,
//     GET /daily/winners, GET /submissions/recent.
//   - Chat transport (require auth): POST /messages, POST /commands.
//   - Operator endpoints (require auth): POST /daily/refresh.
//   - Token issuance: POST /auth/token (admin password checked with bcrypt).
//
// Notes:
//   - Inbound chat messages are answered with the reactions the bot requested,
//     so a thin chat adapter can relay them.
//   - The daily puzzle's solution is never serialized in clear.

package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/tracker/internal/bot"
	"github.com/robalobadob/wordle/apps/tracker/internal/daily"
	"github.com/robalobadob/wordle/apps/tracker/internal/store"
)

// Puzzles is the daily cache as seen by HTTP handlers.
type Puzzles interface {
	bot.Today
	Refresh(ctx context.Context) daily.CurrentPuzzle
}

// Options carries the auth and CORS settings.
type Options struct {
	JWTSecret         string
	JWTExpiresDays    int
	AdminPasswordHash string // bcrypt; empty disables POST /auth/token
	ClientOrigin      string
}

// Server bundles the router and the tracker components it exposes.
type Server struct {
	r       *chi.Mux
	puzzles Puzzles
	store   store.Store
	bot     *bot.Handler
	opts    Options
	http    *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(p Puzzles, st store.Store, h *bot.Handler, opts Options) *Server {
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	if opts.JWTExpiresDays <= 0 {
		opts.JWTExpiresDays = 14
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), puzzles: p, store: st, bot: h, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-tracker","endpoints":["/health","/daily/*","/submissions/recent","POST /messages","POST /commands","POST /auth/token"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountDaily()
	s.mountChat()
	s.r.Post("/auth/token", s.handleToken)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	s.http = &http.Server{Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	return s
}

// Start begins serving HTTP on addr. It returns nil after Shutdown.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops a server started with Start.
func (s *Server) Shutdown(ctx context.Context) error { return s.http.Shutdown(ctx) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
