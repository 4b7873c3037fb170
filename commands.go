// apps/tracker/commands.go
//
// Cobra subcommands. Each one builds only the components it needs from cfg.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/tracker/internal/bot"
	"github.com/robalobadob/wordle/apps/tracker/internal/daily"
	"github.com/robalobadob/wordle/apps/tracker/internal/httpserver"
	"github.com/robalobadob/wordle/apps/tracker/internal/scheduler"
	"github.com/robalobadob/wordle/apps/tracker/internal/store"
	"github.com/robalobadob/wordle/apps/tracker/internal/wordle"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP transport and the daily scheduler",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	st, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	cache := daily.NewCache(
		daily.NewHTTPSource(cfg.PuzzleSourceURL, cfg.FetchTimeout),
		daily.WithLocation(loc),
		daily.WithBackoff(cfg.FetchBackoff),
	)
	h := bot.NewHandler(cache, st, nil)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache.Get(ctx, false) // warm

	sched := scheduler.New(loc, dailyJobs(cache, h, loc, cfg.AnnounceChannel)...)
	sched.Start(ctx)
	defer sched.Stop()

	srv := httpserver.New(cache, st, h, httpserver.Options{
		JWTSecret:         cfg.JWTSecret,
		JWTExpiresDays:    cfg.JWTExpiresDays,
		AdminPasswordHash: cfg.AdminPasswordHash,
		ClientOrigin:      cfg.ClientOrigin,
	})
	errc := make(chan error, 1)
	go func() { errc <- srv.Start(":" + cfg.Port) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

// dailyJobs is what runs at local midnight: refresh the puzzle, then post
// yesterday's winners when an announcement channel is configured.
func dailyJobs(cache *daily.Cache, h *bot.Handler, loc *time.Location, channel string) []scheduler.Job {
	jobs := []scheduler.Job{{
		Name: "refresh-puzzle",
		Run: func(ctx context.Context) error {
			p := cache.Refresh(ctx)
			if p.Synthesized() {
				return fmt.Errorf("no upstream puzzle for %s", p.PrintDate)
			}
			return nil
		},
	}}
	if channel != "" {
		jobs = append(jobs, scheduler.Job{
			Name: "announce-winners",
			Run: func(ctx context.Context) error {
				_, err := h.AnnounceWinners(ctx, channel, daily.Yesterday(time.Now(), loc))
				return err
			},
		})
	}
	return jobs
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations to DB_PATH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := store.OpenSQLite(cfg.DBPath)
			if err != nil {
				return err
			}
			log.Info().Str("path", cfg.DBPath).Msg("migrations applied")
			return st.Close()
		},
	}
}

func newParseCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse share text from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return parseShare(cmd.InOrStdin(), cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of canonical text")
	return cmd
}

func parseShare(in io.Reader, out io.Writer, asJSON bool) error {
	b, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	p, err := wordle.ParsePuzzle(string(b))
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}
	_, err = fmt.Fprintln(out, p.String())
	return err
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard [YYYY-MM-DD]",
		Short: "Print the ranked submissions for a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			date := daily.DateKey(time.Now(), loc)
			if len(args) == 1 {
				if _, err := time.Parse("2006-01-02", args[0]); err != nil {
					return fmt.Errorf("bad date %q: %w", args[0], err)
				}
				date = args[0]
			}
			st, err := openStore(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			// Leaderboard reads only the store; the cache is never fetched.
			cache := daily.NewCache(daily.NewHTTPSource(cfg.PuzzleSourceURL, cfg.FetchTimeout), daily.WithLocation(loc))
			text, err := bot.NewHandler(cache, st, nil).Leaderboard(cmd.Context(), date)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}
