// apps/tracker/main.go
//
// Entry point for the Wordle share tracker.
// Subcommands:
//   - serve        run the HTTP transport, daily cache and midnight scheduler
//   - migrate      apply embedded SQL migrations and exit
//   - parse        read share text on stdin, print canonical text and JSON
//   - leaderboard  print the ranked submissions for a date (default today)

package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/tracker/internal/config"
)

// cfg is loaded once by the root command before any subcommand runs.
var cfg config.Config

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("tracker exited")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Track and rank Wordle shares posted in a chat room",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			setupLogging(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newParseCmd(), newLeaderboardCmd())
	return root
}

// setupLogging configures the global zerolog logger.
func setupLogging(level, format string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
