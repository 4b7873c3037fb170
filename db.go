// apps/tracker/db.go
//
// Store selection for the tracker binary.
// DB_PATH=":memory:" keeps everything in process (handy for local runs);
// any other value is a SQLite file, created and migrated on open.

package main

import (
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/tracker/internal/store"
)

const memoryDSN = ":memory:"

/**
 * openStore opens the submission store named by path.
 *
 * - ":memory:" returns the in-process store; nothing survives a restart.
 * - Anything else opens (and migrates) a SQLite database file.
 *
 * @param path DB_PATH value.
 * @returns store.Store ready for inserts and queries.
 */
func openStore(path string) (store.Store, error) {
	if path == memoryDSN {
		log.Warn().Msg("using in-memory store; submissions are lost on restart")
		return store.NewMemoryStore(), nil
	}
	st, err := store.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Msg("sqlite store ready")
	return st, nil
}
