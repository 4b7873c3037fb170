// apps/tracker/internal/store/sqlite.go
//
// SQLite implementation of Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Classifying UNIQUE violations into *DuplicateError.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/tracker/assets"
)

// tsLayout sorts lexically in time order for UTC values.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite is a Store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path and
// applies migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// DB exposes the handle for maintenance commands.
func (s *SQLite) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// openDB ensures the parent directory exists and configures the connection.
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies embedded migrations in lexical order, each in its own
// transaction, skipping those already recorded in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlText, err := assets.Migration(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(sqlText); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Insert stores sub, classifying UNIQUE violations.
func (s *SQLite) Insert(ctx context.Context, sub Submission) (Submission, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO submissions
            (submitter, submitted_by, submitted_at, submitted_date, day_offset, attempts, solved, hard_mode, puzzle)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.Submitter, sub.SubmittedBy, sub.SubmittedAt.UTC().Format(tsLayout), sub.SubmittedDate,
		sub.DayOffset, sub.Attempts, sub.Solved, sub.HardMode, sub.Puzzle,
	)
	if err != nil {
		return Submission{}, s.classify(ctx, err, sub)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	sub.ID = id
	return sub, nil
}

// classify turns a driver error into *DuplicateError or ErrPersistence.
func (s *SQLite) classify(ctx context.Context, err error, sub Submission) error {
	var se sqlite3.Error
	if !errors.As(err, &se) || se.ExtendedCode != sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	switch uniqueFields(se.Error()) {
	case "submitted_by,day_offset":
		return duplicate(ConflictDayOffset, sub)
	case "submitted_by,submitted_date":
		// SQLite reports whichever index it checked first; a row for the
		// same puzzle takes precedence.
		var one int
		err := s.db.QueryRowContext(ctx,
			`SELECT 1 FROM submissions WHERE submitted_by=? AND day_offset=?`,
			sub.SubmittedBy, sub.DayOffset,
		).Scan(&one)
		if err == nil {
			return duplicate(ConflictDayOffset, sub)
		}
		return duplicate(ConflictDate, sub)
	}
	log.Warn().Str("error", se.Error()).Msg("unhandled unique constraint")
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// uniqueFields extracts "a,b" from
// "UNIQUE constraint failed: submissions.a, submissions.b".
func uniqueFields(msg string) string {
	_, list, ok := strings.Cut(msg, "UNIQUE constraint failed: ")
	if !ok {
		return ""
	}
	parts := strings.Split(list, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "submissions.")
		parts[i] = p
	}
	return strings.Join(parts, ",")
}

// ByDate returns the day's rows ordered by submission time.
func (s *SQLite) ByDate(ctx context.Context, date string) ([]Submission, error) {
	return s.query(ctx, `
        SELECT id, submitter, submitted_by, submitted_at, submitted_date, day_offset, attempts, solved, hard_mode, puzzle
        FROM submissions
        WHERE submitted_date=?
        ORDER BY submitted_at ASC, id ASC`, date)
}

// Recent returns up to limit rows, newest first. Default limit is 5.
func (s *SQLite) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.query(ctx, `
        SELECT id, submitter, submitted_by, submitted_at, submitted_date, day_offset, attempts, solved, hard_mode, puzzle
        FROM submissions
        ORDER BY submitted_at DESC, id DESC
        LIMIT ?`, limit)
}

func (s *SQLite) query(ctx context.Context, q string, args ...any) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var r Submission
		var at string
		if err := rows.Scan(&r.ID, &r.Submitter, &r.SubmittedBy, &at, &r.SubmittedDate,
			&r.DayOffset, &r.Attempts, &r.Solved, &r.HardMode, &r.Puzzle); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		ts, err := time.Parse(tsLayout, at)
		if err != nil {
			return nil, fmt.Errorf("%w: submission %d: %w", ErrPersistence, r.ID, err)
		}
		r.SubmittedAt = ts
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return out, nil
}
