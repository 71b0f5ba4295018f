// Package history keeps a SQLite log of finished playback jobs: which
// algorithm ran, on what grid size, how much it explored and whether it found
// a route. Grid contents are never stored.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/pathviz/playback"
)

//go:embed sql/*.sql
var migrations embed.FS

// ErrClosed is returned by calls on a closed Store.
var ErrClosed = errors.New("history: store is closed")

const (
	// DefaultListLimit applies when List is given limit <= 0.
	DefaultListLimit = 20
	// MaxListLimit caps a single List call.
	MaxListLimit = 500
)

// Run is one stored job.
type Run struct {
	ID         int64     `json:"id"`
	JobID      string    `json:"job_id"`
	SessionID  string    `json:"session_id,omitempty"`
	Algorithm  string    `json:"algorithm"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	Explored   int       `json:"explored"`
	PathLen    int       `json:"path_len"`
	Found      bool      `json:"found"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// AlgorithmStats aggregates runs of one algorithm.
type AlgorithmStats struct {
	Algorithm   string  `json:"algorithm"`
	Runs        int     `json:"runs"`
	Found       int     `json:"found"`
	AvgExplored float64 `json:"avg_explored"`
	AvgPathLen  float64 `json:"avg_path_len"`
}

// Store is the run log. It is safe for concurrent use; Close waits for
// in-flight calls.
type Store struct {
	mu  sync.RWMutex
	db  *sql.DB // nil once closed
	log zerolog.Logger
}

// Open creates or opens the database at dsn and applies pending migrations.
// A file DSN gets its parent directory created; "file::memory:" and ":memory:"
// give a private in-memory database.
func Open(dsn string, logger zerolog.Logger) (*Store, error) {
	if !inMemory(dsn) {
		dir := filepath.Dir(strings.TrimPrefix(dsn, "file:"))
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("history: mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", withParams(dsn))
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}
	// One connection: SQLite has a single writer, and an in-memory database
	// lives only as long as its connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: set pragmas: %w", err)
	}

	s := &Store{db: db, log: logger.With().Str("component", "history").Logger()}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func inMemory(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory")
}

func withParams(dsn string) string {
	params := "_busy_timeout=5000"
	if !inMemory(dsn) {
		params += "&_journal_mode=WAL"
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + params
	}
	return dsn + "?" + params
}

// migrate applies embedded sql/*.sql files in lexical order, once each.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("history: create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("history: list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := s.db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("history: query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("history: read %s: %w", f, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("history: apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("history: record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("history: commit %s: %w", f, err)
		}
		s.log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Record stores a finished job. Recording the same job twice is a no-op.
func (s *Store) Record(ctx context.Context, sessionID string, sum playback.Summary) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ErrClosed
	}
	found := 0
	if sum.Found {
		found = 1
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO runs
            (job_id, session_id, algorithm, grid_rows, grid_cols, explored, path_len, found, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.JobID, sessionID, sum.Algorithm, sum.Rows, sum.Cols,
		sum.Explored, sum.PathLen, found, sum.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("history: record %s: %w", sum.JobID, err)
	}
	return nil
}

// List returns up to limit runs, newest first. limit <= 0 means
// DefaultListLimit and anything above MaxListLimit is clamped to it.
// A non-empty algorithm filters by name.
func (s *Store) List(ctx context.Context, algorithm string, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, job_id, session_id, algorithm, grid_rows, grid_cols, explored, path_len, found, duration_ms, created_at
        FROM runs
        WHERE (? = '' OR algorithm = ?)
        ORDER BY id DESC
        LIMIT ?`, algorithm, algorithm, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	out := make([]Run, 0, min(limit, 64))
	for rows.Next() {
		var r Run
		var found int
		if err := rows.Scan(&r.ID, &r.JobID, &r.SessionID, &r.Algorithm, &r.Rows, &r.Cols,
			&r.Explored, &r.PathLen, &found, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Found = found == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats aggregates all runs per algorithm, ordered by name.
func (s *Store) Stats(ctx context.Context) ([]AlgorithmStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT algorithm, COUNT(1), SUM(found), AVG(explored), AVG(path_len)
        FROM runs
        GROUP BY algorithm
        ORDER BY algorithm`)
	if err != nil {
		return nil, fmt.Errorf("history: stats: %w", err)
	}
	defer rows.Close()

	var out []AlgorithmStats
	for rows.Next() {
		var st AlgorithmStats
		if err := rows.Scan(&st.Algorithm, &st.Runs, &st.Found, &st.AvgExplored, &st.AvgPathLen); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Recorder returns a playback.WithOnComplete hook that logs every finished
// job of sessionID. Failures are logged, not returned.
func (s *Store) Recorder(sessionID string) func(playback.Summary) {
	return func(sum playback.Summary) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Record(ctx, sessionID, sum); err != nil {
			s.log.Error().Err(err).Str("session", sessionID).Msg("record run")
		}
	}
}

// Close releases the database. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
