// Package storage provides SQLite-based persistence for leaderboard scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
)

// timeLayout is how created_at is written. Millisecond precision keeps
// entries submitted in quick succession ordered.
const timeLayout = "2006-01-02 15:04:05.000"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ leaderboard.Backend = (*Store)(nil)

// Stats contains aggregated statistics over all submitted scores.
type Stats struct {
	Count      int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	Players    int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC, created_at);
		CREATE INDEX IF NOT EXISTS idx_scores_created ON scores(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Submit records a new score and returns the stored entry.
func (s *Store) Submit(ctx context.Context, username string, score int) (leaderboard.Entry, error) {
	e := leaderboard.Entry{
		ID:        uuid.NewString(),
		Username:  username,
		Score:     score,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (id, username, score, created_at) VALUES (?, ?, ?, ?)",
		e.ID, e.Username, e.Score, e.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return e, nil
}

// TopScores retrieves the top N scores, oldest first among ties.
func (s *Store) TopScores(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	if limit <= 0 {
		limit = leaderboard.DefaultTopLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, score, created_at
		 FROM scores
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

// AllScores retrieves every score, best first.
func (s *Store) AllScores(ctx context.Context) ([]leaderboard.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, score, created_at
		 FROM scores
		 ORDER BY score DESC, created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanEntries(rows)
}

// Delete removes the score with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM scores WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return leaderboard.ErrNotFound
	}
	return nil
}

// CountAbove returns how many scores are strictly greater than score.
func (s *Store) CountAbove(ctx context.Context, score int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM scores WHERE score > ?", score).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count scores: %w", err)
	}
	return n, nil
}

// HighScore returns the highest recorded score.
// Returns 0 if no scores exist.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT MAX(score) FROM scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes every score and returns how many were removed.
func (s *Store) ClearScores(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM scores")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared rows: %w", err)
	}
	return n, nil
}

// Stats retrieves aggregated statistics over all scores.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var lastPlayed sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COUNT(DISTINCT username), MAX(created_at)
		 FROM scores`,
	).Scan(&stats.Count, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.Players, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = parseTime(lastPlayed.String)
	}

	return stats, nil
}

func scanEntries(rows *sql.Rows) ([]leaderboard.Entry, error) {
	defer rows.Close()

	entries := []leaderboard.Entry{}
	for rows.Next() {
		var e leaderboard.Entry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Username, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Handle both time.Time and string, depending on driver affinity
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			e.CreatedAt = parseTime(v)
		case []byte:
			e.CreatedAt = parseTime(string(v))
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

func parseTime(v string) time.Time {
	for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
