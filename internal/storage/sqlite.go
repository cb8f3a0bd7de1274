// Package storage provides SQLite-based persistence for calibration
// runs and duel results. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is a persisted self-play game.
type RunEntry struct {
	ID         int64
	Level      int
	Seed       int64
	Score      int
	MaxTile    int
	Moves      int
	Won        bool
	DurationMS int64
	CreatedAt  time.Time
}

// DuelEntry is a persisted head-to-head game between two levels.
type DuelEntry struct {
	ID        int64
	LevelA    int
	LevelB    int
	ScoreA    int
	ScoreB    int
	Winner    int // winning level, 0 on a draw
	Seed      int64
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level, score DESC);

		CREATE TABLE IF NOT EXISTS duels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_a INTEGER NOT NULL,
			level_b INTEGER NOT NULL,
			score_a INTEGER NOT NULL,
			score_b INTEGER NOT NULL,
			winner INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_duels_levels ON duels(level_a, level_b);
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

// SaveRun records a completed self-play game.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(e RunEntry) (int64, error) {
	won := 0
	if e.Won {
		won = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (level, seed, score, max_tile, moves, won, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Level, e.Seed, e.Score, e.MaxTile, e.Moves, won, e.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the top N runs for the given level.
// Results are ordered by score descending.
func (s *Store) TopRuns(level, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level, seed, score, max_tile, moves, won, duration_ms, created_at
		 FROM runs
		 WHERE level = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

func scanRun(rows *sql.Rows) (RunEntry, error) {
	var e RunEntry
	var won int
	var createdAt any
	if err := rows.Scan(&e.ID, &e.Level, &e.Seed, &e.Score, &e.MaxTile,
		&e.Moves, &won, &e.DurationMS, &createdAt); err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	e.Won = won != 0
	e.CreatedAt = parseCreatedAt(createdAt)
	return e, nil
}

// parseCreatedAt handles both time.Time and string datetime values
// returned by the driver.
func parseCreatedAt(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest recorded score for the given level.
// Returns 0 if no runs exist.
func (s *Store) HighScore(level int) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE level = ?",
		level,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given level.
func (s *Store) ClearRuns(level int) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level = ?", level)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SaveDuel records the result of a head-to-head game.
// Returns the ID of the inserted record.
func (s *Store) SaveDuel(e DuelEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO duels (level_a, level_b, score_a, score_b, winner, seed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.LevelA, e.LevelB, e.ScoreA, e.ScoreB, e.Winner, e.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save duel: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentDuels retrieves the most recent duels.
func (s *Store) RecentDuels(limit int) ([]DuelEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_a, level_b, score_a, score_b, winner, seed, created_at
		 FROM duels
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query duels: %w", err)
	}
	defer rows.Close()

	var entries []DuelEntry
	for rows.Next() {
		var e DuelEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelA, &e.LevelB, &e.ScoreA,
			&e.ScoreB, &e.Winner, &e.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseCreatedAt(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// LevelStats contains aggregated run statistics for one level.
type LevelStats struct {
	Level      int
	RunsCount  int
	HighScore  int
	AvgScore   float64
	BestTile   int
	Wins       int
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(level int) (*LevelStats, error) {
	stats := &LevelStats{Level: level}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(max_tile), 0), COALESCE(SUM(won), 0)
		 FROM runs WHERE level = ?`,
		level,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore, &stats.BestTile, &stats.Wins)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE level = ? ORDER BY created_at DESC LIMIT 1`,
		level,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseCreatedAt(lastPlayed)
	}

	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level with recorded runs.
func (s *Store) GetAllLevelStats() (map[int]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MAX(score), AVG(score), MAX(max_tile), SUM(won), MAX(created_at)
		 FROM runs
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.Level, &st.RunsCount, &st.HighScore, &st.AvgScore,
			&st.BestTile, &st.Wins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseCreatedAt(lastPlayed)
		stats[st.Level] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
