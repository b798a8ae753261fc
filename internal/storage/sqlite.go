// Package storage provides SQLite-based persistence for finished rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for round history.
type Store struct {
	db *sql.DB
}

// Round is one finished round.
type Round struct {
	ID        string
	GameID    string
	Player    string // "local" or the SSH user
	Mode      string // Difficulty name
	Won       bool
	Score     int
	Moves     int // Scored guesses
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
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL,
			mode TEXT NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_game_mode ON rounds(game_id, mode);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player);
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

// SaveRound records a finished round and returns its generated ID.
// A zero CreatedAt is stamped by the database.
func (s *Store) SaveRound(r Round) (string, error) {
	if r.GameID == "" {
		return "", errors.New("storage: round has no game id")
	}
	if r.Player == "" {
		r.Player = "local"
	}
	id := uuid.NewString()

	var err error
	if r.CreatedAt.IsZero() {
		_, err = s.db.Exec(
			`INSERT INTO rounds (id, game_id, player, mode, won, score, moves)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, r.GameID, r.Player, r.Mode, r.Won, r.Score, r.Moves,
		)
	} else {
		_, err = s.db.Exec(
			`INSERT INTO rounds (id, game_id, player, mode, won, score, moves, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, r.GameID, r.Player, r.Mode, r.Won, r.Score, r.Moves,
			r.CreatedAt.UTC().Format(sqliteTime),
		)
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return id, nil
}

// TopRounds retrieves the best N won rounds for the given game.
// An empty mode matches every difficulty. Results are ordered by score
// descending, then by fewest guesses.
func (s *Store) TopRounds(gameID, mode string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, mode, won, score, moves, created_at
		 FROM rounds
		 WHERE game_id = ? AND won = 1 AND (? = '' OR mode = ?)
		 ORDER BY score DESC, moves ASC, created_at ASC
		 LIMIT ?`,
		gameID, mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	return scanRounds(rows)
}

// RecentRounds retrieves the most recent rounds for the given game, won or lost.
func (s *Store) RecentRounds(gameID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, mode, won, score, moves, created_at
		 FROM rounds
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	return scanRounds(rows)
}

// PlayerRounds retrieves the most recent rounds played by the given player.
func (s *Store) PlayerRounds(player string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, mode, won, score, moves, created_at
		 FROM rounds
		 WHERE player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player rounds: %w", err)
	}
	return scanRounds(rows)
}

// HighScore returns the highest score for the given game and mode.
// Returns 0 if no rounds exist.
func (s *Store) HighScore(gameID, mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM rounds WHERE game_id = ? AND (? = '' OR mode = ?)",
		gameID, mode, mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRounds deletes all rounds for the given game.
func (s *Store) ClearRounds(gameID string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

func scanRounds(rows *sql.Rows) ([]Round, error) {
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Player, &r.Mode, &r.Won, &r.Score, &r.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(sqliteTime, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ModeStats contains aggregated statistics for one difficulty.
type ModeStats struct {
	Mode       string
	Played     int
	Won        int
	HighScore  int
	AvgScore   float64
	AvgMoves   float64 // Over won rounds
	LastPlayed time.Time
}

// WinRate returns the fraction of rounds won, or 0 when none were played.
func (m ModeStats) WinRate() float64 {
	if m.Played == 0 {
		return 0
	}
	return float64(m.Won) / float64(m.Played)
}

// Stats retrieves aggregated statistics for the given game and mode.
// An empty mode aggregates every difficulty.
func (s *Store) Stats(gameID, mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(AVG(CASE WHEN won = 1 THEN moves END), 0), MAX(created_at)
		 FROM rounds WHERE game_id = ? AND (? = '' OR mode = ?)`,
		gameID, mode, mode,
	).Scan(&stats.Played, &stats.Won, &stats.HighScore, &stats.AvgScore, &stats.AvgMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// StatsByMode retrieves statistics for every difficulty that has been played.
func (s *Store) StatsByMode(gameID string) (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), SUM(won), MAX(score), AVG(score),
		        COALESCE(AVG(CASE WHEN won = 1 THEN moves END), 0), MAX(created_at)
		 FROM rounds
		 WHERE game_id = ?
		 GROUP BY mode`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats by mode: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.Played, &m.Won, &m.HighScore, &m.AvgScore, &m.AvgMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.Mode] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
