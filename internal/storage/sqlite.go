// Package storage provides optional SQLite persistence for cleared stages
// and online match results. Gameplay itself never touches disk.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/calc-climb/internal/multiplayer"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished solo run.
type ScoreEntry struct {
	ID        int64
	Mode      string // registry mode id
	Stages    int    // stages cleared
	Tier      int    // highest tier reached
	Seed      int64  // seed of the last stage played
	CreatedAt time.Time
}

// OnlineMatchResult is a decided online match.
type OnlineMatchResult struct {
	ID            int64
	RoomCode      string
	LevelIndex    int
	Seed          int64
	WinnerSession string
	LoserSession  string
	Reason        string // "target" or "forfeit"
	CreatedAt     time.Time
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			stages INTEGER NOT NULL,
			tier INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, stages DESC, tier DESC);

		CREATE TABLE IF NOT EXISTS online_matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			room_code TEXT NOT NULL,
			level_index INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			winner_session TEXT NOT NULL,
			loser_session TEXT NOT NULL,
			reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_online_matches_winner ON online_matches(winner_session);
		CREATE INDEX IF NOT EXISTS idx_online_matches_loser ON online_matches(loser_session);
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

// parseTime accepts what the driver hands back for DATETIME columns.
func parseTime(v any) time.Time {
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

// SaveScore records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (mode, stages, tier, seed) VALUES (?, ?, ?, ?)",
		e.Mode, e.Stages, e.Tier, e.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the best runs for a mode, most stages first.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, stages, tier, seed, created_at
		 FROM scores
		 WHERE mode = ?
		 ORDER BY stages DESC, tier DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Stages, &e.Tier, &e.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// BestStages returns the most stages cleared in one run of a mode.
// Returns 0 if no runs exist.
func (s *Store) BestStages(mode string) (int, error) {
	var stages sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(stages) FROM scores WHERE mode = ?", mode).Scan(&stages); err != nil {
		return 0, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	if !stages.Valid {
		return 0, nil
	}
	return int(stages.Int64), nil
}

// ClearScores deletes all runs for a mode.
func (s *Store) ClearScores(mode string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode        string
	Runs        int
	BestStages  int
	HighestTier int
	TotalStages int64
	LastPlayed  time.Time
}

// AllModeStats retrieves statistics for every mode that has been played.
func (s *Store) AllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(stages), MAX(tier), SUM(stages), MAX(created_at)
		 FROM scores
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.Runs, &m.BestStages, &m.HighestTier, &m.TotalStages, &lastPlayed); err != nil {
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

// SaveOnlineMatch records a decided online match.
// Returns the ID of the inserted record.
func (s *Store) SaveOnlineMatch(m OnlineMatchResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO online_matches
		 (room_code, level_index, seed, winner_session, loser_session, reason)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.RoomCode, m.LevelIndex, m.Seed, m.WinnerSession, m.LoserSession, m.Reason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save online match: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const matchColumns = `id, room_code, level_index, seed, winner_session, loser_session, reason, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(r rowScanner) (OnlineMatchResult, error) {
	var m OnlineMatchResult
	var createdAt any
	err := r.Scan(&m.ID, &m.RoomCode, &m.LevelIndex, &m.Seed,
		&m.WinnerSession, &m.LoserSession, &m.Reason, &createdAt)
	m.CreatedAt = parseTime(createdAt)
	return m, err
}

// OnlineMatchByID retrieves a match by its row ID. Returns nil if absent.
func (s *Store) OnlineMatchByID(id int64) (*OnlineMatchResult, error) {
	m, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM online_matches WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online match: %w", err)
	}
	return &m, nil
}

// RecentOnlineMatches retrieves the most recent matches.
func (s *Store) RecentOnlineMatches(limit int) ([]OnlineMatchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(
		`SELECT `+matchColumns+` FROM online_matches ORDER BY id DESC LIMIT ?`, limit)
}

// PlayerMatchHistory retrieves matches a session won or lost.
func (s *Store) PlayerMatchHistory(sessionID string, limit int) ([]OnlineMatchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryMatches(
		`SELECT `+matchColumns+` FROM online_matches
		 WHERE winner_session = ? OR loser_session = ?
		 ORDER BY id DESC LIMIT ?`,
		sessionID, sessionID, limit)
}

func (s *Store) queryMatches(query string, args ...any) ([]OnlineMatchResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online matches: %w", err)
	}
	defer rows.Close()

	var results []OnlineMatchResult
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(r multiplayer.MatchResult) error {
	_, err := s.SaveOnlineMatch(OnlineMatchResult{
		RoomCode:      r.Code,
		LevelIndex:    r.LevelIndex,
		Seed:          r.Seed,
		WinnerSession: string(r.Winner),
		LoserSession:  string(r.Loser),
		Reason:        string(r.Reason),
	})
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)
