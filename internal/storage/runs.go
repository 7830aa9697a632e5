package storage

import (
	"fmt"
	"time"
)

// Run is the record of one finished (or abandoned) game.
type Run struct {
	ID        int64
	GameID    string
	Player    string
	Level     int
	Outcome   string // "won", "failed" or "quit"
	Score     int
	Placed    int
	Perfects  int
	MaxCombo  int
	Duration  int // seconds
	CreatedAt time.Time
}

// SaveRun records a run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Outcome == "" {
		return 0, fmt.Errorf("storage: run outcome is required")
	}

	res, err := s.db.Exec(
		`INSERT INTO runs
		 (game_id, player, level, outcome, score, placed, perfects, max_combo, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Player, r.Level, r.Outcome, r.Score, r.Placed, r.Perfects, r.MaxCombo, r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent runs of a game, newest first.
// An empty gameID matches every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, level, outcome, score, placed, perfects, max_combo, duration_secs, created_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.GameID, &r.Player, &r.Level, &r.Outcome, &r.Score,
			&r.Placed, &r.Perfects, &r.MaxCombo, &r.Duration, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
