package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// SaveProgress records that player cleared the given 1-based campaign level.
// Progress never goes backwards.
func (s *Store) SaveProgress(gameID, player string, cleared int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (game_id, player, highest_cleared) VALUES (?, ?, ?)
		 ON CONFLICT(game_id, player) DO UPDATE SET
		   highest_cleared = MAX(highest_cleared, excluded.highest_cleared),
		   updated_at = CURRENT_TIMESTAMP`,
		gameID, player, cleared,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// HighestCleared returns the highest campaign level the player cleared,
// or 0 if none.
func (s *Store) HighestCleared(gameID, player string) (int, error) {
	var level int
	err := s.db.QueryRow(
		"SELECT highest_cleared FROM progress WHERE game_id = ? AND player = ?",
		gameID, player,
	).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return level, nil
}
