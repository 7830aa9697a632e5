package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ScoreEntry is one finished run's score on a leaderboard.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	CreatedAt time.Time
}

// DefaultBoardSize is used when a leaderboard query asks for no limit.
const DefaultBoardSize = 10

const scoreColumns = "id, game_id, player, score, created_at"

// SaveScore appends a score to gameID's leaderboard and returns its row ID.
func (s *Store) SaveScore(gameID, player string, score int) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO scores (game_id, player, score) VALUES (?, ?, ?)",
		gameID, player, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score for %s: %w", gameID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read score id: %w", err)
	}
	return id, nil
}

// TopScores returns gameID's best limit scores. Ties keep insertion order.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultBoardSize
	}
	return s.queryScores(
		"SELECT "+scoreColumns+" FROM scores WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?",
		gameID, limit,
	)
}

// AllScores returns every score recorded for gameID, best first.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryScores(
		"SELECT "+scoreColumns+" FROM scores WHERE game_id = ? ORDER BY score DESC, id ASC",
		gameID,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreEntry
	for rows.Next() {
		var (
			e       ScoreEntry
			created any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan score: %w", err)
		}
		e.CreatedAt = parseTime(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: reading scores: %w", err)
	}
	return out, nil
}

// HighScore returns gameID's best score, or 0 before the first run.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot read high score for %s: %w", gameID, err)
	}
	return int(best.Int64), nil
}

// ClearScores wipes gameID's leaderboard. Runs and progress are kept.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores for %s: %w", gameID, err)
	}
	return nil
}

// GameStats aggregates a leaderboard.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

const statsSelect = `SELECT game_id, COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
	COALESCE(SUM(score), 0), MAX(created_at) FROM scores`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStats(r rowScanner) (*GameStats, error) {
	var (
		gs   GameStats
		last any
	)
	if err := r.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &last); err != nil {
		return nil, err
	}
	gs.LastPlayed = parseTime(last)
	return &gs, nil
}

// GetGameStats aggregates gameID's scores. A game with no scores yields
// zero stats rather than an error.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	row := s.db.QueryRow(statsSelect+" WHERE game_id = ? GROUP BY game_id", gameID)
	gs, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return &GameStats{GameID: gameID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read stats for %s: %w", gameID, err)
	}
	return gs, nil
}

// GetAllGamesStats aggregates every game that has at least one score.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(statsSelect + " GROUP BY game_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*GameStats)
	for rows.Next() {
		gs, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats: %w", err)
		}
		out[gs.GameID] = gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: reading stats: %w", err)
	}
	return out, nil
}
