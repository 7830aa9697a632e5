package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacktower/internal/registry"
	"github.com/vovakirdan/stacktower/internal/storage"
)

var (
	flagScoresRuns  int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [campaign|endless]",
	Short: "Show high scores and recent runs",
	Long: `Display the top 10 high scores for a mode (campaign if omitted),
followed by the most recent runs.

Examples:
  stacktower scores
  stacktower scores endless
  stacktower scores --runs 20
  stacktower scores endless --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresRuns, "runs", 5, "Number of recent runs to show (0 to hide)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the high scores of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	gameID, err := gameIDForMode(mode)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("cleared high scores", "game", gameID)
		return nil
	}

	scores, err := store.TopScores(gameID, storage.DefaultBoardSize)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'stacktower play %s' to set the first high score!\n", mode)
		return nil
	}

	rows := make([][]string, 0, len(scores))
	for i, e := range scores {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			displayName(e.Player),
			strconv.Itoa(e.Score),
			e.CreatedAt.Format(dateLayout),
		})
	}
	printTable([]string{"Rank", "Player", "Score", "Date"}, rows)

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Games: %d   Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}

	if flagScoresRuns <= 0 {
		return nil
	}
	runs, err := store.RecentRuns(gameID, flagScoresRuns)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent runs")
	rows = rows[:0]
	for _, r := range runs {
		rows = append(rows, []string{
			r.CreatedAt.Format(dateLayout),
			displayName(r.Player),
			strconv.Itoa(r.Level),
			r.Outcome,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Placed),
			strconv.Itoa(r.MaxCombo),
			fmt.Sprintf("%ds", r.Duration),
		})
	}
	printTable([]string{"Date", "Player", "Level", "Result", "Score", "Placed", "Combo", "Time"}, rows)
	return nil
}

const dateLayout = "2006-01-02 15:04"

func displayName(p string) string {
	if p == "" {
		return "-"
	}
	return p
}
