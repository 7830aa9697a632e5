// stacktower is a terminal stacking game: drop sliding platforms onto a
// growing tower, trimming whatever overhangs.
//
// Usage:
//
//	stacktower list              - List game modes
//	stacktower play [mode]       - Play campaign (default) or endless
//	stacktower menu              - Start the interactive menu
//	stacktower levels            - Show campaign levels and progress
//	stacktower scores [mode]     - Show high scores and recent runs
//	stacktower serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.stacktower/scores.db)
//	--config <path>       - Custom stack.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--verbose             - Debug logging
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacktower/internal/config"
	"github.com/vovakirdan/stacktower/internal/games/stack"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "stacktower",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stacktower",
	Short: "Stack Tower - stack sliding platforms in your terminal",
	Long: `Stack Tower is a terminal stacking game. A platform slides toward the
tower; tap to drop it. Whatever overhangs the block below is cut off and
falls away, so the tower narrows with every miss. Land within the perfect
threshold to keep the full width and build a combo.

Available commands:
  list     - Show the game modes
  play     - Play campaign or endless directly
  menu     - Interactive menu
  levels   - Campaign levels and your progress
  scores   - High scores and recent runs
  serve    - Start SSH server for remote play

Examples:
  stacktower play
  stacktower play endless --difficulty hard
  stacktower menu
  stacktower serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
		if flagFPS <= 0 {
			return errInvalidFPS
		}
		if flagDifficulty != "" {
			if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
				return err
			}
		}
		stack.SetConfigPath(flagConfig)
		stack.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.stacktower/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom stack.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
