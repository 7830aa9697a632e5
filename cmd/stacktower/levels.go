package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacktower/internal/config"
)

var flagLevelsYAML bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show campaign levels and progress",
	Long: `List the campaign levels of the active config together with the
player's progress. Levels unlock one at a time as earlier ones are cleared.

With --yaml, print the built-in default config instead, as a starting
point for a custom --config file.

Examples:
  stacktower levels
  stacktower levels --player alice
  stacktower levels --yaml > my-stack.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagLevelsYAML, "yaml", false, "Print the default config YAML")
	levelsCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name (default: OS user)")
}

func runLevels(_ *cobra.Command, _ []string) error {
	if flagLevelsYAML {
		_, err := os.Stdout.Write(config.GetDefaultYAML("stack"))
		return err
	}

	cfg, source, err := loadStackConfig()
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, _ := config.ParseDifficulty(flagDifficulty)
		config.ApplyStackPreset(&cfg, preset)
	}

	player := localPlayer(flagPlayer)
	cleared := 0
	if store := openStore(); store != nil {
		cleared, err = store.HighestCleared("stack", player)
		store.Close()
		if err != nil {
			return err
		}
	}

	fmt.Printf("Campaign levels (%s)\n", source)
	rows := make([][]string, 0, len(cfg.Levels))
	for i, lvl := range cfg.Levels {
		status := "locked"
		switch {
		case i < cleared:
			status = "cleared"
		case i == cleared:
			status = "open"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			lvl.Name,
			strconv.Itoa(lvl.Target),
			fmt.Sprintf("%.1f", cfg.LevelSpeed(i)),
			status,
		})
	}
	printTable([]string{"#", "Name", "Target", "Speed", "Status"}, rows)

	fmt.Printf("Perfect threshold: %.2f   Endless stage: %d platforms\n", cfg.Thresholds.Perfect, cfg.Endless.Target)
	return nil
}
