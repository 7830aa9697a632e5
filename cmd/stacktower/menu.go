package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacktower/internal/games/stack"
	"github.com/vovakirdan/stacktower/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start Stack Tower in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game ends, press Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  stacktower menu
  stacktower menu --fps 30
  stacktower menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	addPlayFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	if _, _, err := loadStackConfig(); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	player := localPlayer(flagPlayer)
	opts := tui.GameOptions{Player: player, ScreenshotDir: tui.DefaultScreenshotDir()}
	if sm := openAudio(flagMute, flagVolume); sm != nil {
		defer sm.Close()
		opts.Audio = sm
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, player)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config
		if menuResult.Quit {
			return nil
		}

		var game *stack.Game
		startLevel := 0

		switch menuResult.Choice {
		case tui.ChoiceScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil // User quit from scoreboard
			}
			continue

		case tui.ChoiceLevels:
			cleared := -1 // Without a database every level is open
			if store != nil {
				cleared, err = store.HighestCleared("stack", player)
				if err != nil {
					logger.Warn("could not read progress", "error", err)
					cleared = 0
				}
			}
			level, quit, err := tui.RunLevelSelector(stack.LevelNames(), cleared, cfg)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			if level == 0 {
				continue
			}
			game, startLevel = stack.New(), level

		case tui.ChoiceCampaign:
			game = stack.New()

		case tui.ChoiceEndless:
			game = stack.NewEndless()

		default:
			continue
		}

		// Update seed for each game unless pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		opts.StartLevel = startLevel
		logger.Debug("starting game", "game", game.ID(), "level", startLevel)
		backToMenu, err := tui.Run(game, store, cfg, opts)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !backToMenu {
			return nil
		}
	}
}
