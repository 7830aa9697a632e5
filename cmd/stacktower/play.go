package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacktower/internal/games/stack"
	"github.com/vovakirdan/stacktower/internal/platform/tui"
	"github.com/vovakirdan/stacktower/internal/registry"
)

var (
	flagLevel  int
	flagMute   bool
	flagVolume float64
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play [campaign|endless]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (campaign if omitted).

Controls:
  Space/Enter/Up - Drop the platform
  P              - Pause
  Esc/B          - Pause, or back when paused or over
  R              - Restart (after game over)
  Ctrl+S         - Save a screenshot
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Wider perfect threshold, slower platforms
  normal - Config as written
  hard   - Narrow perfect threshold, faster platforms
  fixed  - Endless mode never speeds up

Examples:
  stacktower play
  stacktower play --level 3
  stacktower play endless --difficulty hard
  stacktower play --config ./my-stack.yaml --mute`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"campaign", "endless"},
	RunE:      runPlay,
}

func init() {
	addPlayFlags(playCmd)
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start on (1-based)")
}

// addPlayFlags registers the flags shared by commands that run games locally.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume (0-1)")
	cmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for scores (default: OS user)")
}

// gameIDForMode maps a CLI mode name to a registered game ID.
func gameIDForMode(mode string) (string, error) {
	switch mode {
	case "", "campaign", "stack":
		return "stack", nil
	case "endless", "stack_endless":
		return "stack_endless", nil
	}
	return "", fmt.Errorf("unknown mode %q (want campaign or endless)", mode)
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	gameID, err := gameIDForMode(mode)
	if err != nil {
		return err
	}

	if _, _, err := loadStackConfig(); err != nil {
		return err
	}

	if flagLevel != 0 {
		if gameID != "stack" {
			return fmt.Errorf("--level only applies to the campaign")
		}
		if n := len(stack.LevelNames()); flagLevel < 1 || flagLevel > n {
			return fmt.Errorf("--level must be between 1 and %d", n)
		}
		stack.SetStartLevel(flagLevel)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := tui.GameOptions{Player: localPlayer(flagPlayer), ScreenshotDir: tui.DefaultScreenshotDir()}
	if sm := openAudio(flagMute, flagVolume); sm != nil {
		defer sm.Close()
		opts.Audio = sm
	}

	logger.Debug("starting game", "game", gameID, "player", opts.Player, "fps", flagFPS)
	if _, err := tui.Run(game, store, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
