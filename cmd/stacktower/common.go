package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"

	"golang.org/x/term"

	"github.com/vovakirdan/stacktower/internal/audio"
	"github.com/vovakirdan/stacktower/internal/config"
	"github.com/vovakirdan/stacktower/internal/core"
	"github.com/vovakirdan/stacktower/internal/storage"
)

var errInvalidFPS = errors.New("--fps must be positive")

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	logger.Debug("opened scores database", "path", flagDBPath)
	return store
}

// localPlayer names the local player for scores and progress.
func localPlayer(override string) string {
	if override != "" {
		return override
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

// openAudio starts the speaker unless muted. A nil return means silence.
func openAudio(muted bool, volume float64) *audio.SoundManager {
	if muted {
		return nil
	}
	sm := audio.NewSoundManager(volume)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio disabled", "error", err)
		return nil
	}
	return sm
}

// loadStackConfig loads and validates the stack config the flags select.
func loadStackConfig() (config.StackConfig, string, error) {
	cfg, source, err := config.LoadStackWithSource(flagConfig)
	if err != nil {
		return cfg, source, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("loaded config", "source", source, "levels", len(cfg.Levels))
	return cfg, source, nil
}
