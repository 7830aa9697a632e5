// Package registry maps mode IDs to game constructors. Modes register from
// init, so the CLI and the SSH server only need a blank import.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/stacktower/internal/core"
	"github.com/vovakirdan/stacktower/internal/tower"
)

// Game is a playable mode driven by the platform loop. Implementations hold
// no terminal state; input arrives as an InputFrame once per tick and output
// goes to a Screen.
type Game interface {
	// ID is the stable key used by the CLI and the score tables.
	ID() string
	Title() string

	// Reset starts a fresh run sized to cfg.
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	// Render draws into a cleared screen.
	Render(dst *core.Screen)
	State() core.GameState
}

// Resizer is implemented by games that can follow a terminal resize
// mid-run. Others are reset.
type Resizer interface {
	Resize(w, h int)
}

// AudioReceiver is implemented by games that emit sound cues.
type AudioReceiver interface {
	SetAudio(a tower.Audio)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	info  GameInfo
	build Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a mode under id. Registering the same id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: GameInfo{ID: id, Title: f().Title()}, build: f}
}

// List returns every registered mode ordered by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new instance of the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.build(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
