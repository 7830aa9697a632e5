// Package stack implements the stack tower arcade game on top of the
// engine-free tower session: input mapping, level flow, scoring, debris
// and rendering.
package stack

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/stacktower/internal/config"
	"github.com/vovakirdan/stacktower/internal/core"
	"github.com/vovakirdan/stacktower/internal/pool"
	"github.com/vovakirdan/stacktower/internal/registry"
	"github.com/vovakirdan/stacktower/internal/tower"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

type phase int

const (
	phasePlaying phase = iota
	phaseCleared       // level-cleared interlude
	phaseFailed
	phaseWon
)

const (
	clearInterludeTicks = 90 // ~1.5 seconds at 60 FPS
	flashTicks          = 45
	minScreenW          = 40
	minScreenH          = 12
)

var (
	configPath         string
	difficultyPreset   config.DifficultyPreset
	selectedStartLevel int
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetStartLevel sets the 1-based campaign level the next game starts on.
// 0 means start from the beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// LoadConfig loads the configuration the game would use, preset applied.
func LoadConfig() (config.StackConfig, error) {
	cfg, err := config.LoadStack(configPath)
	if err != nil {
		return config.DefaultStackConfig(), err
	}
	if difficultyPreset != "" {
		config.ApplyStackPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Game implements the stack tower game.
type Game struct {
	mode    Mode
	audio   tower.Audio
	startAt int // per-instance start level, survives restarts

	cfg        config.StackConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	platforms  *pool.Pool[*tower.Platform]
	session    *tower.Session
	debris     *DebrisField

	phase          phase
	failReason     tower.FailReason
	levelIndex     int // 0-based; endless counts stages
	interlude      int
	tick           uint64
	score          int
	placedTotal    int
	perfects       int
	maxCombo       int
	highestCleared int
	best           int // stored high score, shown in the HUD

	flash      string
	flashTicks int
	camera     float64 // world Z shown on the bottom play row

	screenW  int
	screenH  int
	tickRate int
	paused   bool
	tooSmall bool
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("stack", func() registry.Game {
		return New()
	})
	registry.Register("stack_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "stack_endless"
	}
	return "stack"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Stack Tower (Endless)"
	}
	return "Stack Tower"
}

// StartAt pins the 1-based campaign level this instance starts on,
// overriding SetStartLevel. Restarts begin from the same level.
func (g *Game) StartAt(level int) {
	g.startAt = level
}

// SetBest sets the stored high score shown alongside the live score.
func (g *Game) SetBest(score int) {
	g.best = score
}

// SetAudio attaches the audio collaborator used from the next Reset on.
func (g *Game) SetAudio(a tower.Audio) {
	g.audio = a
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = config.DefaultStackConfig()
		if difficultyPreset != "" {
			config.ApplyStackPreset(&cfg, difficultyPreset)
		}
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	if g.session != nil {
		g.session.Shutdown()
	}
	if g.platforms == nil {
		g.platforms = tower.NewPlatformPool()
		// Anchor, moving platform and a full stack of the longest level.
		g.platforms.Prefill(maxTarget(cfg) + 2)
	}
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.debris = NewDebrisField(cfg.Debris.Gravity)
	g.session = tower.NewSession(tower.Options{
		Audio:   g.audio,
		Physics: g.debris,
		Rand:    g.rng,
		Pool:    g.platforms,
	})

	g.tickRate = runtime.TickRate
	g.tick = 0
	g.score = 0
	g.placedTotal = 0
	g.perfects = 0
	g.maxCombo = 0
	g.highestCleared = 0
	g.paused = false
	g.flash = ""
	g.flashTicks = 0
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	// Apply selected start level (campaign only)
	g.levelIndex = 0
	if g.mode == ModeCampaign {
		if g.startAt > 0 && g.startAt <= len(cfg.Levels) {
			g.levelIndex = g.startAt - 1
		} else if selectedStartLevel > 0 && selectedStartLevel <= len(cfg.Levels) {
			g.levelIndex = selectedStartLevel - 1
			selectedStartLevel = 0 // Reset after use
		}
	}

	g.startLevel()
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// levelConfig builds the session parameters for the current level.
func (g *Game) levelConfig() tower.LevelConfig {
	p := g.cfg.Platform
	geom := tower.Geometry{
		PlatformWidth:    p.Width,
		PlatformDepth:    p.Depth,
		SpawnGap:         p.SpawnGap,
		SpawnDistance:    p.SpawnDistance,
		MoveSpeed:        g.cfg.LevelSpeed(g.levelIndex),
		PerfectThreshold: g.cfg.Thresholds.Perfect,
		PieceLifetime:    g.cfg.Debris.Lifetime,
		PieceImpulse:     g.cfg.Debris.Impulse,
		Palette:          p.Colors,
	}
	target := 0
	if lvl, ok := g.cfg.Level(g.levelIndex); ok {
		target = lvl.Target
	}

	if g.mode == ModeEndless {
		ticks := int(g.tick)
		geom.MoveSpeed = g.difficulty.Speed(p.MoveSpeed, g.score, ticks)
		geom.PerfectThreshold = g.difficulty.Threshold(g.cfg.Thresholds.Perfect, g.score, ticks)
		target = g.cfg.Endless.Target
	}

	return tower.LevelConfig{TargetCount: target, Geometry: geom}
}

func (g *Game) startLevel() {
	g.debris.Clear()
	g.session.SetupLevel(g.levelConfig())
	g.phase = phasePlaying
	g.interlude = 0
	g.camera = 0
	g.drainEvents()
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.over() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.over() {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	dt := core.RuntimeConfig{TickRate: g.tickRate}.Dt()

	if g.phase == phasePlaying {
		if input.Has(core.ActionTap) {
			g.session.OnInputTap()
		}
		g.session.Tick(dt)
		g.drainEvents()
	}

	if g.phase == phaseCleared {
		g.interlude++
		if g.interlude >= clearInterludeTicks {
			g.advanceLevel()
		}
	}

	g.debris.Update(dt)
	g.updateCamera()
	if g.flashTicks > 0 {
		g.flashTicks--
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) drainEvents() {
	for _, ev := range g.session.Events() {
		switch e := ev.(type) {
		case tower.StackingSucceeded:
			g.placedTotal++
			g.score++
			if e.Perfect {
				g.perfects++
				g.score += e.Combo
				g.maxCombo = max(g.maxCombo, e.Combo)
				g.setFlash(fmt.Sprintf("PERFECT x%d", e.Combo))
			}

		case tower.StackingFailed:
			g.phase = phaseFailed
			g.failReason = e.Reason
			g.dropPlatform(e.Platform)

		case tower.LevelCompleted:
			if g.mode == ModeCampaign {
				g.highestCleared = max(g.highestCleared, g.levelIndex+1)
			}
			g.phase = phaseCleared
			g.interlude = 0
		}
	}
}

// dropPlatform hands a failed platform to the debris field so it falls
// away like a severed piece.
func (g *Game) dropPlatform(p *tower.Platform) {
	if p == nil {
		return
	}
	ext := p.Extent()
	g.debris.SpawnFallingPiece(tower.FallingPiece{
		Center:   tower.Vec3{X: ext.Center(), Y: p.Position.Y, Z: p.Position.Z},
		Width:    ext.Length(),
		Depth:    p.Depth,
		ColorTag: p.ColorTag,
		Impulse:  p.MoveDir * g.cfg.Debris.Impulse,
		Lifetime: g.cfg.Debris.Lifetime,
	})
}

func (g *Game) advanceLevel() {
	g.levelIndex++
	if g.mode == ModeCampaign && g.levelIndex >= len(g.cfg.Levels) {
		g.levelIndex = len(g.cfg.Levels) - 1
		g.phase = phaseWon
		return
	}
	g.startLevel()
}

func (g *Game) setFlash(text string) {
	g.flash = text
	g.flashTicks = flashTicks
}

// updateCamera eases the view so the top of the stack stays in the upper
// half of the play area.
func (g *Game) updateCamera() {
	top := 0.0
	if cur := g.session.Current(); cur != nil {
		top = cur.Position.Z
	}
	target := max(0, top-float64(g.playRows())*0.5*g.rowPitch())
	g.camera = core.Lerp(g.camera, target, 0.15)
}

func (g *Game) over() bool {
	return g.phase == phaseFailed || g.phase == phaseWon
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	msg := ""
	if g.phase == phaseFailed {
		msg = g.failReason.String()
	}
	return core.GameState{
		Score:    g.score,
		GameOver: g.over(),
		Paused:   g.paused,
		Won:      g.phase == phaseWon,
		Level:    g.levelIndex + 1,
		Message:  msg,
	}
}

// RunStats implements core.StatsReporter.
func (g *Game) RunStats() core.RunStats {
	outcome := ""
	switch g.phase {
	case phaseWon:
		outcome = "won"
	case phaseFailed:
		outcome = "failed"
	}
	return core.RunStats{
		Level:          g.levelIndex + 1,
		HighestCleared: g.highestCleared,
		Placed:         g.placedTotal,
		Perfects:       g.perfects,
		MaxCombo:       g.maxCombo,
		Outcome:        outcome,
	}
}

// LevelNames returns the names of the configured campaign levels.
func LevelNames() []string {
	cfg, _ := LoadConfig()
	names := make([]string, len(cfg.Levels))
	for i, lvl := range cfg.Levels {
		names[i] = lvl.Name
	}
	return names
}

// maxTarget is the most platforms any single level of cfg asks for.
func maxTarget(cfg config.StackConfig) int {
	n := cfg.Endless.Target
	for _, lvl := range cfg.Levels {
		n = max(n, lvl.Target)
	}
	return n
}
