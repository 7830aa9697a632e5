package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stacktower/internal/core"
	"github.com/vovakirdan/stacktower/internal/registry"
	"github.com/vovakirdan/stacktower/internal/storage"
	"github.com/vovakirdan/stacktower/internal/tower"
)

// GameOptions configures a GameModel beyond the runtime config.
type GameOptions struct {
	// Player names the person playing, used for scores and progress.
	Player string

	// Audio receives sound cues. Nil keeps the game silent.
	Audio tower.Audio

	// StartLevel pins the 1-based campaign level to start on (0 = first).
	StartLevel int

	// Logger reports run outcomes and storage failures. Nil discards them.
	Logger *log.Logger

	// ScreenshotDir receives ctrl+s captures. Empty disables them.
	ScreenshotDir string
}

// GameModel runs one game with back-to-menu support.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       GameOptions
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	started    time.Time
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been recorded
}

// levelStarter is implemented by games that can start mid-campaign.
type levelStarter interface {
	StartAt(level int)
}

// bestKeeper is implemented by games that show the stored high score.
type bestKeeper interface {
	SetBest(score int)
}

// NewGameModel creates a new game model.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if opts.Audio != nil {
		if ar, ok := game.(registry.AudioReceiver); ok {
			ar.SetAudio(opts.Audio)
		}
	}
	if opts.StartLevel > 0 {
		if ls, ok := game.(levelStarter); ok {
			ls.StartAt(opts.StartLevel)
		}
	}

	if bk, ok := game.(bestKeeper); ok && store != nil {
		if best, err := store.HighScore(game.ID()); err == nil {
			bk.SetBest(best)
		}
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState and started are set on first tick (value receiver limitation)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Game.Screenshot) {
		m.screenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.recordRun()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		// Back leaves a finished or paused game; otherwise it pauses.
		if m.gameState.GameOver || m.gameState.Paused {
			m.recordRun()
			m.backToMenu = true
			return m, nil
		}
		m.inputFrame.Set(core.ActionPause)

	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without Resize restart with the new dimensions.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.started.IsZero() {
		m.started = time.Now()
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.started = time.Now()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Record the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.recordRun()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordRun persists the current run's score, history and progress.
// Runs that never placed anything are not recorded.
func (m *GameModel) recordRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true
	if m.store == nil {
		return
	}

	state := m.game.State()
	id := m.game.ID()

	if state.Score > 0 {
		if _, err := m.store.SaveScore(id, m.opts.Player, state.Score); err != nil {
			m.warn("could not save score", err)
		}
		if bk, ok := m.game.(bestKeeper); ok {
			if best, err := m.store.HighScore(id); err == nil {
				bk.SetBest(best)
			}
		}
	}

	reporter, ok := m.game.(core.StatsReporter)
	if !ok {
		return
	}
	stats := reporter.RunStats()
	if stats.Placed == 0 && stats.HighestCleared == 0 {
		return
	}

	outcome := stats.Outcome
	if outcome == "" {
		outcome = "quit"
	}
	var secs int
	if !m.started.IsZero() {
		secs = int(time.Since(m.started).Seconds())
	}

	run := storage.Run{
		GameID:   id,
		Player:   m.opts.Player,
		Level:    stats.Level,
		Outcome:  outcome,
		Score:    state.Score,
		Placed:   stats.Placed,
		Perfects: stats.Perfects,
		MaxCombo: stats.MaxCombo,
		Duration: secs,
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.warn("could not save run", err)
	}
	if m.opts.Logger != nil {
		m.opts.Logger.Info("run finished",
			"game", id,
			"player", m.opts.Player,
			"outcome", outcome,
			"level", stats.Level,
			"score", state.Score,
			"placed", stats.Placed,
			"max_combo", stats.MaxCombo,
		)
	}

	if stats.HighestCleared > 0 {
		if err := m.store.SaveProgress(id, m.opts.Player, stats.HighestCleared); err != nil {
			m.warn("could not save progress", err)
		}
	}
}

func (m *GameModel) warn(msg string, err error) {
	if m.opts.Logger != nil {
		m.opts.Logger.Warn(msg, "game", m.game.ID(), "player", m.opts.Player, "error", err)
	}
}

func (m *GameModel) screenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.game.Render(m.screen)
	path, err := saveScreenshot(m.opts.ScreenshotDir, m.game.ID(), m.screen, time.Now())
	if err != nil {
		m.warn("could not save screenshot", err)
		return
	}
	if m.opts.Logger != nil {
		m.opts.Logger.Debug("screenshot saved", "path", path)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the local terminal.
// Returns true if the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		&runner{GameModel: model},
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if r, ok := final.(*runner); ok {
		return r.BackToMenu(), nil
	}
	return false, nil
}

// runner ends the program when a standalone game goes back to the menu.
type runner struct {
	GameModel
}

func (r *runner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		r.GameModel = gm
	}
	if r.GameModel.BackToMenu() {
		return r, tea.Quit
	}
	return r, cmd
}
