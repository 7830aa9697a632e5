package stack

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateFailed       GameStateType = "failed"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Level    int    // Current level (1-indexed for display)
	Mode     string // "campaign" or "endless"
	Score    int
	Placed   int // platforms placed in the current level
	Target   int
	Combo    int
	MaxCombo int
	Perfects int
	Debris   int
	CurrentX float64 // X of the most recent platform
	Width    float64 // width of the most recent platform
	State    GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.phase == phaseWon:
		state = StateWin
	case g.phase == phaseFailed:
		state = StateFailed
	case g.phase == phaseCleared:
		state = StateLevelCleared
	}

	snap := Snapshot{
		Tick:     g.tick,
		Level:    g.levelIndex + 1,
		Mode:     string(g.mode),
		Score:    g.score,
		Placed:   g.session.Placed(),
		Target:   g.session.Target(),
		Combo:    g.session.Combo(),
		MaxCombo: g.maxCombo,
		Perfects: g.perfects,
		Debris:   g.debris.Len(),
		State:    state,
	}
	if cur := g.session.Current(); cur != nil {
		snap.CurrentX = cur.Position.X
		snap.Width = cur.Width()
	}
	return snap
}
