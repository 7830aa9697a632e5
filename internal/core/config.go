package core

// RuntimeConfig is handed to a game when it starts.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Dt returns the simulated seconds per tick.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is what the platform needs to know after each step.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	Won      bool   // set together with GameOver when the run ended in a win
	Level    int    // 1-based level number, 0 if the game has no levels
	Message  string // short status line, e.g. the failure reason
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// RunStats summarises a run for persistence. Games that track more than a
// score expose it through StatsReporter.
type RunStats struct {
	Level          int // 1-based level the run ended on
	HighestCleared int // highest 1-based campaign level cleared, 0 if none
	Placed         int // platforms stacked over the whole run
	Perfects       int
	MaxCombo       int
	Outcome        string // "won", "failed" or "quit"
}

// StatsReporter is implemented by games that report RunStats.
type StatsReporter interface {
	RunStats() RunStats
}
