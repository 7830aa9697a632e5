package tower

// Event is a session lifecycle notification consumed by the game flow,
// UI and camera layers. Platform pointers stay valid until the next SetupLevel.
type Event interface {
	towerEvent()
}

// LevelStarted is emitted once the anchor and the first moving platform exist.
type LevelStarted struct {
	Target int
}

func (LevelStarted) towerEvent() {}

// StackingSucceeded is emitted after a platform was placed, with or without a cut.
type StackingSucceeded struct {
	Platform  *Platform
	Perfect   bool
	CutLength float64
	Combo     int
	Placed    int
}

func (StackingSucceeded) towerEvent() {}

// FailReason describes why a level attempt ended.
type FailReason int

const (
	FailMissed      FailReason = iota // tapped with no overlap
	FailDriftedAway                   // never tapped, platform sailed past the stack
)

// String returns a human-readable reason.
func (r FailReason) String() string {
	switch r {
	case FailMissed:
		return "missed the stack"
	case FailDriftedAway:
		return "drifted away"
	default:
		return "unknown"
	}
}

// StackingFailed is emitted when the attempt ends in failure.
type StackingFailed struct {
	Platform *Platform
	Reason   FailReason
}

func (StackingFailed) towerEvent() {}

// LevelCompleted is emitted when the target platform count has been placed.
type LevelCompleted struct {
	Placed int
}

func (LevelCompleted) towerEvent() {}
