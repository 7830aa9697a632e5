package core

// Action is what a key press means to the game, independent of the key.
type Action uint8

const (
	ActionNone    Action = iota
	ActionTap            // drop the moving platform
	ActionPause          // toggle pause
	ActionRestart        // start over once the run has ended
	ActionBack           // leave for the menu
	ActionQuit           // end the session

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:    "None",
	ActionTap:     "Tap",
	ActionPause:   "Pause",
	ActionRestart: "Restart",
	ActionBack:    "Back",
	ActionQuit:    "Quit",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions seen during one tick. The zero value is
// an empty frame ready to use.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame { return InputFrame{} }

// Set records a. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was recorded this tick.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Clear forgets every recorded action.
func (f *InputFrame) Clear() { f.bits = 0 }
