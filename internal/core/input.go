package core

// Action is a semantic input intent, abstracted from physical key presses.
// The experience works with these high-level intents rather than raw input,
// so the same state machine serves local keyboards and SSH sessions alike.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow, K - move focus up
	ActionDown           // S, Down arrow, J - move focus down
	ActionLeft           // A, Left arrow, H - move focus left
	ActionRight          // D, Right arrow, L - move focus right
	ActionConfirm        // Enter, Space - continue / select / affirm
	ActionDismiss        // Escape - close the open note
	ActionMute           // M - toggle the soundtrack
	ActionQuit           // Q, Ctrl+C - leave the experience
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionDismiss:
		return "Dismiss"
	case ActionMute:
		return "Mute"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame gathers everything the user did between two simulation ticks:
// the set of triggered actions plus the most recent pointer activity. The
// platform fills it from Bubble Tea messages; the experience consumes it in
// Step and the platform clears it for the next frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// PointerX/Y hold the cell the pointer last moved over this frame.
	// Valid only when PointerMoved is true.
	PointerX, PointerY int
	PointerMoved       bool

	// ClickX/Y hold the cell of a left-button press this frame.
	// Valid only when Clicked is true.
	ClickX, ClickY int
	Clicked        bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// PointTo records a pointer motion over the given cell.
func (f *InputFrame) PointTo(x, y int) {
	f.PointerX = x
	f.PointerY = y
	f.PointerMoved = true
}

// ClickAt records a left-button press on the given cell. A press also counts
// as motion so hover state stays consistent with where the click landed.
func (f *InputFrame) ClickAt(x, y int) {
	f.ClickX = x
	f.ClickY = y
	f.Clicked = true
	f.PointTo(x, y)
}

// Clear resets all actions and pointer state for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.PointerMoved = false
	f.Clicked = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := f
	clone.Actions = make(map[Action]bool, len(f.Actions))
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
