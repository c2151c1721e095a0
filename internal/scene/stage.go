// Package scene implements the proposal experience as a pure, tick-driven
// state machine. It contains no Bubble Tea and no I/O; the platform layer
// feeds it input frames and draws the screen buffer it renders into.
package scene

// Stage identifies which part of the experience is active. Stages only ever
// move forward; Celebration is terminal.
type Stage int

const (
	StageIntro Stage = iota
	StageKeepsakes
	StageQuestion
	StageCelebration
)

// String returns a human-readable name for the stage.
func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StageKeepsakes:
		return "keepsakes"
	case StageQuestion:
		return "question"
	case StageCelebration:
		return "celebration"
	default:
		return "unknown"
	}
}

// Event is something notable that happened during a Step. The platform
// reacts to events (sound, journal) so the scene itself stays free of I/O.
type Event int

const (
	EventStageAdvanced Event = iota
	EventKeepsakeFound
	EventDodge
	EventCelebration
	EventMuteOn
	EventMuteOff
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventStageAdvanced:
		return "stage_advanced"
	case EventKeepsakeFound:
		return "keepsake_found"
	case EventDodge:
		return "dodge"
	case EventCelebration:
		return "celebration"
	case EventMuteOn:
		return "mute_on"
	case EventMuteOff:
		return "mute_off"
	default:
		return "unknown"
	}
}

// State is the coarse view of the experience the platform cares about.
type State struct {
	Stage          Stage
	KeepsakesFound int
	NoteOpen       bool
	Muted          bool
	Celebrated     bool
}

// StepResult is returned from each simulation step.
type StepResult struct {
	State  State
	Events []Event
}
