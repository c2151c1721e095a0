package scene

// Snapshot captures the complete experience state for determinism testing
// and debugging. Everything is primitive-typed so snapshots can be compared
// directly.
type Snapshot struct {
	Tick        uint64
	Stage       Stage
	IntroLine   int
	ClosingLine int

	PanelText    string // full target text bound to the panel
	PanelVisible string // revealed prefix
	PanelDone    bool

	Found        []string // keepsake IDs in the order they were found
	NoteKeepsake string   // keepsake the open note belongs to; "" = closed
	NoteText     string
	NoteVisible  string

	EvasiveSet bool
	EvasiveX   float64
	EvasiveY   float64
	Dodges     int

	Focus string
	Muted bool

	ConfettiFired bool
	ConfettiAlive int
	Decorations   int
}

// Snapshot returns the current experience snapshot for determinism
// verification.
func (e *Experience) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         e.tick,
		Stage:        e.stage,
		IntroLine:    e.introIdx,
		ClosingLine:  e.closeIdx,
		PanelText:    e.dialogue.Text(),
		PanelVisible: e.dialogue.Visible(),
		PanelDone:    e.lineDone,
		Found:        append([]string(nil), e.foundOrder...),
		NoteKeepsake: e.noteFor,
		NoteText:     e.note.Text(),
		NoteVisible:  e.note.Visible(),
		Dodges:       e.dodges,
		Focus:        e.focus,
		Muted:        e.muted,

		ConfettiFired: e.confetti.Fired(),
		ConfettiAlive: e.confetti.Alive(),
		Decorations:   len(e.backdrop.Decorations()),
	}
	if e.evasive != nil {
		s.EvasiveSet = true
		s.EvasiveX = e.evasive.X
		s.EvasiveY = e.evasive.Y
	}
	return s
}
