package scene

import (
	"math/rand"

	"github.com/mapetit/willyou/internal/core"
	"github.com/mapetit/willyou/internal/story"
)

// Focus identifiers for the interactive controls. Keepsake focus uses the
// keepsake's own ID.
const (
	focusContinue = "continue"
	focusProceed  = "proceed"
	focusYes      = "yes"
	focusNo       = "no"
	focusNoteOK   = "note_ok"
)

// Experience is the single source of truth for one run: the active stage,
// the keepsakes found, the open note, and the evasive control's position.
// It is pure simulation: Reset seeds it, Step
// advances it one tick with the frame's input, Render draws it into a cell
// buffer. All mutation happens in Step, on one goroutine.
type Experience struct {
	script story.Script
	cfg    core.RuntimeConfig
	rng    *rand.Rand
	tick   uint64

	stage Stage

	dialogue *Dialogue // panel text: intro lines, hint, question, closing
	note     *Dialogue // note popup text
	lineDone bool      // current panel text fully revealed
	introIdx int
	closeIdx int

	found      map[string]bool
	foundOrder []string
	noteFor    string // keepsake the open note belongs to; "" = closed

	evasive     *core.Percent // nil until the first dodge
	dodges      int
	pointerInNo bool // tracks pointer entry into the evasive control

	muted bool
	focus string

	backdrop *Backdrop
	confetti *Confetti
	layout   Layout

	events []Event // collected during the current Step
}

// New creates an experience for the given script. Reset must be called
// before the first Step.
func New(script story.Script) *Experience {
	return &Experience{script: script}
}

// ID returns the script identifier this experience plays.
func (e *Experience) ID() string {
	return e.script.ID
}

// Title returns the script's display title.
func (e *Experience) Title() string {
	return e.script.Title
}

// Script returns the script this experience plays.
func (e *Experience) Script() story.Script {
	return e.script
}

// Tick returns the number of steps since the last reset.
func (e *Experience) Tick() uint64 {
	return e.tick
}

// Reset starts the experience over from the intro stage. Every piece of
// session state is discarded; the backdrop and all randomness derive from
// cfg.Seed, so equal seeds replay identically.
func (e *Experience) Reset(cfg core.RuntimeConfig) {
	e.cfg = cfg
	e.rng = rand.New(rand.NewSource(cfg.Seed))
	e.tick = 0
	e.stage = StageIntro
	e.dialogue = NewDialogue(revealTicksFor(cfg.TickRate))
	e.note = NewDialogue(revealTicksFor(cfg.TickRate))
	e.introIdx = 0
	e.closeIdx = 0
	e.found = make(map[string]bool)
	e.foundOrder = nil
	e.noteFor = ""
	e.evasive = nil
	e.dodges = 0
	e.pointerInNo = false
	e.muted = false
	e.focus = focusContinue
	e.backdrop = NewBackdrop()
	e.backdrop.Generate(e.rng, cfg.ScreenW, cfg.ScreenH)
	e.confetti = NewConfetti()
	e.relayout()
	e.bindPanel(e.introLine())
}

// revealTicksFor keeps the reveal cadence at ~50ms per rune whatever the
// tick rate is.
func revealTicksFor(rate int) int {
	if rate <= 0 {
		return DefaultRevealTicks
	}
	return core.Max(1, (rate+10)/20)
}

// Resize adapts the experience to a new terminal size. Stage state is
// preserved; only geometry is recomputed, and the backdrop regenerates to
// cover the new bounds.
func (e *Experience) Resize(w, h int) {
	if w == e.cfg.ScreenW && h == e.cfg.ScreenH {
		return
	}
	e.cfg.ScreenW = w
	e.cfg.ScreenH = h
	e.backdrop.Generate(e.rng, w, h)
	e.relayout()
}

// Step advances the experience by one tick.
func (e *Experience) Step(in core.InputFrame) StepResult {
	e.tick++
	e.events = nil

	if in.Has(core.ActionMute) {
		e.muted = !e.muted
		if e.muted {
			e.emit(EventMuteOn)
		} else {
			e.emit(EventMuteOff)
		}
	}

	if in.PointerMoved {
		e.pointerMoved(in.PointerX, in.PointerY)
	}

	switch e.stage {
	case StageIntro:
		e.stepIntro(in)
	case StageKeepsakes:
		e.stepKeepsakes(in)
	case StageQuestion:
		e.stepQuestion(in)
	case StageCelebration:
		e.stepCelebration(in)
	}

	e.confetti.Step()

	return StepResult{State: e.State(), Events: e.events}
}

// State returns the coarse view of the experience.
func (e *Experience) State() State {
	return State{
		Stage:          e.stage,
		KeepsakesFound: len(e.found),
		NoteOpen:       e.noteOpen(),
		Muted:          e.muted,
		Celebrated:     e.confetti.Fired(),
	}
}

func (e *Experience) emit(ev Event) {
	e.events = append(e.events, ev)
}

func (e *Experience) noteOpen() bool {
	return e.noteFor != ""
}

func (e *Experience) relayout() {
	e.layout = ComputeLayout(e.cfg.ScreenW, e.cfg.ScreenH, e.script, e.evasive)
}

// bindPanel binds text to the panel dialogue. Rebinding the same text keeps
// the current reveal, so lineDone mirrors the dialogue rather than resetting
// blindly.
func (e *Experience) bindPanel(text string) {
	e.dialogue.SetText(text, func() { e.lineDone = true })
	e.lineDone = e.dialogue.Done()
}

func (e *Experience) introLine() string {
	if e.introIdx < len(e.script.Intro) {
		return e.script.Intro[e.introIdx]
	}
	return ""
}

func (e *Experience) closingLine() string {
	if e.closeIdx < len(e.script.Closing) {
		return e.script.Closing[e.closeIdx]
	}
	return ""
}

// --- Stage: intro ---

func (e *Experience) stepIntro(in core.InputFrame) {
	e.dialogue.Step()

	if !in.Has(core.ActionConfirm) && !in.Clicked {
		return
	}
	if !e.lineDone {
		e.dialogue.Skip()
		return
	}
	if e.introIdx < len(e.script.Intro)-1 {
		e.introIdx++
		e.bindPanel(e.introLine())
		return
	}
	e.advanceToKeepsakes()
}

func (e *Experience) advanceToKeepsakes() {
	e.stage = StageKeepsakes
	e.bindPanel(e.script.Hint)
	if len(e.script.Keepsakes) > 0 {
		e.focus = e.script.Keepsakes[0].ID
	}
	e.emit(EventStageAdvanced)
}

// --- Stage: keepsakes ---

func (e *Experience) stepKeepsakes(in core.InputFrame) {
	e.dialogue.Step()
	e.note.Step()

	if in.Has(core.ActionDismiss) && e.noteOpen() {
		e.dismissNote()
		return
	}

	if in.Has(core.ActionRight) || in.Has(core.ActionDown) {
		e.cycleKeepsakeFocus(1)
	} else if in.Has(core.ActionLeft) || in.Has(core.ActionUp) {
		e.cycleKeepsakeFocus(-1)
	}

	if in.Clicked {
		e.clickKeepsakes(in.ClickX, in.ClickY)
		return
	}
	if in.Has(core.ActionConfirm) {
		e.confirmKeepsakes()
	}
}

func (e *Experience) confirmKeepsakes() {
	switch e.focus {
	case focusNoteOK:
		if !e.note.Done() {
			e.note.Skip()
		} else {
			e.dismissNote()
		}
	case focusProceed:
		e.tryProceed()
	default:
		if _, ok := e.script.Keepsake(e.focus); ok {
			e.selectKeepsake(e.focus)
		}
	}
}

func (e *Experience) clickKeepsakes(x, y int) {
	if e.noteOpen() {
		if e.layout.NoteOK.Contains(x, y) {
			e.dismissNote()
			return
		}
		if e.layout.Note.Contains(x, y) {
			return
		}
	}
	if id, ok := e.keepsakeAt(x, y); ok {
		e.focus = id
		e.selectKeepsake(id)
		return
	}
	if !e.noteOpen() && e.layout.Proceed.Contains(x, y) {
		e.tryProceed()
	}
}

// cycleKeepsakeFocus moves focus through the keepsakes and then the one
// extra control: the note's dismiss affordance while a note is open, the
// proceed affordance otherwise.
func (e *Experience) cycleKeepsakeFocus(dir int) {
	order := make([]string, 0, len(e.script.Keepsakes)+1)
	for _, k := range e.script.Keepsakes {
		order = append(order, k.ID)
	}
	if e.noteOpen() {
		order = append(order, focusNoteOK)
	} else {
		order = append(order, focusProceed)
	}

	idx := -1
	for i, id := range order {
		if id == e.focus {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.setFocus(order[0])
		return
	}
	e.setFocus(order[(idx+dir+len(order))%len(order)])
}

// selectKeepsake marks a keepsake found and opens its note. Finding is
// idempotent: an already-found keepsake does nothing at all.
func (e *Experience) selectKeepsake(id string) {
	k, ok := e.script.Keepsake(id)
	if !ok {
		return
	}
	if e.found[id] {
		return
	}
	e.found[id] = true
	e.foundOrder = append(e.foundOrder, id)
	e.openNote(k)
	e.emit(EventKeepsakeFound)
}

// openNote shows a keepsake's message. At most one note is open at a time;
// selecting another keepsake while one is open replaces it, which restarts
// the reveal for the new message.
func (e *Experience) openNote(k story.Keepsake) {
	e.noteFor = k.ID
	e.note.SetText(k.Message, nil)
	e.focus = focusNoteOK
}

func (e *Experience) dismissNote() {
	if e.noteFor != "" {
		e.focus = e.noteFor
	}
	e.noteFor = ""
	e.note.Clear()
}

// tryProceed advances to the question once every keepsake is found and no
// note is open. Otherwise it does nothing; the stage never moves backward
// to compensate.
func (e *Experience) tryProceed() {
	if len(e.found) < story.KeepsakeCount || e.noteOpen() {
		return
	}
	e.stage = StageQuestion
	e.bindPanel(e.script.Question)
	e.focus = focusYes
	e.emit(EventStageAdvanced)
}

func (e *Experience) keepsakeAt(x, y int) (string, bool) {
	for _, k := range e.script.Keepsakes {
		if e.layout.Keepsakes[k.ID].Contains(x, y) {
			return k.ID, true
		}
	}
	return "", false
}

// --- Stage: question ---

func (e *Experience) stepQuestion(in core.InputFrame) {
	e.dialogue.Step()

	if !e.lineDone {
		if in.Has(core.ActionConfirm) || in.Clicked {
			e.dialogue.Skip()
		}
		return
	}

	if in.Has(core.ActionLeft) || in.Has(core.ActionUp) {
		e.setFocus(focusYes)
	}
	if in.Has(core.ActionRight) || in.Has(core.ActionDown) {
		e.setFocus(focusNo)
	}

	if in.Clicked {
		switch {
		case e.layout.Yes.Contains(in.ClickX, in.ClickY):
			e.celebrate()
		case e.layout.No.Contains(in.ClickX, in.ClickY):
			e.triggerDodge()
		}
		return
	}

	if in.Has(core.ActionConfirm) {
		switch e.focus {
		case focusYes:
			e.celebrate()
		case focusNo:
			// The button escapes before the press lands.
			e.triggerDodge()
		}
	}
}

// setFocus moves keyboard focus. Landing on the negative control counts as
// targeting it, so it dodges.
func (e *Experience) setFocus(f string) {
	if e.focus == f {
		return
	}
	e.focus = f
	if f == focusNo && e.stage == StageQuestion {
		e.triggerDodge()
	}
}

// triggerDodge moves the negative control to a fresh uniformly random
// position in the central 10..90% of both axes. The position never reverts
// to the default layout within a session.
func (e *Experience) triggerDodge() {
	p := core.Percent{
		X: 10 + e.rng.Float64()*80,
		Y: 10 + e.rng.Float64()*80,
	}
	e.evasive = &p
	e.dodges++
	e.pointerInNo = false
	e.relayout()
	e.emit(EventDodge)
}

func (e *Experience) celebrate() {
	e.stage = StageCelebration
	e.closeIdx = 0
	e.bindPanel(e.closingLine())
	e.focus = ""
	cx, cy := e.layout.Bounds.Center()
	e.confetti.Ignite(e.rng, float64(cx), float64(cy))
	e.emit(EventStageAdvanced)
	e.emit(EventCelebration)
}

// --- Stage: celebration ---

func (e *Experience) stepCelebration(in core.InputFrame) {
	e.dialogue.Step()

	if !in.Has(core.ActionConfirm) && !in.Clicked {
		return
	}
	if !e.lineDone {
		e.dialogue.Skip()
		return
	}
	if e.closeIdx < len(e.script.Closing)-1 {
		e.closeIdx++
		e.bindPanel(e.closingLine())
	}
}

// --- Pointer hover ---

// pointerMoved routes pointer motion to the active stage. Hovering a
// focusable control focuses it; entering the negative control's rectangle
// is an independent dodge trigger on top of focus landing.
func (e *Experience) pointerMoved(x, y int) {
	switch e.stage {
	case StageIntro:
		if e.layout.Continue.Contains(x, y) {
			e.setFocus(focusContinue)
		}
	case StageKeepsakes:
		if e.noteOpen() {
			if e.layout.NoteOK.Contains(x, y) {
				e.setFocus(focusNoteOK)
				return
			}
			if e.layout.Note.Contains(x, y) {
				return
			}
		}
		if id, ok := e.keepsakeAt(x, y); ok {
			e.setFocus(id)
			return
		}
		if !e.noteOpen() && e.layout.Proceed.Contains(x, y) {
			e.setFocus(focusProceed)
		}
	case StageQuestion:
		if !e.lineDone {
			return
		}
		inNo := e.layout.No.Contains(x, y)
		if inNo && !e.pointerInNo {
			e.triggerDodge()
		} else {
			e.pointerInNo = inNo
		}
		if e.layout.Yes.Contains(x, y) {
			e.setFocus(focusYes)
		}
	}
}
