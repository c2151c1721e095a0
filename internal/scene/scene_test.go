package scene

import (
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/mapetit/willyou/internal/core"
	"github.com/mapetit/willyou/internal/story"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

func newTestExperience() *Experience {
	e := New(story.DefaultClassicScript())
	e.Reset(testConfig())
	return e
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func clickAt(x, y int) core.InputFrame {
	in := core.NewInputFrame()
	in.ClickAt(x, y)
	return in
}

func stepN(e *Experience, n int) {
	for i := 0; i < n; i++ {
		e.Step(core.NewInputFrame())
	}
}

func stepUntilPanelDone(t *testing.T, e *Experience) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if e.lineDone {
			return
		}
		e.Step(core.NewInputFrame())
	}
	t.Fatalf("panel text %q never finished revealing", e.dialogue.Text())
}

func hasEvent(res StepResult, ev Event) bool {
	for _, got := range res.Events {
		if got == ev {
			return true
		}
	}
	return false
}

// experienceAtKeepsakes drives a fresh experience through the intro.
func experienceAtKeepsakes(t *testing.T) *Experience {
	t.Helper()
	e := newTestExperience()
	for i := 0; i < len(e.script.Intro); i++ {
		stepUntilPanelDone(t, e)
		e.Step(frame(core.ActionConfirm))
	}
	if e.stage != StageKeepsakes {
		t.Fatalf("stage = %v after intro, want keepsakes", e.stage)
	}
	return e
}

// experienceAtQuestion drives a fresh experience to the fully-asked question.
func experienceAtQuestion(t *testing.T) *Experience {
	t.Helper()
	e := experienceAtKeepsakes(t)
	for range e.script.Keepsakes {
		e.Step(frame(core.ActionConfirm)) // pick up the focused keepsake
		e.Step(frame(core.ActionDismiss)) // close its note
		e.Step(frame(core.ActionRight))   // move to the next control
	}
	e.Step(frame(core.ActionConfirm)) // proceed
	if e.stage != StageQuestion {
		t.Fatalf("stage = %v, want question", e.stage)
	}
	stepUntilPanelDone(t, e)
	return e
}

func TestResetStartsAtIntro(t *testing.T) {
	e := newTestExperience()

	if e.stage != StageIntro {
		t.Errorf("stage = %v, want intro", e.stage)
	}
	if e.tick != 0 {
		t.Errorf("tick = %d, want 0", e.tick)
	}
	if len(e.found) != 0 || e.noteOpen() || e.evasive != nil || e.muted {
		t.Error("fresh experience carries session state")
	}
	if got := len(e.backdrop.Decorations()); got != DecorationCount {
		t.Errorf("backdrop has %d decorations, want %d", got, DecorationCount)
	}
	if e.dialogue.Text() != e.script.Intro[0] {
		t.Errorf("panel bound to %q, want first intro line", e.dialogue.Text())
	}
}

func TestResetClearsEverything(t *testing.T) {
	e := experienceAtQuestion(t)
	e.Step(frame(core.ActionRight)) // dodge once
	e.Step(frame(core.ActionMute))

	e.Reset(testConfig())

	if e.stage != StageIntro {
		t.Errorf("stage = %v after reset", e.stage)
	}
	if len(e.found) != 0 || e.evasive != nil || e.dodges != 0 || e.muted {
		t.Error("reset kept session state")
	}
	if e.confetti.Fired() {
		t.Error("reset kept a fired confetti burst")
	}
}

func TestFullJourney(t *testing.T) {
	e := newTestExperience()

	// Intro: each line reveals, then a confirm moves on.
	for i := 0; i < len(e.script.Intro); i++ {
		stepUntilPanelDone(t, e)
		res := e.Step(frame(core.ActionConfirm))
		last := i == len(e.script.Intro)-1
		if last && !hasEvent(res, EventStageAdvanced) {
			t.Error("no stage event when leaving the intro")
		}
	}
	if e.stage != StageKeepsakes {
		t.Fatalf("stage = %v, want keepsakes", e.stage)
	}
	if len(e.found) != 0 {
		t.Fatalf("found set not empty at keepsakes start")
	}

	// First keepsake in the classic script is the platypus.
	res := e.Step(frame(core.ActionConfirm))
	if !hasEvent(res, EventKeepsakeFound) {
		t.Error("finding the platypus emitted no event")
	}
	if !e.found["platypus"] {
		t.Fatal("platypus not in the found set")
	}
	snap := e.Snapshot()
	if snap.NoteKeepsake != "platypus" {
		t.Fatalf("open note belongs to %q", snap.NoteKeepsake)
	}
	if snap.NoteText != "For the times you made me smile." {
		t.Fatalf("platypus note = %q", snap.NoteText)
	}

	e.Step(frame(core.ActionDismiss))
	if e.noteOpen() {
		t.Fatal("note still open after dismiss")
	}

	e.Step(frame(core.ActionRight)) // rabbit
	e.Step(frame(core.ActionConfirm))
	if !e.found["rabbit"] {
		t.Fatal("rabbit not found")
	}
	e.Step(frame(core.ActionDismiss))

	e.Step(frame(core.ActionRight)) // backpack
	e.Step(frame(core.ActionConfirm))
	if len(e.found) != 3 {
		t.Fatalf("found %d keepsakes, want 3", len(e.found))
	}
	e.Step(frame(core.ActionDismiss))
	if e.noteOpen() {
		t.Fatal("note open after final dismiss")
	}

	e.Step(frame(core.ActionRight)) // proceed affordance
	if e.focus != focusProceed {
		t.Fatalf("focus = %q, want proceed", e.focus)
	}
	res = e.Step(frame(core.ActionConfirm))
	if e.stage != StageQuestion {
		t.Fatalf("stage = %v, want question", e.stage)
	}
	if !hasEvent(res, EventStageAdvanced) {
		t.Error("no stage event entering the question")
	}

	stepUntilPanelDone(t, e)
	if e.focus != focusYes {
		t.Fatalf("focus = %q, want yes", e.focus)
	}
	res = e.Step(frame(core.ActionConfirm))
	if e.stage != StageCelebration {
		t.Fatalf("stage = %v, want celebration", e.stage)
	}
	if !hasEvent(res, EventCelebration) {
		t.Error("no celebration event")
	}
	if !e.confetti.Fired() {
		t.Fatal("confetti never fired")
	}

	// The burst is one-shot: more confirms never refill it.
	alive := e.confetti.Alive()
	e.Step(frame(core.ActionConfirm))
	e.Step(frame(core.ActionConfirm))
	if e.confetti.Alive() > alive {
		t.Error("celebration re-ignited the confetti")
	}
	if e.stage != StageCelebration {
		t.Error("celebration is not terminal")
	}
}

func TestKeepsakeFindingIsIdempotent(t *testing.T) {
	e := experienceAtKeepsakes(t)

	first := e.Step(frame(core.ActionConfirm))
	if !hasEvent(first, EventKeepsakeFound) {
		t.Fatal("first selection emitted no event")
	}
	e.Step(frame(core.ActionDismiss))

	// Selecting the same keepsake again does nothing at all.
	again := e.Step(frame(core.ActionConfirm))
	if hasEvent(again, EventKeepsakeFound) {
		t.Error("re-finding a keepsake emitted an event")
	}
	if len(e.found) != 1 {
		t.Errorf("found set grew to %d", len(e.found))
	}
	if e.noteOpen() {
		t.Error("re-selecting an already-found keepsake reopened the note")
	}
}

func TestNoteReplacedBySelectingAnotherKeepsake(t *testing.T) {
	e := experienceAtKeepsakes(t)

	e.Step(frame(core.ActionConfirm)) // platypus note opens
	if e.noteFor != "platypus" {
		t.Fatalf("note for %q", e.noteFor)
	}
	stepN(e, 5) // partially reveal the message

	// Cycle left from the note's ok: focus lands on the backpack.
	e.Step(frame(core.ActionLeft))
	if e.focus != "backpack" {
		t.Fatalf("focus = %q, want backpack", e.focus)
	}
	e.Step(frame(core.ActionConfirm))

	snap := e.Snapshot()
	if snap.NoteKeepsake != "backpack" {
		t.Fatalf("note not replaced: belongs to %q", snap.NoteKeepsake)
	}
	if snap.NoteVisible != "" {
		t.Errorf("replacement note did not restart its reveal: %q", snap.NoteVisible)
	}
	if len(e.found) != 2 {
		t.Errorf("found %d keepsakes, want 2", len(e.found))
	}
}

func TestNoteReplacedByClickingVisibleKeepsake(t *testing.T) {
	e := experienceAtKeepsakes(t)
	e.Step(frame(core.ActionConfirm)) // platypus note opens

	// The backpack sits outside the note box, so it stays clickable.
	cx, cy := e.layout.Keepsakes["backpack"].Center()
	if e.layout.Note.Contains(cx, cy) {
		t.Fatalf("test layout invalid: backpack hidden behind the note")
	}
	e.Step(clickAt(cx, cy))

	if e.noteFor != "backpack" {
		t.Fatalf("note for %q, want backpack", e.noteFor)
	}
	if !e.found["backpack"] {
		t.Error("clicked keepsake not found")
	}
}

func TestProceedBlockedWhileNoteOpen(t *testing.T) {
	e := experienceAtKeepsakes(t)

	// Find all three, leaving the last note open.
	e.Step(frame(core.ActionConfirm))
	e.Step(frame(core.ActionDismiss))
	e.Step(frame(core.ActionRight))
	e.Step(frame(core.ActionConfirm))
	e.Step(frame(core.ActionDismiss))
	e.Step(frame(core.ActionRight))
	e.Step(frame(core.ActionConfirm))

	if len(e.found) != 3 || !e.noteOpen() {
		t.Fatalf("setup failed: found=%d noteOpen=%v", len(e.found), e.noteOpen())
	}

	// A click on the proceed affordance must not advance while the note is up.
	px, py := e.layout.Proceed.Center()
	e.Step(clickAt(px, py))
	if e.stage != StageKeepsakes {
		t.Fatal("proceeded to the question with a note open")
	}

	// Dismissing unblocks it.
	e.Step(frame(core.ActionDismiss))
	e.Step(clickAt(px, py))
	if e.stage != StageQuestion {
		t.Fatalf("stage = %v after dismissing and proceeding", e.stage)
	}
}

func TestProceedRequiresAllKeepsakes(t *testing.T) {
	e := experienceAtKeepsakes(t)

	e.Step(frame(core.ActionConfirm))
	e.Step(frame(core.ActionDismiss))

	px, py := e.layout.Proceed.Center()
	e.Step(clickAt(px, py))
	if e.stage != StageKeepsakes {
		t.Error("proceeded with only one keepsake found")
	}
}

func TestNegativeControlDodges(t *testing.T) {
	e := experienceAtQuestion(t)

	if e.evasive != nil {
		t.Fatal("evasive position set before any dodge")
	}

	// Keyboard focus landing on the control triggers a dodge.
	res := e.Step(frame(core.ActionRight))
	if !hasEvent(res, EventDodge) {
		t.Fatal("focus landing emitted no dodge event")
	}
	if e.evasive == nil || e.dodges != 1 {
		t.Fatalf("dodges = %d, evasive set = %v", e.dodges, e.evasive != nil)
	}

	// Pressing confirm while it is focused: the button escapes again.
	e.Step(frame(core.ActionConfirm))
	if e.dodges != 2 {
		t.Fatalf("dodges = %d after confirm on the control", e.dodges)
	}
	if e.stage != StageQuestion {
		t.Fatal("activating the negative control changed stage")
	}

	// Pointer entering its rectangle triggers another dodge.
	nx, ny := e.layout.No.Center()
	move := core.NewInputFrame()
	move.PointTo(nx, ny)
	e.Step(move)
	if e.dodges != 3 {
		t.Fatalf("dodges = %d after pointer entry", e.dodges)
	}

	// Clicking its current rectangle dodges too, and never celebrates. The
	// frame carries no motion so only the click path is exercised; dodge
	// first if the control happens to sit over the affirmative one.
	nx, ny = e.layout.No.Center()
	for e.layout.Yes.Contains(nx, ny) {
		e.triggerDodge()
		nx, ny = e.layout.No.Center()
	}
	before := e.dodges
	click := core.NewInputFrame()
	click.Clicked = true
	click.ClickX, click.ClickY = nx, ny
	e.Step(click)
	if e.dodges != before+1 {
		t.Fatalf("dodges = %d after click, want %d", e.dodges, before+1)
	}
	if e.stage != StageQuestion {
		t.Fatal("clicking the negative control changed stage")
	}

	// The position never reverts to the default layout.
	stepN(e, 100)
	if e.evasive == nil {
		t.Fatal("evasive position reverted")
	}
}

func TestEvasiveStaysInCentralBand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := testConfig()
		cfg.Seed = rapid.Int64().Draw(t, "seed")
		e := New(story.DefaultClassicScript())
		e.Reset(cfg)

		dodges := rapid.IntRange(1, 40).Draw(t, "dodges")
		for i := 0; i < dodges; i++ {
			e.triggerDodge()
			if e.evasive.X < 10 || e.evasive.X > 90 || e.evasive.Y < 10 || e.evasive.Y > 90 {
				t.Fatalf("evasive position (%.2f, %.2f) outside the central band",
					e.evasive.X, e.evasive.Y)
			}
			no := e.layout.No
			if no.X < 0 || no.Right() > cfg.ScreenW || no.Y < 0 || no.Bottom() > cfg.ScreenH {
				t.Fatalf("dodged control off-screen: %+v", no)
			}
		}
		if e.dodges != dodges {
			t.Fatalf("dodge count = %d, want %d", e.dodges, dodges)
		}
	})
}

func TestStageNeverMovesBackward(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := testConfig()
		cfg.Seed = rapid.Int64().Draw(t, "seed")
		e := New(story.DefaultClassicScript())
		e.Reset(cfg)

		actions := []core.Action{
			core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
			core.ActionConfirm, core.ActionDismiss, core.ActionMute,
		}

		steps := rapid.IntRange(50, 400).Draw(t, "steps")
		prev := e.stage
		for i := 0; i < steps; i++ {
			in := core.NewInputFrame()
			for _, a := range actions {
				if rapid.Bool().Draw(t, "press") {
					in.Set(a)
				}
			}
			switch rapid.IntRange(0, 2).Draw(t, "pointer") {
			case 1:
				in.PointTo(rapid.IntRange(0, 79).Draw(t, "px"), rapid.IntRange(0, 23).Draw(t, "py"))
			case 2:
				in.ClickAt(rapid.IntRange(0, 79).Draw(t, "cx"), rapid.IntRange(0, 23).Draw(t, "cy"))
			}

			e.Step(in)
			if e.stage < prev {
				t.Fatalf("stage moved backward: %v -> %v at step %d", prev, e.stage, i)
			}
			prev = e.stage
		}
	})
}

func TestExperienceDeterminism(t *testing.T) {
	// Same seed, same inputs: identical state and identical frames.
	cfg := testConfig()
	cfg.Seed = 12345

	inputs := make([]core.InputFrame, 900)
	for i := range inputs {
		in := core.NewInputFrame()
		if i%7 == 0 {
			in.Set(core.ActionConfirm)
		}
		if i%13 == 0 {
			in.Set(core.ActionRight)
		}
		if i%97 == 0 {
			in.Set(core.ActionMute)
		}
		if i%31 == 0 {
			in.ClickAt(i%80, (i*3)%24)
		} else if i%11 == 0 {
			in.PointTo((i*5)%80, i%24)
		}
		inputs[i] = in
	}

	run := func() (*Experience, Snapshot) {
		e := New(story.DefaultClassicScript())
		e.Reset(cfg)
		for _, in := range inputs {
			e.Step(in.Clone())
		}
		return e, e.Snapshot()
	}

	e1, s1 := run()
	e2, s2 := run()

	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}

	scr1 := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	scr2 := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	e1.Render(scr1)
	e2.Render(scr2)
	if scr1.String() != scr2.String() {
		t.Error("rendered frames diverged for equal seeds and inputs")
	}
}

func TestMuteToggleReflectsIntentOnly(t *testing.T) {
	e := newTestExperience()

	res := e.Step(frame(core.ActionMute))
	if !e.muted || !hasEvent(res, EventMuteOn) {
		t.Error("mute on not registered")
	}
	res = e.Step(frame(core.ActionMute))
	if e.muted || !hasEvent(res, EventMuteOff) {
		t.Error("mute off not registered")
	}
}

func TestResizePreservesStageState(t *testing.T) {
	e := experienceAtKeepsakes(t)
	e.Step(frame(core.ActionConfirm)) // platypus found
	e.Step(frame(core.ActionDismiss))

	e.Resize(100, 30)

	if e.stage != StageKeepsakes {
		t.Errorf("resize changed stage to %v", e.stage)
	}
	if !e.found["platypus"] {
		t.Error("resize dropped the found set")
	}
	if e.layout.Bounds.W != 100 || e.layout.Bounds.H != 30 {
		t.Errorf("layout bounds = %+v", e.layout.Bounds)
	}
	for i, d := range e.backdrop.Decorations() {
		if d.X < 0 || d.X >= 100 || d.Y < 0 || d.Y >= 30 {
			t.Fatalf("decoration %d outside the new bounds: (%d, %d)", i, d.X, d.Y)
		}
	}

	// Same-size resizes are no-ops.
	before := append([]Decoration(nil), e.backdrop.Decorations()...)
	e.Resize(100, 30)
	for i, d := range e.backdrop.Decorations() {
		if before[i] != d {
			t.Fatal("same-size resize regenerated the backdrop")
		}
	}
}

func TestSkipRevealsLineEarly(t *testing.T) {
	e := newTestExperience()
	stepN(e, 4) // a few runes in

	e.Step(frame(core.ActionConfirm))
	if !e.lineDone {
		t.Fatal("confirm during reveal did not complete the line")
	}
	if e.stage != StageIntro {
		t.Fatal("skip advanced the stage")
	}
	if got := e.dialogue.Visible(); got != e.script.Intro[0] {
		t.Errorf("visible = %q, want the full first line", got)
	}
}

func TestRenderShowsStageContent(t *testing.T) {
	e := newTestExperience()
	scr := core.NewScreen(80, 24)

	e.Render(scr)
	if !strings.Contains(scr.String(), e.script.Title) {
		t.Error("intro frame is missing the title")
	}

	eq := experienceAtQuestion(t)
	eq.Render(scr)
	out := scr.String()
	if !strings.Contains(out, eq.script.Question) {
		t.Error("question frame is missing the question")
	}
	if !strings.Contains(out, "[ "+eq.script.YesLabel+" ]") {
		t.Error("question frame is missing the affirmative control")
	}
	if !strings.Contains(out, "[ "+eq.script.NoLabel+" ]") {
		t.Error("question frame is missing the negative control")
	}

	eq.Step(frame(core.ActionConfirm)) // yes
	eq.Render(scr)
	if !strings.Contains(scr.String(), "♥") {
		t.Error("celebration frame has no art")
	}
}

func TestRenderTooSmall(t *testing.T) {
	e := New(story.DefaultClassicScript())
	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 30, 8
	e.Reset(cfg)

	scr := core.NewScreen(30, 8)
	e.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Error("too-small frame is missing the resize prompt")
	}
}
