package scene

import (
	"github.com/mapetit/willyou/internal/core"

	"github.com/mapetit/willyou/internal/story"
)

// Minimum terminal size the experience lays out for. Below this the render
// shows a resize prompt instead (same handling as any too-small window).
const (
	MinScreenW = 40
	MinScreenH = 12
)

// Layout holds every rectangle the experience draws into or hit-tests
// against. It is recomputed from scratch whenever geometry changes: on
// reset, on resize, and after each dodge of the evasive control. All state
// that feeds it lives in the Experience, so recomputing is always safe.
type Layout struct {
	Bounds    core.Rect
	Playfield core.Rect // area above the panel where keepsakes live
	Panel     core.Rect // dialogue panel box
	Continue  core.Rect // continue affordance on the panel border
	Proceed   core.Rect // proceed affordance above the panel
	Yes       core.Rect
	No        core.Rect
	Note      core.Rect // note popup box
	NoteOK    core.Rect // dismiss affordance inside the note
	Keepsakes map[string]core.Rect
	MuteBadge core.Rect
	ArtY      int // first row of the celebration banner
	TooSmall  bool
}

// buttonWidth returns the rendered width of "[ label ]".
func buttonWidth(label string) int {
	return len([]rune(label)) + 4
}

// ComputeLayout lays the experience out for a w×h screen. The evasive
// coordinate, when set, overrides the negative control's default position.
func ComputeLayout(w, h int, script story.Script, evasive *core.Percent) Layout {
	l := Layout{
		Bounds:    core.NewRect(0, 0, w, h),
		Keepsakes: make(map[string]core.Rect, len(script.Keepsakes)),
	}
	if w < MinScreenW || h < MinScreenH {
		l.TooSmall = true
		return l
	}

	panelW := core.Min(w-4, 64)
	panelH := 5
	panelX := (w - panelW) / 2
	panelY := h - panelH - 1
	l.Panel = core.NewRect(panelX, panelY, panelW, panelH)

	// Keepsakes wander the space between the HUD row and the panel.
	l.Playfield = core.NewRect(1, 2, w-2, panelY-3)

	hint := "▸ " + continueLabel
	l.Continue = core.NewRect(l.Panel.Right()-len([]rune(hint))-2, l.Panel.Bottom()-1, len([]rune(hint)), 1)

	proceedW := buttonWidth(proceedLabel)
	l.Proceed = core.NewRect((w-proceedW)/2, panelY-1, proceedW, 1)

	for _, k := range script.Keepsakes {
		kx, ky := core.Percent{X: k.X, Y: k.Y}.Cell(l.Playfield.W, l.Playfield.H)
		// A 3-wide rect makes the single glyph forgiving to hit.
		l.Keepsakes[k.ID] = core.NewRect(l.Playfield.X+kx-1, l.Playfield.Y+ky, 3, 1)
	}

	yesW := buttonWidth(script.YesLabel)
	noW := buttonWidth(script.NoLabel)
	gap := 6
	row := h * 2 / 5
	startX := (w - yesW - gap - noW) / 2
	l.Yes = core.NewRect(startX, row, yesW, 1)
	l.No = core.NewRect(startX+yesW+gap, row, noW, 1)
	if evasive != nil {
		cx, cy := evasive.Cell(w, h)
		l.No = core.NewRect(
			core.Clamp(cx-noW/2, 1, w-noW-1),
			core.Clamp(cy, 1, h-2),
			noW, 1,
		)
	}

	noteW := core.Min(w-8, 46)
	noteH := 7
	l.Note = core.NewRect((w-noteW)/2, (h-noteH)/2, noteW, noteH)
	okW := buttonWidth(noteOKLabel)
	l.NoteOK = core.NewRect(l.Note.Right()-okW-2, l.Note.Bottom()-2, okW, 1)

	l.MuteBadge = core.NewRect(w-10, 0, 9, 1)
	l.ArtY = 2

	return l
}
