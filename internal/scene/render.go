package scene

import (
	"fmt"
	"strings"

	"github.com/mapetit/willyou/internal/core"
	"github.com/mapetit/willyou/internal/story"
)

const (
	continueLabel = "continue"
	proceedLabel  = "ready"
	noteOKLabel   = "ok"
)

// Render draws the current state into the screen buffer. The buffer is
// cleared first; confetti is drawn last so it falls over everything.
func (e *Experience) Render(dst *core.Screen) {
	dst.Clear()

	if e.layout.TooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorWhite)
		dst.DrawTextCentered(dst.Height()/2+1, "Resize to continue", core.ColorGray)
		return
	}

	e.backdrop.Render(dst, e.tick)
	e.renderHUD(dst)

	switch e.stage {
	case StageIntro:
		e.renderPanel(dst, true)
	case StageKeepsakes:
		e.renderKeepsakes(dst)
	case StageQuestion:
		e.renderQuestion(dst)
	case StageCelebration:
		e.renderCelebration(dst)
	}

	e.renderFooter(dst)
	e.confetti.Render(dst)
}

func (e *Experience) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, "♥ "+e.script.Title, core.ColorRose)

	if e.stage >= StageKeepsakes {
		counter := fmt.Sprintf("✦ %d/%d", len(e.found), story.KeepsakeCount)
		dst.DrawTextColored(dst.Width()/2-len([]rune(counter))/2, 0, counter, core.ColorGold)
	}

	badge := "♪ on"
	color := core.ColorGray
	if e.muted {
		badge = "♪ off"
		color = core.ColorDim
	}
	dst.DrawTextColored(e.layout.MuteBadge.X, e.layout.MuteBadge.Y, badge, color)
}

func (e *Experience) renderFooter(dst *core.Screen) {
	var help string
	switch e.stage {
	case StageIntro:
		help = "enter continue · m sound · q quit"
	case StageKeepsakes:
		if e.noteOpen() {
			help = "enter ok · esc close"
		} else {
			help = "arrows wander · enter pick up · m sound · q quit"
		}
	case StageQuestion:
		help = "arrows choose · enter answer"
	case StageCelebration:
		help = "q when you're ready"
	}
	dst.DrawTextCentered(dst.Height()-1, help, core.ColorDim)
}

// renderPanel draws the dialogue box with the revealed text, a caret while
// typing, and the continue hint once the line is done.
func (e *Experience) renderPanel(dst *core.Screen, withContinue bool) {
	p := e.layout.Panel
	dst.DrawRect(p, ' ', core.ColorDefault)
	dst.DrawBox(p, core.ColorRose)

	lines := wrap(e.dialogue.Visible(), p.W-4)
	for i, line := range lines {
		if i >= p.H-2 {
			break
		}
		dst.DrawTextColored(p.X+2, p.Y+1+i, line, core.ColorWhite)
	}

	if !e.lineDone {
		// Soft-blinking caret at the end of the revealed text.
		if len(lines) > 0 && e.tick%24 < 14 {
			last := len(lines) - 1
			if last < p.H-2 {
				dst.SetCell(p.X+2+len([]rune(lines[last])), p.Y+1+last, '▌', core.ColorPink)
			}
		}
		return
	}

	if withContinue {
		c := e.layout.Continue
		dst.DrawTextColored(c.X, c.Y, "▸ "+continueLabel, core.ColorGold)
	}
}

func (e *Experience) renderKeepsakes(dst *core.Screen) {
	for _, k := range e.script.Keepsakes {
		r := e.layout.Keepsakes[k.ID]
		gx, gy := r.Center()

		switch {
		case e.found[k.ID]:
			dst.SetCell(gx, gy, k.Rune(), core.ColorGold)
		case e.focus == k.ID:
			dst.SetCell(gx, gy, k.Rune(), core.ColorBrightWhite)
		default:
			dst.SetCell(gx, gy, k.Rune(), core.ColorGray)
		}

		if e.focus == k.ID && !e.noteOpen() {
			e.renderKeepsakeLabel(dst, k, gx, gy)
		}
	}

	if len(e.found) == story.KeepsakeCount && !e.noteOpen() {
		e.renderButton(dst, e.layout.Proceed, proceedLabel, e.focus == focusProceed, core.ColorGold)
	}

	e.renderPanel(dst, false)

	if e.noteOpen() {
		e.renderNote(dst)
	}
}

// renderKeepsakeLabel draws the focused keepsake's label beside its glyph,
// flipping to the left side when the glyph sits in the right half.
func (e *Experience) renderKeepsakeLabel(dst *core.Screen, k story.Keepsake, gx, gy int) {
	label := k.Label
	if e.found[k.ID] {
		label += " ✓"
	}
	x := gx + 2
	if gx > dst.Width()/2 {
		x = gx - 2 - len([]rune(label))
	}
	dst.DrawTextColored(x, gy, label, core.ColorWhite)
}

func (e *Experience) renderNote(dst *core.Screen) {
	n := e.layout.Note
	dst.DrawRect(n, ' ', core.ColorDefault)
	dst.DrawBox(n, core.ColorPink)

	if k, ok := e.script.Keepsake(e.noteFor); ok {
		dst.DrawTextColored(n.X+2, n.Y+1, string(k.Rune())+" "+k.Label, core.ColorGold)
	}

	lines := wrap(e.note.Visible(), n.W-4)
	for i, line := range lines {
		if i >= n.H-4 {
			break
		}
		dst.DrawTextColored(n.X+2, n.Y+3+i, line, core.ColorWhite)
	}

	if e.note.Done() {
		e.renderButton(dst, e.layout.NoteOK, noteOKLabel, e.focus == focusNoteOK, core.ColorGray)
	}
}

func (e *Experience) renderQuestion(dst *core.Screen) {
	e.renderPanel(dst, false)

	if !e.lineDone {
		return
	}
	e.renderButton(dst, e.layout.Yes, e.script.YesLabel, e.focus == focusYes, core.ColorGold)
	e.renderButton(dst, e.layout.No, e.script.NoLabel, e.focus == focusNo, core.ColorGray)
}

func (e *Experience) renderCelebration(dst *core.Screen) {
	for i, line := range e.script.Art {
		dst.DrawTextCentered(e.layout.ArtY+i, line, core.ColorPink)
	}
	e.renderPanel(dst, false)
}

func (e *Experience) renderButton(dst *core.Screen, r core.Rect, label string, focused bool, color core.Color) {
	text := "[ " + label + " ]"
	if focused {
		color = core.ColorBrightYellow
	}
	dst.DrawTextColored(r.X, r.Y, text, color)
}

// wrap word-wraps text to the given width. Words longer than a full line
// are hard-split so nothing is lost.
func wrap(text string, width int) []string {
	if width < 1 {
		return nil
	}

	var lines []string
	var current strings.Builder

	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > width {
			if current.Len() > 0 {
				flush()
			}
			current.WriteString(string(runes[:width]))
			flush()
			runes = runes[width:]
		}
		word = string(runes)

		switch {
		case current.Len() == 0:
			current.WriteString(word)
		case len([]rune(current.String()))+1+len(runes) <= width:
			current.WriteRune(' ')
			current.WriteString(word)
		default:
			flush()
			current.WriteString(word)
		}
	}
	if current.Len() > 0 {
		flush()
	}
	return lines
}
