package scene

import (
	"math/rand"

	"github.com/mapetit/willyou/internal/core"
)

// DecorationCount is the fixed number of backdrop decorations per scene.
const DecorationCount = 100

// decorationGlyphs are the shapes a decoration can take, smallest first.
var decorationGlyphs = []rune{'·', '.', '✧', '✦', '*', '♥'}

// Decoration is one twinkling element of the backdrop. All fields are fixed
// at generation time; its appearance at any tick is a pure function of
// (tick, Phase, Period), so re-rendering can never make the backdrop
// flicker or drift.
type Decoration struct {
	X, Y   int
	Glyph  rune
	Period int // full twinkle cycle length in ticks
	Phase  int // offset into the cycle so decorations twinkle independently
	Tier   int // brightness tier 0 (faint) to 2 (bright)
}

// Lit reports whether the decoration is in the bright half of its cycle.
func (d Decoration) Lit(tick uint64) bool {
	return int(tick+uint64(d.Phase))%d.Period < d.Period/2
}

// Backdrop is the decorative field behind every stage. It is generated once
// per reset and only regenerated by the next reset.
type Backdrop struct {
	decorations []Decoration
}

// NewBackdrop creates an empty backdrop. Generate must be called before the
// first render.
func NewBackdrop() *Backdrop {
	return &Backdrop{}
}

// Generate randomizes a fresh set of exactly DecorationCount decorations
// across a w×h area: position, glyph, twinkle period, phase, and brightness
// tier are all drawn independently per decoration.
func (b *Backdrop) Generate(rng *rand.Rand, w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	b.decorations = make([]Decoration, DecorationCount)
	for i := range b.decorations {
		period := 30 + rng.Intn(91) // 0.5s to 2s at 60fps
		b.decorations[i] = Decoration{
			X:      rng.Intn(w),
			Y:      rng.Intn(h),
			Glyph:  decorationGlyphs[rng.Intn(len(decorationGlyphs))],
			Period: period,
			Phase:  rng.Intn(period),
			Tier:   rng.Intn(3),
		}
	}
}

// Render draws the backdrop for the given tick. In the bright half of its
// cycle a decoration shows its glyph in its tier color; in the dark half it
// dims to a faint dot.
func (b *Backdrop) Render(dst *core.Screen, tick uint64) {
	for _, d := range b.decorations {
		if d.Lit(tick) {
			dst.SetCell(d.X, d.Y, d.Glyph, tierColor(d.Glyph, d.Tier))
		} else {
			dst.SetCell(d.X, d.Y, '·', core.ColorDim)
		}
	}
}

// Decorations exposes the generated set for tests.
func (b *Backdrop) Decorations() []Decoration {
	return b.decorations
}

func tierColor(glyph rune, tier int) core.Color {
	if glyph == '♥' {
		switch tier {
		case 0:
			return core.ColorDim
		case 1:
			return core.ColorRose
		default:
			return core.ColorPink
		}
	}
	switch tier {
	case 0:
		return core.ColorDim
	case 1:
		return core.ColorGray
	default:
		return core.ColorBrightWhite
	}
}
