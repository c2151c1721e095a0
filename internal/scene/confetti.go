package scene

import (
	"math/rand"

	"github.com/mapetit/willyou/internal/core"
)

// Confetti physics constants, in cells per tick.
const (
	confettiCount      = 80
	confettiGravity    = 0.012
	confettiMaxFall    = 0.5
	confettiMinLife    = 60 // 1s at 60fps
	confettiLifeSpread = 90 // up to 2.5s total
)

var confettiGlyphs = []rune{'♥', '✦', '*', '❀', '♪', '✧'}

var confettiColors = []core.Color{
	core.ColorPink,
	core.ColorRose,
	core.ColorGold,
	core.ColorBrightMagenta,
	core.ColorBrightYellow,
	core.ColorCyan,
}

// Particle is one piece of confetti with its own velocity and lifetime.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Glyph    rune
	Color    core.Color
	Age      int
	Lifetime int
}

// Confetti is the one-shot celebration burst. Ignite arms it exactly once
// per scene; after every particle has decayed the burst is inert and neither
// draws nor mutates again.
type Confetti struct {
	particles []Particle
	fired     bool
}

// NewConfetti creates an unfired burst.
func NewConfetti() *Confetti {
	return &Confetti{}
}

// Ignite launches the burst from (x, y). Subsequent calls are no-ops: the
// celebration fires once per scene.
func (c *Confetti) Ignite(rng *rand.Rand, x, y float64) {
	if c.fired {
		return
	}
	c.fired = true

	c.particles = make([]Particle, confettiCount)
	for i := range c.particles {
		c.particles[i] = Particle{
			X:        x,
			Y:        y,
			VX:       (rng.Float64() - 0.5) * 1.6,
			VY:       -0.1 - rng.Float64()*0.5,
			Glyph:    confettiGlyphs[rng.Intn(len(confettiGlyphs))],
			Color:    confettiColors[rng.Intn(len(confettiColors))],
			Lifetime: confettiMinLife + rng.Intn(confettiLifeSpread),
		}
	}
}

// Step advances every live particle by one tick: velocity moves position,
// gravity pulls velocity down, age counts toward the lifetime. Dead
// particles are dropped.
func (c *Confetti) Step() {
	if len(c.particles) == 0 {
		return
	}

	alive := c.particles[:0]
	for _, p := range c.particles {
		p.Age++
		if p.Age >= p.Lifetime {
			continue
		}
		p.X += p.VX
		p.Y += p.VY
		p.VY += confettiGravity
		if p.VY > confettiMaxFall {
			p.VY = confettiMaxFall
		}
		alive = append(alive, p)
	}
	c.particles = alive
}

// Render draws the live particles. Particles past the screen edge are
// clipped by the screen itself.
func (c *Confetti) Render(dst *core.Screen) {
	for _, p := range c.particles {
		dst.SetCell(int(p.X), int(p.Y), p.Glyph, p.Color)
	}
}

// Fired reports whether the burst has been ignited.
func (c *Confetti) Fired() bool {
	return c.fired
}

// Alive returns the number of particles still falling.
func (c *Confetti) Alive() int {
	return len(c.particles)
}
