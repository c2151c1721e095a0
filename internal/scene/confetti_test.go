package scene

import (
	"math/rand"
	"testing"

	"github.com/mapetit/willyou/internal/core"
)

func TestConfettiIgnitesOnce(t *testing.T) {
	c := NewConfetti()
	rng := rand.New(rand.NewSource(5))

	if c.Fired() {
		t.Fatal("fresh confetti reports fired")
	}
	c.Ignite(rng, 40, 12)
	if !c.Fired() {
		t.Fatal("confetti not fired after Ignite")
	}
	if c.Alive() != confettiCount {
		t.Fatalf("Alive() = %d, want %d", c.Alive(), confettiCount)
	}

	// Burn a few ticks, then try to re-ignite: the burst is one-shot.
	for i := 0; i < 30; i++ {
		c.Step()
	}
	alive := c.Alive()
	c.Ignite(rng, 40, 12)
	if c.Alive() != alive {
		t.Errorf("second Ignite changed particle count: %d -> %d", alive, c.Alive())
	}
}

func TestConfettiGravityPullsDown(t *testing.T) {
	c := NewConfetti()
	c.Ignite(rand.New(rand.NewSource(8)), 40, 12)

	vyBefore := c.particles[0].VY
	c.Step()
	if c.particles[0].VY <= vyBefore {
		t.Errorf("gravity did not increase fall speed: %f -> %f", vyBefore, c.particles[0].VY)
	}

	// Fall speed is capped.
	for i := 0; i < 200 && c.Alive() > 0; i++ {
		c.Step()
		for _, p := range c.particles {
			if p.VY > confettiMaxFall {
				t.Fatalf("particle exceeded max fall speed: %f", p.VY)
			}
		}
	}
}

func TestConfettiDecaysToZeroAndStaysInert(t *testing.T) {
	c := NewConfetti()
	c.Ignite(rand.New(rand.NewSource(2)), 40, 12)

	limit := confettiMinLife + confettiLifeSpread + 1
	for i := 0; i < limit; i++ {
		c.Step()
	}
	if c.Alive() != 0 {
		t.Fatalf("%d particles alive after %d ticks", c.Alive(), limit)
	}

	// A finished burst never draws or mutates again.
	s := core.NewScreen(80, 24)
	c.Step()
	c.Render(s)
	blank := core.NewScreen(80, 24)
	if s.String() != blank.String() {
		t.Error("finished burst drew particles")
	}
	if c.Alive() != 0 {
		t.Error("finished burst came back to life")
	}
	if !c.Fired() {
		t.Error("finished burst forgot it fired")
	}
}

func TestConfettiLifetimesVary(t *testing.T) {
	c := NewConfetti()
	c.Ignite(rand.New(rand.NewSource(4)), 40, 12)

	first := c.particles[0].Lifetime
	varied := false
	for _, p := range c.particles {
		if p.Lifetime < confettiMinLife || p.Lifetime >= confettiMinLife+confettiLifeSpread {
			t.Fatalf("lifetime %d outside expected range", p.Lifetime)
		}
		if p.Lifetime != first {
			varied = true
		}
	}
	if !varied {
		t.Error("all particles share one lifetime; per-particle randomness is missing")
	}
}

func TestConfettiStepBeforeIgniteIsNoop(t *testing.T) {
	c := NewConfetti()
	c.Step()
	c.Step()
	if c.Fired() || c.Alive() != 0 {
		t.Error("stepping an unfired burst changed state")
	}
}
