package scene

// DefaultRevealTicks is the reveal cadence: one rune every 3 ticks, which is
// 50ms per rune at 60fps.
const DefaultRevealTicks = 3

// Typewriter reveals a string one rune at a time at a fixed tick cadence.
// The visible text is always a prefix of the target, computed by slicing at
// a rune index, so the full string can never be misrendered by accumulation.
//
// A typewriter is single-use: when its target changes the owner stops it and
// creates a fresh one. A stopped typewriter never advances and never fires
// its callback.
type Typewriter struct {
	runes       []rune
	revealTicks int
	elapsed     int // ticks since the last reveal
	shown       int // revealed rune count
	done        bool
	stopped     bool
	onComplete  func()
}

// NewTypewriter creates a typewriter for the given text. The callback may be
// nil; when set it fires exactly once, on the step the final rune shows.
// Non-positive cadences fall back to DefaultRevealTicks.
func NewTypewriter(text string, revealTicks int, onComplete func()) *Typewriter {
	if revealTicks <= 0 {
		revealTicks = DefaultRevealTicks
	}
	return &Typewriter{
		runes:       []rune(text),
		revealTicks: revealTicks,
		onComplete:  onComplete,
	}
}

// Step advances the typewriter by one tick. An empty target completes on the
// first step without consuming a reveal interval.
func (t *Typewriter) Step() {
	if t.stopped || t.done {
		return
	}
	if t.shown >= len(t.runes) {
		t.complete()
		return
	}

	t.elapsed++
	if t.elapsed < t.revealTicks {
		return
	}
	t.elapsed = 0
	t.shown++
	if t.shown == len(t.runes) {
		t.complete()
	}
}

// Skip reveals the full text immediately. The completion callback fires as
// if the final rune had just been revealed.
func (t *Typewriter) Skip() {
	if t.stopped || t.done {
		return
	}
	t.shown = len(t.runes)
	t.complete()
}

// Stop tears the typewriter down. After Stop it never advances, never
// completes, and never fires its callback.
func (t *Typewriter) Stop() {
	t.stopped = true
}

// Visible returns the currently revealed prefix.
func (t *Typewriter) Visible() string {
	return string(t.runes[:t.shown])
}

// Done reports whether the full text has been revealed.
func (t *Typewriter) Done() bool {
	return t.done
}

func (t *Typewriter) complete() {
	t.done = true
	if t.onComplete != nil {
		t.onComplete()
	}
}
