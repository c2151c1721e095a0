package scene

// Dialogue presents one text at a time through a typewriter. Identity is
// keyed by the text content: binding a different text stops the old
// typewriter (its callback can no longer fire) and starts a fresh one from
// zero. Re-binding the same text is a no-op, so callers can bind every frame
// without restarting the reveal.
type Dialogue struct {
	text        string
	tw          *Typewriter
	revealTicks int
}

// NewDialogue creates an empty dialogue with the given reveal cadence.
func NewDialogue(revealTicks int) *Dialogue {
	return &Dialogue{revealTicks: revealTicks}
}

// SetText binds a text to the dialogue. The callback fires exactly once,
// when this text finishes revealing; it never fires if the text is replaced
// first.
func (d *Dialogue) SetText(text string, onComplete func()) {
	if d.tw != nil && d.text == text {
		return
	}
	if d.tw != nil {
		d.tw.Stop()
	}
	d.text = text
	d.tw = NewTypewriter(text, d.revealTicks, onComplete)
}

// Clear unbinds the current text and stops its typewriter.
func (d *Dialogue) Clear() {
	if d.tw != nil {
		d.tw.Stop()
	}
	d.tw = nil
	d.text = ""
}

// Step advances the active typewriter by one tick.
func (d *Dialogue) Step() {
	if d.tw != nil {
		d.tw.Step()
	}
}

// Skip reveals the bound text immediately.
func (d *Dialogue) Skip() {
	if d.tw != nil {
		d.tw.Skip()
	}
}

// Visible returns the revealed prefix of the bound text.
func (d *Dialogue) Visible() string {
	if d.tw == nil {
		return ""
	}
	return d.tw.Visible()
}

// Done reports whether the bound text is fully revealed. An empty dialogue
// is not done; it has nothing to finish.
func (d *Dialogue) Done() bool {
	return d.tw != nil && d.tw.Done()
}

// Text returns the full bound text.
func (d *Dialogue) Text() string {
	return d.text
}
