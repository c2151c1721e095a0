// Package story defines the script content an experience plays through:
// intro lines, the question, keepsakes to find, and closing celebration
// text. Scripts are plain data loaded from YAML; built-in presets register
// themselves so the platform can discover them without hardcoded wiring.
package story

import (
	"fmt"
	"unicode/utf8"
)

// Keepsake is one collectible memory placed in the keepsake stage. Positions
// are normalized percentages of the playable area so the same script works
// at any terminal size.
type Keepsake struct {
	ID      string  `yaml:"id"`
	Glyph   string  `yaml:"glyph"`
	Label   string  `yaml:"label"`
	Message string  `yaml:"message"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
}

// Rune returns the keepsake's display glyph as a single rune.
func (k Keepsake) Rune() rune {
	r, _ := utf8.DecodeRuneInString(k.Glyph)
	if r == utf8.RuneError {
		return '✦'
	}
	return r
}

// Script is everything a single experience run needs: the words, the
// keepsakes, the labels on the two answers, and optional dressing (art
// banner, soundtrack path). Immutable once loaded.
type Script struct {
	ID         string     `yaml:"id"`
	Title      string     `yaml:"title"`
	Intro      []string   `yaml:"intro"`
	Hint       string     `yaml:"hint"`
	Question   string     `yaml:"question"`
	YesLabel   string     `yaml:"yes_label"`
	NoLabel    string     `yaml:"no_label"`
	Closing    []string   `yaml:"closing"`
	Art        []string   `yaml:"art"`
	Soundtrack string     `yaml:"soundtrack"`
	Keepsakes  []Keepsake `yaml:"keepsakes"`
}

// KeepsakeCount is the fixed number of keepsakes every script carries.
const KeepsakeCount = 3

// Validate checks the structural rules every playable script must satisfy.
// Scripts are validated once at load; the experience itself never has to
// handle a malformed script.
func (s Script) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("story: script has no id")
	}
	if s.Question == "" {
		return fmt.Errorf("story: script %q has no question", s.ID)
	}
	if len(s.Keepsakes) != KeepsakeCount {
		return fmt.Errorf("story: script %q has %d keepsakes, want %d",
			s.ID, len(s.Keepsakes), KeepsakeCount)
	}

	seen := make(map[string]bool, len(s.Keepsakes))
	for i, k := range s.Keepsakes {
		if k.ID == "" {
			return fmt.Errorf("story: script %q: keepsake %d has no id", s.ID, i)
		}
		if seen[k.ID] {
			return fmt.Errorf("story: script %q: duplicate keepsake id %q", s.ID, k.ID)
		}
		seen[k.ID] = true

		if k.X < 0 || k.X > 100 || k.Y < 0 || k.Y > 100 {
			return fmt.Errorf("story: script %q: keepsake %q position (%.1f, %.1f) outside 0..100",
				s.ID, k.ID, k.X, k.Y)
		}
		if n := utf8.RuneCountInString(k.Glyph); n != 1 {
			return fmt.Errorf("story: script %q: keepsake %q glyph must be a single rune, got %d",
				s.ID, k.ID, n)
		}
		if k.Message == "" {
			return fmt.Errorf("story: script %q: keepsake %q has no message", s.ID, k.ID)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can hand scripts out without letting
// a run mutate the shared preset.
func (s Script) Clone() Script {
	out := s
	out.Intro = append([]string(nil), s.Intro...)
	out.Closing = append([]string(nil), s.Closing...)
	out.Art = append([]string(nil), s.Art...)
	out.Keepsakes = append([]Keepsake(nil), s.Keepsakes...)
	return out
}

// Keepsake returns the keepsake with the given ID, if present.
func (s Script) Keepsake(id string) (Keepsake, bool) {
	for _, k := range s.Keepsakes {
		if k.ID == id {
			return k, true
		}
	}
	return Keepsake{}, false
}
