package story

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/classic.yaml
var defaultClassicYAML []byte

//go:embed defaults/valentine.yaml
var defaultValentineYAML []byte

func init() {
	Register(loadEmbedded(defaultClassicYAML, DefaultClassicScript))
	Register(loadEmbedded(defaultValentineYAML, DefaultValentineScript))
}

// loadEmbedded parses an embedded preset, falling back to the hardcoded
// script if the embedded YAML fails to parse or validate.
func loadEmbedded(data []byte, fallback func() Script) Script {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fallback()
	}
	if err := s.Validate(); err != nil {
		return fallback()
	}
	return s
}

// DefaultClassicScript returns the built-in proposal script.
func DefaultClassicScript() Script {
	return Script{
		ID:    "classic",
		Title: "The Question",
		Intro: []string{
			"Hey you.",
			"Before anything else, I want to walk through a few memories with you.",
			"Three little things, hidden in the dark. Find them for me?",
		},
		Hint:     "Wander with the arrows. Press enter on anything that glints.",
		Question: "Will you marry me?",
		YesLabel: "Yes",
		NoLabel:  "No",
		Closing: []string{
			"You said yes.",
			"Best day ever.",
		},
		Art: []string{
			"  ♥♥♥   ♥♥♥  ",
			" ♥♥♥♥♥ ♥♥♥♥♥ ",
			" ♥♥♥♥♥♥♥♥♥♥♥ ",
			"  ♥♥♥♥♥♥♥♥♥  ",
			"   ♥♥♥♥♥♥♥   ",
			"    ♥♥♥♥♥    ",
			"     ♥♥♥     ",
			"      ♥      ",
		},
		Soundtrack: "",
		Keepsakes: []Keepsake{
			{
				ID:      "platypus",
				Glyph:   "✦",
				Label:   "a small platypus",
				Message: "For the times you made me smile.",
				X:       22,
				Y:       35,
			},
			{
				ID:      "rabbit",
				Glyph:   "❀",
				Label:   "the clay rabbit",
				Message: "For every adventure we shaped together.",
				X:       50,
				Y:       62,
			},
			{
				ID:      "backpack",
				Glyph:   "♪",
				Label:   "your old backpack",
				Message: "For all the roads that led me to you.",
				X:       76,
				Y:       30,
			},
		},
	}
}

// DefaultValentineScript returns the built-in valentine script.
func DefaultValentineScript() Script {
	return Script{
		ID:    "valentine",
		Title: "A Valentine",
		Intro: []string{
			"It's the fourteenth again.",
			"I hid a few things for you. Go look.",
		},
		Hint:     "Wander with the arrows. Press enter on anything that glints.",
		Question: "Will you be my valentine?",
		YesLabel: "Always",
		NoLabel:  "Never",
		Closing: []string{
			"Happy Valentine's Day.",
		},
		Art: []string{
			"   ♥ ♥ ♥   ",
			"  ♥ ♥ ♥ ♥  ",
			"   ♥ ♥ ♥   ",
		},
		Soundtrack: "",
		Keepsakes: []Keepsake{
			{
				ID:      "rose",
				Glyph:   "❀",
				Label:   "a paper rose",
				Message: "Still the prettiest thing I ever folded.",
				X:       30,
				Y:       28,
			},
			{
				ID:      "letter",
				Glyph:   "✉",
				Label:   "the first letter",
				Message: "I rewrote it nine times before sending.",
				X:       55,
				Y:       66,
			},
			{
				ID:      "locket",
				Glyph:   "✧",
				Label:   "the silver locket",
				Message: "Open it. It was always you.",
				X:       72,
				Y:       40,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a preset.
func GetDefaultYAML(id string) []byte {
	switch id {
	case "classic":
		return defaultClassicYAML
	case "valentine":
		return defaultValentineYAML
	default:
		return nil
	}
}
