package story

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load resolves the script to play.
// Search order: customPath -> ~/.willyou/scripts/<id>.yaml -> ./scripts/<id>.yaml -> registered preset
//
// An explicit customPath that fails to read, parse, or validate is an error;
// the implicit locations fall through silently so a broken user override
// never blocks the built-in script.
func Load(id, customPath string) (Script, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Script{}, fmt.Errorf("story: failed to read script %s: %w", customPath, err)
		}
		return parse(data, customPath)
	}

	if userPath := userScriptPath(id + ".yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if s, err := parse(data, userPath); err == nil {
				return s, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("scripts", id+".yaml")); err == nil {
		if s, err := parse(data, id+".yaml"); err == nil {
			return s, nil
		}
	}

	return Preset(id)
}

func parse(data []byte, source string) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("story: failed to parse script %s: %w", source, err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// userScriptPath returns the path to a user script file, or empty if home
// is unavailable.
func userScriptPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".willyou", "scripts", filename)
}
