package story

import (
	"fmt"
	"sort"
	"sync"
)

// Info contains metadata about a registered script preset.
type Info struct {
	ID    string
	Title string
}

var (
	presets = make(map[string]Script)
	mu      sync.RWMutex
)

// Register adds a script preset to the registry. Built-in presets call this
// from init(); custom scripts never register, they load from disk.
// Panics if a preset with the same ID is already registered.
func Register(s Script) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := presets[s.ID]; exists {
		panic(fmt.Sprintf("story: preset %q already registered", s.ID))
	}
	presets[s.ID] = s.Clone()
}

// List returns information about all registered presets, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(presets))
	for id, s := range presets {
		result = append(result, Info{ID: id, Title: s.Title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Preset returns a copy of the registered preset with the given ID.
// Returns an error if the ID is not registered. The copy is deep, so a run
// can never mutate the preset another run will receive.
func Preset(id string) (Script, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := presets[id]
	if !ok {
		return Script{}, fmt.Errorf("story: unknown preset %q", id)
	}
	return s.Clone(), nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := presets[id]
	return ok
}
