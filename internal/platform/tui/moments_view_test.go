package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/mapetit/willyou/internal/storage"
)

func TestMomentsModelWithoutStore(t *testing.T) {
	m := NewMomentsModel(nil, 80, 24)

	view := m.View()
	if !strings.Contains(view, "No moments yet") {
		t.Error("empty journal message missing from the view")
	}
}

func TestMomentsModelShowsEntries(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "moments.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveMoment(storage.Moment{ScriptID: "classic", Answer: "yes", KeepsakesFound: 3, DurationSecs: 95})
	store.SaveMoment(storage.Moment{ScriptID: "valentine", Answer: "yes", KeepsakesFound: 3, DurationSecs: 30})

	m := NewMomentsModel(store, 80, 24)
	if got := len(m.table.Rows()); got != 2 {
		t.Fatalf("table has %d rows, want 2", got)
	}

	view := m.View()
	if !strings.Contains(view, "classic") || !strings.Contains(view, "valentine") {
		t.Error("journal entries missing from the view")
	}
	if !strings.Contains(view, "1m35s") {
		t.Error("duration not formatted in the view")
	}
}
