package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mapetit/willyou/internal/core"
	"github.com/mapetit/willyou/internal/scene"
	"github.com/mapetit/willyou/internal/sound"
	"github.com/mapetit/willyou/internal/storage"
)

// Model is the Bubble Tea model running one experience.
type Model struct {
	experience  *scene.Experience
	screen      *core.Screen
	store       *storage.Store
	player      sound.Player
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	keyMapper   *KeyMapper
	state       scene.State
	quitting    bool
	momentSaved bool // Whether this run's celebration has been journaled
}

// NewModel creates a new Bubble Tea model for the given experience.
func NewModel(experience *scene.Experience, store *storage.Store, player sound.Player, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if player == nil {
		player = sound.NoopPlayer{}
	}

	return Model{
		experience: experience,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		player:     player,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model, starts the soundtrack, and begins ticking.
func (m Model) Init() tea.Cmd {
	m.experience.Reset(m.config)
	m.player.Start()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveSnapshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.player.Close()
		return m, tea.Quit
	}

	return m, nil
}

// handleMouse accumulates pointer activity for the next tick. The experience
// does its own hit-testing; the platform only reports cells.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.inputFrame.PointTo(msg.X, msg.Y)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.inputFrame.ClickAt(msg.X, msg.Y)
		}
	}
	return m, nil
}

// handleResize processes window resize events. The run is never reset:
// the experience keeps its stage and only relayouts for the new bounds.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.experience.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.experience.Step(m.inputFrame)
	m.state = result.State

	for _, ev := range result.Events {
		switch ev {
		case scene.EventMuteOn:
			m.player.Pause()
		case scene.EventMuteOff:
			m.player.Resume()
		case scene.EventCelebration:
			m.saveMoment()
		}
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveMoment journals the celebrated run (once).
func (m *Model) saveMoment() {
	if m.momentSaved {
		return
	}
	m.momentSaved = true

	if m.store == nil {
		return
	}

	secs := 0
	if m.config.TickRate > 0 {
		secs = int(m.experience.Tick() / uint64(m.config.TickRate))
	}

	//nolint:errcheck // Best-effort save, the celebration continues regardless
	m.store.SaveMoment(storage.Moment{
		ScriptID:       m.experience.ID(),
		Answer:         "yes",
		KeepsakesFound: m.state.KeepsakesFound,
		DurationSecs:   secs,
	})
}

// saveSnapshot saves the current frame to a file.
func (m *Model) saveSnapshot() {
	m.experience.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".willyou", "snapshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.experience.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, the run continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.experience.Render(m.screen)

	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(experience *scene.Experience, store *storage.Store, player sound.Player, cfg core.RuntimeConfig) error {
	model := NewModel(experience, store, player, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Pointer hover and clicks
	)

	_, err := p.Run()
	player.Close()
	return err
}
