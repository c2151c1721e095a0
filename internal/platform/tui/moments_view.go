package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mapetit/willyou/internal/storage"
	"github.com/mapetit/willyou/internal/story"
)

// maxMoments limits how many journal entries the viewer loads.
const maxMoments = 100

// MomentsKeyMap defines the key bindings for the journal viewer.
type MomentsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MomentsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MomentsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Quit},
	}
}

// DefaultMomentsKeyMap returns default key bindings.
func DefaultMomentsKeyMap() MomentsKeyMap {
	return MomentsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MomentsModel is the Bubble Tea model for the moments journal viewer.
type MomentsModel struct {
	store    *storage.Store
	moments  []storage.Moment
	table    table.Model
	help     help.Model
	keys     MomentsKeyMap
	width    int
	height   int
	quitting bool
}

// NewMomentsModel creates a new journal viewer model.
func NewMomentsModel(store *storage.Store, width, height int) MomentsModel {
	h := help.New()
	h.ShowAll = false

	m := MomentsModel{
		store:  store,
		keys:   DefaultMomentsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.loadMoments()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *MomentsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 18},
		{Title: "Script", Width: 12},
		{Title: "Answer", Width: 8},
		{Title: "Keepsakes", Width: 10},
		{Title: "Took", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("205")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadMoments loads journal entries from the store.
func (m *MomentsModel) loadMoments() {
	if m.store == nil {
		m.moments = nil
		m.updateTableRows()
		return
	}

	moments, err := m.store.RecentMoments(maxMoments)
	if err != nil {
		m.moments = nil
	} else {
		m.moments = moments
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current journal entries.
func (m *MomentsModel) updateTableRows() {
	rows := make([]table.Row, len(m.moments))
	for i, mm := range m.moments {
		rows[i] = table.Row{
			mm.CreatedAt.Format("Jan 02 15:04"),
			mm.ScriptID,
			mm.Answer,
			fmt.Sprintf("%d/%d", mm.KeepsakesFound, story.KeepsakeCount),
			(time.Duration(mm.DurationSecs) * time.Second).String(),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the journal viewer model.
func (m MomentsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal viewer.
func (m MomentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal viewer.
func (m MomentsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("♥ MOMENTS ♥", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m MomentsModel) renderTableContent() string {
	if len(m.moments) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No moments yet.\nSomeone has to say yes first.")
	}

	return m.table.View()
}

// centerText centers each line of text within the given width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunMoments runs the journal viewer screen.
func RunMoments(store *storage.Store, width, height int) error {
	model := NewMomentsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
