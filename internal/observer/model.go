package observer

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Defaults for the interactive view.
const (
	DefaultRefreshInterval = 100 * time.Millisecond
	DefaultWindowSize      = 10

	defaultWidth = 60
	title        = "Tracking active"
	listHeader   = "Recent Events:"
)

type tickMsg struct{}

type doneMsg struct{ err error }

type keyMap struct {
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Quit}} }

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A6E3A1")).
			Padding(0, 1)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89B4FA"))

	entryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F38BA8"))
)

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithRefreshInterval sets how often the relay is polled.
func WithRefreshInterval(d time.Duration) ModelOption {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithWindowSize sets how many recent entries are shown.
func WithWindowSize(n int) ModelOption {
	return func(m *Model) {
		if n > 0 {
			m.size = n
		}
	}
}

// WithDone quits the program when capture ends. The received error is kept
// and reported by Err.
func WithDone(done <-chan error) ModelOption {
	return func(m *Model) {
		m.done = done
	}
}

// Model is the bubbletea program showing the rolling view.
type Model struct {
	relay    Drainer
	view     *RollingView
	interval time.Duration
	size     int
	done     <-chan error

	help  help.Model
	width int
	err   error
}

// NewModel builds the interactive observer over a relay.
func NewModel(src Drainer, opts ...ModelOption) Model {
	m := Model{
		relay:    src,
		view:     NewRollingView(),
		interval: DefaultRefreshInterval,
		size:     DefaultWindowSize,
		help:     help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m Model) waitDone() tea.Cmd {
	if m.done == nil {
		return nil
	}
	done := m.done
	return func() tea.Msg {
		return doneMsg{err: <-done}
	}
}

// Init starts polling and, when configured, watching for capture to end.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitDone())
}

// Update handles ticks, capture shutdown and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tickMsg:
		Poll(m.relay, m.view)
		return m, m.tick()

	case doneMsg:
		Poll(m.relay, m.view)
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the title, the most recent entries and the key help.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteRune('\n')
	b.WriteString(separatorStyle.Render(strings.Repeat("─", width)))
	b.WriteRune('\n')
	b.WriteString(headerStyle.Render(listHeader))
	b.WriteRune('\n')
	for _, entry := range m.view.Window(m.size) {
		b.WriteString(entryStyle.Render(entry))
		b.WriteRune('\n')
	}
	if m.err != nil {
		b.WriteRune('\n')
		b.WriteString(errorStyle.Render("capture stopped: " + m.err.Error()))
		b.WriteRune('\n')
	}
	b.WriteRune('\n')
	b.WriteString(m.help.View(keys))
	return b.String()
}

// Err returns the capture error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Entries returns the rolling window as currently rendered.
func (m Model) Entries() []string {
	return m.view.Window(m.size)
}
