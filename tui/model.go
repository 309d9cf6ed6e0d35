// Package tui provides the interactive terminal frontend for the
// tracker. It renders the activity list with live elapsed time and
// saves the ledger on exit.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nomis52/timetrack/ledger"
	"github.com/nomis52/timetrack/timer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4A90E2")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model for the tracker screen.
type Model struct {
	tracker *timer.Tracker
	store   *ledger.FileStore

	cursor   int
	adding   bool
	input    string
	errMsg   string
	width    int
	height   int
	saveTime time.Time
}

// NewModel creates a Model around a loaded tracker and its backing
// store.
func NewModel(tracker *timer.Tracker, store *ledger.FileStore) Model {
	return Model{
		tracker: tracker,
		store:   store,
	}
}

// Run loads the ledger and runs the interactive program until the user
// quits. The ledger is saved on exit, which finalizes any running
// timer.
func Run(store *ledger.FileStore) error {
	tracker, err := store.Load()
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewModel(tracker, store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tracker screen: %w", err)
	}
	return store.Save(tracker)
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		// Re-render so the elapsed time of a running timer moves.
		return m, tickCmd()
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.input)
		m.adding = false
		m.input = ""
		if name == "" {
			return m, nil
		}
		if !m.tracker.AddActivity(name) {
			m.errMsg = fmt.Sprintf("activity %q already exists", name)
		}
		return m, nil
	case "esc":
		m.adding = false
		m.input = ""
		return m, nil
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			m.input += string(msg.Runes)
		}
		return m, nil
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	activities := m.tracker.Activities()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(activities)-1 {
			m.cursor++
		}
	case "enter", "s":
		if name, ok := m.cursorName(activities); ok {
			m.tracker.StartTimer(name)
		}
	case "x":
		if _, ok := m.tracker.StopTimer(); !ok {
			m.errMsg = "no timer running"
		}
	case "tab":
		if name, ok := m.cursorName(activities); ok {
			if selected, _ := m.tracker.SelectedActivity(); selected == name {
				m.tracker.DeselectActivity()
			} else {
				m.tracker.SelectActivity(name)
			}
		}
	case "a", "n":
		m.adding = true
		m.input = ""
	case "d":
		if name, ok := m.cursorName(activities); ok {
			m.tracker.RemoveActivity(name)
			if m.cursor >= len(m.tracker.Activities()) && m.cursor > 0 {
				m.cursor--
			}
		}
	case "w":
		if err := m.store.Save(m.tracker); err != nil {
			m.errMsg = err.Error()
		} else {
			m.saveTime = m.tracker.Now()
		}
	}
	return m, nil
}

func (m Model) cursorName(activities []*timer.Activity) (string, bool) {
	if m.cursor < 0 || m.cursor >= len(activities) {
		return "", false
	}
	return activities[m.cursor].Name, true
}
