package main

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aprzn123/RiPeN/calc"
)

const (
	tickInterval = 200 * time.Millisecond
	errorTTL     = 4 * time.Second
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// tickMsg is the redraw heartbeat; a fresh tick is armed each time one is
// consumed.
type tickMsg time.Time

// errExpiredMsg asks the loop to drop the oldest displayed error. One is
// scheduled per pushed error and is never cancelled.
type errExpiredMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func expireCmd() tea.Cmd {
	return tea.Tick(errorTTL, func(time.Time) tea.Msg {
		return errExpiredMsg{}
	})
}

type model struct {
	textInput   textinput.Model
	calc        *calc.Calculator
	errors      []string
	width       int
	height      int
	quitting    bool
	initialized bool
}

type keyMap struct {
	Quit      key.Binding
	ClearLine key.Binding
	Reset     key.Binding
	Submit    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+d", "ctrl+c"),
		key.WithHelp("ctrl+d", "quit"),
	),
	ClearLine: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("ctrl+w", "clear input"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "reset"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
}

func newModel(c *calc.Calculator, startupErrors []string) model {
	ti := textinput.New()
	ti.Placeholder = "number or operator..."
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 40
	ti.PromptStyle = promptStyle
	ti.Prompt = "> "

	return model{
		textInput: ti,
		calc:      c,
		errors:    startupErrors,
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tea.EnterAltScreen, tickCmd()}
	// Errors queued before the program started still need their expiry
	// timers.
	for range m.errors {
		cmds = append(cmds, expireCmd())
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = max(msg.Width-8, 20)
		m.initialized = true
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case errExpiredMsg:
		// The timer may outlive its entry when a reset drained the queue;
		// popping an empty queue is a no-op.
		if len(m.errors) > 0 {
			m.errors = m.errors[1:]
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.ClearLine):
			m.textInput.SetValue("")
			return m, nil

		case key.Matches(msg, keys.Reset):
			m.calc.Reset()
			m.textInput.SetValue("")
			m.errors = nil
			return m, nil

		case key.Matches(msg, keys.Submit):
			ok, err := m.calc.Submit(m.textInput.Value())
			if ok {
				m.textInput.SetValue("")
			}
			if err != nil {
				log.Printf("submit: %v", err)
				return m, m.pushError(err.Error())
			}
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *model) pushError(msg string) tea.Cmd {
	m.errors = append(m.errors, msg)
	return expireCmd()
}

func (m model) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("RiPeN")
	version := mutedStyle.Render("v0.1.0")
	b.WriteString(header + " " + version + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(max(m.width-2, 1), 60))) + "\n")

	panelWidth := max(m.width-2, 20)

	// Header, separator, error lines, input box, and footer surround the
	// stack panel; it gets whatever height remains.
	reserved := 2 + len(m.errors) + 3 + 1
	stackRows := max(m.height-reserved-2, 1)

	b.WriteString(renderStack(m.calc.Stack(), panelWidth, stackRows))
	b.WriteString("\n")

	for _, e := range m.errors {
		b.WriteString(errorStyle.Render("✗ "+truncate(e, panelWidth)) + "\n")
	}

	b.WriteString(borderStyle.Width(panelWidth).Render(m.textInput.View()))
	b.WriteString("\n")

	footer := helpKeyStyle.Render("enter") + helpDescStyle.Render(" submit  ") +
		helpKeyStyle.Render("ctrl+w") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" reset  ") +
		helpKeyStyle.Render("ctrl+d") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

// renderStack shows the operand stack oldest first, windowed so the most
// recent values stay visible when it outgrows the panel.
func renderStack(values []float64, width, rows int) string {
	if len(values) == 0 {
		return borderStyle.Width(width).Height(rows).Render(mutedStyle.Render("empty stack"))
	}

	start := 0
	if len(values) > rows {
		start = len(values) - rows
	}
	lines := make([]string, 0, len(values)-start)
	for _, v := range values[start:] {
		lines = append(lines, formatNum(v))
	}
	return borderStyle.Width(width).Height(rows).Render(strings.Join(lines, "\n"))
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
