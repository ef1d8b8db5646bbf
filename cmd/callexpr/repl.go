package main

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/xiam/callexpr"
	"github.com/xiam/callexpr/internal/render"
)

// parseMsg carries the rendered result of a submitted program.
type parseMsg struct {
	output string
	err    error
}

func parseCmd(e *env, format render.Format, src string) tea.Cmd {
	return func() tea.Msg {
		nodes, err := callexpr.ParseString(src, callexpr.WithLogger(e.log))
		if err != nil {
			return parseMsg{err: err}
		}
		var buf bytes.Buffer
		if err := render.Tree(&buf, format, nodes); err != nil {
			return parseMsg{err: err}
		}
		return parseMsg{output: buf.String()}
	}
}

type keyMap struct {
	Quit key.Binding
	Run  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "parse"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run},
		{k.Quit},
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("44")).Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

type model struct {
	env    *env
	format render.Format

	input    textarea.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	output string
	status string
	err    error
}

func newModel(e *env, format render.Format) model {
	ta := textarea.New()
	ta.Placeholder = "Type a program, e.g. (add 2 (subtract 4 2)). Use :q to exit."
	ta.Focus()
	ta.Prompt = "> "
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)

	vp := viewport.New(80, 20)
	vp.SetContent(subtle.Render("The syntax tree will appear here."))

	return model{
		env:      e,
		format:   format,
		input:    ta,
		viewport: vp,
		help:     help.New(),
		keys:     newKeyMap(),
		status:   "Ready",
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title, blank, label, blank, label, blank, status, help and borders
		const chromeLines = 12

		width := msg.Width - 6
		if width < 10 {
			width = 10
		}
		height := msg.Height - chromeLines - m.input.Height()
		if height < 3 {
			height = 3
		}
		m.input.SetWidth(width)
		m.viewport.Width = width
		m.viewport.Height = height

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Run) {
			src := strings.TrimSpace(m.input.Value())
			switch src {
			case "":
				return m, nil
			case ":q", ":quit":
				return m, tea.Quit
			}
			m.status = "Parsing..."
			m.input.Reset()
			return m, parseCmd(m.env, m.format, src)
		}

	case parseMsg:
		m.output, m.err = msg.output, msg.err
		if msg.err != nil {
			m.status = "Parse failed"
			m.viewport.SetContent(errorStyle.Render(msg.err.Error()))
		} else {
			m.status = "Parsed"
			m.viewport.SetContent(msg.output)
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	title := titleStyle.Render("callexpr") + " " + subtle.Render("repl, format: "+string(m.format))

	statusLine := statusStyle.Render(m.status)
	if m.err != nil {
		statusLine += "  " + errorStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		"Program:",
		boxStyle.Render(m.input.View()),
		"",
		"Tree:",
		boxStyle.Render(m.viewport.View()),
		"",
		statusLine,
		m.help.View(m.keys),
	)
}

func runREPL(e *env, format render.Format) error {
	p := tea.NewProgram(newModel(e, format), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running repl")
	}
	return nil
}
