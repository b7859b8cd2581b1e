// Package ui renders the session status in the terminal. It only reads the
// status board and never waits on the session.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jarvis/internal/session"
)

const (
	refresh    = 100 * time.Millisecond
	maxHistory = 8
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	stateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	heardStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	replyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

type tickMsg time.Time

// Submit receives a phrase typed into the prompt.
type Submit func(text string) error

type line struct {
	heard string
	reply string
}

type Model struct {
	board   *session.StatusBoard
	submit  Submit
	name    string
	spinner spinner.Model
	prompt  textinput.Model

	status    session.Status
	lastSeq   uint64
	lastReply uint64
	history   []line
	err     error
	width   int
}

// New builds the model. A nil submit hides the prompt.
func New(board *session.StatusBoard, name string, submit Submit) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = stateStyle

	ti := textinput.New()
	ti.Placeholder = "Type a command (Enter to send, Ctrl+C to exit)"
	ti.Prompt = "│ "
	ti.CharLimit = 256
	ti.Width = 60
	if submit != nil {
		ti.Focus()
	}

	return Model{
		board:   board,
		submit:  submit,
		name:    name,
		spinner: sp,
		prompt:  ti,
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick(), textinput.Blink)
}

func tick() tea.Cmd {
	return tea.Tick(refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.poll()
		if m.status.State == session.Terminated {
			return m, tea.Quit
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.submit == nil {
				return m, nil
			}
			text := strings.TrimSpace(m.prompt.Value())
			m.prompt.Reset()
			m.err = m.submit(text)
			return m, nil
		}
		if m.submit == nil {
			if msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// poll takes the newest status if one was published since the last look,
// and every reply finished since then even if newer statuses replaced it.
func (m *Model) poll() {
	select {
	case <-m.board.Updates():
	default:
		return
	}

	for _, r := range m.board.RepliesSince(m.lastReply) {
		m.lastReply = r.Seq
		m.history = append(m.history, line{heard: r.Heard, reply: r.Reply})
	}
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}

	st := m.board.Latest()
	if st.Seq <= m.lastSeq {
		return
	}
	m.lastSeq = st.Seq
	m.status = st
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(strings.ToUpper(m.name)))
	b.WriteString("\n\n")

	for _, l := range m.history {
		if l.heard != "" {
			b.WriteString(heardStyle.Render("> " + l.heard))
			b.WriteString("\n")
		}
		b.WriteString(replyStyle.Width(m.width).Render(l.reply))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	if m.submit != nil {
		b.WriteString(m.prompt.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(stateStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("esc to quit"))
	return b.String()
}

func (m Model) statusLine() string {
	st := m.status
	label := st.State.String()
	if st.Detail != "" {
		label = st.Detail
	}

	switch st.State {
	case session.Idle, session.Terminated:
		return stateStyle.Render("● " + label)
	default:
		return m.spinner.View() + " " + stateStyle.Render(label)
	}
}

// Status is the last status the model rendered.
func (m Model) Status() session.Status {
	return m.status
}
