package coach

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	coachdto "lockedin/internal/modules/coach/dto"
	"lockedin/internal/ui/theme"
)

type CoachPort interface {
	Ask(ctx context.Context, message string) (coachdto.Reply, error)
}

type ReplyMsg struct {
	Reply coachdto.Reply
	Err   error
}

type turn struct {
	user bool
	text string
}

var (
	userStyle = lipgloss.NewStyle().Foreground(theme.Sapphire).Bold(true)
	botStyle  = lipgloss.NewStyle().Foreground(theme.Mauve).Bold(true)
)

type Model struct {
	port     CoachPort
	input    textinput.Model
	log      viewport.Model
	spinner  spinner.Model
	turns    []turn
	thinking bool
	width    int
	height   int
}

func New(port CoachPort) Model {
	ti := textinput.New()
	ti.Placeholder = "ask your coach…"
	ti.CharLimit = 1000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Mauve)

	return Model{
		port:    port,
		input:   ti,
		log:     viewport.New(0, 0),
		spinner: sp,
		turns:   []turn{{text: "Hi! Ask me how to plan your week, or which subject needs attention."}},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, m.width-6)
		m.log.Width = m.width
		m.log.Height = max(3, m.height-3)
		m.refresh()
		return m, nil

	case ReplyMsg:
		m.thinking = false
		text := msg.Reply.Text
		if msg.Err != nil {
			text = msg.Err.Error()
		}
		m.turns = append(m.turns, turn{text: text})
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case tea.KeyMsg:
		if !m.input.Focused() {
			switch msg.String() {
			case "i", "enter":
				return m, m.input.Focus()
			}
			break
		}
		switch msg.String() {
		case "esc":
			m.input.Blur()
			return m, nil
		case "enter":
			return m.Send(m.input.Value())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.log, cmd = m.log.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.log.View(),
		lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Surface1).Render(m.input.View()),
	)
}

// Typing reports whether the input has focus; global keys must yield.
func (m Model) Typing() bool {
	return m.input.Focused()
}

// Send records message and asks the coach in the background.
func (m Model) Send(message string) (Model, tea.Cmd) {
	message = strings.TrimSpace(message)
	if message == "" || m.thinking {
		return m, nil
	}
	m.input.SetValue("")
	m.turns = append(m.turns, turn{user: true, text: message})
	m.thinking = true
	m.refresh()
	port := m.port
	ask := func() tea.Msg {
		reply, err := port.Ask(context.Background(), message)
		return ReplyMsg{Reply: reply, Err: err}
	}
	return m, tea.Batch(ask, m.spinner.Tick)
}

func (m *Model) refresh() {
	wrap := lipgloss.NewStyle().Width(max(10, m.width-4))
	var sb strings.Builder
	for _, t := range m.turns {
		if t.user {
			sb.WriteString(userStyle.Render("you") + "\n")
		} else {
			sb.WriteString(botStyle.Render("coach") + "\n")
		}
		sb.WriteString(wrap.Render(t.text) + "\n\n")
	}
	if m.thinking {
		sb.WriteString(m.spinner.View() + theme.Muted.Render(" Coach is thinking…"))
	}
	m.log.SetContent(sb.String())
	m.log.GotoBottom()
}
