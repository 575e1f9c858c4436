package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"lockedin/internal/ui/theme"
	timerview "lockedin/internal/ui/views/timer"
)

// Mini is the one-line timer window. It shares the engine state with the
// dashboard and the CLI through the timer store.
type Mini struct {
	timer  timerview.Model
	status string
}

func NewMini(ctx context.Context, timer timerview.TimerPort) Mini {
	return Mini{timer: timerview.NewCompact(ctx, timer)}
}

func (m Mini) Init() tea.Cmd {
	return m.timer.Init()
}

func (m Mini) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	case tea.FocusMsg:
		return m, m.timer.Resync()
	case timerview.SnapshotMsg:
		switch {
		case msg.Err != nil:
			m.status = msg.Err.Error()
		case msg.Snapshot.Warning != "":
			m.status = msg.Snapshot.Warning
		case msg.Snapshot.Completed:
			m.status = "complete"
		}
	}
	var cmd tea.Cmd
	m.timer, cmd = m.timer.Update(msg)
	return m, cmd
}

func (m Mini) View() string {
	line := m.timer.View()
	if m.status != "" {
		line += "  " + theme.Warn.Render(m.status)
	}
	return line + "\n" + theme.Muted.Render("space: start/pause  r: reset  q: close")
}
