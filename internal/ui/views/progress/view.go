package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	progressdto "lockedin/internal/modules/progress/dto"
	"lockedin/internal/ui/theme"
)

type ProgressPort interface {
	Dashboard(ctx context.Context) (progressdto.Dashboard, error)
}

type LoadedMsg struct {
	Dashboard progressdto.Dashboard
	Err       error
}

type Model struct {
	port   ProgressPort
	dash   progressdto.Dashboard
	err    error
	xpBar  progress.Model
	body   viewport.Model
	width  int
	height int
}

func New(port ProgressPort) Model {
	return Model{
		port:  port,
		xpBar: progress.New(progress.WithGradient(string(theme.Mauve), string(theme.Peach))),
		body:  viewport.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.xpBar.Width = max(10, min(m.width-20, 50))
		m.body.Width = m.width
		m.body.Height = m.height
		m.body.SetContent(m.render())
		return m, nil
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.dash = msg.Dashboard
		}
		m.body.SetContent(m.render())
		return m, nil
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.body.View()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		dash, err := m.port.Dashboard(context.Background())
		return LoadedMsg{Dashboard: dash, Err: err}
	}
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("progress: " + m.err.Error())
	}
	d := m.dash
	var sb strings.Builder

	sb.WriteString(theme.Title.Render(fmt.Sprintf("Level %d  %s", d.Level, d.Rank)) + "\n")
	ratio := 0.0
	if d.NextLevelXP > 0 {
		ratio = float64(d.XP) / float64(d.NextLevelXP)
	}
	sb.WriteString(m.xpBar.ViewAs(ratio) + theme.Muted.Render(fmt.Sprintf("  %s / %s XP", humanize.Comma(int64(d.XP)), humanize.Comma(int64(d.NextLevelXP)))) + "\n\n")

	stats := []string{
		stat("studied", formatMinutes(d.TotalMinutes)),
		stat("today", formatMinutes(d.TodayMinutes)),
		stat("active days", fmt.Sprint(d.ActiveDays)),
		stat("streak", fmt.Sprintf("%d (best %d)", d.CurrentStreak, d.MaxStreak)),
		stat("sessions today", fmt.Sprint(d.SessionsToday)),
		stat("tasks today", fmt.Sprint(d.TasksToday)),
	}
	sb.WriteString(strings.Join(stats, theme.Muted.Render("  │  ")) + "\n\n")

	sb.WriteString(theme.Title.Render("Last 12 weeks") + "\n")
	sb.WriteString(renderHeatmap(d.Heatmap) + "\n\n")

	sb.WriteString(theme.Title.Render("Daily quests"))
	if d.QuestsRefreshIn > 0 {
		sb.WriteString(theme.Muted.Render("  new quests " + humanize.Time(time.Now().Add(d.QuestsRefreshIn))))
	}
	sb.WriteString("\n")
	for _, q := range d.Quests {
		mark := theme.Muted.Render("○")
		if q.Completed {
			mark = theme.Good.Render("●")
		}
		sb.WriteString(fmt.Sprintf("%s %s %s\n", mark, q.Text,
			theme.Muted.Render(fmt.Sprintf("%d/%d  +%d XP", min(q.Progress, q.Target), q.Target, q.XP))))
	}

	sb.WriteString("\n" + theme.Title.Render("Badges") + "\n")
	for _, b := range d.Badges {
		if b.Unlocked {
			sb.WriteString(fmt.Sprintf("%s %s %s\n", b.Icon, theme.Hot.Render(b.Name),
				theme.Muted.Render("unlocked "+humanize.Time(b.UnlockedAt))))
		} else {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s %s  %s", b.Icon, b.Name, b.Description)) + "\n")
		}
	}

	if d.Quote != "" {
		sb.WriteString("\n" + lipgloss.NewStyle().Italic(true).Foreground(theme.Subtext0).Render(d.Quote) + "\n")
	}
	return theme.App.Render(sb.String())
}

func stat(label, value string) string {
	return theme.Muted.Render(label+": ") + value
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// renderHeatmap lays the cells out in weekly columns, oldest first.
func renderHeatmap(cells []progressdto.HeatCell) string {
	rows := make([]strings.Builder, 7)
	for i, cell := range cells {
		level := max(0, min(cell.Level, len(theme.Heat)-1))
		rows[i%7].WriteString(lipgloss.NewStyle().Foreground(theme.Heat[level]).Render("■ "))
	}
	lines := make([]string, 0, 7)
	for i := range rows {
		lines = append(lines, rows[i].String())
	}
	return strings.Join(lines, "\n")
}
