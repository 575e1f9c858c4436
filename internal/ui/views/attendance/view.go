package attendance

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	attendancedto "lockedin/internal/modules/attendance/dto"
	"lockedin/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AttendancePort interface {
	List(ctx context.Context) (attendancedto.Overview, error)
	AddWeek(ctx context.Context, subject string) (attendancedto.SubjectView, error)
	DeleteWeek(ctx context.Context, subject string, week int) (attendancedto.SubjectView, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Overview attendancedto.Overview
	Err      error
}

// ChangedMsg reports an edit made from this view.
type ChangedMsg struct {
	Subject attendancedto.SubjectView
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     AttendancePort
	table    table.Model
	overview attendancedto.Overview
	err      error
	width    int
	height   int
}

func New(port AttendancePort) Model {
	t := table.New(
		table.WithColumns(columns(60)),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.Sapphire).BorderForeground(theme.Surface1).Bold(true)
	styles.Selected = styles.Selected.Foreground(theme.Base).Background(theme.Lavender)
	t.SetStyles(styles)
	return Model{port: port, table: t}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.overview = msg.Overview
			m.table.SetRows(rows(msg.Overview))
		}
		return m, nil

	case ChangedMsg:
		return m, m.Reload()

	case tea.KeyMsg:
		switch msg.String() {
		case "w":
			if subject, ok := m.selected(); ok {
				return m, m.change(func(ctx context.Context) (attendancedto.SubjectView, error) {
					return m.port.AddWeek(ctx, subject.ID)
				})
			}
			return m, nil
		case "W":
			if subject, ok := m.selected(); ok && len(subject.Weeks) > 0 {
				last := len(subject.Weeks)
				return m, m.change(func(ctx context.Context) (attendancedto.SubjectView, error) {
					return m.port.DeleteWeek(ctx, subject.ID, last)
				})
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Bad.Render("attendance: " + m.err.Error())
	}
	if len(m.overview.Subjects) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No subjects yet. Open the palette with : and run subject:add <name>"))
	}
	tableW := m.width * 6 / 10
	left := lipgloss.NewStyle().Width(tableW).Render(
		theme.Title.Render(fmt.Sprintf("Attendance  (threshold %.0f%%)", m.overview.Threshold)) + "\n\n" + m.table.View())
	right := theme.Pane.Width(max(20, m.width-tableW-4)).Height(max(3, m.height-4)).Render(m.renderDetail())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// SelectedSubject returns the highlighted subject's name.
func (m Model) SelectedSubject() string {
	if subject, ok := m.selected(); ok {
		return subject.Name
	}
	return ""
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		overview, err := m.port.List(context.Background())
		return LoadedMsg{Overview: overview, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) change(fn func(context.Context) (attendancedto.SubjectView, error)) tea.Cmd {
	return func() tea.Msg {
		subject, err := fn(context.Background())
		return ChangedMsg{Subject: subject, Err: err}
	}
}

func (m Model) selected() (attendancedto.SubjectView, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.overview.Subjects) {
		return attendancedto.SubjectView{}, false
	}
	return m.overview.Subjects[i], true
}

func (m *Model) resize() {
	tableW := m.width * 6 / 10
	m.table.SetColumns(columns(tableW))
	m.table.SetWidth(tableW)
	m.table.SetHeight(max(3, m.height-4))
}

func (m Model) renderDetail() string {
	subject, ok := m.selected()
	if !ok {
		return theme.Muted.Render("Select a subject")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(subject.Name) + "\n")
	sb.WriteString(theme.Zone(subject.Zone).Render(subject.Message) + "\n\n")
	if subject.Recovery != nil {
		sb.WriteString(theme.Warn.Render(fmt.Sprintf("Attend the next %d classes to recover", *subject.Recovery)) + "\n\n")
	}
	if len(subject.Weeks) == 0 {
		sb.WriteString(theme.Muted.Render("No weeks recorded") + "\n")
	}
	for _, w := range subject.Weeks {
		sb.WriteString(fmt.Sprintf("%s %2d/%-2d\n", theme.Muted.Render(fmt.Sprintf("week %2d", w.Number)), w.Attended, w.Conducted))
	}
	sb.WriteString("\n" + theme.Muted.Render("w: add week  W: drop last week"))
	return sb.String()
}

func columns(width int) []table.Column {
	fixed := 10 + 9 + 9 + 9 + 9
	name := max(10, width-fixed-6)
	return []table.Column{
		{Title: "Subject", Width: name},
		{Title: "Held", Width: 6},
		{Title: "Attended", Width: 9},
		{Title: "%", Width: 8},
		{Title: "Zone", Width: 8},
		{Title: "Recover", Width: 8},
	}
}

func rows(o attendancedto.Overview) []table.Row {
	out := make([]table.Row, 0, len(o.Subjects))
	for _, s := range o.Subjects {
		recovery := "-"
		if s.Recovery != nil {
			recovery = fmt.Sprintf("%d", *s.Recovery)
		}
		out = append(out, table.Row{
			s.Name,
			fmt.Sprintf("%d", s.TotalConducted),
			fmt.Sprintf("%d", s.TotalAttended),
			fmt.Sprintf("%.2f", s.Percentage),
			s.Zone,
			recovery,
		})
	}
	return out
}
