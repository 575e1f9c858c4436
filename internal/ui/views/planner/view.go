package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plannerdto "lockedin/internal/modules/planner/dto"
	"lockedin/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type PlannerPort interface {
	Board(ctx context.Context) (plannerdto.Board, error)
	Exams(ctx context.Context) ([]plannerdto.ExamView, error)
	Labs(ctx context.Context) (plannerdto.LabBoard, error)
	Done(ctx context.Context, ref string) (plannerdto.TaskOutcome, error)
	Undo(ctx context.Context, ref string) (plannerdto.TaskOutcome, error)
	DeleteTask(ctx context.Context, ref string) error
	ClearCompleted(ctx context.Context) (int, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Board plannerdto.Board
	Exams []plannerdto.ExamView
	Labs  plannerdto.LabBoard
	Err   error
}

// TaskChangedMsg reports a task edit; Outcome is empty for deletes.
type TaskChangedMsg struct {
	Outcome plannerdto.TaskOutcome
	Note    string
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type taskItem struct {
	task plannerdto.TaskView
}

func (i taskItem) Title() string {
	box := "[ ] "
	if i.task.Done {
		box = "[x] "
	}
	title := box + i.task.Text
	if i.task.Priority == "high" {
		title += " !"
	}
	return title
}

func (i taskItem) Description() string {
	if i.task.Due == "" {
		return "no deadline"
	}
	return i.task.Due + "  " + i.task.DueLabel
}

func (i taskItem) FilterValue() string { return i.task.Text }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   PlannerPort
	list   list.Model
	board  plannerdto.Board
	exams  []plannerdto.ExamView
	labs   plannerdto.LabBoard
	err    error
	width  int
	height int
}

func New(port PlannerPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Tasks"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width/2, m.height)
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.board, m.exams, m.labs = msg.Board, msg.Exams, msg.Labs
		items := make([]list.Item, len(msg.Board.Tasks))
		for i, t := range msg.Board.Tasks {
			items[i] = taskItem{task: t}
		}
		m.list.Title = fmt.Sprintf("Tasks  %d/%d done (%d%%)", msg.Board.Done, msg.Board.Total, msg.Board.CompletionRate)
		return m, m.list.SetItems(items)

	case TaskChangedMsg:
		return m, m.Reload()

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		item, ok := m.list.SelectedItem().(taskItem)
		switch msg.String() {
		case " ", "x":
			if ok {
				return m, m.toggle(item.task)
			}
			return m, nil
		case "d":
			if ok {
				return m, m.remove(item.task)
			}
			return m, nil
		case "c":
			return m, m.clear()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Bad.Render("planner: " + m.err.Error())
	}
	listW := m.width / 2
	left := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	right := theme.Pane.Width(max(20, m.width-listW-4)).Height(max(3, m.height-4)).Render(m.renderSide())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		board, err := m.port.Board(ctx)
		exams, examErr := m.port.Exams(ctx)
		labs, labErr := m.port.Labs(ctx)
		return LoadedMsg{Board: board, Exams: exams, Labs: labs, Err: errors.Join(err, examErr, labErr)}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) toggle(task plannerdto.TaskView) tea.Cmd {
	return func() tea.Msg {
		var (
			out plannerdto.TaskOutcome
			err error
		)
		if task.Done {
			out, err = m.port.Undo(context.Background(), task.ID)
		} else {
			out, err = m.port.Done(context.Background(), task.ID)
		}
		return TaskChangedMsg{Outcome: out, Err: err}
	}
}

func (m Model) remove(task plannerdto.TaskView) tea.Cmd {
	return func() tea.Msg {
		err := m.port.DeleteTask(context.Background(), task.ID)
		return TaskChangedMsg{Note: "deleted " + task.Text, Err: err}
	}
}

func (m Model) clear() tea.Cmd {
	return func() tea.Msg {
		n, err := m.port.ClearCompleted(context.Background())
		return TaskChangedMsg{Note: fmt.Sprintf("cleared %d completed tasks", n), Err: err}
	}
}

func (m Model) renderSide() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Upcoming") + "\n")
	if len(m.board.Upcoming) == 0 {
		sb.WriteString(theme.Muted.Render("nothing due") + "\n")
	}
	for _, t := range m.board.Upcoming {
		sb.WriteString(deadlineStyle(t.DaysLeft).Render(fmt.Sprintf("%-10s", t.DueLabel)) + " " + t.Text + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Exams") + "\n")
	if len(m.exams) == 0 {
		sb.WriteString(theme.Muted.Render("no exams") + "\n")
	}
	for _, e := range m.exams {
		sb.WriteString(deadlineStyle(e.DaysLeft).Render(fmt.Sprintf("%-10s", e.Label)) + " " + e.Name + theme.Muted.Render("  "+e.Date) + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render(fmt.Sprintf("Labs  %d/%d (%d%%)", m.labs.Completed, m.labs.Total, m.labs.Percent)) + "\n")
	for _, l := range m.labs.Items {
		line := fmt.Sprintf("%-12s %s", l.Status, l.Name)
		if l.DueDate != "" {
			line += theme.Muted.Render("  due " + l.DueDate)
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + theme.Muted.Render("space: done/undo  d: delete  c: clear done  /: filter"))
	return sb.String()
}

func deadlineStyle(daysLeft int) lipgloss.Style {
	switch {
	case daysLeft <= 1:
		return theme.Bad
	case daysLeft <= 3:
		return theme.Warn
	default:
		return theme.Good
	}
}
