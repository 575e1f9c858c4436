package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	eligibilitydto "lockedin/internal/modules/eligibility/dto"
	"lockedin/internal/ui/components"
)

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), parts[0]))
	args := parts[1:]

	switch parts[0] {
	case "timer:start":
		m.activeTab = tabTimer
		return m, m.timerView.Start()
	case "timer:pause":
		return m, m.timerView.Pause()
	case "timer:reset":
		minutes := 0
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				m.status = "usage: timer:reset [minutes]"
				return m, nil
			}
			minutes = n
		}
		return m, m.timerView.Reset(minutes)
	case "timer:preset":
		n, err := intArg(args, 0)
		if err != nil {
			m.status = "usage: timer:preset <minutes>"
			return m, nil
		}
		return m, m.timerView.Preset(n)

	case "subject:add":
		if rest == "" {
			m.status = "usage: subject:add <name>"
			return m, nil
		}
		m.activeTab = tabAttendance
		return m, m.act(func(ctx context.Context) (string, error) {
			s, err := m.ports.Attendance.AddSubject(ctx, rest)
			return "added subject " + s.Name, err
		}, tabAttendance)
	case "subject:delete":
		subject := m.subjectOr(rest)
		if subject == "" {
			m.status = "usage: subject:delete <subject>"
			return m, nil
		}
		return m, m.act(func(ctx context.Context) (string, error) {
			return "deleted subject " + subject, m.ports.Attendance.DeleteSubject(ctx, subject)
		}, tabAttendance)
	case "week:add":
		subject := m.subjectOr(rest)
		if subject == "" {
			m.status = "usage: week:add <subject>"
			return m, nil
		}
		return m, m.act(func(ctx context.Context) (string, error) {
			s, err := m.ports.Attendance.AddWeek(ctx, subject)
			return fmt.Sprintf("%s: week %d added", s.Name, len(s.Weeks)), err
		}, tabAttendance)
	case "week:delete":
		week, err := intArg(args, 1)
		if err != nil {
			m.status = "usage: week:delete <subject> <week>"
			return m, nil
		}
		return m, m.act(func(ctx context.Context) (string, error) {
			s, err := m.ports.Attendance.DeleteWeek(ctx, args[0], week)
			return fmt.Sprintf("%s: week %d removed", s.Name, week), err
		}, tabAttendance)
	case "week:set":
		week, err := intArg(args, 1)
		if err != nil || len(args) < 4 {
			m.status = "usage: week:set <subject> <week> <conducted|attended> <value>"
			return m, nil
		}
		return m, m.act(func(ctx context.Context) (string, error) {
			s, err := m.ports.Attendance.SetWeek(ctx, args[0], week, args[2], args[3])
			return fmt.Sprintf("%s: %.2f%% %s", s.Name, s.Percentage, s.Zone), err
		}, tabAttendance)
	case "report:pdf", "report:md":
		format := strings.TrimPrefix(parts[0], "report:")
		return m, m.act(func(ctx context.Context) (string, error) {
			out, err := m.ports.Attendance.Report(ctx, format)
			return "report written to " + out.Path, err
		})

	case "task:add":
		fields := components.SplitArgs(rest)
		if fields[0] == "" {
			m.status = "usage: task:add <text> [| due] [| high]"
			return m, nil
		}
		due, priority := field(fields, 1), field(fields, 2)
		m.activeTab = tabPlanner
		return m, m.act(func(ctx context.Context) (string, error) {
			out, err := m.ports.Planner.AddTask(ctx, fields[0], due, priority)
			if err == nil && out.Warning != "" {
				return out.Warning, nil
			}
			return rewardStatus("added "+out.Task.Text, out.Reward), err
		}, tabPlanner, tabProgress)
	case "task:done", "task:undo":
		if rest == "" {
			m.status = "usage: " + parts[0] + " <ref>"
			return m, nil
		}
		done := parts[0] == "task:done"
		return m, m.act(func(ctx context.Context) (string, error) {
			call := m.ports.Planner.Undo
			if done {
				call = m.ports.Planner.Done
			}
			out, err := call(ctx, rest)
			if err == nil && out.Warning != "" {
				return out.Warning, nil
			}
			return rewardStatus(out.Task.Text, out.Reward), err
		}, tabPlanner, tabProgress)
	case "task:edit":
		if len(args) < 2 {
			m.status = "usage: task:edit <ref> <text>"
			return m, nil
		}
		text := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		return m, m.act(func(ctx context.Context) (string, error) {
			t, err := m.ports.Planner.EditTask(ctx, args[0], text)
			return "renamed to " + t.Text, err
		}, tabPlanner)
	case "task:delete":
		return m, m.act(func(ctx context.Context) (string, error) {
			return "task deleted", m.ports.Planner.DeleteTask(ctx, rest)
		}, tabPlanner)
	case "task:clear":
		return m, m.act(func(ctx context.Context) (string, error) {
			n, err := m.ports.Planner.ClearCompleted(ctx)
			return fmt.Sprintf("cleared %d completed tasks", n), err
		}, tabPlanner)
	case "exam:add":
		fields := components.SplitArgs(rest)
		if len(fields) < 2 || fields[0] == "" {
			m.status = "usage: exam:add <name> | <date>"
			return m, nil
		}
		return m, m.act(func(ctx context.Context) (string, error) {
			e, err := m.ports.Planner.AddExam(ctx, fields[0], fields[1])
			return fmt.Sprintf("%s on %s (%s)", e.Name, e.Date, e.Label), err
		}, tabPlanner)
	case "exam:delete":
		return m, m.act(func(ctx context.Context) (string, error) {
			return "exam deleted", m.ports.Planner.DeleteExam(ctx, rest)
		}, tabPlanner)
	case "lab:add":
		fields := components.SplitArgs(rest)
		if fields[0] == "" {
			m.status = "usage: lab:add <name> [| due] [| link]"
			return m, nil
		}
		return m, m.act(func(ctx context.Context) (string, error) {
			l, err := m.ports.Planner.AddLab(ctx, fields[0], field(fields, 1), field(fields, 2), "")
			return "added lab " + l.Name, err
		}, tabPlanner)
	case "lab:next":
		return m, m.act(func(ctx context.Context) (string, error) {
			l, err := m.ports.Planner.SetLabStatus(ctx, rest, "")
			return l.Name + " is now " + l.Status, err
		}, tabPlanner)
	case "lab:delete":
		return m, m.act(func(ctx context.Context) (string, error) {
			return "lab deleted", m.ports.Planner.DeleteLab(ctx, rest)
		}, tabPlanner)

	case "elig":
		input, err := eligibilityArgs(args)
		if err != nil {
			m.status = "usage: elig <schema> <ia> <end> [lab] [practical]"
			return m, nil
		}
		return m, m.act(func(ctx context.Context) (string, error) {
			r, err := m.ports.Eligibility.Evaluate(ctx, input)
			return fmt.Sprintf("eligibility: %.2f / %d = %.2f%%  %s", r.Total, r.Schema, r.Percentage, r.Grade), err
		})

	case "coach":
		m.activeTab = tabCoach
		var cmd tea.Cmd
		m.coachView, cmd = m.coachView.Send(rest)
		return m, cmd

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) act(fn func(ctx context.Context) (string, error), reload ...tabID) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		return actionDoneMsg{status: status, err: err, reload: reload}
	}
}

// subjectOr falls back to the subject highlighted in the attendance tab.
func (m Model) subjectOr(name string) string {
	if name != "" {
		return name
	}
	return m.attendanceView.SelectedSubject()
}

func intArg(args []string, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument %d", i+1)
	}
	return strconv.Atoi(args[i])
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func eligibilityArgs(args []string) (eligibilitydto.EvaluateInput, error) {
	if len(args) < 3 {
		return eligibilitydto.EvaluateInput{}, fmt.Errorf("need schema, ia and end")
	}
	schema, err := strconv.Atoi(args[0])
	if err != nil {
		return eligibilitydto.EvaluateInput{}, err
	}
	marks := make([]float64, 4)
	for i, raw := range args[1:] {
		if i >= len(marks) {
			break
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return eligibilitydto.EvaluateInput{}, err
		}
		marks[i] = v
	}
	return eligibilitydto.EvaluateInput{Schema: schema, IA: marks[0], End: marks[1], Lab: marks[2], Practical: marks[3]}, nil
}
