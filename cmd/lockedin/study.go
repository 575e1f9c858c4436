package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	attendancedto "lockedin/internal/modules/attendance/dto"
	eligibilitydto "lockedin/internal/modules/eligibility/dto"
	plannerdto "lockedin/internal/modules/planner/dto"
)

func newAttendanceCmd(dataDir *string) *cobra.Command {
	attendance := &cobra.Command{Use: "attendance", Short: "Weekly attendance per subject"}

	attendance.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show every subject with its percentage and zone",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			overview, err := app.AttendanceCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(overview.Subjects) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no subjects")
				return nil
			}
			for _, s := range overview.Subjects {
				printSubject(cmd, s)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "threshold %.0f%%\n", overview.Threshold)
			return nil
		},
	})

	attendance.AddCommand(&cobra.Command{
		Use:   "add-subject <name>",
		Short: "Track a new subject",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			s, err := app.AttendanceCLI.AddSubject(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", s.Name, s.ID)
			return nil
		},
	})

	attendance.AddCommand(&cobra.Command{
		Use:   "delete-subject <subject>",
		Short: "Remove a subject and all its weeks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.AttendanceCLI.DeleteSubject(cmd.Context(), strings.Join(args, " ")); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "subject deleted")
			return nil
		},
	})

	attendance.AddCommand(&cobra.Command{
		Use:   "add-week <subject>",
		Short: "Append an empty week",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			s, err := app.AttendanceCLI.AddWeek(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			printSubject(cmd, s)
			return nil
		},
	})

	attendance.AddCommand(&cobra.Command{
		Use:   "delete-week <subject> <week>",
		Short: "Remove a week; later weeks are renumbered",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("week must be a number: %q", args[1])
			}
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			s, err := app.AttendanceCLI.DeleteWeek(cmd.Context(), args[0], week)
			if err != nil {
				return err
			}
			printSubject(cmd, s)
			return nil
		},
	})

	attendance.AddCommand(&cobra.Command{
		Use:   "set <subject> <week> <conducted|attended> <value>",
		Short: "Update one count of a week",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("week must be a number: %q", args[1])
			}
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			s, err := app.AttendanceCLI.SetWeek(cmd.Context(), args[0], week, args[2], args[3])
			if err != nil {
				return err
			}
			printSubject(cmd, s)
			return nil
		},
	})

	var format string
	report := &cobra.Command{
		Use:   "report",
		Short: "Export an attendance report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AttendanceCLI.Report(cmd.Context(), format)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s report for %d subjects to %s\n", out.Format, out.Subjects, out.Path)
			return nil
		},
	}
	report.Flags().StringVar(&format, "format", "pdf", "report format: pdf|md")
	attendance.AddCommand(report)

	return attendance
}

func printSubject(cmd *cobra.Command, s attendancedto.SubjectView) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-20s %3d/%-3d %6.2f%%  %-7s %s\n",
		s.Name, s.TotalAttended, s.TotalConducted, s.Percentage, s.Zone, s.Message)
}

func newPlannerCmd(dataDir *string) *cobra.Command {
	planner := &cobra.Command{Use: "planner", Short: "Tasks, exams and lab records"}
	planner.AddCommand(newTaskCmd(dataDir), newExamCmd(dataDir), newLabCmd(dataDir))
	return planner
}

func newTaskCmd(dataDir *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "To-do list commands"}

	task.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show tasks and completion rate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			board, err := app.PlannerCLI.Board(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range board.Tasks {
				printTask(cmd, t)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d done (%d%%)\n", board.Done, board.Total, board.CompletionRate)
			return nil
		},
	})

	var due string
	var high bool
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priority := "normal"
			if high {
				priority = "high"
			}
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.PlannerCLI.AddTask(cmd.Context(), strings.Join(args, " "), due, priority)
			if err != nil {
				return err
			}
			printOutcome(cmd, "added", out)
			return nil
		},
	}
	add.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD or phrases like \"next friday\")")
	add.Flags().BoolVar(&high, "high", false, "mark as high priority")
	task.AddCommand(add)

	task.AddCommand(&cobra.Command{
		Use:   "edit <ref> <text>",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			t, err := app.PlannerCLI.EditTask(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			printTask(cmd, t)
			return nil
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "done <ref>",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.PlannerCLI.Done(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOutcome(cmd, "completed", out)
			return nil
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "undo <ref>",
		Short: "Reopen a completed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.PlannerCLI.Undo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOutcome(cmd, "reopened", out)
			return nil
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "delete <ref>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.PlannerCLI.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "task deleted")
			return nil
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every completed task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			n, err := app.PlannerCLI.ClearCompleted(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cleared %d tasks\n", n)
			return nil
		},
	})

	return task
}

func printTask(cmd *cobra.Command, t plannerdto.TaskView) {
	mark := " "
	if t.Done {
		mark = "x"
	}
	line := fmt.Sprintf("%2d [%s] %s", t.Position, mark, t.Text)
	if t.Priority == "high" {
		line += " !"
	}
	if t.Due != "" {
		line += fmt.Sprintf("  (%s, %s)", t.Due, t.DueLabel)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
}

func printOutcome(cmd *cobra.Command, verb string, out plannerdto.TaskOutcome) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verb, out.Task.Text)
	if out.Reward.XP > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "+%d XP\n", out.Reward.XP)
	}
	if out.Reward.LeveledUp {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "level up! now level %d\n", out.Reward.Level)
	}
	for _, b := range out.Reward.Badges {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "badge unlocked: %s\n", b)
	}
	if out.Warning != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", out.Warning)
	}
}

func newExamCmd(dataDir *string) *cobra.Command {
	exam := &cobra.Command{Use: "exam", Short: "Exam countdown commands"}

	exam.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show exams by date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			exams, err := app.PlannerCLI.Exams(cmd.Context())
			if err != nil {
				return err
			}
			if len(exams) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no exams")
			}
			for _, e := range exams {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%2d %-24s %s  %s\n", e.Position, e.Name, e.Date, e.Label)
			}
			return nil
		},
	})

	exam.AddCommand(&cobra.Command{
		Use:   "add <name> <date>",
		Short: "Add an exam",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			e, err := app.PlannerCLI.AddExam(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s on %s (%s)\n", e.Name, e.Date, e.Label)
			return nil
		},
	})

	exam.AddCommand(&cobra.Command{
		Use:   "delete <ref>",
		Short: "Delete an exam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.PlannerCLI.DeleteExam(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "exam deleted")
			return nil
		},
	})

	return exam
}

func newLabCmd(dataDir *string) *cobra.Command {
	lab := &cobra.Command{Use: "lab", Short: "Lab record commands"}

	lab.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show lab records and submission progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			board, err := app.PlannerCLI.Labs(cmd.Context())
			if err != nil {
				return err
			}
			for _, l := range board.Items {
				printLab(cmd, l)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d done (%d%%)\n", board.Completed, board.Total, board.Percent)
			return nil
		},
	})

	var due, link, status string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a lab record",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			l, err := app.PlannerCLI.AddLab(cmd.Context(), strings.Join(args, " "), due, link, status)
			if err != nil {
				return err
			}
			printLab(cmd, l)
			return nil
		},
	}
	add.Flags().StringVar(&due, "due", "", "due date")
	add.Flags().StringVar(&link, "link", "", "submission link")
	add.Flags().StringVar(&status, "status", "", "pending|in-progress|submitted|evaluated")
	lab.AddCommand(add)

	lab.AddCommand(&cobra.Command{
		Use:   "status <ref> [status]",
		Short: "Set a lab status, or advance it when none is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			next := ""
			if len(args) == 2 {
				next = args[1]
			}
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			l, err := app.PlannerCLI.SetLabStatus(cmd.Context(), args[0], next)
			if err != nil {
				return err
			}
			printLab(cmd, l)
			return nil
		},
	})

	lab.AddCommand(&cobra.Command{
		Use:   "delete <ref>",
		Short: "Delete a lab record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.PlannerCLI.DeleteLab(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "lab deleted")
			return nil
		},
	})

	return lab
}

func printLab(cmd *cobra.Command, l plannerdto.LabView) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%2d %-24s %-12s %s %s\n", l.Position, l.Name, l.Status, l.DueDate, l.Link)
}

func newProgressCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show level, streaks, badges and quests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			d, err := app.ProgressCLI.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Level %d %s  %s / %s XP\n", d.Level, d.Rank, humanize.Comma(int64(d.XP)), humanize.Comma(int64(d.NextLevelXP)))
			_, _ = fmt.Fprintf(out, "today %d min in %d sessions, %d tasks\n", d.TodayMinutes, d.SessionsToday, d.TasksToday)
			_, _ = fmt.Fprintf(out, "total %s min over %d days, streak %d (best %d)\n",
				humanize.Comma(int64(d.TotalMinutes)), d.ActiveDays, d.CurrentStreak, d.MaxStreak)
			for _, b := range d.Badges {
				if b.Unlocked {
					_, _ = fmt.Fprintf(out, "%s %s  %s\n", b.Icon, b.Name, humanize.Time(b.UnlockedAt))
				}
			}
			for _, q := range d.Quests {
				mark := " "
				if q.Completed {
					mark = "x"
				}
				_, _ = fmt.Fprintf(out, "[%s] %s %d/%d (+%d XP)\n", mark, q.Text, q.Progress, q.Target, q.XP)
			}
			if d.Quote != "" {
				_, _ = fmt.Fprintf(out, "\n%s\n", d.Quote)
			}
			return nil
		},
	}
}

func newEligibilityCmd(dataDir *string) *cobra.Command {
	eligibility := &cobra.Command{Use: "eligibility", Short: "Marks eligibility calculator"}

	var input eligibilitydto.EvaluateInput
	eval := &cobra.Command{
		Use:   "eval",
		Short: "Compute the total, percentage and grade",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			r, err := app.EligibilityCLI.Evaluate(cmd.Context(), input)
			if err != nil {
				return err
			}
			printResult(cmd, r)
			return nil
		},
	}
	eval.Flags().IntVar(&input.Schema, "schema", 100, "marks schema: 100|125|150")
	eval.Flags().Float64Var(&input.IA, "ia", 0, "internal assessment marks")
	eval.Flags().Float64Var(&input.End, "end", 0, "end semester marks")
	eval.Flags().Float64Var(&input.Lab, "lab", 0, "lab marks (125 and 150 schemas)")
	eval.Flags().Float64Var(&input.Practical, "practical", 0, "practical marks (150 schema)")
	eligibility.AddCommand(eval)

	eligibility.AddCommand(&cobra.Command{
		Use:   "last",
		Short: "Show the most recent evaluation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			r, ok, err := app.EligibilityCLI.Last(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no evaluation yet")
				return nil
			}
			printResult(cmd, r)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "evaluated %s\n", humanize.Time(r.EvaluatedAt))
			return nil
		},
	})

	return eligibility
}

func printResult(cmd *cobra.Command, r eligibilitydto.Result) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.2f / %d = %.2f%%  %s\n", r.Total, r.Schema, r.Percentage, r.Grade)
}

func newCoachCmd(dataDir *string) *cobra.Command {
	coach := &cobra.Command{Use: "coach", Short: "Ask the study coach"}

	var promptOnly bool
	ask := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask a question with your study context attached",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer app.Close()
			message := strings.Join(args, " ")
			if promptOnly {
				prompt, err := app.CoachCLI.Prompt(cmd.Context(), message)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), prompt)
				return nil
			}
			reply, err := app.CoachCLI.Ask(cmd.Context(), message)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
			return nil
		},
	}
	ask.Flags().BoolVar(&promptOnly, "prompt-only", false, "print the assembled prompt instead of asking")
	coach.AddCommand(ask)

	return coach
}
