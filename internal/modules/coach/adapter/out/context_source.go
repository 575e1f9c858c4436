package out

import (
	"context"
	"errors"
	"fmt"

	attendancein "lockedin/internal/modules/attendance/port/in"
	"lockedin/internal/modules/coach/domain"
	coachout "lockedin/internal/modules/coach/port/out"
	eligibilityin "lockedin/internal/modules/eligibility/port/in"
	plannerin "lockedin/internal/modules/planner/port/in"
	progressin "lockedin/internal/modules/progress/port/in"
)

// ModuleContextSource reads the bundle through the other modules' input
// ports. Any of them may be nil.
type ModuleContextSource struct {
	Attendance  attendancein.Usecase
	Planner     plannerin.Usecase
	Eligibility eligibilityin.Usecase
	Progress    progressin.Usecase
}

func NewModuleContextSource(attendance attendancein.Usecase, planner plannerin.Usecase, eligibility eligibilityin.Usecase, progress progressin.Usecase) coachout.ContextSource {
	return &ModuleContextSource{Attendance: attendance, Planner: planner, Eligibility: eligibility, Progress: progress}
}

// Collect keeps going past failing sections and joins their errors.
func (s *ModuleContextSource) Collect(ctx context.Context) (domain.Bundle, error) {
	bundle := domain.Bundle{Subjects: []domain.Subject{}}
	var errs []error

	if s.Eligibility != nil {
		result, ok, err := s.Eligibility.Last(ctx)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("eligibility: %w", err))
		case ok:
			bundle.Eligibility = &domain.Eligibility{
				Schema:     result.Schema,
				Total:      result.Total,
				Percentage: result.Percentage,
				Grade:      result.Grade,
			}
		}
	}

	if s.Attendance != nil {
		overview, err := s.Attendance.Overview(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("attendance: %w", err))
		}
		for _, subject := range overview.Subjects {
			summary := domain.Subject{
				Name:       subject.Name,
				Percentage: subject.Percentage,
				Conducted:  subject.TotalConducted,
				Attended:   subject.TotalAttended,
				Zone:       subject.Zone,
			}
			if subject.Recovery != nil {
				summary.Recovery = *subject.Recovery
			}
			bundle.Subjects = append(bundle.Subjects, summary)
		}
	}

	if s.Planner != nil {
		board, err := s.Planner.Board(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("planner: %w", err))
		} else {
			bundle.TasksTotal = board.Total
			bundle.TasksDone = board.Done
			bundle.CompletionRate = board.CompletionRate
		}
	}

	if s.Progress != nil {
		dashboard, err := s.Progress.Dashboard(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("progress: %w", err))
		} else {
			bundle.SessionsToday = dashboard.SessionsToday
			bundle.TotalMinutes = dashboard.TotalMinutes
			bundle.CurrentStreak = dashboard.CurrentStreak
		}
	}

	return bundle, errors.Join(errs...)
}
