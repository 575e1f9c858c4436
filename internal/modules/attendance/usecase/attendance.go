package usecase

import (
	"context"
	"strings"

	"lockedin/internal/modules/attendance/domain"
	"lockedin/internal/modules/attendance/dto"
	attendancein "lockedin/internal/modules/attendance/port/in"
	"lockedin/internal/modules/attendance/service"
)

type Interactor struct {
	svc *service.AttendanceService
}

func NewInteractor(svc *service.AttendanceService) attendancein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Overview(ctx context.Context) (dto.Overview, error) {
	subjects, err := i.svc.Subjects(ctx)
	if err != nil {
		return dto.Overview{}, err
	}
	out := dto.Overview{Threshold: i.svc.Threshold(), Subjects: make([]dto.SubjectView, 0, len(subjects))}
	for _, s := range subjects {
		out.Subjects = append(out.Subjects, i.view(s))
	}
	return out, nil
}

func (i *Interactor) AddSubject(ctx context.Context, name string) (dto.SubjectView, error) {
	subject, err := i.svc.AddSubject(ctx, name)
	if err != nil {
		return dto.SubjectView{}, err
	}
	return i.view(subject), nil
}

func (i *Interactor) DeleteSubject(ctx context.Context, subject string) error {
	return i.svc.DeleteSubject(ctx, subject)
}

func (i *Interactor) AddWeek(ctx context.Context, subject string) (dto.SubjectView, error) {
	edited, err := i.svc.AddWeek(ctx, subject)
	if err != nil {
		return dto.SubjectView{}, err
	}
	return i.view(edited), nil
}

func (i *Interactor) DeleteWeek(ctx context.Context, ref dto.WeekRef) (dto.SubjectView, error) {
	edited, err := i.svc.DeleteWeek(ctx, ref.Subject, ref.Week)
	if err != nil {
		return dto.SubjectView{}, err
	}
	return i.view(edited), nil
}

func (i *Interactor) UpdateWeek(ctx context.Context, input dto.UpdateWeekInput) (dto.SubjectView, error) {
	field, err := domain.ParseField(input.Field)
	if err != nil {
		return dto.SubjectView{}, err
	}
	edited, err := i.svc.UpdateWeek(ctx, input.Subject, input.Week, field, domain.ParseCount(input.Value))
	if err != nil {
		return dto.SubjectView{}, err
	}
	return i.view(edited), nil
}

func (i *Interactor) Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	format := domain.ReportFormat(strings.ToLower(strings.TrimSpace(input.Format)))
	if format == "" || format == "markdown" {
		format = domain.ReportMarkdown
	}
	path, report, err := i.svc.Report(ctx, format)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return dto.ReportOutput{Path: path, Format: string(format), Subjects: len(report.Rows)}, nil
}

func (i *Interactor) view(s domain.Subject) dto.SubjectView {
	stats := domain.ComputeStats(s)
	risk := domain.ClassifyRisk(stats.Percentage, i.svc.Threshold())
	out := dto.SubjectView{
		ID:             s.ID,
		Name:           s.Name,
		Weeks:          make([]dto.WeekView, 0, len(s.Weeks)),
		TotalConducted: stats.TotalConducted,
		TotalAttended:  stats.TotalAttended,
		Percentage:     stats.Percentage,
		Zone:           string(risk.Zone),
		Message:        risk.Message,
		Recovery:       domain.ComputeRecovery(stats.TotalConducted, stats.TotalAttended, i.svc.Threshold()),
	}
	for n, w := range s.Weeks {
		out.Weeks = append(out.Weeks, dto.WeekView{Number: n + 1, ID: w.ID, Conducted: w.Conducted, Attended: w.Attended})
	}
	return out
}
