package in

import (
	"context"

	attendancedto "lockedin/internal/modules/attendance/dto"
	attendancein "lockedin/internal/modules/attendance/port/in"
)

type CLIHandler struct {
	usecase attendancein.Usecase
}

func NewCLIHandler(usecase attendancein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) (attendancedto.Overview, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) AddSubject(ctx context.Context, name string) (attendancedto.SubjectView, error) {
	return h.usecase.AddSubject(ctx, name)
}

func (h CLIHandler) DeleteSubject(ctx context.Context, subject string) error {
	return h.usecase.DeleteSubject(ctx, subject)
}

func (h CLIHandler) AddWeek(ctx context.Context, subject string) (attendancedto.SubjectView, error) {
	return h.usecase.AddWeek(ctx, subject)
}

func (h CLIHandler) DeleteWeek(ctx context.Context, subject string, week int) (attendancedto.SubjectView, error) {
	return h.usecase.DeleteWeek(ctx, attendancedto.WeekRef{Subject: subject, Week: week})
}

func (h CLIHandler) SetWeek(ctx context.Context, subject string, week int, field, value string) (attendancedto.SubjectView, error) {
	return h.usecase.UpdateWeek(ctx, attendancedto.UpdateWeekInput{
		WeekRef: attendancedto.WeekRef{Subject: subject, Week: week},
		Field:   field,
		Value:   value,
	})
}

func (h CLIHandler) Report(ctx context.Context, format string) (attendancedto.ReportOutput, error) {
	return h.usecase.Report(ctx, attendancedto.ReportInput{Format: format})
}
