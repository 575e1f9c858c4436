package in

import (
	"context"

	"lockedin/internal/modules/attendance/dto"
)

type Usecase interface {
	Overview(ctx context.Context) (dto.Overview, error)
	AddSubject(ctx context.Context, name string) (dto.SubjectView, error)
	DeleteSubject(ctx context.Context, subject string) error
	AddWeek(ctx context.Context, subject string) (dto.SubjectView, error)
	DeleteWeek(ctx context.Context, ref dto.WeekRef) (dto.SubjectView, error)
	UpdateWeek(ctx context.Context, input dto.UpdateWeekInput) (dto.SubjectView, error)
	Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
}
