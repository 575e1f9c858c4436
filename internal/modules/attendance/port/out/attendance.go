package out

import (
	"context"

	"lockedin/internal/modules/attendance/domain"
)

type Store interface {
	Load(ctx context.Context) (domain.Collection, error)
	Save(ctx context.Context, subjects domain.Collection) error
}

// ReportWriter renders a report in one format and returns where it went.
type ReportWriter interface {
	Format() domain.ReportFormat
	Write(ctx context.Context, report domain.Report) (string, error)
}
