package in

import (
	"context"

	"lockedin/internal/modules/progress/dto"
)

type Usecase interface {
	RecordSession(ctx context.Context, input dto.SessionInput) (dto.Outcome, error)
	RecordTaskCompleted(ctx context.Context, input dto.TaskInput) (dto.Outcome, error)
	// RecordPlanning re-evaluates planning badges after deadlines change.
	RecordPlanning(ctx context.Context, datedTasks int) (dto.Outcome, error)
	Dashboard(ctx context.Context) (dto.Dashboard, error)
}
