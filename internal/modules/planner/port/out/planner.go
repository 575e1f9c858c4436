package out

import (
	"context"
	"time"

	"lockedin/internal/modules/planner/domain"
)

type Store interface {
	LoadTasks(ctx context.Context) (domain.Tasks, error)
	SaveTasks(ctx context.Context, tasks domain.Tasks) error
	LoadExams(ctx context.Context) (domain.Exams, error)
	SaveExams(ctx context.Context, exams domain.Exams) error
	LoadLabs(ctx context.Context) (domain.LabItems, error)
	SaveLabs(ctx context.Context, labs domain.LabItems) error
}

// Progress credits planner activity to the XP and badge tracker.
type Progress interface {
	TaskCompleted(ctx context.Context, at time.Time, datedTasks int) (domain.Reward, error)
	DeadlinesPlanned(ctx context.Context, datedTasks int) (domain.Reward, error)
}
