package out

import (
	"context"
	"time"

	"lockedin/internal/modules/planner/domain"
	plannerout "lockedin/internal/modules/planner/port/out"
	progressdto "lockedin/internal/modules/progress/dto"
	progressin "lockedin/internal/modules/progress/port/in"
)

type ProgressBridge struct {
	progress progressin.Usecase
}

func NewProgressBridge(progress progressin.Usecase) plannerout.Progress {
	return &ProgressBridge{progress: progress}
}

func (b *ProgressBridge) TaskCompleted(ctx context.Context, at time.Time, datedTasks int) (domain.Reward, error) {
	out, err := b.progress.RecordTaskCompleted(ctx, progressdto.TaskInput{CompletedAt: at, DatedTasks: datedTasks})
	if err != nil {
		return domain.Reward{}, err
	}
	return reward(out), nil
}

func (b *ProgressBridge) DeadlinesPlanned(ctx context.Context, datedTasks int) (domain.Reward, error) {
	out, err := b.progress.RecordPlanning(ctx, datedTasks)
	if err != nil {
		return domain.Reward{}, err
	}
	return reward(out), nil
}

func reward(out progressdto.Outcome) domain.Reward {
	r := domain.Reward{XP: out.XPGained, LeveledUp: out.LeveledUp, Level: out.Level}
	for _, b := range out.NewBadges {
		r.Badges = append(r.Badges, b.Name)
	}
	return r
}
