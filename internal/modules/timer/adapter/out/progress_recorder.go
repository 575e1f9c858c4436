package out

import (
	"context"

	progressdto "lockedin/internal/modules/progress/dto"
	progressin "lockedin/internal/modules/progress/port/in"
	"lockedin/internal/modules/timer/domain"
	timerout "lockedin/internal/modules/timer/port/out"
)

// ProgressRecorder credits finished sessions to the study ledger and XP.
type ProgressRecorder struct {
	progress progressin.Usecase
}

func NewProgressRecorder(progress progressin.Usecase) timerout.CompletionRecorder {
	return &ProgressRecorder{progress: progress}
}

func (r *ProgressRecorder) RecordCompletion(ctx context.Context, completion domain.Completion) error {
	_, err := r.progress.RecordSession(ctx, progressdto.SessionInput{
		Minutes:     completion.Minutes,
		CompletedAt: completion.CompletedAt,
		Consecutive: completion.ConsecutiveSessions,
	})
	return err
}
