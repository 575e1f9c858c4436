package in

import (
	"context"

	"lockedin/internal/modules/planner/dto"
)

type Usecase interface {
	Board(ctx context.Context) (dto.Board, error)
	AddTask(ctx context.Context, input dto.AddTaskInput) (dto.TaskOutcome, error)
	EditTask(ctx context.Context, ref, text string) (dto.TaskView, error)
	SetTaskDone(ctx context.Context, ref string, done bool) (dto.TaskOutcome, error)
	DeleteTask(ctx context.Context, ref string) error
	ClearCompleted(ctx context.Context) (int, error)

	Exams(ctx context.Context) ([]dto.ExamView, error)
	AddExam(ctx context.Context, name, date string) (dto.ExamView, error)
	DeleteExam(ctx context.Context, ref string) error

	Labs(ctx context.Context) (dto.LabBoard, error)
	AddLab(ctx context.Context, input dto.AddLabInput) (dto.LabView, error)
	// SetLabStatus applies status, or advances the cycle when status is empty.
	SetLabStatus(ctx context.Context, ref, status string) (dto.LabView, error)
	DeleteLab(ctx context.Context, ref string) error
}
