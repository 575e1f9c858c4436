package in

import (
	"context"

	plannerdto "lockedin/internal/modules/planner/dto"
	plannerin "lockedin/internal/modules/planner/port/in"
)

type CLIHandler struct {
	usecase plannerin.Usecase
}

func NewCLIHandler(usecase plannerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Board(ctx context.Context) (plannerdto.Board, error) {
	return h.usecase.Board(ctx)
}

func (h CLIHandler) AddTask(ctx context.Context, text, due, priority string) (plannerdto.TaskOutcome, error) {
	return h.usecase.AddTask(ctx, plannerdto.AddTaskInput{Text: text, Due: due, Priority: priority})
}

func (h CLIHandler) EditTask(ctx context.Context, ref, text string) (plannerdto.TaskView, error) {
	return h.usecase.EditTask(ctx, ref, text)
}

func (h CLIHandler) Done(ctx context.Context, ref string) (plannerdto.TaskOutcome, error) {
	return h.usecase.SetTaskDone(ctx, ref, true)
}

func (h CLIHandler) Undo(ctx context.Context, ref string) (plannerdto.TaskOutcome, error) {
	return h.usecase.SetTaskDone(ctx, ref, false)
}

func (h CLIHandler) DeleteTask(ctx context.Context, ref string) error {
	return h.usecase.DeleteTask(ctx, ref)
}

func (h CLIHandler) ClearCompleted(ctx context.Context) (int, error) {
	return h.usecase.ClearCompleted(ctx)
}

func (h CLIHandler) Exams(ctx context.Context) ([]plannerdto.ExamView, error) {
	return h.usecase.Exams(ctx)
}

func (h CLIHandler) AddExam(ctx context.Context, name, date string) (plannerdto.ExamView, error) {
	return h.usecase.AddExam(ctx, name, date)
}

func (h CLIHandler) DeleteExam(ctx context.Context, ref string) error {
	return h.usecase.DeleteExam(ctx, ref)
}

func (h CLIHandler) Labs(ctx context.Context) (plannerdto.LabBoard, error) {
	return h.usecase.Labs(ctx)
}

func (h CLIHandler) AddLab(ctx context.Context, name, due, link, status string) (plannerdto.LabView, error) {
	return h.usecase.AddLab(ctx, plannerdto.AddLabInput{Name: name, Due: due, Link: link, Status: status})
}

func (h CLIHandler) SetLabStatus(ctx context.Context, ref, status string) (plannerdto.LabView, error) {
	return h.usecase.SetLabStatus(ctx, ref, status)
}

func (h CLIHandler) DeleteLab(ctx context.Context, ref string) error {
	return h.usecase.DeleteLab(ctx, ref)
}
