package usecase

import (
	"context"

	"lockedin/internal/modules/planner/domain"
	"lockedin/internal/modules/planner/dto"
	plannerin "lockedin/internal/modules/planner/port/in"
	"lockedin/internal/modules/planner/service"
)

const pendingLabLimit = 3

type Interactor struct {
	svc *service.PlannerService
}

func NewInteractor(svc *service.PlannerService) plannerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Board(ctx context.Context) (dto.Board, error) {
	tasks, err := i.svc.Tasks(ctx)
	if err != nil {
		return dto.Board{}, err
	}
	out := dto.Board{Total: len(tasks), Done: tasks.DoneCount(), CompletionRate: tasks.CompletionRate()}
	positions := map[string]int{}
	for n, t := range tasks.Sorted() {
		view := i.taskView(t, n+1)
		positions[t.ID] = view.Position
		out.Tasks = append(out.Tasks, view)
	}
	for _, t := range tasks.Upcoming(domain.UpcomingLimit) {
		out.Upcoming = append(out.Upcoming, i.taskView(t, positions[t.ID]))
	}
	return out, nil
}

func (i *Interactor) AddTask(ctx context.Context, input dto.AddTaskInput) (dto.TaskOutcome, error) {
	priority, err := domain.ParsePriority(input.Priority)
	if err != nil {
		return dto.TaskOutcome{}, err
	}
	change, err := i.svc.AddTask(ctx, input.Text, input.Due, priority)
	if err != nil {
		return dto.TaskOutcome{}, err
	}
	return i.outcome(change), nil
}

func (i *Interactor) EditTask(ctx context.Context, ref, text string) (dto.TaskView, error) {
	task, err := i.svc.EditTask(ctx, ref, text)
	if err != nil {
		return dto.TaskView{}, err
	}
	return i.taskView(task, 0), nil
}

func (i *Interactor) SetTaskDone(ctx context.Context, ref string, done bool) (dto.TaskOutcome, error) {
	change, err := i.svc.SetTaskDone(ctx, ref, done)
	if err != nil {
		return dto.TaskOutcome{}, err
	}
	return i.outcome(change), nil
}

func (i *Interactor) DeleteTask(ctx context.Context, ref string) error {
	return i.svc.DeleteTask(ctx, ref)
}

func (i *Interactor) ClearCompleted(ctx context.Context) (int, error) {
	return i.svc.ClearCompleted(ctx)
}

func (i *Interactor) Exams(ctx context.Context) ([]dto.ExamView, error) {
	exams, err := i.svc.Exams(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExamView, 0, len(exams))
	for n, e := range exams {
		out = append(out, i.examView(e, n+1))
	}
	return out, nil
}

func (i *Interactor) AddExam(ctx context.Context, name, date string) (dto.ExamView, error) {
	exam, err := i.svc.AddExam(ctx, name, date)
	if err != nil {
		return dto.ExamView{}, err
	}
	return i.examView(exam, 0), nil
}

func (i *Interactor) DeleteExam(ctx context.Context, ref string) error {
	return i.svc.DeleteExam(ctx, ref)
}

func (i *Interactor) Labs(ctx context.Context) (dto.LabBoard, error) {
	labs, err := i.svc.Labs(ctx)
	if err != nil {
		return dto.LabBoard{}, err
	}
	progress := labs.Progress()
	out := dto.LabBoard{Total: progress.Total, Completed: progress.Completed, Percent: progress.Percent}
	positions := map[string]int{}
	for n, l := range labs {
		positions[l.ID] = n + 1
		out.Items = append(out.Items, labView(l, n+1))
	}
	for _, l := range labs.Pending(pendingLabLimit) {
		out.Pending = append(out.Pending, labView(l, positions[l.ID]))
	}
	return out, nil
}

func (i *Interactor) AddLab(ctx context.Context, input dto.AddLabInput) (dto.LabView, error) {
	status, err := domain.ParseLabStatus(input.Status)
	if err != nil {
		return dto.LabView{}, err
	}
	item, err := i.svc.AddLab(ctx, input.Name, input.Due, input.Link, status)
	if err != nil {
		return dto.LabView{}, err
	}
	return labView(item, 0), nil
}

func (i *Interactor) SetLabStatus(ctx context.Context, ref, status string) (dto.LabView, error) {
	var parsed domain.LabStatus
	if status != "" {
		var err error
		if parsed, err = domain.ParseLabStatus(status); err != nil {
			return dto.LabView{}, err
		}
	}
	item, err := i.svc.SetLabStatus(ctx, ref, parsed)
	if err != nil {
		return dto.LabView{}, err
	}
	return labView(item, 0), nil
}

func (i *Interactor) DeleteLab(ctx context.Context, ref string) error {
	return i.svc.DeleteLab(ctx, ref)
}

func (i *Interactor) outcome(change service.TaskChange) dto.TaskOutcome {
	out := dto.TaskOutcome{
		Task: i.taskView(change.Task, 0),
		Reward: dto.Reward{
			XP:        change.Reward.XP,
			LeveledUp: change.Reward.LeveledUp,
			Level:     change.Reward.Level,
			Badges:    change.Reward.Badges,
		},
	}
	if change.ProgressErr != nil {
		out.Warning = "task saved, but progress could not be updated"
	}
	return out
}

func (i *Interactor) taskView(t domain.Task, position int) dto.TaskView {
	view := dto.TaskView{
		Position: position,
		ID:       t.ID,
		Text:     t.Text,
		Due:      t.Due,
		Priority: string(t.Priority),
		Done:     t.Done,
	}
	now := i.svc.Now()
	if day, ok := t.DueIn(now.Location()); ok {
		view.DaysLeft = domain.DaysLeft(day, now)
		view.DueLabel = domain.DeadlineLabel(view.DaysLeft)
	}
	return view
}

func (i *Interactor) examView(e domain.Exam, position int) dto.ExamView {
	view := dto.ExamView{Position: position, ID: e.ID, Name: e.Name, Date: e.Date}
	now := i.svc.Now()
	if day, ok := e.DayIn(now.Location()); ok {
		view.DaysLeft = domain.DaysLeft(day, now)
		view.Label = domain.DeadlineLabel(view.DaysLeft)
	}
	return view
}

func labView(l domain.LabItem, position int) dto.LabView {
	return dto.LabView{
		Position: position,
		ID:       l.ID,
		Name:     l.Name,
		DueDate:  l.DueDate,
		Link:     l.Link,
		Status:   string(l.Status),
	}
}
