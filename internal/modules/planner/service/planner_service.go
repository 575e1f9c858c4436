package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"lockedin/internal/modules/planner/domain"
	plannerout "lockedin/internal/modules/planner/port/out"
	"lockedin/internal/platform/clock"
	"lockedin/internal/platform/dates"
	"lockedin/internal/platform/id"
	"lockedin/internal/platform/logger"
)

type PlannerService struct {
	mu       sync.Mutex
	clock    clock.Clock
	idGen    id.Generator
	store    plannerout.Store
	progress plannerout.Progress
	dates    *dates.Parser
	log      *zap.Logger
}

func NewPlannerService(clk clock.Clock, idGen id.Generator, store plannerout.Store, progress plannerout.Progress, log *zap.Logger) *PlannerService {
	return &PlannerService{
		clock:    clk,
		idGen:    idGen,
		store:    store,
		progress: progress,
		dates:    dates.NewParser(),
		log:      logger.OrNop(log).Named("planner"),
	}
}

func (s *PlannerService) Now() time.Time {
	return s.clock.Now()
}

func (s *PlannerService) Tasks(ctx context.Context) (domain.Tasks, error) {
	return s.store.LoadTasks(ctx)
}

// TaskChange is a stored task change. ProgressErr reports a progress update
// that failed after the change was saved.
type TaskChange struct {
	Task        domain.Task
	Reward      domain.Reward
	ProgressErr error
}

// AddTask stores a new task. A dated task also re-checks planning badges.
func (s *PlannerService) AddTask(ctx context.Context, text, due string, priority domain.Priority) (TaskChange, error) {
	day, err := s.parseOptionalDate(due)
	if err != nil {
		return TaskChange{}, err
	}
	var change TaskChange
	var dated int
	err = s.updateTasks(ctx, func(ts domain.Tasks) (domain.Tasks, error) {
		next, added, err := ts.Add(s.idGen.New(), text, day, priority, s.clock.Now())
		change.Task = added
		dated = next.DatedCount()
		return next, err
	})
	if err != nil {
		return TaskChange{}, err
	}
	s.log.Info("task_added", zap.String("task_id", change.Task.ID), zap.Bool("dated", change.Task.Dated()))
	if change.Task.Dated() && s.progress != nil {
		change.Reward, change.ProgressErr = s.progress.DeadlinesPlanned(ctx, dated)
	}
	return change, nil
}

func (s *PlannerService) EditTask(ctx context.Context, ref, text string) (domain.Task, error) {
	var edited domain.Task
	err := s.updateTasks(ctx, func(ts domain.Tasks) (domain.Tasks, error) {
		task, err := ts.Resolve(ref)
		if err != nil {
			return ts, err
		}
		next, updated, err := ts.Edit(task.ID, text)
		edited = updated
		return next, err
	})
	return edited, err
}

// SetTaskDone toggles a task. Completing an open task awards task XP.
func (s *PlannerService) SetTaskDone(ctx context.Context, ref string, done bool) (TaskChange, error) {
	var change TaskChange
	var completed bool
	var dated int
	now := s.clock.Now()
	err := s.updateTasks(ctx, func(ts domain.Tasks) (domain.Tasks, error) {
		found, err := ts.Resolve(ref)
		if err != nil {
			return ts, err
		}
		next, updated, transitioned, err := ts.SetDone(found.ID, done, now)
		change.Task, completed, dated = updated, transitioned, next.DatedCount()
		return next, err
	})
	if err != nil {
		return TaskChange{}, err
	}
	if completed {
		s.log.Info("task_completed", zap.String("task_id", change.Task.ID))
		if s.progress != nil {
			change.Reward, change.ProgressErr = s.progress.TaskCompleted(ctx, now, dated)
		}
	}
	return change, nil
}

func (s *PlannerService) DeleteTask(ctx context.Context, ref string) error {
	return s.updateTasks(ctx, func(ts domain.Tasks) (domain.Tasks, error) {
		task, err := ts.Resolve(ref)
		if err != nil {
			return ts, err
		}
		return ts.Remove(task.ID)
	})
}

func (s *PlannerService) ClearCompleted(ctx context.Context) (int, error) {
	var removed int
	err := s.updateTasks(ctx, func(ts domain.Tasks) (domain.Tasks, error) {
		next, n := ts.ClearCompleted()
		removed = n
		return next, nil
	})
	return removed, err
}

func (s *PlannerService) Exams(ctx context.Context) (domain.Exams, error) {
	exams, err := s.store.LoadExams(ctx)
	if err != nil {
		return nil, err
	}
	return exams.Sorted(), nil
}

func (s *PlannerService) AddExam(ctx context.Context, name, date string) (domain.Exam, error) {
	if strings.TrimSpace(date) == "" {
		return domain.Exam{}, domain.ErrMissingDate
	}
	day, err := s.parseOptionalDate(date)
	if err != nil {
		return domain.Exam{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exams, err := s.store.LoadExams(ctx)
	if err != nil {
		return domain.Exam{}, err
	}
	next, exam, err := exams.Add(s.idGen.New(), name, day)
	if err != nil {
		return domain.Exam{}, err
	}
	if err := s.store.SaveExams(ctx, next); err != nil {
		return domain.Exam{}, fmt.Errorf("save exams: %w", err)
	}
	return exam, nil
}

func (s *PlannerService) DeleteExam(ctx context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exams, err := s.store.LoadExams(ctx)
	if err != nil {
		return err
	}
	exam, err := exams.Resolve(ref)
	if err != nil {
		return err
	}
	next, err := exams.Remove(exam.ID)
	if err != nil {
		return err
	}
	return s.store.SaveExams(ctx, next)
}

func (s *PlannerService) Labs(ctx context.Context) (domain.LabItems, error) {
	return s.store.LoadLabs(ctx)
}

func (s *PlannerService) AddLab(ctx context.Context, name, due, link string, status domain.LabStatus) (domain.LabItem, error) {
	day, err := s.parseOptionalDate(due)
	if err != nil {
		return domain.LabItem{}, err
	}
	var added domain.LabItem
	err = s.updateLabs(ctx, func(ls domain.LabItems) (domain.LabItems, error) {
		next, item, err := ls.Add(s.idGen.New(), name, day, link, status)
		added = item
		return next, err
	})
	return added, err
}

func (s *PlannerService) SetLabStatus(ctx context.Context, ref string, status domain.LabStatus) (domain.LabItem, error) {
	var updated domain.LabItem
	err := s.updateLabs(ctx, func(ls domain.LabItems) (domain.LabItems, error) {
		item, err := ls.Resolve(ref)
		if err != nil {
			return ls, err
		}
		next, changed, err := ls.SetStatus(item.ID, status)
		updated = changed
		return next, err
	})
	return updated, err
}

func (s *PlannerService) DeleteLab(ctx context.Context, ref string) error {
	return s.updateLabs(ctx, func(ls domain.LabItems) (domain.LabItems, error) {
		item, err := ls.Resolve(ref)
		if err != nil {
			return ls, err
		}
		return ls.Remove(item.ID)
	})
}

func (s *PlannerService) parseOptionalDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	day, err := s.dates.Parse(raw, s.clock.Now())
	if err != nil {
		return time.Time{}, err
	}
	return dates.StartOfDay(day), nil
}

func (s *PlannerService) updateTasks(ctx context.Context, fn func(domain.Tasks) (domain.Tasks, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, err := s.store.LoadTasks(ctx)
	if err != nil {
		return err
	}
	next, err := fn(tasks)
	if err != nil {
		return err
	}
	if err := s.store.SaveTasks(ctx, next); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (s *PlannerService) updateLabs(ctx context.Context, fn func(domain.LabItems) (domain.LabItems, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	labs, err := s.store.LoadLabs(ctx)
	if err != nil {
		return err
	}
	next, err := fn(labs)
	if err != nil {
		return err
	}
	if err := s.store.SaveLabs(ctx, next); err != nil {
		return fmt.Errorf("save lab items: %w", err)
	}
	return nil
}
