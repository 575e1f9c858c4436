package out

import (
	"context"

	"lockedin/internal/modules/planner/domain"
	plannerout "lockedin/internal/modules/planner/port/out"
	"lockedin/internal/platform/kvstore"
)

type KVStore struct {
	store kvstore.Store
}

func NewKVStore(store kvstore.Store) plannerout.Store {
	return &KVStore{store: store}
}

func (s *KVStore) LoadTasks(ctx context.Context) (domain.Tasks, error) {
	tasks := domain.Tasks{}
	if _, err := kvstore.GetJSON(ctx, s.store, kvstore.KeyTasks, &tasks); err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].Priority == "" {
			tasks[i].Priority = domain.PriorityNormal
		}
	}
	return tasks, nil
}

func (s *KVStore) SaveTasks(ctx context.Context, tasks domain.Tasks) error {
	return kvstore.PutJSON(ctx, s.store, kvstore.KeyTasks, nonNil(tasks))
}

func (s *KVStore) LoadExams(ctx context.Context) (domain.Exams, error) {
	exams := domain.Exams{}
	if _, err := kvstore.GetJSON(ctx, s.store, kvstore.KeyExams, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (s *KVStore) SaveExams(ctx context.Context, exams domain.Exams) error {
	return kvstore.PutJSON(ctx, s.store, kvstore.KeyExams, nonNil(exams))
}

func (s *KVStore) LoadLabs(ctx context.Context) (domain.LabItems, error) {
	labs := domain.LabItems{}
	if _, err := kvstore.GetJSON(ctx, s.store, kvstore.KeyLabItems, &labs); err != nil {
		return nil, err
	}
	for i := range labs {
		if labs[i].Status == "" {
			labs[i].Status = domain.LabPending
		}
	}
	return labs, nil
}

func (s *KVStore) SaveLabs(ctx context.Context, labs domain.LabItems) error {
	return kvstore.PutJSON(ctx, s.store, kvstore.KeyLabItems, nonNil(labs))
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
