package out

import (
	"context"

	"lockedin/internal/modules/attendance/domain"
	attendanceout "lockedin/internal/modules/attendance/port/out"
	"lockedin/internal/platform/kvstore"
)

type KVStore struct {
	store kvstore.Store
}

func NewKVStore(store kvstore.Store) attendanceout.Store {
	return &KVStore{store: store}
}

func (s *KVStore) Load(ctx context.Context) (domain.Collection, error) {
	subjects := domain.Collection{}
	if _, err := kvstore.GetJSON(ctx, s.store, kvstore.KeyAttendance, &subjects); err != nil {
		return nil, err
	}
	for i := range subjects {
		if subjects[i].Weeks == nil {
			subjects[i].Weeks = []domain.Week{}
		}
	}
	return subjects, nil
}

func (s *KVStore) Save(ctx context.Context, subjects domain.Collection) error {
	if subjects == nil {
		subjects = domain.Collection{}
	}
	return kvstore.PutJSON(ctx, s.store, kvstore.KeyAttendance, subjects)
}
