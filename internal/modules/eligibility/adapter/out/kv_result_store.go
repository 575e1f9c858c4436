package out

import (
	"context"

	"lockedin/internal/modules/eligibility/domain"
	eligibilityout "lockedin/internal/modules/eligibility/port/out"
	"lockedin/internal/platform/kvstore"
)

type KVResultStore struct {
	store kvstore.Store
}

func NewKVResultStore(store kvstore.Store) eligibilityout.ResultStore {
	return &KVResultStore{store: store}
}

func (s *KVResultStore) Load(ctx context.Context) (domain.Result, bool, error) {
	result := domain.Result{}
	found, err := kvstore.GetJSON(ctx, s.store, kvstore.KeyEligibility, &result)
	return result, found, err
}

func (s *KVResultStore) Save(ctx context.Context, result domain.Result) error {
	return kvstore.PutJSON(ctx, s.store, kvstore.KeyEligibility, result)
}
