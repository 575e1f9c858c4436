package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lockedin/internal/modules/timer/domain"
	timerout "lockedin/internal/modules/timer/port/out"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/kvstore"
)

type KVStateStore struct {
	store kvstore.Store
}

func NewKVStateStore(store kvstore.Store) timerout.StateStore {
	return &KVStateStore{store: store}
}

func (s *KVStateStore) LoadState(ctx context.Context) (domain.State, error) {
	state := domain.State{}
	found, err := kvstore.GetJSON(ctx, s.store, kvstore.KeyTimer, &state)
	if err != nil {
		return domain.State{}, err
	}
	if !found {
		return domain.State{}, apperrors.ErrNotFound
	}
	return state, nil
}

func (s *KVStateStore) SaveState(ctx context.Context, state domain.State) (domain.State, error) {
	old, err := s.store.Get(ctx, kvstore.KeyTimer)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		old = nil
		if state.Revision != 0 {
			return domain.State{}, apperrors.ErrConflict
		}
	case err != nil:
		return domain.State{}, err
	default:
		var stored struct {
			Revision int64 `json:"revision"`
		}
		if err := json.Unmarshal(old, &stored); err != nil {
			return domain.State{}, fmt.Errorf("decode %s: %w", kvstore.KeyTimer, err)
		}
		if stored.Revision != state.Revision {
			return domain.State{}, apperrors.ErrConflict
		}
	}

	state.Revision++
	raw, err := json.Marshal(state)
	if err != nil {
		return domain.State{}, fmt.Errorf("encode %s: %w", kvstore.KeyTimer, err)
	}
	swapped, err := s.store.CompareAndSwap(ctx, kvstore.KeyTimer, old, raw)
	if err != nil {
		return domain.State{}, err
	}
	if !swapped {
		return domain.State{}, apperrors.ErrConflict
	}
	return state, nil
}
