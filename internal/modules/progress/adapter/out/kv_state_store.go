package out

import (
	"context"

	"lockedin/internal/modules/progress/domain"
	progressout "lockedin/internal/modules/progress/port/out"
	"lockedin/internal/platform/kvstore"
)

// KVStateStore keeps each part of the progress state under its own key so
// backups stay readable and parts can be reset independently.
type KVStateStore struct {
	store kvstore.Store
}

func NewKVStateStore(store kvstore.Store) progressout.StateStore {
	return &KVStateStore{store: store}
}

func (s *KVStateStore) Load(ctx context.Context) (domain.State, error) {
	state := domain.NewState()
	parts := []struct {
		key string
		out any
	}{
		{kvstore.KeyProfile, &state.Profile},
		{kvstore.KeyStudyLedger, &state.Ledger},
		{kvstore.KeyBadges, &state.Badges},
		{kvstore.KeyQuests, &state.Quests},
		{kvstore.KeyStats, &state.Stats},
	}
	for _, part := range parts {
		if _, err := kvstore.GetJSON(ctx, s.store, part.key, part.out); err != nil {
			return domain.State{}, err
		}
	}
	return state.Normalize(), nil
}

func (s *KVStateStore) Save(ctx context.Context, state domain.State) error {
	parts := map[string]any{
		kvstore.KeyProfile:     state.Profile,
		kvstore.KeyStudyLedger: state.Ledger,
		kvstore.KeyBadges:      state.Badges,
		kvstore.KeyQuests:      state.Quests,
		kvstore.KeyStats:       state.Stats,
	}
	for key, value := range parts {
		if err := kvstore.PutJSON(ctx, s.store, key, value); err != nil {
			return err
		}
	}
	return nil
}
