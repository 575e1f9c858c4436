// Package kvstore persists JSON documents under fixed keys. Every module owns
// its own keys; the store itself knows nothing about their shape.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	apperrors "lockedin/internal/platform/errors"
)

// Keys shared by the module adapters.
const (
	KeyAttendance  = "attendance_data"
	KeyTimer       = "pomodoro_state"
	KeyStudyLedger = "study_history"
	KeyProfile     = "user_profile"
	KeyBadges      = "unlocked_badges"
	KeyQuests      = "daily_quests"
	KeyStats       = "progress_stats"
	KeyTasks       = "planner_tasks"
	KeyExams       = "exams"
	KeyLabItems    = "labmanual_items"
	KeyEligibility = "eligibility_result"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// CompareAndSwap writes value only while key still holds old. A nil old
	// means the key must be absent. It reports whether the write happened.
	CompareAndSwap(ctx context.Context, key string, old, value []byte) (bool, error)
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// GetJSON decodes key into out. It reports false when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, out any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func PutJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}

const BackupVersion = 1

type Backup struct {
	Version    int                        `json:"version"`
	ExportedAt time.Time                  `json:"exported_at"`
	Entries    map[string]json.RawMessage `json:"entries"`
}

// Export snapshots every key in the store.
func Export(ctx context.Context, s Store, now time.Time) (Backup, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return Backup{}, err
	}
	sort.Strings(keys)
	out := Backup{Version: BackupVersion, ExportedAt: now, Entries: make(map[string]json.RawMessage, len(keys))}
	for _, key := range keys {
		raw, err := s.Get(ctx, key)
		if err != nil {
			return Backup{}, err
		}
		if !json.Valid(raw) {
			return Backup{}, fmt.Errorf("key %s holds invalid json", key)
		}
		out.Entries[key] = json.RawMessage(raw)
	}
	return out, nil
}

// Import writes every entry of b, replacing existing values.
func Import(ctx context.Context, s Store, b Backup) (int, error) {
	if b.Version != BackupVersion {
		return 0, fmt.Errorf("%w: unsupported backup version %d", apperrors.ErrInvalidInput, b.Version)
	}
	n := 0
	for key, raw := range b.Entries {
		if !json.Valid(raw) {
			return n, fmt.Errorf("%w: entry %s is not json", apperrors.ErrInvalidInput, key)
		}
		if err := s.Put(ctx, key, raw); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
