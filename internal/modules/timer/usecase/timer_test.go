package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	timerout "lockedin/internal/modules/timer/adapter/out"
	"lockedin/internal/modules/timer/domain"
	"lockedin/internal/modules/timer/service"
	"lockedin/internal/modules/timer/usecase"
	"lockedin/internal/platform/kvstore"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestSnapshotFormatsRemainingTime(t *testing.T) {
	t.Parallel()
	clk := fixedClock{now: time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)}
	svc := service.NewTimerService(service.Dependencies{Clock: clk, Store: timerout.NewKVStateStore(kvstore.NewMemoryStore()), DefaultMinutes: 25})
	uc := usecase.NewInteractor(svc, clk, []int{25, 50, 5, 2})

	snap, err := uc.Resync(context.Background())
	if err != nil {
		t.Fatalf("resync: %v", err)
	}
	if snap.Clock != "25:00" || snap.Status != "ready" || snap.Label != "Ready to Focus" {
		t.Fatalf("unexpected idle snapshot: %+v", snap)
	}
	started, err := uc.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !started.Running || started.Progress != 0 {
		t.Fatalf("unexpected started snapshot: %+v", started)
	}
	if got := uc.Presets(); len(got) != 4 || got[1] != 50 {
		t.Fatalf("unexpected presets: %v", got)
	}
}

func TestResetValidatesMinutes(t *testing.T) {
	t.Parallel()
	clk := fixedClock{now: time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)}
	svc := service.NewTimerService(service.Dependencies{Clock: clk, DefaultMinutes: 25})
	uc := usecase.NewInteractor(svc, clk, nil)

	if _, err := uc.Reset(context.Background(), 241); !errors.Is(err, domain.ErrInvalidPreset) {
		t.Fatalf("expected invalid preset, got %v", err)
	}
	snap, err := uc.Reset(context.Background(), 50)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if snap.RemainingSeconds != 3000 || snap.Clock != "50:00" {
		t.Fatalf("expected 50:00, got %+v", snap)
	}
	snap, err = uc.Reset(context.Background(), 0)
	if err != nil {
		t.Fatalf("reset to preset: %v", err)
	}
	if snap.RemainingSeconds != 1500 {
		t.Fatalf("expected preset length, got %d", snap.RemainingSeconds)
	}
}

func TestChangePresetWhileRunningWarns(t *testing.T) {
	t.Parallel()
	clk := fixedClock{now: time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)}
	svc := service.NewTimerService(service.Dependencies{Clock: clk, DefaultMinutes: 25})
	uc := usecase.NewInteractor(svc, clk, nil)

	if _, err := uc.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	snap, err := uc.ChangePreset(context.Background(), 5)
	if err != nil {
		t.Fatalf("change preset: %v", err)
	}
	if snap.Warning == "" || snap.PresetMinutes != 25 {
		t.Fatalf("expected warning and unchanged preset, got %+v", snap)
	}
}

func TestWatchDeliversLatestSnapshot(t *testing.T) {
	t.Parallel()
	clk := fixedClock{now: time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)}
	svc := service.NewTimerService(service.Dependencies{Clock: clk, DefaultMinutes: 25})
	uc := usecase.NewInteractor(svc, clk, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := uc.Watch(ctx)

	if _, err := uc.Reset(context.Background(), 5); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := uc.Reset(context.Background(), 50); err != nil {
		t.Fatalf("reset: %v", err)
	}
	select {
	case snap := <-updates:
		if snap.RemainingSeconds != 3000 {
			t.Fatalf("expected newest snapshot, got %d", snap.RemainingSeconds)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected a snapshot")
	}
}

func TestWatchClosesWhenContextEnds(t *testing.T) {
	t.Parallel()
	clk := fixedClock{now: time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)}
	svc := service.NewTimerService(service.Dependencies{Clock: clk, DefaultMinutes: 25})
	uc := usecase.NewInteractor(svc, clk, nil)

	ctx, cancel := context.WithCancel(context.Background())
	updates := uc.Watch(ctx)
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				// later operations must not panic on the closed channel
				if _, err := uc.Reset(context.Background(), 5); err != nil {
					t.Fatalf("reset after close: %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatalf("expected watch channel closed after cancel")
		}
		if _, err := uc.Reset(context.Background(), 50); err != nil {
			t.Fatalf("reset: %v", err)
		}
	}
}
