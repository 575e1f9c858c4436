package in

import (
	"context"

	"lockedin/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.Snapshot, error)
	Pause(ctx context.Context) (dto.Snapshot, error)
	Reset(ctx context.Context, minutes int) (dto.Snapshot, error)
	Tick(ctx context.Context) (dto.Snapshot, error)
	ChangePreset(ctx context.Context, minutes int) (dto.Snapshot, error)
	// Resync recomputes remaining time after the host was suspended or
	// another surface changed the timer.
	Resync(ctx context.Context) (dto.Snapshot, error)
	Presets() []int
	// Watch streams snapshots until ctx is cancelled. Slow readers only see
	// the latest snapshot.
	Watch(ctx context.Context) <-chan dto.Snapshot
}
