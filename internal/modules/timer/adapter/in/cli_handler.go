package in

import (
	"context"

	timerdto "lockedin/internal/modules/timer/dto"
	timerin "lockedin/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (timerdto.Snapshot, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (timerdto.Snapshot, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Reset(ctx context.Context, minutes int) (timerdto.Snapshot, error) {
	return h.usecase.Reset(ctx, minutes)
}

func (h CLIHandler) Preset(ctx context.Context, minutes int) (timerdto.Snapshot, error) {
	return h.usecase.ChangePreset(ctx, minutes)
}

// Status reloads the shared state, finishing a session whose deadline passed
// while no surface was running.
func (h CLIHandler) Status(ctx context.Context) (timerdto.Snapshot, error) {
	return h.usecase.Resync(ctx)
}

func (h CLIHandler) Watch(ctx context.Context) <-chan timerdto.Snapshot {
	return h.usecase.Watch(ctx)
}

func (h CLIHandler) Presets() []int {
	return h.usecase.Presets()
}
