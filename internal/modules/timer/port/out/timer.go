package out

import (
	"context"
	"time"

	"lockedin/internal/modules/timer/domain"
)

// StateStore saves conditionally. SaveState fails with apperrors.ErrConflict
// when the stored revision moved past state.Revision, and otherwise returns
// the state as stored with its revision bumped.
type StateStore interface {
	LoadState(ctx context.Context) (domain.State, error)
	SaveState(ctx context.Context, state domain.State) (domain.State, error)
}

// TickSource is a best-effort periodic pulse. At most one pulse loop is
// active; Stop must not block on the loop because fn may call it.
type TickSource interface {
	Start(interval time.Duration, fn func())
	Stop()
}

// CompletionRecorder applies the gamification side effects of a finished
// session.
type CompletionRecorder interface {
	RecordCompletion(ctx context.Context, completion domain.Completion) error
}

type SessionNoteStore interface {
	Save(ctx context.Context, completion domain.Completion) (string, error)
}

type Notifier interface {
	Ready(ctx context.Context) error
	Notify(ctx context.Context, title, body string) error
}
