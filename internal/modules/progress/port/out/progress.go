package out

import (
	"context"

	"lockedin/internal/modules/progress/domain"
)

type StateStore interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
}

type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
