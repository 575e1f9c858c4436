package out

import (
	"context"

	"lockedin/internal/modules/coach/domain"
)

type Advisor interface {
	Advise(ctx context.Context, request domain.Request) (string, error)
}

// ContextSource gathers the bundle. A non-nil error with a usable bundle
// means some sections could not be read.
type ContextSource interface {
	Collect(ctx context.Context) (domain.Bundle, error)
}
