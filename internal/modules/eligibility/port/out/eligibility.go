package out

import (
	"context"

	"lockedin/internal/modules/eligibility/domain"
)

type ResultStore interface {
	Load(ctx context.Context) (domain.Result, bool, error)
	Save(ctx context.Context, result domain.Result) error
}
