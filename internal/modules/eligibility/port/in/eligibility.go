package in

import (
	"context"

	"lockedin/internal/modules/eligibility/dto"
)

type Usecase interface {
	Evaluate(ctx context.Context, input dto.EvaluateInput) (dto.Result, error)
	// Last returns the most recent evaluation; ok is false when there is none.
	Last(ctx context.Context) (result dto.Result, ok bool, err error)
}
