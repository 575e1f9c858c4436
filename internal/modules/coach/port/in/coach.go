package in

import (
	"context"

	"lockedin/internal/modules/coach/dto"
)

type Usecase interface {
	Ask(ctx context.Context, message string) (dto.Reply, error)
	// Prompt renders what Ask would send without contacting the coach.
	Prompt(ctx context.Context, message string) (string, error)
}
