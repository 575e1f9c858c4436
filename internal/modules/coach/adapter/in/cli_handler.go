package in

import (
	"context"

	coachdto "lockedin/internal/modules/coach/dto"
	coachin "lockedin/internal/modules/coach/port/in"
)

type CLIHandler struct {
	usecase coachin.Usecase
}

func NewCLIHandler(usecase coachin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Ask(ctx context.Context, message string) (coachdto.Reply, error) {
	return h.usecase.Ask(ctx, message)
}

func (h CLIHandler) Prompt(ctx context.Context, message string) (string, error) {
	return h.usecase.Prompt(ctx, message)
}
