package in

import (
	"context"

	eligibilitydto "lockedin/internal/modules/eligibility/dto"
	eligibilityin "lockedin/internal/modules/eligibility/port/in"
)

type CLIHandler struct {
	usecase eligibilityin.Usecase
}

func NewCLIHandler(usecase eligibilityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Evaluate(ctx context.Context, input eligibilitydto.EvaluateInput) (eligibilitydto.Result, error) {
	return h.usecase.Evaluate(ctx, input)
}

func (h CLIHandler) Last(ctx context.Context) (eligibilitydto.Result, bool, error) {
	return h.usecase.Last(ctx)
}
