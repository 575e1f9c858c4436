package in

import (
	"context"

	progressdto "lockedin/internal/modules/progress/dto"
	progressin "lockedin/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Dashboard(ctx context.Context) (progressdto.Dashboard, error) {
	return h.usecase.Dashboard(ctx)
}
