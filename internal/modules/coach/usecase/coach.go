package usecase

import (
	"context"

	"lockedin/internal/modules/coach/dto"
	coachin "lockedin/internal/modules/coach/port/in"
	"lockedin/internal/modules/coach/service"
)

type Interactor struct {
	svc *service.CoachService
}

func NewInteractor(svc *service.CoachService) coachin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Ask(ctx context.Context, message string) (dto.Reply, error) {
	reply, err := i.svc.Ask(ctx, message)
	if err != nil {
		return dto.Reply{}, err
	}
	return dto.Reply{Text: reply.Text, Fallback: reply.Fallback}, nil
}

func (i *Interactor) Prompt(ctx context.Context, message string) (string, error) {
	return i.svc.Prompt(ctx, message)
}
