package usecase

import (
	"context"

	"lockedin/internal/modules/eligibility/domain"
	"lockedin/internal/modules/eligibility/dto"
	eligibilityin "lockedin/internal/modules/eligibility/port/in"
	"lockedin/internal/modules/eligibility/service"
)

type Interactor struct {
	svc *service.EligibilityService
}

func NewInteractor(svc *service.EligibilityService) eligibilityin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Evaluate(ctx context.Context, input dto.EvaluateInput) (dto.Result, error) {
	schema, err := domain.ParseSchema(input.Schema)
	if err != nil {
		return dto.Result{}, err
	}
	result, err := i.svc.Evaluate(ctx, schema, domain.Marks{
		IA:        input.IA,
		End:       input.End,
		Lab:       input.Lab,
		Practical: input.Practical,
	})
	if err != nil {
		return dto.Result{}, err
	}
	return toDTO(result), nil
}

func (i *Interactor) Last(ctx context.Context) (dto.Result, bool, error) {
	result, ok, err := i.svc.Last(ctx)
	if err != nil || !ok {
		return dto.Result{}, ok, err
	}
	return toDTO(result), true, nil
}

func toDTO(r domain.Result) dto.Result {
	return dto.Result{
		Schema:      int(r.Schema),
		Total:       r.Total,
		Percentage:  r.Percentage,
		Grade:       r.Grade.Label,
		GradePoints: r.Grade.GradePoints,
		EvaluatedAt: r.EvaluatedAt,
	}
}
