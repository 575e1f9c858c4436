package service

import (
	"context"
	"fmt"

	"lockedin/internal/modules/eligibility/domain"
	eligibilityout "lockedin/internal/modules/eligibility/port/out"
	"lockedin/internal/platform/clock"
)

type EligibilityService struct {
	clock clock.Clock
	store eligibilityout.ResultStore
}

func NewEligibilityService(clk clock.Clock, store eligibilityout.ResultStore) *EligibilityService {
	return &EligibilityService{clock: clk, store: store}
}

// Evaluate grades the marks and keeps the result for later reads.
func (s *EligibilityService) Evaluate(ctx context.Context, schema domain.Schema, marks domain.Marks) (domain.Result, error) {
	result, err := domain.Evaluate(schema, marks, s.clock.Now())
	if err != nil {
		return domain.Result{}, err
	}
	if err := s.store.Save(ctx, result); err != nil {
		return domain.Result{}, fmt.Errorf("save eligibility: %w", err)
	}
	return result, nil
}

func (s *EligibilityService) Last(ctx context.Context) (domain.Result, bool, error) {
	return s.store.Load(ctx)
}
