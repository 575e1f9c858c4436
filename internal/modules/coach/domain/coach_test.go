package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"lockedin/internal/modules/coach/domain"
)

func TestNormalizeMessageRejectsBlank(t *testing.T) {
	t.Parallel()
	if _, err := domain.NormalizeMessage("  \n "); !errors.Is(err, domain.ErrEmptyMessage) {
		t.Fatalf("expected empty message error, got %v", err)
	}
	got, err := domain.NormalizeMessage("  help me plan  ")
	if err != nil || got != "help me plan" {
		t.Fatalf("expected trimmed message, got %q %v", got, err)
	}
}

func TestFallbackForKnownFailures(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want string
	}{
		{domain.ErrCoachOffline, domain.OfflineReply},
		{fmt.Errorf("wrap: %w", domain.ErrCoachOffline), domain.OfflineReply},
		{domain.ErrEmptyResponse, domain.EmptyReply},
		{errors.New("connection refused"), domain.UnavailableReply},
	}
	for _, tc := range cases {
		if got := domain.FallbackFor(tc.err); got != tc.want {
			t.Fatalf("fallback for %v: expected %q, got %q", tc.err, tc.want, got)
		}
	}
}

func TestBundleValues(t *testing.T) {
	t.Parallel()
	bundle := domain.Bundle{
		Eligibility: &domain.Eligibility{Schema: 150, Total: 125, Percentage: 83.33, Grade: "O Grade (10 GP)"},
		Subjects: []domain.Subject{
			{Name: "Physics", Percentage: 50, Zone: "danger", Recovery: 10},
			{Name: "Maths", Percentage: 85.5, Zone: "safe"},
		},
		TasksTotal: 4, TasksDone: 1, CompletionRate: 25,
	}
	values := bundle.Values("hi")
	subjects := values["subjects"].([]map[string]any)
	if subjects[0]["percentage"] != "50" || subjects[1]["percentage"] != "85.5" {
		t.Fatalf("unexpected percentages: %v", subjects)
	}
	if subjects[0]["recovery"] != 10 {
		t.Fatalf("expected recovery 10, got %v", subjects[0]["recovery"])
	}
	if _, ok := subjects[1]["recovery"]; ok {
		t.Fatalf("expected no recovery for safe subject")
	}
	eligibility := values["eligibility"].(map[string]any)
	if eligibility["percentage"] != "83.33" || eligibility["total"] != "125" {
		t.Fatalf("unexpected eligibility values: %v", eligibility)
	}
	if values["has_subjects"] != true || values["message"] != "hi" {
		t.Fatalf("unexpected values: %v", values)
	}

	if risky := bundle.AtRisk(); len(risky) != 1 || risky[0].Name != "Physics" {
		t.Fatalf("expected only Physics at risk, got %+v", risky)
	}
	if _, ok := (domain.Bundle{}).Values("x")["eligibility"]; ok {
		t.Fatalf("expected no eligibility section without a result")
	}
}
