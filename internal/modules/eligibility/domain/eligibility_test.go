package domain_test

import (
	"errors"
	"testing"
	"time"

	"lockedin/internal/modules/eligibility/domain"
)

var now = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func TestEvaluateCountsSchemaComponents(t *testing.T) {
	t.Parallel()
	marks := domain.Marks{IA: 30, End: 40, Lab: 20, Practical: 15}
	cases := []struct {
		schema domain.Schema
		total  float64
		pct    float64
		grade  domain.Grade
	}{
		{domain.Schema100, 70, 70, domain.GradeAPlus},
		{domain.Schema125, 90, 72, domain.GradeAPlus},
		{domain.Schema150, 105, 70, domain.GradeAPlus},
	}
	for _, tc := range cases {
		res, err := domain.Evaluate(tc.schema, marks, now)
		if err != nil {
			t.Fatalf("schema %d: %v", tc.schema, err)
		}
		if res.Total != tc.total || res.Percentage != tc.pct || res.Grade != tc.grade {
			t.Fatalf("schema %d: expected %.0f/%.2f/%s, got %+v", tc.schema, tc.total, tc.pct, tc.grade.Label, res)
		}
	}
}

func TestGradeBands(t *testing.T) {
	t.Parallel()
	cases := map[float64]domain.Grade{
		80: domain.GradeO, 79.99: domain.GradeAPlus, 70: domain.GradeAPlus,
		60: domain.GradeA, 59.99: domain.GradeNotUpTo, 0: domain.GradeNotUpTo,
	}
	for pct, want := range cases {
		if got := domain.GradeFor(pct); got != want {
			t.Fatalf("GradeFor(%v): expected %s, got %s", pct, want.Label, got.Label)
		}
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	t.Parallel()
	if _, err := domain.Evaluate(domain.Schema100, domain.Marks{IA: -1}, now); !errors.Is(err, domain.ErrNegativeMarks) {
		t.Fatalf("expected negative marks error, got %v", err)
	}
	if _, err := domain.Evaluate(domain.Schema(120), domain.Marks{}, now); !errors.Is(err, domain.ErrUnknownSchema) {
		t.Fatalf("expected unknown schema, got %v", err)
	}
	if _, err := domain.Evaluate(domain.Schema100, domain.Marks{IA: 60, End: 50}, now); !errors.Is(err, domain.ErrMarksExceed) {
		t.Fatalf("expected marks exceed, got %v", err)
	}
	// lab marks are ignored, not rejected, under the 100 schema
	if _, err := domain.Evaluate(domain.Schema100, domain.Marks{IA: 50, End: 50, Lab: 25}, now); err != nil {
		t.Fatalf("expected unused component ignored, got %v", err)
	}
}
