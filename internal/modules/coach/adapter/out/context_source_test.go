package out_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	attendanceout "lockedin/internal/modules/attendance/adapter/out"
	attendancedto "lockedin/internal/modules/attendance/dto"
	attendanceservice "lockedin/internal/modules/attendance/service"
	attendanceusecase "lockedin/internal/modules/attendance/usecase"
	coachout "lockedin/internal/modules/coach/adapter/out"
	eligibilityout "lockedin/internal/modules/eligibility/adapter/out"
	eligibilitydto "lockedin/internal/modules/eligibility/dto"
	eligibilityservice "lockedin/internal/modules/eligibility/service"
	eligibilityusecase "lockedin/internal/modules/eligibility/usecase"
	plannerout "lockedin/internal/modules/planner/adapter/out"
	plannerdto "lockedin/internal/modules/planner/dto"
	plannerservice "lockedin/internal/modules/planner/service"
	plannerusecase "lockedin/internal/modules/planner/usecase"
	progressout "lockedin/internal/modules/progress/adapter/out"
	progressdto "lockedin/internal/modules/progress/dto"
	progressservice "lockedin/internal/modules/progress/service"
	progressusecase "lockedin/internal/modules/progress/usecase"
	"lockedin/internal/platform/kvstore"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type quietNotifier struct{}

func (quietNotifier) Notify(context.Context, string, string) error { return nil }

func TestModuleContextSourceCollectsEverySection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	clk := fixedClock{now: time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)}
	ids := &seqID{}

	attendance := attendanceusecase.NewInteractor(attendanceservice.NewAttendanceService(clk, ids, attendanceout.NewKVStore(store), 75, nil))
	progress := progressusecase.NewInteractor(progressservice.NewProgressService(clk, progressout.NewKVStateStore(store), quietNotifier{}, nil), clk)
	planner := plannerusecase.NewInteractor(plannerservice.NewPlannerService(clk, ids, plannerout.NewKVStore(store), plannerout.NewProgressBridge(progress), nil))
	eligibility := eligibilityusecase.NewInteractor(eligibilityservice.NewEligibilityService(clk, eligibilityout.NewKVResultStore(store)))

	if _, err := attendance.AddSubject(ctx, "Physics"); err != nil {
		t.Fatalf("add subject: %v", err)
	}
	if _, err := attendance.AddWeek(ctx, "Physics"); err != nil {
		t.Fatalf("add week: %v", err)
	}
	ref := attendancedto.WeekRef{Subject: "Physics", Week: 1}
	if _, err := attendance.UpdateWeek(ctx, attendancedto.UpdateWeekInput{WeekRef: ref, Field: "conducted", Value: "10"}); err != nil {
		t.Fatalf("set conducted: %v", err)
	}
	if _, err := attendance.UpdateWeek(ctx, attendancedto.UpdateWeekInput{WeekRef: ref, Field: "attended", Value: "5"}); err != nil {
		t.Fatalf("set attended: %v", err)
	}
	for _, text := range []string{"Lab record", "Read chapter 4"} {
		if _, err := planner.AddTask(ctx, plannerdto.AddTaskInput{Text: text}); err != nil {
			t.Fatalf("add task: %v", err)
		}
	}
	if _, err := planner.SetTaskDone(ctx, "1", true); err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if _, err := eligibility.Evaluate(ctx, eligibilitydto.EvaluateInput{Schema: 100, IA: 40, End: 30}); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if _, err := progress.RecordSession(ctx, progressdto.SessionInput{Minutes: 25, CompletedAt: clk.now}); err != nil {
		t.Fatalf("record session: %v", err)
	}

	bundle, err := coachout.NewModuleContextSource(attendance, planner, eligibility, progress).Collect(ctx)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(bundle.Subjects) != 1 {
		t.Fatalf("expected one subject, got %+v", bundle.Subjects)
	}
	physics := bundle.Subjects[0]
	if physics.Percentage != 50 || physics.Zone != "danger" || physics.Recovery != 10 || physics.Conducted != 10 {
		t.Fatalf("unexpected subject summary: %+v", physics)
	}
	if bundle.TasksTotal != 2 || bundle.TasksDone != 1 || bundle.CompletionRate != 50 {
		t.Fatalf("unexpected planner summary: %+v", bundle)
	}
	if bundle.Eligibility == nil || bundle.Eligibility.Percentage != 70 || bundle.Eligibility.Grade != "A+ Grade (9 GP)" {
		t.Fatalf("unexpected eligibility summary: %+v", bundle.Eligibility)
	}
	if bundle.SessionsToday != 1 || bundle.TotalMinutes != 25 {
		t.Fatalf("unexpected study summary: %+v", bundle)
	}
}

func TestModuleContextSourceToleratesMissingModules(t *testing.T) {
	t.Parallel()
	bundle, err := coachout.NewModuleContextSource(nil, nil, nil, nil).Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if bundle.Eligibility != nil || len(bundle.Subjects) != 0 || bundle.TasksTotal != 0 {
		t.Fatalf("expected empty bundle, got %+v", bundle)
	}
}
