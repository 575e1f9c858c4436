package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lockedin/internal/modules/attendance/domain"
)

func subjectWith(weeks ...[2]int) domain.Subject {
	s := domain.Subject{ID: "s1", Name: "Physics"}
	for i, w := range weeks {
		s.Weeks = append(s.Weeks, domain.Week{ID: string(rune('a' + i)), Conducted: w[0], Attended: w[1]})
	}
	return s
}

func TestAddSubjectRejectsCaseInsensitiveDuplicate(t *testing.T) {
	t.Parallel()
	c, added, err := domain.Collection{}.AddSubject("1", "  Maths ")
	if err != nil {
		t.Fatalf("add subject: %v", err)
	}
	if added.Name != "Maths" || len(added.Weeks) != 0 {
		t.Fatalf("unexpected subject: %+v", added)
	}
	if _, _, err := c.AddSubject("2", "MATHS"); !errors.Is(err, domain.ErrDuplicateSubject) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if _, _, err := c.AddSubject("3", "   "); !errors.Is(err, domain.ErrEmptySubjectName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
	if len(c) != 1 {
		t.Fatalf("expected one subject, got %d", len(c))
	}
}

func TestRemoveSubjectLeavesOriginalUntouched(t *testing.T) {
	t.Parallel()
	c, _, _ := domain.Collection{}.AddSubject("1", "Maths")
	c, _, _ = c.AddSubject("2", "Physics")
	next, err := c.RemoveSubject("1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(next) != 1 || next[0].Name != "Physics" || len(c) != 2 {
		t.Fatalf("unexpected collections: next=%+v original=%+v", next, c)
	}
	if _, err := next.RemoveSubject("1"); !errors.Is(err, domain.ErrSubjectNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateWeekClamps(t *testing.T) {
	t.Parallel()
	s := domain.Subject{ID: "s"}.AddWeek("w")

	s, _ = s.UpdateWeek("w", domain.FieldConducted, 5)
	s, _ = s.UpdateWeek("w", domain.FieldAttended, 9)
	if s.Weeks[0].Attended != 5 {
		t.Fatalf("expected attended clamped to 5, got %d", s.Weeks[0].Attended)
	}
	s, _ = s.UpdateWeek("w", domain.FieldConducted, 3)
	if s.Weeks[0].Conducted != 3 || s.Weeks[0].Attended != 3 {
		t.Fatalf("expected 3/3 after lowering conducted, got %+v", s.Weeks[0])
	}
	s, _ = s.UpdateWeek("w", domain.FieldConducted, -4)
	if s.Weeks[0].Conducted != 0 || s.Weeks[0].Attended != 0 {
		t.Fatalf("expected negatives clamped to zero, got %+v", s.Weeks[0])
	}
	s, _ = s.UpdateWeek("w", domain.FieldConducted, 2)
	s, _ = s.UpdateWeek("w", domain.FieldAttended, -1)
	if s.Weeks[0].Attended != 0 {
		t.Fatalf("expected attended clamped to zero, got %d", s.Weeks[0].Attended)
	}
	if _, err := s.UpdateWeek("missing", domain.FieldAttended, 1); !errors.Is(err, domain.ErrWeekNotFound) {
		t.Fatalf("expected week not found, got %v", err)
	}
}

func TestParseCountIsLenient(t *testing.T) {
	t.Parallel()
	cases := map[string]int{"12": 12, " 7 ": 7, "3abc": 3, "abc": 0, "": 0, "-4": -4}
	for in, want := range cases {
		if got := domain.ParseCount(in); got != want {
			t.Fatalf("ParseCount(%q): expected %d, got %d", in, want, got)
		}
	}
}

func TestComputeStatsIgnoresWeekOrder(t *testing.T) {
	t.Parallel()
	a := domain.ComputeStats(subjectWith([2]int{4, 2}, [2]int{6, 5}, [2]int{3, 0}))
	b := domain.ComputeStats(subjectWith([2]int{3, 0}, [2]int{4, 2}, [2]int{6, 5}))
	if a != b {
		t.Fatalf("expected order-invariant stats, got %+v and %+v", a, b)
	}
	if empty := domain.ComputeStats(domain.Subject{}); empty.Percentage != 0 {
		t.Fatalf("expected 0%% with nothing conducted, got %v", empty.Percentage)
	}
	if got := domain.ComputeStats(subjectWith([2]int{3, 2})).Percentage; got != 66.67 {
		t.Fatalf("expected 66.67, got %v", got)
	}
}

func TestClassifyRiskBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		pct  float64
		want domain.Zone
	}{
		{80, domain.ZoneSafe},
		{100, domain.ZoneSafe},
		{79.99, domain.ZoneAtRisk},
		{75, domain.ZoneAtRisk},
		{74.99, domain.ZoneDanger},
		{0, domain.ZoneDanger},
	}
	for _, tc := range cases {
		risk := domain.ClassifyRisk(tc.pct, domain.DefaultThreshold)
		if risk.Zone != tc.want {
			t.Fatalf("ClassifyRisk(%v): expected %s, got %s", tc.pct, tc.want, risk.Zone)
		}
		if risk.Message == "" {
			t.Fatalf("expected a message for %s", risk.Zone)
		}
	}
}

func TestComputeRecovery(t *testing.T) {
	t.Parallel()
	got := domain.ComputeRecovery(10, 5, domain.DefaultThreshold)
	if got == nil || *got != 10 {
		t.Fatalf("expected recovery 10, got %v", got)
	}
	if got := domain.ComputeRecovery(100, 80, domain.DefaultThreshold); got != nil {
		t.Fatalf("expected nil above threshold, got %d", *got)
	}
	if got := domain.ComputeRecovery(4, 3, domain.DefaultThreshold); got != nil {
		t.Fatalf("expected nil exactly at threshold, got %d", *got)
	}
	if got := domain.ComputeRecovery(0, 0, domain.DefaultThreshold); got != nil {
		t.Fatalf("expected nil with nothing conducted, got %d", *got)
	}
	// 74/99 needs a single class: 75/100.
	if got := domain.ComputeRecovery(99, 74, domain.DefaultThreshold); got == nil || *got != 1 {
		t.Fatalf("expected minimum of 1, got %v", got)
	}
}

func TestComputeRecoveryReachesThreshold(t *testing.T) {
	t.Parallel()
	for _, threshold := range []float64{60, 70, 75, 85} {
		for conducted := 1; conducted <= 40; conducted++ {
			for attended := 0; attended <= conducted; attended++ {
				got := domain.ComputeRecovery(conducted, attended, threshold)
				frac := threshold / 100
				if got == nil {
					if float64(attended) < frac*float64(conducted) {
						t.Fatalf("%d/%d at %v: nil recovery below threshold", attended, conducted, threshold)
					}
					continue
				}
				x := *got
				if float64(attended+x) < frac*float64(conducted+x) {
					t.Fatalf("%d/%d at %v: %d classes do not reach threshold", attended, conducted, threshold, x)
				}
				if x > 1 && float64(attended+x-1) >= frac*float64(conducted+x-1) {
					t.Fatalf("%d/%d at %v: %d classes is not minimal", attended, conducted, threshold, x)
				}
			}
		}
	}
}

func TestScenarioFromTwoWeeks(t *testing.T) {
	t.Parallel()
	s := subjectWith([2]int{4, 2}, [2]int{6, 5})
	stats := domain.ComputeStats(s)
	if stats.TotalConducted != 10 || stats.TotalAttended != 7 || stats.Percentage != 70 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	// 70 is below the 75 threshold, so the boundaries place it in danger.
	if risk := domain.ClassifyRisk(stats.Percentage, domain.DefaultThreshold); risk.Zone != domain.ZoneDanger {
		t.Fatalf("expected danger, got %s", risk.Zone)
	}
	if got := domain.ComputeRecovery(stats.TotalConducted, stats.TotalAttended, domain.DefaultThreshold); got == nil || *got != 2 {
		t.Fatalf("expected recovery 2, got %v", got)
	}
}

func TestCollectionJSONPreservesWeekOrder(t *testing.T) {
	t.Parallel()
	c := domain.Collection{subjectWith([2]int{6, 5}, [2]int{4, 2}, [2]int{1, 1})}
	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back domain.Collection
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i, w := range c[0].Weeks {
		if back[0].Weeks[i] != w {
			t.Fatalf("week %d changed: expected %+v, got %+v", i, w, back[0].Weeks[i])
		}
	}
}

func TestBuildReport(t *testing.T) {
	t.Parallel()
	c := domain.Collection{subjectWith([2]int{10, 9}), {ID: "s2", Name: "Empty"}}
	report := domain.BuildReport(c, domain.DefaultThreshold, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	if len(report.Rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(report.Rows))
	}
	if report.Rows[0].Risk.Zone != domain.ZoneSafe || report.Rows[0].Recovery != nil {
		t.Fatalf("unexpected first row: %+v", report.Rows[0])
	}
	if report.Rows[1].Stats.Percentage != 0 || report.Rows[1].Recovery != nil {
		t.Fatalf("unexpected empty row: %+v", report.Rows[1])
	}
}
