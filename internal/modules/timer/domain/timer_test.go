package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lockedin/internal/modules/timer/domain"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func countKind(events []domain.Event, kind domain.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestRemainingDerivedFromDeadlineNotTicks(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewState(25).Start(t0, "s1")

	// A throttled host delivers a single tick after 10 minutes.
	s, events := s.Tick(t0.Add(10 * time.Minute))
	if s.RemainingSeconds != 15*60 {
		t.Fatalf("expected 900s remaining, got %d", s.RemainingSeconds)
	}
	if !domain.HasEvent(events, domain.EventTicked) {
		t.Fatalf("expected ticked event, got %+v", events)
	}

	// Fractional seconds round up.
	s, _ = s.Tick(t0.Add(10*time.Minute + 300*time.Millisecond))
	if s.RemainingSeconds != 15*60 {
		t.Fatalf("expected ceil to keep 900s, got %d", s.RemainingSeconds)
	}
}

func TestRemainingStaysWithinBounds(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewState(1).Start(t0, "s1")
	offsets := []time.Duration{-time.Hour, -time.Second, 0, 30 * time.Second, 59 * time.Second}
	for _, off := range offsets {
		got := s.RemainingAt(t0.Add(off))
		if got < 0 || got > s.DurationSeconds {
			t.Fatalf("remaining %d out of [0,%d] at offset %v", got, s.DurationSeconds, off)
		}
	}
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewState(25).Start(t0, "s1")
	completions := 0
	for i := 0; i < 5; i++ {
		var events []domain.Event
		s, events = s.Tick(t0.Add(25*time.Minute + time.Duration(i)*time.Second))
		completions += countKind(events, domain.EventCompleted)
	}
	if completions != 1 {
		t.Fatalf("expected exactly one completion, got %d", completions)
	}
	if s.Running || s.RemainingSeconds != 0 || s.Status != domain.StatusComplete {
		t.Fatalf("unexpected post-completion state: %+v", s)
	}
	if s.SessionCount != 1 || s.ConsecutiveSessions != 1 {
		t.Fatalf("expected counters bumped once, got %+v", s)
	}
}

func TestCompletionReportsIntendedMinutes(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewState(50).Start(t0, "s1")
	s, events := s.Tick(t0.Add(time.Hour))
	for _, e := range events {
		if e.Kind == domain.EventCompleted && e.Minutes != 50 {
			t.Fatalf("expected 50 minutes, got %d", e.Minutes)
		}
	}
	c := s.Completion()
	if c.Minutes != 50 || c.SessionID != "s1" || !c.StartedAt.Equal(t0) {
		t.Fatalf("unexpected completion: %+v", c)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewState(25).Start(t0, "s1")
	again, events := s.Start(t0.Add(time.Minute), "s2")
	if len(events) != 0 {
		t.Fatalf("expected no events on second start, got %+v", events)
	}
	if !again.Deadline.Equal(s.Deadline) || again.SessionID != "s1" {
		t.Fatalf("second start must not move the deadline: %+v", again)
	}
}

func TestPermissionRequestedOnlyOnFirstStart(t *testing.T) {
	t.Parallel()
	s, events := domain.NewState(25).Start(t0, "s1")
	if countKind(events, domain.EventPermissionRequested) != 1 {
		t.Fatalf("expected permission request on first start")
	}
	s, _ = s.Pause(t0.Add(time.Minute))
	_, events = s.Start(t0.Add(2*time.Minute), "s2")
	if countKind(events, domain.EventPermissionRequested) != 0 {
		t.Fatalf("permission must be requested once")
	}
}

func TestPauseRecomputesThenFreezes(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewState(25).Start(t0, "s1")
	s, events := s.Pause(t0.Add(5*time.Minute + 500*time.Millisecond))
	if s.RemainingSeconds != 20*60 {
		t.Fatalf("expected 1200s remaining, got %d", s.RemainingSeconds)
	}
	if s.Running || !s.Deadline.IsZero() || s.Status != domain.StatusPaused {
		t.Fatalf("unexpected paused state: %+v", s)
	}
	if !domain.HasEvent(events, domain.EventTicksStopped) {
		t.Fatalf("pause must stop ticks")
	}

	// Time passing while paused changes nothing.
	if got := s.RemainingAt(t0.Add(time.Hour)); got != 20*60 {
		t.Fatalf("paused remaining drifted to %d", got)
	}
	if _, events := s.Tick(t0.Add(time.Hour)); len(events) != 0 {
		t.Fatalf("orphan tick must be ignored, got %+v", events)
	}

	// Resume continues the same session from the frozen remainder.
	s, _ = s.Start(t0.Add(time.Hour), "s2")
	if s.SessionID != "s1" {
		t.Fatalf("resume must keep session id, got %s", s.SessionID)
	}
	if !s.Deadline.Equal(t0.Add(time.Hour + 20*time.Minute)) {
		t.Fatalf("unexpected resumed deadline: %v", s.Deadline)
	}
}

func TestPauseAfterDeadlineCompletes(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewState(5).Start(t0, "s1")
	s, events := s.Pause(t0.Add(6 * time.Minute))
	if !domain.HasEvent(events, domain.EventCompleted) || s.Status != domain.StatusComplete {
		t.Fatalf("expected completion, got %+v %+v", s, events)
	}
}

func TestPauseWhenNotRunningIsNoop(t *testing.T) {
	t.Parallel()
	s := domain.NewState(25)
	next, events := s.Pause(t0)
	if len(events) != 0 || next != s {
		t.Fatalf("expected no-op, got %+v %+v", next, events)
	}
}

func TestResetUsesPresetAndNeverCompletes(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewState(50).Start(t0, "s1")
	s, events := s.Reset(t0.Add(time.Minute), 0)
	if countKind(events, domain.EventCompleted) != 0 {
		t.Fatalf("reset must not complete")
	}
	if !domain.HasEvent(events, domain.EventTicksStopped) {
		t.Fatalf("reset of a running timer must stop ticks")
	}
	if s.DurationSeconds != 50*60 || s.RemainingSeconds != 50*60 || s.Status != domain.StatusReady {
		t.Fatalf("unexpected reset state: %+v", s)
	}

	s, _ = s.Reset(t0, 90)
	if s.DurationSeconds != 90 {
		t.Fatalf("expected explicit duration, got %d", s.DurationSeconds)
	}
}

func TestStartAfterCompletionRearms(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewState(5).Start(t0, "s1")
	s, _ = s.Tick(t0.Add(5 * time.Minute))
	s, events := s.Start(t0.Add(6*time.Minute), "s2")
	if !domain.HasEvent(events, domain.EventStarted) {
		t.Fatalf("expected restart")
	}
	if s.RemainingSeconds != 300 || s.SessionID != "s2" {
		t.Fatalf("expected a fresh session, got %+v", s)
	}
}

func TestConsecutiveSessionsResetAfterLongBreak(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewState(5).Start(t0, "a")
	s, _ = s.Tick(t0.Add(5 * time.Minute))
	s, _ = s.Start(t0.Add(10*time.Minute), "b")
	s, _ = s.Tick(t0.Add(15 * time.Minute))
	if s.ConsecutiveSessions != 2 {
		t.Fatalf("expected 2 consecutive, got %d", s.ConsecutiveSessions)
	}
	s, _ = s.Start(t0.Add(15*time.Minute+domain.ConsecutiveWindow+time.Second), "c")
	if s.ConsecutiveSessions != 0 {
		t.Fatalf("expected streak reset, got %d", s.ConsecutiveSessions)
	}
}

func TestChangePreset(t *testing.T) {
	t.Parallel()
	s := domain.NewState(25)
	s, _, err := s.ChangePreset(t0, 2)
	if err != nil {
		t.Fatalf("change preset: %v", err)
	}
	if s.RemainingSeconds != 120 || s.PresetMinutes != 2 {
		t.Fatalf("unexpected preset state: %+v", s)
	}

	running, _ := s.Start(t0, "s1")
	if running.Label() != "Breathing..." {
		t.Fatalf("unexpected label %q", running.Label())
	}
	same, events, err := running.ChangePreset(t0, 50)
	if err != nil || len(events) != 0 || same.PresetMinutes != 2 {
		t.Fatalf("preset change while running must be ignored, got %+v %v", same, err)
	}

	if _, _, err := s.ChangePreset(t0, 0); !errors.Is(err, domain.ErrInvalidPreset) {
		t.Fatalf("expected invalid preset, got %v", err)
	}
}

func TestNormalizeRepairsStoredState(t *testing.T) {
	t.Parallel()
	s := domain.State{Running: true, RemainingSeconds: 99999}.Normalize()
	if s.Running || s.Status != domain.StatusPaused {
		t.Fatalf("running without deadline must become paused: %+v", s)
	}
	if s.RemainingSeconds != domain.DefaultPresetMinutes*60 {
		t.Fatalf("remaining must be clamped to duration, got %d", s.RemainingSeconds)
	}
}

func TestStateJSONRoundTripPreservesDeadline(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewState(25).Start(t0, "s1")
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back domain.State
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Deadline.Equal(s.Deadline) || back.RemainingAt(t0.Add(time.Minute)) != 24*60 {
		t.Fatalf("deadline lost in round trip: %+v", back)
	}
}

func TestFormatClockAndProgress(t *testing.T) {
	t.Parallel()
	if got := domain.FormatClock(25 * 60); got != "25:00" {
		t.Fatalf("unexpected clock %s", got)
	}
	if got := domain.FormatClock(61); got != "01:01" {
		t.Fatalf("unexpected clock %s", got)
	}
	s, _ := domain.NewState(10).Start(t0, "s1")
	if p := s.Progress(t0.Add(5 * time.Minute)); p != 0.5 {
		t.Fatalf("expected half progress, got %f", p)
	}
}
