package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	SchemaVersion         = 1
	DefaultPresetMinutes  = 25
	BreathingPresetMinute = 2
	MaxPresetMinutes      = 240

	// consecutive sessions restart after a break longer than this
	ConsecutiveWindow = 2 * time.Hour
)

var ErrInvalidPreset = errors.New("invalid preset")

type Status string

const (
	StatusReady    Status = "ready"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusComplete Status = "complete"
)

type EventKind string

const (
	EventStarted             EventKind = "started"
	EventPaused              EventKind = "paused"
	EventReset               EventKind = "reset"
	EventTicked              EventKind = "ticked"
	EventCompleted           EventKind = "completed"
	EventTicksStarted        EventKind = "ticks_started"
	EventTicksStopped        EventKind = "ticks_stopped"
	EventPermissionRequested EventKind = "permission_requested"
)

type Event struct {
	Kind      EventKind
	At        time.Time
	Remaining int
	// Minutes is the intended session length, set on EventCompleted.
	Minutes int
}

// State is the whole timer. Remaining is derived from Deadline while running
// and is authoritative only while paused or ready.
type State struct {
	SchemaVersion       int       `json:"schema_version"`
	SessionID           string    `json:"session_id,omitempty"`
	DurationSeconds     int       `json:"duration_seconds"`
	RemainingSeconds    int       `json:"remaining_seconds"`
	Deadline            time.Time `json:"deadline,omitempty"`
	StartedAt           time.Time `json:"started_at,omitempty"`
	Running             bool      `json:"running"`
	Status              Status    `json:"status"`
	PresetMinutes       int       `json:"preset_minutes"`
	SessionCount        int       `json:"session_count"`
	ConsecutiveSessions int       `json:"consecutive_sessions"`
	LastSessionEnd      time.Time `json:"last_session_end,omitempty"`
	PermissionRequested bool      `json:"permission_requested"`
	// Revision counts stored writes. A save only lands on the revision it
	// was computed from.
	Revision int64 `json:"revision"`
}

// Completion describes one naturally finished session.
type Completion struct {
	SessionID           string
	Minutes             int
	StartedAt           time.Time
	CompletedAt         time.Time
	SessionCount        int
	ConsecutiveSessions int
}

func NewState(presetMinutes int) State {
	if presetMinutes <= 0 {
		presetMinutes = DefaultPresetMinutes
	}
	return State{
		SchemaVersion:    SchemaVersion,
		DurationSeconds:  presetMinutes * 60,
		RemainingSeconds: presetMinutes * 60,
		Status:           StatusReady,
		PresetMinutes:    presetMinutes,
	}
}

// Normalize repairs a state read from storage so the invariants hold again.
func (s State) Normalize() State {
	if s.PresetMinutes <= 0 {
		s.PresetMinutes = DefaultPresetMinutes
	}
	if s.DurationSeconds <= 0 {
		s.DurationSeconds = s.PresetMinutes * 60
	}
	s.RemainingSeconds = clamp(s.RemainingSeconds, 0, s.DurationSeconds)
	if s.Running && s.Deadline.IsZero() {
		s.Running = false
		s.Status = StatusPaused
	}
	if s.Status == "" {
		s.Status = StatusReady
	}
	s.SchemaVersion = SchemaVersion
	return s
}

// RemainingAt derives the remaining whole seconds from the deadline.
func (s State) RemainingAt(now time.Time) int {
	if !s.Running {
		return s.RemainingSeconds
	}
	secs := int(math.Ceil(s.Deadline.Sub(now).Seconds()))
	return clamp(secs, 0, s.DurationSeconds)
}

// Start arms the deadline. Starting a running timer is a no-op. Starting a
// completed timer re-arms the full duration under newID.
func (s State) Start(now time.Time, newID string) (State, []Event) {
	if s.Running {
		return s, nil
	}
	var events []Event
	if !s.PermissionRequested {
		s.PermissionRequested = true
		events = append(events, Event{Kind: EventPermissionRequested, At: now})
	}
	if s.Status == StatusComplete || s.RemainingSeconds <= 0 {
		s.RemainingSeconds = s.DurationSeconds
	}
	if s.Status != StatusPaused || s.SessionID == "" {
		s.SessionID = newID
		s.StartedAt = now
	}
	if !s.LastSessionEnd.IsZero() && now.Sub(s.LastSessionEnd) > ConsecutiveWindow {
		s.ConsecutiveSessions = 0
	}
	s.Deadline = now.Add(time.Duration(s.RemainingSeconds) * time.Second)
	s.Running = true
	s.Status = StatusRunning
	events = append(events,
		Event{Kind: EventStarted, At: now, Remaining: s.RemainingSeconds},
		Event{Kind: EventTicksStarted, At: now},
	)
	return s, events
}

// Pause freezes the remaining time. A deadline that already passed completes
// the session instead.
func (s State) Pause(now time.Time) (State, []Event) {
	if !s.Running {
		return s, nil
	}
	if s.RemainingAt(now) == 0 {
		return s.Tick(now)
	}
	s.RemainingSeconds = s.RemainingAt(now)
	s.Deadline = time.Time{}
	s.Running = false
	s.Status = StatusPaused
	return s, []Event{
		{Kind: EventTicksStopped, At: now},
		{Kind: EventPaused, At: now, Remaining: s.RemainingSeconds},
	}
}

// Reset stops the timer and loads seconds, or the selected preset when
// seconds is not positive.
func (s State) Reset(now time.Time, seconds int) (State, []Event) {
	var events []Event
	if s.Running {
		events = append(events, Event{Kind: EventTicksStopped, At: now})
	}
	if seconds <= 0 {
		seconds = s.PresetMinutes * 60
		if seconds <= 0 {
			seconds = DefaultPresetMinutes * 60
		}
	}
	s.DurationSeconds = seconds
	s.RemainingSeconds = seconds
	s.Deadline = time.Time{}
	s.StartedAt = time.Time{}
	s.SessionID = ""
	s.Running = false
	s.Status = StatusReady
	return s, append(events, Event{Kind: EventReset, At: now, Remaining: seconds})
}

// Tick recomputes remaining time. Ticks that arrive while the timer is not
// running are ignored, which makes completion fire at most once.
func (s State) Tick(now time.Time) (State, []Event) {
	if !s.Running {
		return s, nil
	}
	s.RemainingSeconds = s.RemainingAt(now)
	if s.RemainingSeconds > 0 {
		return s, []Event{{Kind: EventTicked, At: now, Remaining: s.RemainingSeconds}}
	}
	s.Running = false
	s.Deadline = time.Time{}
	s.Status = StatusComplete
	s.SessionCount++
	s.ConsecutiveSessions++
	s.LastSessionEnd = now
	return s, []Event{
		{Kind: EventTicksStopped, At: now},
		{Kind: EventCompleted, At: now, Minutes: s.IntendedMinutes()},
	}
}

// ChangePreset selects a new preset. It is refused while running.
func (s State) ChangePreset(now time.Time, minutes int) (State, []Event, error) {
	if minutes <= 0 || minutes > MaxPresetMinutes {
		return s, nil, fmt.Errorf("%w: %d minutes", ErrInvalidPreset, minutes)
	}
	if s.Running {
		return s, nil, nil
	}
	s.PresetMinutes = minutes
	next, events := s.Reset(now, minutes*60)
	return next, events, nil
}

// Completion summarises the session that just completed.
func (s State) Completion() Completion {
	return Completion{
		SessionID:           s.SessionID,
		Minutes:             s.IntendedMinutes(),
		StartedAt:           s.StartedAt,
		CompletedAt:         s.LastSessionEnd,
		SessionCount:        s.SessionCount,
		ConsecutiveSessions: s.ConsecutiveSessions,
	}
}

func (s State) IntendedMinutes() int {
	return int(math.Ceil(float64(s.DurationSeconds) / 60))
}

// Progress is the elapsed fraction of the session in [0,1].
func (s State) Progress(now time.Time) float64 {
	if s.DurationSeconds <= 0 {
		return 0
	}
	elapsed := float64(s.DurationSeconds-s.RemainingAt(now)) / float64(s.DurationSeconds)
	return math.Max(0, math.Min(1, elapsed))
}

func (s State) Label() string {
	switch s.Status {
	case StatusRunning:
		if s.PresetMinutes == BreathingPresetMinute {
			return "Breathing..."
		}
		return "Focusing..."
	case StatusPaused:
		return "Paused"
	case StatusComplete:
		return "Session Complete!"
	default:
		return "Ready to Focus"
	}
}

// FormatClock renders seconds as MM:SS. Hours fold into the minutes.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// HasEvent reports whether kind appears in events.
func HasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
