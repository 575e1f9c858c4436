package domain

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrEmptyMessage  = errors.New("coach message is empty")
	ErrCoachOffline  = errors.New("coach plugin is not configured")
	ErrEmptyResponse = errors.New("coach returned an empty response")
)

const (
	OfflineReply     = "Unable to reach the coach. Check that the coach plugin is installed and try again."
	UnavailableReply = "The coach is temporarily unavailable. Please try again in a moment."
	EmptyReply       = "I received your message but got an empty response. Please try again."
)

// DefaultPrompt is rendered with the Bundle values when no template is configured.
const DefaultPrompt = `You are a study coach for a college student.
{{#eligibility}}
Internal marks: {{total}} of {{schema}} ({{percentage}}%), grade {{{grade}}}.
{{/eligibility}}
{{#has_subjects}}
Attendance:
{{#subjects}}
- {{{name}}}: {{percentage}}% ({{zone}}){{#recovery}}, needs {{recovery}} more classes{{/recovery}}
{{/subjects}}
{{/has_subjects}}
Tasks: {{tasks_done}} of {{tasks_total}} done ({{completion_rate}}%).
Focus sessions today: {{sessions_today}}, total study minutes: {{total_minutes}}.

Student: {{{message}}}`

type Eligibility struct {
	Schema     int     `json:"schema"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
}

type Subject struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Conducted  int     `json:"total_conducted"`
	Attended   int     `json:"total_attended"`
	Zone       string  `json:"risk_zone"`
	// Recovery is 0 when the subject needs no extra classes.
	Recovery int `json:"recovery"`
}

// Bundle is the read-only snapshot of the student's standing sent with every question.
type Bundle struct {
	Eligibility    *Eligibility `json:"eligibility,omitempty"`
	Subjects       []Subject    `json:"subjects"`
	TasksTotal     int          `json:"tasks_total"`
	TasksDone      int          `json:"tasks_done"`
	CompletionRate int          `json:"completion_rate"`
	SessionsToday  int          `json:"sessions_today"`
	TotalMinutes   int          `json:"total_minutes"`
	CurrentStreak  int          `json:"current_streak"`
}

// AtRisk returns the subjects outside the safe zone.
func (b Bundle) AtRisk() []Subject {
	out := make([]Subject, 0)
	for _, subject := range b.Subjects {
		if subject.Zone != "safe" {
			out = append(out, subject)
		}
	}
	return out
}

// Values flattens the bundle for template rendering.
func (b Bundle) Values(message string) map[string]any {
	subjects := make([]map[string]any, 0, len(b.Subjects))
	for _, s := range b.Subjects {
		entry := map[string]any{
			"name":       s.Name,
			"percentage": formatPercent(s.Percentage),
			"zone":       s.Zone,
			"conducted":  s.Conducted,
			"attended":   s.Attended,
		}
		if s.Recovery > 0 {
			entry["recovery"] = s.Recovery
		}
		subjects = append(subjects, entry)
	}
	values := map[string]any{
		"message":         message,
		"has_subjects":    len(subjects) > 0,
		"subjects":        subjects,
		"tasks_total":     b.TasksTotal,
		"tasks_done":      b.TasksDone,
		"completion_rate": b.CompletionRate,
		"sessions_today":  b.SessionsToday,
		"total_minutes":   b.TotalMinutes,
		"current_streak":  b.CurrentStreak,
	}
	if b.Eligibility != nil {
		values["eligibility"] = map[string]any{
			"schema":     b.Eligibility.Schema,
			"total":      formatPercent(b.Eligibility.Total),
			"percentage": formatPercent(b.Eligibility.Percentage),
			"grade":      b.Eligibility.Grade,
		}
	}
	return values
}

type Request struct {
	Prompt  string
	Message string
	Bundle  Bundle
}

// Reply is what the student sees. Fallback marks a canned message used in
// place of a coach answer.
type Reply struct {
	Text     string
	Fallback bool
}

func NormalizeMessage(message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", ErrEmptyMessage
	}
	return trimmed, nil
}

// FallbackFor maps an advisor failure to the canned reply shown instead.
func FallbackFor(err error) string {
	switch {
	case errors.Is(err, ErrCoachOffline):
		return OfflineReply
	case errors.Is(err, ErrEmptyResponse):
		return EmptyReply
	default:
		return UnavailableReply
	}
}

// formatPercent drops trailing zeros: 83.30 -> 83.3, 70.00 -> 70.
func formatPercent(v float64) string {
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0"), ".")
}
