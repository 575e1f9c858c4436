package domain

import "math"

type Stats struct {
	TotalConducted int
	TotalAttended  int
	Percentage     float64
}

type Zone string

const (
	ZoneSafe   Zone = "safe"
	ZoneAtRisk Zone = "at-risk"
	ZoneDanger Zone = "danger"
)

type Risk struct {
	Zone    Zone
	Message string
}

func ComputeStats(s Subject) Stats {
	out := Stats{}
	for _, w := range s.Weeks {
		out.TotalConducted += w.Conducted
		out.TotalAttended += w.Attended
	}
	out.Percentage = Percentage(out.TotalConducted, out.TotalAttended)
	return out
}

// Percentage is 100*attended/conducted rounded to two places, or 0 when
// nothing was conducted.
func Percentage(conducted, attended int) float64 {
	if conducted <= 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(conducted)*100*100) / 100
}

// ClassifyRisk places a percentage in a zone. The safe boundary is fixed at
// 80; threshold separates at-risk from danger.
func ClassifyRisk(percentage, threshold float64) Risk {
	switch {
	case percentage >= SafeBoundary:
		return Risk{Zone: ZoneSafe, Message: "Safe: you can afford to miss some classes."}
	case percentage >= threshold:
		return Risk{Zone: ZoneAtRisk, Message: "At risk: missing one more class may drop you below minimum attendance."}
	default:
		return Risk{Zone: ZoneDanger, Message: "Danger: you must attend upcoming classes to recover attendance."}
	}
}

// ComputeRecovery is the number of back-to-back attended classes needed to
// reach threshold, assuming every future class is attended. It returns nil
// when nothing was conducted or the threshold is already met.
func ComputeRecovery(conducted, attended int, threshold float64) *int {
	if conducted <= 0 {
		return nil
	}
	t := threshold / 100
	if t >= 1 {
		return nil
	}
	meets := func(x int) bool {
		return float64(attended+x) >= t*float64(conducted+x)
	}
	if meets(0) {
		return nil
	}
	x := int(math.Ceil((t*float64(conducted) - float64(attended)) / (1 - t)))
	x = max(1, x)
	// settle rounding at exact boundaries against the same inequality
	for !meets(x) {
		x++
	}
	for x > 1 && meets(x-1) {
		x--
	}
	return &x
}
