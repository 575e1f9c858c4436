package dto

import "time"

// Snapshot is the read-only view every display surface renders from.
type Snapshot struct {
	SessionID           string
	RemainingSeconds    int
	DurationSeconds     int
	Running             bool
	Status              string
	Label               string
	Clock               string
	Progress            float64
	PresetMinutes       int
	SessionCount        int
	ConsecutiveSessions int
	Deadline            time.Time
	// Completed is set on the snapshot produced by the call that finished a
	// session.
	Completed bool
	// Warning carries a non-fatal side-effect failure for the status line.
	Warning string
}
