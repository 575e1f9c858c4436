package clock

import "time"

// Clock abstracts time to keep engines and usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall-clock time. Study days and badge hours are
// keyed by the user's calendar, so local time is kept rather than UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// DateKey formats t as the calendar day used by the study ledger.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
