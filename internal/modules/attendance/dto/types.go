package dto

type WeekView struct {
	Number    int
	ID        string
	Conducted int
	Attended  int
}

// SubjectView is a subject with its derived statistics.
type SubjectView struct {
	ID             string
	Name           string
	Weeks          []WeekView
	TotalConducted int
	TotalAttended  int
	Percentage     float64
	Zone           string
	Message        string
	// Recovery is nil when no recovery is needed.
	Recovery *int
}

type Overview struct {
	Threshold float64
	Subjects  []SubjectView
}

// WeekRef points at a week by subject id or name and its 1-based number.
type WeekRef struct {
	Subject string
	Week    int
}

type UpdateWeekInput struct {
	WeekRef
	Field string
	// Value is parsed leniently; non-numeric input counts as 0.
	Value string
}

type ReportInput struct {
	Format string
}

type ReportOutput struct {
	Path     string
	Format   string
	Subjects int
}
