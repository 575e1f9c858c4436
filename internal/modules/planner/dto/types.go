package dto

type TaskView struct {
	Position int
	ID       string
	Text     string
	Due      string
	// DueLabel is Overdue, Today, Tomorrow or "In N days"; empty when undated.
	DueLabel string
	DaysLeft int
	Priority string
	Done     bool
}

type Board struct {
	Tasks          []TaskView
	Upcoming       []TaskView
	Total          int
	Done           int
	CompletionRate int
}

type AddTaskInput struct {
	Text string
	// Due accepts ISO dates or phrases like "next friday".
	Due      string
	Priority string
}

type Reward struct {
	XP        int
	LeveledUp bool
	Level     int
	Badges    []string
}

// TaskOutcome is a task change plus anything it earned. Warning reports a
// progress update that could not be recorded.
type TaskOutcome struct {
	Task    TaskView
	Reward  Reward
	Warning string
}

type ExamView struct {
	Position int
	ID       string
	Name     string
	Date     string
	DaysLeft int
	Label    string
}

type AddLabInput struct {
	Name   string
	Due    string
	Link   string
	Status string
}

type LabView struct {
	Position int
	ID       string
	Name     string
	DueDate  string
	Link     string
	Status   string
}

type LabBoard struct {
	Items     []LabView
	Pending   []LabView
	Total     int
	Completed int
	Percent   int
}
