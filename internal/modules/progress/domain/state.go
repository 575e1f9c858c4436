package domain

// Stats holds the counters the badges and the coach read.
type Stats struct {
	TasksByDay    map[string]int `json:"tasks_by_day"`
	SessionsByDay map[string]int `json:"sessions_by_day"`
	DatedTasks    int            `json:"dated_tasks"`
}

// State is the whole gamification record of one user.
type State struct {
	Profile Profile
	Ledger  Ledger
	Badges  Unlocked
	Quests  QuestBoard
	Stats   Stats
}

func NewState() State {
	return State{
		Profile: NewProfile(),
		Ledger:  Ledger{},
		Badges:  Unlocked{},
		Stats:   Stats{TasksByDay: map[string]int{}, SessionsByDay: map[string]int{}},
	}
}

// Normalize fills maps left nil by storage.
func (s State) Normalize() State {
	if s.Profile.Level < 1 {
		s.Profile.Level = 1
	}
	if s.Ledger == nil {
		s.Ledger = Ledger{}
	}
	if s.Badges == nil {
		s.Badges = Unlocked{}
	}
	if s.Stats.TasksByDay == nil {
		s.Stats.TasksByDay = map[string]int{}
	}
	if s.Stats.SessionsByDay == nil {
		s.Stats.SessionsByDay = map[string]int{}
	}
	return s
}
