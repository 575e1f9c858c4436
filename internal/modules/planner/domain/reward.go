package domain

// Reward is what the progress tracker granted for a planner action.
type Reward struct {
	XP        int
	LeveledUp bool
	Level     int
	Badges    []string
}
