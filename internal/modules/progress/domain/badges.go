package domain

import "time"

type BadgeID string

const (
	BadgeNightOwl         BadgeID = "night_owl"
	BadgeEarlyBird        BadgeID = "early_bird"
	BadgeTaskSlayer       BadgeID = "task_slayer"
	BadgeWeekendWarrior   BadgeID = "weekend_warrior"
	BadgeStreakMaster     BadgeID = "streak_master"
	BadgeFocusNinja       BadgeID = "focus_ninja"
	BadgeScholarKing      BadgeID = "scholar_king"
	BadgeProductivityPro  BadgeID = "productivity_pro"
	BadgeZenMaster        BadgeID = "zen_master"
	BadgeMasterPlanner    BadgeID = "master_planner"
	BadgeConsistentLegend BadgeID = "consistent_legend"
	BadgeMarathoner       BadgeID = "marathoner"
)

type Badge struct {
	ID          BadgeID
	Icon        string
	Name        string
	Description string
}

var Catalog = []Badge{
	{BadgeNightOwl, "🦉", "Night Owl", "Complete a session after 10 PM"},
	{BadgeEarlyBird, "🌅", "Early Bird", "Complete a session before 6 AM"},
	{BadgeTaskSlayer, "⚔️", "Task Slayer", "Complete 5 tasks in one day"},
	{BadgeWeekendWarrior, "🏰", "Weekend Warrior", "Study on a weekend"},
	{BadgeStreakMaster, "🔥", "Streak 3 Days", "Reach a 3-day streak"},
	{BadgeFocusNinja, "🥷", "Focus Ninja", "Complete 3 focus sessions in a row"},
	{BadgeScholarKing, "👑", "Scholar King", "Reach Level 10"},
	{BadgeProductivityPro, "⚡", "Productivity Pro", "Complete all daily quests"},
	{BadgeZenMaster, "🧠", "Zen Master", "Study for 100 total minutes"},
	{BadgeMasterPlanner, "📅", "Master Planner", "Add 10 deadlines"},
	{BadgeConsistentLegend, "💎", "Consistent Legend", "Reach a 7-day streak"},
	{BadgeMarathoner, "🏃", "Study Marathon", "Study for 3 hours in one day"},
}

func LookupBadge(id BadgeID) (Badge, bool) {
	for _, b := range Catalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// Unlocked maps a badge to the instant it was earned.
type Unlocked map[BadgeID]time.Time

// Unlock records ids that are not yet earned and returns the new ones.
func (u Unlocked) Unlock(at time.Time, ids ...BadgeID) (Unlocked, []BadgeID) {
	out := make(Unlocked, len(u)+len(ids))
	for k, v := range u {
		out[k] = v
	}
	var fresh []BadgeID
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		if _, known := LookupBadge(id); !known {
			continue
		}
		out[id] = at
		fresh = append(fresh, id)
	}
	return out, fresh
}

// SessionFacts is what the session badges look at.
type SessionFacts struct {
	CompletedAt  time.Time
	DayMinutes   int
	TotalMinutes int
	Consecutive  int
	MaxStreak    int
}

func SessionBadges(f SessionFacts) []BadgeID {
	var ids []BadgeID
	hour := f.CompletedAt.Hour()
	if hour >= 22 {
		ids = append(ids, BadgeNightOwl)
	}
	if hour < 6 {
		ids = append(ids, BadgeEarlyBird)
	}
	if wd := f.CompletedAt.Weekday(); wd == time.Saturday || wd == time.Sunday {
		ids = append(ids, BadgeWeekendWarrior)
	}
	if f.MaxStreak >= 3 {
		ids = append(ids, BadgeStreakMaster)
	}
	if f.MaxStreak >= 7 {
		ids = append(ids, BadgeConsistentLegend)
	}
	if f.Consecutive >= 3 {
		ids = append(ids, BadgeFocusNinja)
	}
	if f.TotalMinutes >= 100 {
		ids = append(ids, BadgeZenMaster)
	}
	if f.DayMinutes >= 180 {
		ids = append(ids, BadgeMarathoner)
	}
	return ids
}

func LevelBadges(p Profile) []BadgeID {
	if p.Level >= 10 {
		return []BadgeID{BadgeScholarKing}
	}
	return nil
}

func TaskBadges(tasksToday, datedTasks int) []BadgeID {
	var ids []BadgeID
	if tasksToday >= 5 {
		ids = append(ids, BadgeTaskSlayer)
	}
	if datedTasks >= 10 {
		ids = append(ids, BadgeMasterPlanner)
	}
	return ids
}
