package dto

import "time"

type SessionInput struct {
	Minutes     int
	CompletedAt time.Time
	Consecutive int
}

type TaskInput struct {
	CompletedAt time.Time
	DatedTasks  int
}

type BadgeOutput struct {
	ID          string
	Icon        string
	Name        string
	Description string
	Unlocked    bool
	UnlockedAt  time.Time
}

type QuestOutput struct {
	Text      string
	Type      string
	Target    int
	Progress  int
	XP        int
	Completed bool
}

// Outcome reports what one recorded activity earned.
type Outcome struct {
	XPGained        int
	LeveledUp       bool
	Level           int
	NewBadges       []BadgeOutput
	CompletedQuests []QuestOutput
}

type HeatCell struct {
	Day     string
	Minutes int
	Level   int
}

type Dashboard struct {
	Level           int
	XP              int
	NextLevelXP     int
	Rank            string
	TotalMinutes    int
	ActiveDays      int
	MaxStreak       int
	CurrentStreak   int
	TodayMinutes    int
	SessionsToday   int
	TasksToday      int
	Heatmap         []HeatCell
	Badges          []BadgeOutput
	Quests          []QuestOutput
	QuestsRefreshIn time.Duration
	Quote           string
}
