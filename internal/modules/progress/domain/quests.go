package domain

import (
	"fmt"
	"time"
)

const (
	QuestsPerBoard  = 3
	QuestRefreshAge = 12 * time.Hour
)

type QuestType string

const (
	QuestStudy QuestType = "study"
	QuestTask  QuestType = "task"
	QuestXP    QuestType = "xp"
	QuestFocus QuestType = "focus"
)

type QuestTemplate struct {
	ID     string
	Text   string
	Type   QuestType
	Target int
	XP     int
}

var QuestTemplates = []QuestTemplate{
	{"study-25", "Study for 25 mins", QuestStudy, 25, 50},
	{"task-2", "Complete 2 Tasks", QuestTask, 2, 40},
	{"xp-100", "Earn 100 XP", QuestXP, 100, 30},
	{"focus-1", "Focus for 1 session", QuestFocus, 1, 40},
	{"study-50", "Study for 50 mins", QuestStudy, 50, 100},
	{"task-4", "Complete 4 Tasks", QuestTask, 4, 80},
	{"xp-200", "Earn 200 XP", QuestXP, 200, 60},
}

type Quest struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Type      QuestType `json:"type"`
	Target    int       `json:"target"`
	XP        int       `json:"xp"`
	Progress  int       `json:"progress"`
	Completed bool      `json:"completed"`
}

type QuestBoard struct {
	Quests      []Quest   `json:"quests"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

func (b QuestBoard) NeedsRefresh(now time.Time) bool {
	return b.RefreshedAt.IsZero() || len(b.Quests) == 0 || now.Sub(b.RefreshedAt) > QuestRefreshAge
}

// RefreshIn is the time left before the board is redrawn.
func (b QuestBoard) RefreshIn(now time.Time) time.Duration {
	left := QuestRefreshAge - now.Sub(b.RefreshedAt)
	if left < 0 {
		return 0
	}
	return left
}

// DrawQuests picks distinct templates. perm must return a permutation of
// [0,n), as rand.Perm does.
func DrawQuests(now time.Time, perm func(n int) []int) QuestBoard {
	order := perm(len(QuestTemplates))
	board := QuestBoard{RefreshedAt: now}
	for i := 0; i < QuestsPerBoard && i < len(order); i++ {
		t := QuestTemplates[order[i]]
		board.Quests = append(board.Quests, Quest{
			ID:     fmt.Sprintf("%s-%d", t.ID, now.Unix()),
			Text:   t.Text,
			Type:   t.Type,
			Target: t.Target,
			XP:     t.XP,
		})
	}
	return board
}

// Advance adds amount to every open quest of type kind and returns the
// quests it completed.
func (b QuestBoard) Advance(kind QuestType, amount int) (QuestBoard, []Quest) {
	if amount <= 0 {
		return b, nil
	}
	out := QuestBoard{RefreshedAt: b.RefreshedAt, Quests: make([]Quest, len(b.Quests))}
	copy(out.Quests, b.Quests)
	var done []Quest
	for i := range out.Quests {
		q := &out.Quests[i]
		if q.Completed || q.Type != kind {
			continue
		}
		q.Progress += amount
		if q.Progress >= q.Target {
			q.Progress = q.Target
			q.Completed = true
			done = append(done, *q)
		}
	}
	return out, done
}

func (b QuestBoard) AllCompleted() bool {
	if len(b.Quests) == 0 {
		return false
	}
	for _, q := range b.Quests {
		if !q.Completed {
			return false
		}
	}
	return true
}
