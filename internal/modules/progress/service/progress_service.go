package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"lockedin/internal/modules/progress/domain"
	progressout "lockedin/internal/modules/progress/port/out"
	"lockedin/internal/platform/clock"
	"lockedin/internal/platform/logger"
)

// Award is the domain-level outcome of one recorded activity.
type Award struct {
	XPGained        int
	LeveledUp       bool
	NewBadges       []domain.BadgeID
	CompletedQuests []domain.Quest
}

type ProgressService struct {
	mu       sync.Mutex
	clock    clock.Clock
	store    progressout.StateStore
	notifier progressout.Notifier
	perm     func(n int) []int
	log      *zap.Logger
}

func NewProgressService(clk clock.Clock, store progressout.StateStore, notifier progressout.Notifier, log *zap.Logger) *ProgressService {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &ProgressService{
		clock:    clk,
		store:    store,
		notifier: notifier,
		perm:     rand.Perm,
		log:      logger.OrNop(log).Named("progress"),
	}
}

// WithPermutation replaces the quest shuffler, mainly for tests.
func (s *ProgressService) WithPermutation(perm func(n int) []int) *ProgressService {
	s.perm = perm
	return s
}

func (s *ProgressService) RecordSession(ctx context.Context, minutes int, at time.Time, consecutive int) (domain.State, Award, error) {
	return s.mutate(ctx, true, func(st *domain.State, award *Award) {
		day := clock.DateKey(at)
		st.Ledger = st.Ledger.Add(day, minutes)
		st.Stats.SessionsByDay[day]++

		s.grantXP(st, award, domain.SessionXP)
		s.advance(st, award, domain.QuestStudy, minutes)
		s.advance(st, award, domain.QuestFocus, 1)
		s.unlock(st, award, at, domain.SessionBadges(domain.SessionFacts{
			CompletedAt:  at,
			DayMinutes:   st.Ledger[day],
			TotalMinutes: st.Ledger.TotalMinutes(),
			Consecutive:  consecutive,
			MaxStreak:    st.Ledger.MaxStreak(),
		})...)
	})
}

func (s *ProgressService) RecordTaskCompleted(ctx context.Context, at time.Time, datedTasks int) (domain.State, Award, error) {
	return s.mutate(ctx, true, func(st *domain.State, award *Award) {
		day := clock.DateKey(at)
		st.Stats.TasksByDay[day]++
		if datedTasks > st.Stats.DatedTasks {
			st.Stats.DatedTasks = datedTasks
		}
		s.grantXP(st, award, domain.TaskXP)
		s.advance(st, award, domain.QuestTask, 1)
		s.unlock(st, award, at, domain.TaskBadges(st.Stats.TasksByDay[day], st.Stats.DatedTasks)...)
	})
}

func (s *ProgressService) RecordPlanning(ctx context.Context, datedTasks int) (domain.State, Award, error) {
	return s.mutate(ctx, true, func(st *domain.State, award *Award) {
		if datedTasks > st.Stats.DatedTasks {
			st.Stats.DatedTasks = datedTasks
		}
		s.unlock(st, award, s.clock.Now(), domain.TaskBadges(0, st.Stats.DatedTasks)...)
	})
}

// Current loads the state, redrawing an expired quest board.
func (s *ProgressService) Current(ctx context.Context) (domain.State, error) {
	st, _, err := s.mutate(ctx, false, func(*domain.State, *Award) {})
	return st, err
}

func (s *ProgressService) mutate(ctx context.Context, persist bool, fn func(*domain.State, *Award)) (domain.State, Award, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.store.Load(ctx)
	if err != nil {
		return domain.State{}, Award{}, fmt.Errorf("load progress: %w", err)
	}
	st = st.Normalize()
	now := s.clock.Now()
	refreshed := false
	if st.Quests.NeedsRefresh(now) {
		st.Quests = domain.DrawQuests(now, s.perm)
		refreshed = true
	}

	award := Award{}
	fn(&st, &award)

	if persist || refreshed {
		if err := s.store.Save(ctx, st); err != nil {
			return domain.State{}, Award{}, fmt.Errorf("save progress: %w", err)
		}
	}
	s.announce(ctx, st, award)
	return st, award, nil
}

// grantXP awards xp and feeds the xp quests. Quest rewards go through
// grantQuestXP so they never feed the xp quests.
func (s *ProgressService) grantXP(st *domain.State, award *Award, xp int) {
	s.grantQuestXP(st, award, xp)
	s.advance(st, award, domain.QuestXP, xp)
}

func (s *ProgressService) grantQuestXP(st *domain.State, award *Award, xp int) {
	var up bool
	st.Profile, up = st.Profile.AddXP(xp)
	award.XPGained += xp
	award.LeveledUp = award.LeveledUp || up
	s.unlock(st, award, s.clock.Now(), domain.LevelBadges(st.Profile)...)
}

func (s *ProgressService) advance(st *domain.State, award *Award, kind domain.QuestType, amount int) {
	var done []domain.Quest
	st.Quests, done = st.Quests.Advance(kind, amount)
	for _, q := range done {
		award.CompletedQuests = append(award.CompletedQuests, q)
		s.grantQuestXP(st, award, q.XP)
	}
	if len(done) > 0 && st.Quests.AllCompleted() {
		s.unlock(st, award, s.clock.Now(), domain.BadgeProductivityPro)
	}
}

func (s *ProgressService) unlock(st *domain.State, award *Award, at time.Time, ids ...domain.BadgeID) {
	var fresh []domain.BadgeID
	st.Badges, fresh = st.Badges.Unlock(at, ids...)
	award.NewBadges = append(award.NewBadges, fresh...)
}

// announce raises notifications. Failures are logged only.
func (s *ProgressService) announce(ctx context.Context, st domain.State, award Award) {
	if award.XPGained > 0 {
		s.log.Info("xp_awarded", zap.Int("xp", award.XPGained), zap.Int("level", st.Profile.Level))
	}
	if s.notifier == nil {
		return
	}
	if award.LeveledUp {
		body := fmt.Sprintf("Congratulations! You reached Level %d.", st.Profile.Level)
		if err := s.notifier.Notify(ctx, "Level Up!", body); err != nil {
			s.log.Info("level_notify_failed", zap.Error(err))
		}
	}
	for _, id := range award.NewBadges {
		badge, _ := domain.LookupBadge(id)
		s.log.Info("badge_unlocked", zap.String("badge", string(id)))
		if err := s.notifier.Notify(ctx, "Badge Unlocked!", "You earned: "+badge.Name); err != nil {
			s.log.Info("badge_notify_failed", zap.Error(err))
		}
	}
}
