package usecase

import (
	"context"
	"sort"

	"lockedin/internal/modules/progress/domain"
	"lockedin/internal/modules/progress/dto"
	progressin "lockedin/internal/modules/progress/port/in"
	"lockedin/internal/modules/progress/service"
	"lockedin/internal/platform/clock"
)

const heatmapDays = 84

type Interactor struct {
	svc   *service.ProgressService
	clock clock.Clock
}

func NewInteractor(svc *service.ProgressService, clk clock.Clock) progressin.Usecase {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{svc: svc, clock: clk}
}

func (i *Interactor) RecordSession(ctx context.Context, input dto.SessionInput) (dto.Outcome, error) {
	at := input.CompletedAt
	if at.IsZero() {
		at = i.clock.Now()
	}
	if input.Minutes <= 0 {
		return dto.Outcome{}, nil
	}
	st, award, err := i.svc.RecordSession(ctx, input.Minutes, at, input.Consecutive)
	if err != nil {
		return dto.Outcome{}, err
	}
	return outcome(st, award), nil
}

func (i *Interactor) RecordTaskCompleted(ctx context.Context, input dto.TaskInput) (dto.Outcome, error) {
	at := input.CompletedAt
	if at.IsZero() {
		at = i.clock.Now()
	}
	st, award, err := i.svc.RecordTaskCompleted(ctx, at, input.DatedTasks)
	if err != nil {
		return dto.Outcome{}, err
	}
	return outcome(st, award), nil
}

func (i *Interactor) RecordPlanning(ctx context.Context, datedTasks int) (dto.Outcome, error) {
	st, award, err := i.svc.RecordPlanning(ctx, datedTasks)
	if err != nil {
		return dto.Outcome{}, err
	}
	return outcome(st, award), nil
}

func (i *Interactor) Dashboard(ctx context.Context) (dto.Dashboard, error) {
	st, err := i.svc.Current(ctx)
	if err != nil {
		return dto.Dashboard{}, err
	}
	now := i.clock.Now()
	today := clock.DateKey(now)

	out := dto.Dashboard{
		Level:           st.Profile.Level,
		XP:              st.Profile.XP,
		NextLevelXP:     st.Profile.NextLevelXP(),
		Rank:            st.Profile.Rank(),
		TotalMinutes:    st.Ledger.TotalMinutes(),
		ActiveDays:      st.Ledger.ActiveDays(),
		MaxStreak:       st.Ledger.MaxStreak(),
		CurrentStreak:   st.Ledger.CurrentStreak(now),
		TodayMinutes:    st.Ledger[today],
		SessionsToday:   st.Stats.SessionsByDay[today],
		TasksToday:      st.Stats.TasksByDay[today],
		QuestsRefreshIn: st.Quests.RefreshIn(now),
		Quote:           domain.QuoteOfTheDay(now),
	}
	for _, cell := range st.Ledger.Heatmap(now, heatmapDays) {
		out.Heatmap = append(out.Heatmap, dto.HeatCell{Day: cell.Day, Minutes: cell.Minutes, Level: cell.Level})
	}
	for _, b := range domain.Catalog {
		at, ok := st.Badges[b.ID]
		item := badgeOutput(b)
		item.Unlocked = ok
		item.UnlockedAt = at
		out.Badges = append(out.Badges, item)
	}
	for _, q := range st.Quests.Quests {
		out.Quests = append(out.Quests, questOutput(q))
	}
	return out, nil
}

func outcome(st domain.State, award service.Award) dto.Outcome {
	out := dto.Outcome{XPGained: award.XPGained, LeveledUp: award.LeveledUp, Level: st.Profile.Level}
	badges := append([]domain.BadgeID(nil), award.NewBadges...)
	sort.Slice(badges, func(a, b int) bool { return badges[a] < badges[b] })
	for _, id := range badges {
		b, ok := domain.LookupBadge(id)
		if !ok {
			continue
		}
		item := badgeOutput(b)
		item.Unlocked = true
		item.UnlockedAt = st.Badges[id]
		out.NewBadges = append(out.NewBadges, item)
	}
	for _, q := range award.CompletedQuests {
		out.CompletedQuests = append(out.CompletedQuests, questOutput(q))
	}
	return out
}

func badgeOutput(b domain.Badge) dto.BadgeOutput {
	return dto.BadgeOutput{ID: string(b.ID), Icon: b.Icon, Name: b.Name, Description: b.Description}
}

func questOutput(q domain.Quest) dto.QuestOutput {
	return dto.QuestOutput{
		Text:      q.Text,
		Type:      string(q.Type),
		Target:    q.Target,
		Progress:  q.Progress,
		XP:        q.XP,
		Completed: q.Completed,
	}
}
