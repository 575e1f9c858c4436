package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"lockedin/internal/modules/timer/domain"
	timerout "lockedin/internal/modules/timer/port/out"
	"lockedin/internal/platform/clock"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/id"
	"lockedin/internal/platform/logger"
)

const TickInterval = time.Second

// Result is the outcome of one timer operation.
type Result struct {
	State   domain.State
	Events  []domain.Event
	Warning string
}

type Listener func(Result)

type Dependencies struct {
	Clock          clock.Clock
	IDs            id.Generator
	Store          timerout.StateStore
	Ticks          timerout.TickSource
	Recorder       timerout.CompletionRecorder
	Notes          timerout.SessionNoteStore
	Notifier       timerout.Notifier
	Logger         *zap.Logger
	DefaultMinutes int
}

// TimerService is the single owner of the timer state. The persisted state
// is reloaded before every operation so several surfaces can drive one
// timer.
type TimerService struct {
	mu        sync.Mutex
	deps      Dependencies
	log       *zap.Logger
	state     domain.State
	ticking   bool
	listeners map[int]Listener
	nextID    int
}

func NewTimerService(deps Dependencies) *TimerService {
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.IDs == nil {
		deps.IDs = id.UUID{}
	}
	return &TimerService{
		deps:      deps,
		log:       logger.OrNop(deps.Logger).Named("timer"),
		state:     domain.NewState(deps.DefaultMinutes),
		listeners: map[int]Listener{},
	}
}

// Subscribe registers fn for every operation result. The returned func
// removes it.
func (s *TimerService) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.nextID
	s.nextID++
	s.listeners[key] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, key)
	}
}

func (s *TimerService) Start(ctx context.Context) Result {
	return s.apply(ctx, func(st domain.State, now time.Time) (domain.State, []domain.Event, error) {
		next, events := st.Start(now, s.deps.IDs.New())
		return next, events, nil
	})
}

func (s *TimerService) Pause(ctx context.Context) Result {
	return s.apply(ctx, func(st domain.State, now time.Time) (domain.State, []domain.Event, error) {
		next, events := st.Pause(now)
		return next, events, nil
	})
}

func (s *TimerService) Reset(ctx context.Context, seconds int) Result {
	return s.apply(ctx, func(st domain.State, now time.Time) (domain.State, []domain.Event, error) {
		next, events := st.Reset(now, seconds)
		return next, events, nil
	})
}

func (s *TimerService) Tick(ctx context.Context) Result {
	return s.apply(ctx, func(st domain.State, now time.Time) (domain.State, []domain.Event, error) {
		next, events := st.Tick(now)
		return next, events, nil
	})
}

func (s *TimerService) ChangePreset(ctx context.Context, minutes int) (Result, error) {
	var presetErr error
	res := s.apply(ctx, func(st domain.State, now time.Time) (domain.State, []domain.Event, error) {
		next, events, err := st.ChangePreset(now, minutes)
		presetErr = err
		return next, events, err
	})
	return res, presetErr
}

// Resync reloads the persisted state and recomputes remaining time. A
// running timer without a local pulse gets one.
func (s *TimerService) Resync(ctx context.Context) Result {
	return s.Tick(ctx)
}

// saveAttempts bounds how often apply recomputes an operation after another
// process won the write.
const saveAttempts = 3

func (s *TimerService) apply(ctx context.Context, op func(domain.State, time.Time) (domain.State, []domain.Event, error)) Result {
	s.mu.Lock()
	var (
		warnings []string
		events   []domain.Event
	)
	for attempt := 1; ; attempt++ {
		if err := s.reload(ctx); err != nil {
			warnings = append(warnings, "timer state unavailable, using last known state")
			s.log.Warn("timer_state_load_failed", zap.Error(err))
		}

		next, evs, err := op(s.state, s.deps.Clock.Now())
		if err != nil {
			res := Result{State: s.state}
			s.mu.Unlock()
			return res
		}
		if len(evs) == 0 || onlyTicked(evs) {
			s.state, events = next, evs
			break
		}

		saved, err := s.save(ctx, next)
		if errors.Is(err, apperrors.ErrConflict) {
			if attempt < saveAttempts {
				s.log.Debug("timer_state_conflict", zap.Int("attempt", attempt))
				continue
			}
			// Another process keeps winning; its write carries the side
			// effects, so ours are dropped.
			warnings = append(warnings, "timer changed elsewhere, try again")
			s.log.Warn("timer_state_conflict", zap.Int("attempts", attempt))
			_ = s.reload(ctx)
			break
		}
		if err != nil {
			warnings = append(warnings, "could not save timer state")
			s.log.Warn("timer_state_save_failed", zap.Error(err))
			saved = next
		}
		s.state, events = saved, evs
		break
	}

	warnings = append(warnings, s.handleEvents(ctx, events)...)
	s.ensurePulse()

	res := Result{State: s.state, Events: events}
	if len(warnings) > 0 {
		res.Warning = warnings[0]
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(res)
	}
	return res
}

func (s *TimerService) reload(ctx context.Context) error {
	if s.deps.Store == nil {
		return nil
	}
	loaded, err := s.deps.Store.LoadState(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.state.Revision = 0
			return nil
		}
		return err
	}
	s.state = loaded.Normalize()
	return nil
}

func (s *TimerService) save(ctx context.Context, next domain.State) (domain.State, error) {
	if s.deps.Store == nil {
		return next, nil
	}
	return s.deps.Store.SaveState(ctx, next)
}

// handleEvents runs the side effects. None of their failures change the
// timer state; they come back as warnings.
func (s *TimerService) handleEvents(ctx context.Context, events []domain.Event) []string {
	var warnings []string
	for _, event := range events {
		switch event.Kind {
		case domain.EventTicksStarted:
			s.startPulse()
		case domain.EventTicksStopped:
			s.stopPulse()
		case domain.EventPermissionRequested:
			if s.deps.Notifier != nil {
				if err := s.deps.Notifier.Ready(ctx); err != nil {
					s.log.Info("notifications_unavailable", zap.Error(err))
				}
			}
		case domain.EventStarted:
			s.log.Info("timer_started", zap.String("session_id", s.state.SessionID), zap.Int("remaining", event.Remaining))
		case domain.EventPaused:
			s.log.Info("timer_paused", zap.Int("remaining", event.Remaining))
		case domain.EventReset:
			s.log.Info("timer_reset", zap.Int("duration", event.Remaining))
		case domain.EventCompleted:
			warnings = append(warnings, s.complete(ctx, event)...)
		}
	}
	return warnings
}

func (s *TimerService) complete(ctx context.Context, event domain.Event) []string {
	completion := s.state.Completion()
	s.log.Info("timer_completed",
		zap.String("session_id", completion.SessionID),
		zap.Int("minutes", completion.Minutes),
		zap.Int("session_count", completion.SessionCount),
	)
	var warnings []string
	if s.deps.Recorder != nil {
		if err := s.deps.Recorder.RecordCompletion(ctx, completion); err != nil {
			warnings = append(warnings, "could not record session progress")
			s.log.Warn("completion_record_failed", zap.Error(err))
		}
	}
	if s.deps.Notes != nil {
		path, err := s.deps.Notes.Save(ctx, completion)
		if err != nil {
			warnings = append(warnings, "could not write session note")
			s.log.Warn("session_note_failed", zap.Error(err))
		} else {
			s.log.Debug("session_note_written", zap.String("path", path))
		}
	}
	if s.deps.Notifier != nil {
		body := fmt.Sprintf("%d minute session done. Time for a break!", event.Minutes)
		if err := s.deps.Notifier.Notify(ctx, "Session Complete!", body); err != nil {
			s.log.Info("completion_notify_failed", zap.Error(err))
		}
	}
	return warnings
}

// ensurePulse keeps the local pulse in step with a state that another
// process may have started or stopped.
func (s *TimerService) ensurePulse() {
	switch {
	case s.state.Running && !s.ticking:
		s.startPulse()
	case !s.state.Running && s.ticking:
		s.stopPulse()
	}
}

func (s *TimerService) startPulse() {
	if s.deps.Ticks == nil {
		return
	}
	s.deps.Ticks.Start(TickInterval, func() { s.Tick(context.Background()) })
	s.ticking = true
}

func (s *TimerService) stopPulse() {
	if s.deps.Ticks == nil {
		return
	}
	s.deps.Ticks.Stop()
	s.ticking = false
}

func onlyTicked(events []domain.Event) bool {
	for _, e := range events {
		if e.Kind != domain.EventTicked {
			return false
		}
	}
	return true
}
