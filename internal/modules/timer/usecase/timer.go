package usecase

import (
	"context"
	"sync"

	"lockedin/internal/modules/timer/domain"
	timerdto "lockedin/internal/modules/timer/dto"
	timerin "lockedin/internal/modules/timer/port/in"
	"lockedin/internal/modules/timer/service"
	"lockedin/internal/platform/clock"
)

type Interactor struct {
	svc     *service.TimerService
	clock   clock.Clock
	presets []int
}

func NewInteractor(svc *service.TimerService, clk clock.Clock, presets []int) timerin.Usecase {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if len(presets) == 0 {
		presets = []int{domain.DefaultPresetMinutes}
	}
	return &Interactor{svc: svc, clock: clk, presets: presets}
}

func (i *Interactor) Start(ctx context.Context) (timerdto.Snapshot, error) {
	return i.snapshot(i.svc.Start(ctx)), nil
}

func (i *Interactor) Pause(ctx context.Context) (timerdto.Snapshot, error) {
	return i.snapshot(i.svc.Pause(ctx)), nil
}

func (i *Interactor) Reset(ctx context.Context, minutes int) (timerdto.Snapshot, error) {
	if minutes < 0 || minutes > domain.MaxPresetMinutes {
		return timerdto.Snapshot{}, domain.ErrInvalidPreset
	}
	return i.snapshot(i.svc.Reset(ctx, minutes*60)), nil
}

func (i *Interactor) Tick(ctx context.Context) (timerdto.Snapshot, error) {
	return i.snapshot(i.svc.Tick(ctx)), nil
}

func (i *Interactor) ChangePreset(ctx context.Context, minutes int) (timerdto.Snapshot, error) {
	res, err := i.svc.ChangePreset(ctx, minutes)
	if err != nil {
		return timerdto.Snapshot{}, err
	}
	snap := i.snapshot(res)
	if res.State.Running && snap.Warning == "" {
		snap.Warning = "pause the timer to change preset"
	}
	return snap, nil
}

func (i *Interactor) Resync(ctx context.Context) (timerdto.Snapshot, error) {
	return i.snapshot(i.svc.Resync(ctx)), nil
}

func (i *Interactor) Presets() []int {
	return append([]int(nil), i.presets...)
}

// Watch streams the newest snapshot after every timer operation. The channel
// is closed once ctx is done.
func (i *Interactor) Watch(ctx context.Context) <-chan timerdto.Snapshot {
	ch := make(chan timerdto.Snapshot, 1)
	var (
		mu     sync.Mutex
		closed bool
	)
	unsubscribe := i.svc.Subscribe(func(res service.Result) {
		snap := i.snapshot(res)
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- snap:
		default:
			// drop the stale snapshot and keep the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	})
	go func() {
		<-ctx.Done()
		unsubscribe()
		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()
	return ch
}

func (i *Interactor) snapshot(res service.Result) timerdto.Snapshot {
	st := res.State
	now := i.clock.Now()
	remaining := st.RemainingAt(now)
	return timerdto.Snapshot{
		SessionID:           st.SessionID,
		RemainingSeconds:    remaining,
		DurationSeconds:     st.DurationSeconds,
		Running:             st.Running,
		Status:              string(st.Status),
		Label:               st.Label(),
		Clock:               domain.FormatClock(remaining),
		Progress:            st.Progress(now),
		PresetMinutes:       st.PresetMinutes,
		SessionCount:        st.SessionCount,
		ConsecutiveSessions: st.ConsecutiveSessions,
		Deadline:            st.Deadline,
		Completed:           domain.HasEvent(res.Events, domain.EventCompleted),
		Warning:             res.Warning,
	}
}
