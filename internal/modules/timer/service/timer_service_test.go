package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	timerout "lockedin/internal/modules/timer/adapter/out"
	"lockedin/internal/modules/timer/domain"
	"lockedin/internal/modules/timer/service"
	"lockedin/internal/platform/kvstore"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type manualTicks struct {
	mu      sync.Mutex
	running bool
	starts  int
	stops   int
}

func (m *manualTicks) Start(time.Duration, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = true
	m.starts++
}

func (m *manualTicks) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	m.stops++
}

func (m *manualTicks) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

type countingRecorder struct {
	mu    sync.Mutex
	calls []domain.Completion
	err   error
}

func (r *countingRecorder) RecordCompletion(_ context.Context, c domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	return r.err
}

type fakeNotifier struct {
	ready  int
	titles []string
}

func (n *fakeNotifier) Ready(context.Context) error {
	n.ready++
	return nil
}

func (n *fakeNotifier) Notify(_ context.Context, title, _ string) error {
	n.titles = append(n.titles, title)
	return nil
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("session-%d", s.n)
}

type harness struct {
	svc      *service.TimerService
	clock    *manualClock
	ticks    *manualTicks
	recorder *countingRecorder
	notifier *fakeNotifier
}

func newHarness(store kvstore.Store, clk *manualClock, recorder *countingRecorder) harness {
	h := harness{clock: clk, ticks: &manualTicks{}, recorder: recorder, notifier: &fakeNotifier{}}
	h.svc = service.NewTimerService(service.Dependencies{
		Clock:          clk,
		IDs:            &seqID{},
		Store:          timerout.NewKVStateStore(store),
		Ticks:          h.ticks,
		Recorder:       recorder,
		Notifier:       h.notifier,
		DefaultMinutes: 25,
	})
	return h
}

var start = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

func TestStartRunsPulseAndAsksForNotificationsOnce(t *testing.T) {
	t.Parallel()
	h := newHarness(kvstore.NewMemoryStore(), &manualClock{now: start}, &countingRecorder{})

	res := h.svc.Start(context.Background())
	if !res.State.Running || res.State.RemainingSeconds != 1500 {
		t.Fatalf("expected running 1500s timer, got %+v", res.State)
	}
	if !h.ticks.Running() {
		t.Fatalf("expected pulse started")
	}
	h.svc.Pause(context.Background())
	if h.ticks.Running() {
		t.Fatalf("expected pulse stopped on pause")
	}
	h.svc.Start(context.Background())
	if h.notifier.ready != 1 {
		t.Fatalf("expected one permission request, got %d", h.notifier.ready)
	}
}

func TestCompletionSideEffectsRunOnce(t *testing.T) {
	t.Parallel()
	recorder := &countingRecorder{}
	clk := &manualClock{now: start}
	h := newHarness(kvstore.NewMemoryStore(), clk, recorder)

	h.svc.Start(context.Background())
	clk.Advance(25*time.Minute + 3*time.Second)
	res := h.svc.Tick(context.Background())
	if res.State.Status != domain.StatusComplete || res.State.RemainingSeconds != 0 {
		t.Fatalf("expected completion, got %+v", res.State)
	}
	if !domain.HasEvent(res.Events, domain.EventCompleted) {
		t.Fatalf("expected completed event, got %+v", res.Events)
	}
	for i := 0; i < 3; i++ {
		h.svc.Tick(context.Background())
	}
	if len(recorder.calls) != 1 {
		t.Fatalf("expected one recorded completion, got %d", len(recorder.calls))
	}
	if recorder.calls[0].Minutes != 25 {
		t.Fatalf("expected 25 minutes credited, got %d", recorder.calls[0].Minutes)
	}
	if len(h.notifier.titles) != 1 || h.notifier.titles[0] != "Session Complete!" {
		t.Fatalf("unexpected notifications: %v", h.notifier.titles)
	}
	if h.ticks.Running() {
		t.Fatalf("expected pulse stopped after completion")
	}
}

func TestRecorderFailureBecomesWarning(t *testing.T) {
	t.Parallel()
	recorder := &countingRecorder{err: errors.New("disk full")}
	clk := &manualClock{now: start}
	h := newHarness(kvstore.NewMemoryStore(), clk, recorder)

	h.svc.Start(context.Background())
	clk.Advance(26 * time.Minute)
	res := h.svc.Tick(context.Background())
	if res.State.Status != domain.StatusComplete {
		t.Fatalf("expected completion despite recorder failure, got %s", res.State.Status)
	}
	if res.Warning == "" {
		t.Fatalf("expected warning")
	}
}

func TestTwoSurfacesShareOneTimer(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemoryStore()
	clk := &manualClock{now: start}
	recorder := &countingRecorder{}
	popup := newHarness(store, clk, recorder)
	dashboard := newHarness(store, clk, recorder)

	popup.svc.Start(context.Background())
	clk.Advance(10 * time.Minute)

	synced := dashboard.svc.Resync(context.Background())
	if !synced.State.Running || synced.State.RemainingSeconds != 900 {
		t.Fatalf("expected dashboard to see 900s running, got %+v", synced.State)
	}
	if !dashboard.ticks.Running() {
		t.Fatalf("expected dashboard pulse after resync")
	}

	dashboard.svc.Pause(context.Background())
	paused := popup.svc.Tick(context.Background())
	if paused.State.Running {
		t.Fatalf("expected popup to observe pause")
	}
	if popup.ticks.Running() {
		t.Fatalf("expected popup pulse stopped after observing pause")
	}

	popup.svc.Start(context.Background())
	clk.Advance(16 * time.Minute)
	popup.svc.Tick(context.Background())
	dashboard.svc.Tick(context.Background())
	if len(recorder.calls) != 1 {
		t.Fatalf("expected a single completion across surfaces, got %d", len(recorder.calls))
	}
}

// barrierStore holds the next n reads of the timer key until all n have
// arrived, so concurrent operations all start from the same stored state.
type barrierStore struct {
	*kvstore.MemoryStore
	mu      sync.Mutex
	waiting int
	release chan struct{}
}

func (b *barrierStore) hold(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.waiting = n
	b.release = make(chan struct{})
}

func (b *barrierStore) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	release := b.release
	if key == kvstore.KeyTimer && b.waiting > 0 {
		b.waiting--
		if b.waiting == 0 {
			close(release)
		}
		b.mu.Unlock()
		<-release
	} else {
		b.mu.Unlock()
	}
	return b.MemoryStore.Get(ctx, key)
}

func TestConcurrentTicksCompleteOnce(t *testing.T) {
	t.Parallel()
	store := &barrierStore{MemoryStore: kvstore.NewMemoryStore()}
	clk := &manualClock{now: start}
	recorder := &countingRecorder{}
	first := newHarness(store, clk, recorder)
	second := newHarness(store, clk, recorder)

	first.svc.Start(context.Background())
	clk.Advance(26 * time.Minute)
	store.hold(2)

	var wg sync.WaitGroup
	results := make([]service.Result, 2)
	for i, h := range []harness{first, second} {
		wg.Add(1)
		go func(i int, h harness) {
			defer wg.Done()
			results[i] = h.svc.Tick(context.Background())
		}(i, h)
	}
	wg.Wait()

	recorder.mu.Lock()
	calls := len(recorder.calls)
	recorder.mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected one recorded completion across processes, got %d", calls)
	}
	completed := 0
	for _, res := range results {
		if res.State.Status != domain.StatusComplete || res.State.Running {
			t.Fatalf("expected both to settle on the completed state, got %+v", res.State)
		}
		if domain.HasEvent(res.Events, domain.EventCompleted) {
			completed++
		}
	}
	if completed != 1 {
		t.Fatalf("expected exactly one completed event, got %d", completed)
	}
	if got := len(first.notifier.titles) + len(second.notifier.titles); got != 1 {
		t.Fatalf("expected one completion notification, got %d", got)
	}
}

func TestChangePresetRejectedWhileRunning(t *testing.T) {
	t.Parallel()
	h := newHarness(kvstore.NewMemoryStore(), &manualClock{now: start}, &countingRecorder{})

	h.svc.Start(context.Background())
	res, err := h.svc.ChangePreset(context.Background(), 50)
	if err != nil {
		t.Fatalf("change preset: %v", err)
	}
	if res.State.PresetMinutes != 25 || res.State.RemainingSeconds != 1500 {
		t.Fatalf("expected preset untouched while running, got %+v", res.State)
	}
	if _, err := h.svc.ChangePreset(context.Background(), 0); !errors.Is(err, domain.ErrInvalidPreset) {
		t.Fatalf("expected invalid preset, got %v", err)
	}
}

func TestSubscribersSeeEveryResult(t *testing.T) {
	t.Parallel()
	h := newHarness(kvstore.NewMemoryStore(), &manualClock{now: start}, &countingRecorder{})

	var seen []bool
	unsubscribe := h.svc.Subscribe(func(res service.Result) {
		seen = append(seen, res.State.Running)
	})
	h.svc.Start(context.Background())
	h.svc.Pause(context.Background())
	unsubscribe()
	h.svc.Start(context.Background())
	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Fatalf("unexpected subscription results: %v", seen)
	}
}
