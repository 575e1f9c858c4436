package out

import (
	"sync"
	"time"

	timerout "lockedin/internal/modules/timer/port/out"
)

// TickerSource drives the timer from a time.Ticker goroutine.
type TickerSource struct {
	mu   sync.Mutex
	stop chan struct{}
}

func NewTickerSource() timerout.TickSource {
	return &TickerSource{}
}

func (t *TickerSource) Start(interval time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
	}
	stop := make(chan struct{})
	t.stop = stop
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}()
}

// Stop signals the loop and returns at once. A pulse already in flight may
// still arrive.
func (t *TickerSource) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}
