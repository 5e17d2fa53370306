package session

import (
	"sync"
	"time"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// Timer is a cancellable periodic callback armed by the game.
type Timer interface {
	// Stop cancels the timer. After Stop returns the callback is not
	// invoked again. Stop is idempotent.
	Stop()
}

// TimerFactory arms a timer that calls fire every interval.
type TimerFactory func(interval time.Duration, fire func()) Timer

// IntervalTimer fires from its own goroutine on a time.Ticker.
type IntervalTimer struct {
	stop chan struct{}
	once sync.Once
	done chan struct{}
}

// NewIntervalTimer starts a ticker goroutine calling fire every interval.
func NewIntervalTimer(interval time.Duration, fire func()) Timer {
	t := &IntervalTimer{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				// Stop may race with the tick; re-check before firing.
				select {
				case <-t.stop:
					return
				default:
				}
				fire()
			}
		}
	}()
	return t
}

// Stop cancels the ticker. It does not wait for an in-flight callback, so
// it is safe to call from inside one.
func (t *IntervalTimer) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// Done is closed once the ticker goroutine has exited.
func (t *IntervalTimer) Done() <-chan struct{} {
	return t.done
}

// ManualTimer is driven by its host: each call to Fire delivers one tick
// until the timer is stopped. The TUI drives it from tea.Tick messages.
type ManualTimer struct {
	mu      sync.Mutex
	fire    func()
	stopped bool
}

// NewManualTimer returns a host-driven timer.
func NewManualTimer(fire func()) *ManualTimer {
	return &ManualTimer{fire: fire}
}

// Fire delivers one tick and reports whether the timer was still active.
// Ticks on a stopped timer are dropped.
func (t *ManualTimer) Fire() bool {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return false
	}
	fn := t.fire
	t.mu.Unlock()
	fn()
	return true
}

// Stop cancels the timer.
func (t *ManualTimer) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

// Active reports whether the timer has not been stopped.
func (t *ManualTimer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped
}
