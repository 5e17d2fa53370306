package session

import (
	"sync"
	"time"

	sess "github.com/abhisek/mathrush/internal/session"
)

// Clock is a session.TimerFactory backed by host-driven timers. The game
// screen calls Fire on every tea.Tick; only the most recently armed timer
// receives it, and a stopped timer drops it.
type Clock struct {
	mu      sync.Mutex
	current *sess.ManualTimer
}

// NewClock returns a clock with no armed timer.
func NewClock() *Clock {
	return &Clock{}
}

// Factory arms a new timer. It satisfies session.TimerFactory.
func (c *Clock) Factory(_ time.Duration, fire func()) sess.Timer {
	t := sess.NewManualTimer(fire)
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
	return t
}

// Fire delivers one tick and reports whether an armed timer took it.
func (c *Clock) Fire() bool {
	c.mu.Lock()
	t := c.current
	c.mu.Unlock()
	if t == nil {
		return false
	}
	return t.Fire()
}
