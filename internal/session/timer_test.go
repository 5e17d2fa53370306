package session

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathrush/internal/modes"
)

func TestManualTimer(t *testing.T) {
	var n int
	timer := NewManualTimer(func() { n++ })

	assert.True(t, timer.Active())
	assert.True(t, timer.Fire())
	assert.True(t, timer.Fire())
	assert.Equal(t, 2, n)

	timer.Stop()
	timer.Stop()
	assert.False(t, timer.Active())
	assert.False(t, timer.Fire())
	assert.Equal(t, 2, n)
}

func TestIntervalTimer_FiresUntilStopped(t *testing.T) {
	var n atomic.Int32
	timer := NewIntervalTimer(time.Millisecond, func() { n.Add(1) }).(*IntervalTimer)

	require.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)

	timer.Stop()
	select {
	case <-timer.Done():
	case <-time.After(time.Second):
		t.Fatal("ticker goroutine did not exit")
	}

	stopped := n.Load()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, stopped, n.Load())
	timer.Stop()
}

func TestIntervalTimer_StopFromCallback(t *testing.T) {
	var timer Timer
	fired := make(chan struct{}, 1)
	ready := make(chan struct{})
	timer = NewIntervalTimer(time.Millisecond, func() {
		<-ready
		timer.Stop()
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	close(ready)

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	select {
	case <-timer.(*IntervalTimer).Done():
	case <-time.After(time.Second):
		t.Fatal("stop from inside the callback did not end the ticker")
	}
}

func TestGame_IntervalTimerDrivesCountdown(t *testing.T) {
	h := newHarness(t, nil)
	h.game.timers = func(_ time.Duration, fire func()) Timer {
		return NewIntervalTimer(time.Millisecond, fire)
	}
	require.NoError(t, h.game.Start(modes.Speed))

	require.Eventually(t, func() bool {
		return h.game.State().Phase == PhaseEnded
	}, 5*time.Second, time.Millisecond)
	assert.Equal(t, 0, h.game.State().TimeLeft)
	require.NotNil(t, h.game.LastSummary())
	assert.Equal(t, EndTimeout, h.game.LastSummary().Reason)
}
