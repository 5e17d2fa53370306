package session

import "time"

// timerTickMsg is sent every second while the screen is active. gen ties
// it to the tick loop that scheduled it.
type timerTickMsg struct {
	gen  int
	time time.Time
}

// feedbackDoneMsg clears the answer feedback line. seq ties it to the
// answer that set it.
type feedbackDoneMsg struct {
	seq int
}

// noticeDoneMsg clears the oldest notice banner.
type noticeDoneMsg struct{}
