package session

import (
	"slices"
	"time"

	"github.com/abhisek/mathrush/internal/achievements"
	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/problemgen"
)

// Phase is the lifecycle phase of a game.
type Phase int

const (
	PhaseIdle    Phase = iota // No session, or the last one was abandoned
	PhasePlaying              // Serving problems
	PhasePaused               // Timer and answers suspended
	PhaseEnded                // Finished with a recorded score
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// SessionState tracks the runtime state of one play session.
type SessionState struct {
	// SessionID is the UUID for this session.
	SessionID string

	Mode    modes.Mode
	Config  modes.Config
	IsDaily bool
	Phase   Phase

	Level int
	Score int

	// Combo counts consecutive correct answers; MaxCombo is its high-water
	// mark for the session.
	Combo    int
	MaxCombo int

	HintsLeft int
	HintsUsed int

	CorrectAnswers int
	TotalAttempts  int

	// TimeLeft is the countdown in seconds, or modes.Unbounded.
	TimeLeft int

	CurrentProblem *problemgen.Problem

	// EquationSolutions holds the canonical forms of the valid solutions
	// found for the current equation target.
	EquationSolutions []string

	// Unlocked lists achievements earned during this session.
	Unlocked []achievements.Achievement

	// StartTime is when the session began.
	StartTime time.Time
}

// IsPlaying reports whether a session is in progress, paused or not.
func (s SessionState) IsPlaying() bool {
	return s.Phase == PhasePlaying || s.Phase == PhasePaused
}

// IsPaused reports whether the session is paused.
func (s SessionState) IsPaused() bool {
	return s.Phase == PhasePaused
}

// Accuracy returns CorrectAnswers / TotalAttempts, or 0 with no attempts.
func (s SessionState) Accuracy() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalAttempts)
}

// clone returns a deep copy safe to hand outside the lock.
func (s *SessionState) clone() SessionState {
	c := *s
	c.CurrentProblem = s.CurrentProblem.Clone()
	c.EquationSolutions = slices.Clone(s.EquationSolutions)
	c.Unlocked = slices.Clone(s.Unlocked)
	return c
}

func newSessionState(id string, mode modes.Mode, cfg modes.Config, daily bool, hints int, now time.Time) *SessionState {
	return &SessionState{
		SessionID: id,
		Mode:      mode,
		Config:    cfg,
		IsDaily:   daily,
		Phase:     PhasePlaying,
		Level:     1,
		HintsLeft: hints,
		TimeLeft:  cfg.TimeLimit,
		StartTime: now,
	}
}
