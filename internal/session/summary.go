package session

import (
	"slices"
	"time"

	"github.com/abhisek/mathrush/internal/achievements"
	"github.com/abhisek/mathrush/internal/modes"
)

// EndReason says why a session ended.
type EndReason string

const (
	EndTimeout  EndReason = "timeout"
	EndFinished EndReason = "finished"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	SessionID      string
	Mode           modes.Mode
	IsDaily        bool
	Reason         EndReason
	Duration       time.Duration
	Score          int
	Level          int
	MaxCombo       int
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	HintsUsed      int

	// NewBest is set when Score beat the previous best for Mode.
	NewBest bool

	// Unlocked lists achievements earned during the session.
	Unlocked []achievements.Achievement
}

func buildSummary(state *SessionState, reason EndReason, elapsed time.Duration, newBest bool) *SessionSummary {
	return &SessionSummary{
		SessionID:      state.SessionID,
		Mode:           state.Mode,
		IsDaily:        state.IsDaily,
		Reason:         reason,
		Duration:       elapsed.Truncate(time.Second),
		Score:          state.Score,
		Level:          state.Level,
		MaxCombo:       state.MaxCombo,
		TotalQuestions: state.TotalAttempts,
		TotalCorrect:   state.CorrectAnswers,
		Accuracy:       state.Accuracy(),
		HintsUsed:      state.HintsUsed,
		NewBest:        newBest,
		Unlocked:       slices.Clone(state.Unlocked),
	}
}
