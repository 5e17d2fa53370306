package session

import (
	"github.com/abhisek/mathrush/internal/achievements"
	"github.com/abhisek/mathrush/internal/problemgen"
)

// Listener receives game notifications. Callbacks run while the game lock
// is held: they must return quickly and must not call back into the Game.
type Listener interface {
	// ProblemChanged fires when a new problem is ready to display.
	ProblemChanged(p *problemgen.Problem)

	// AnswerResult fires after every counted answer.
	AnswerResult(r AnswerResult)

	// LevelUp fires when the level increases.
	LevelUp(level int)

	// AchievementUnlocked fires once per newly unlocked achievement.
	AchievementUnlocked(a achievements.Achievement)

	// SessionEnded fires when a session finishes with a score.
	SessionEnded(s *SessionSummary)

	// TimerTick fires with the seconds left, or modes.Unbounded.
	TimerTick(secondsLeft int)
}

// NopListener ignores every notification. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) ProblemChanged(*problemgen.Problem) {}
func (NopListener) AnswerResult(AnswerResult) {}
func (NopListener) LevelUp(int) {}
func (NopListener) AchievementUnlocked(achievements.Achievement) {}
func (NopListener) SessionEnded(*SessionSummary) {}
func (NopListener) TimerTick(int) {}
