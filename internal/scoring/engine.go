// Package scoring computes points, level progression and timed-mode clock
// adjustments.
package scoring

import (
	"math"

	"github.com/abhisek/mathrush/internal/modes"
)

// Config holds the scoring constants.
type Config struct {
	// MaxCombo caps the combo value used in the multiplier.
	MaxCombo int

	// ComboMultiplier is the bonus fraction per combo step.
	ComboMultiplier float64

	// SpeedWrongPenalty is the number of seconds removed from the clock for
	// a wrong answer in speed mode.
	SpeedWrongPenalty int

	// SpeedCorrectBonus is the number of seconds added for a correct answer
	// in speed mode.
	SpeedCorrectBonus int
}

// DefaultConfig returns the standard constants. Correct answers in speed
// mode earn points only, never extra time.
func DefaultConfig() Config {
	return Config{
		MaxCombo:          10,
		ComboMultiplier:   0.1,
		SpeedWrongPenalty: 5,
		SpeedCorrectBonus: 0,
	}
}

// Engine applies a Config.
type Engine struct {
	config Config
}

// NewEngine creates a scoring engine with the provided config.
func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// Config returns the engine's constants.
func (e *Engine) Config() Config {
	return e.config
}

// PointsForCorrectAnswer returns round(base × (1 + min(combo, MaxCombo) ×
// ComboMultiplier)). combo already includes the answer being scored.
func (e *Engine) PointsForCorrectAnswer(basePoints, combo int) int {
	c := min(max(combo, 0), e.config.MaxCombo)
	return int(math.Round(float64(basePoints) * (1 + float64(c)*e.config.ComboMultiplier)))
}

// CheckLevelUp returns level+1 when score has reached threshold × level,
// otherwise level. At most one level is gained per call.
func (e *Engine) CheckLevelUp(threshold, score, level int) int {
	if threshold > 0 && score >= threshold*level {
		return level + 1
	}
	return level
}

// AdjustTime returns the clock after an answer. Only speed mode adjusts the
// clock; the result is floored at zero. modes.Unbounded passes through.
func (e *Engine) AdjustTime(mode modes.Mode, timeLeft int, correct bool) int {
	if mode != modes.Speed || timeLeft == modes.Unbounded {
		return timeLeft
	}
	if correct {
		return timeLeft + e.config.SpeedCorrectBonus
	}
	return max(timeLeft-e.config.SpeedWrongPenalty, 0)
}

// Outcome is the result of scoring one correct answer.
type Outcome struct {
	Points    int
	Combo     int
	Score     int
	Level     int
	LeveledUp bool
}

// ScoreCorrect increments combo, awards points and checks for a level-up.
func (e *Engine) ScoreCorrect(cfg modes.Config, combo, score, level int) Outcome {
	combo++
	points := e.PointsForCorrectAnswer(cfg.PointsPerQuestion, combo)
	score += points
	newLevel := e.CheckLevelUp(cfg.LevelThreshold, score, level)
	return Outcome{
		Points:    points,
		Combo:     combo,
		Score:     score,
		Level:     newLevel,
		LeveledUp: newLevel > level,
	}
}
