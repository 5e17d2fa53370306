// Package achievements evaluates the fixed achievement rule set against an
// explicit snapshot of game state.
package achievements

import "github.com/abhisek/mathrush/internal/modes"

// Achievement is a named milestone.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Rarity      Rarity
}

// State is the snapshot a rule is evaluated against. It mixes session
// counters with lifetime statistics.
type State struct {
	Mode           modes.Mode
	IsDaily        bool
	Score          int
	Level          int
	Combo          int
	MaxCombo       int
	CorrectAnswers int
	TotalAttempts  int
	HintsUsed      int

	// EquationSolutions is the number of distinct valid solutions found for
	// the current equation target.
	EquationSolutions int

	// DailyChallengesCompleted is a lifetime count.
	DailyChallengesCompleted int
}

// Accuracy returns CorrectAnswers / TotalAttempts, or 0 with no attempts.
func (s State) Accuracy() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalAttempts)
}

// Predicate reports whether a rule is satisfied. Predicates must be pure.
type Predicate func(State) bool

// Rule pairs an achievement with its unlock condition.
type Rule struct {
	Achievement Achievement
	Predicate   Predicate
}

// Achievement ids.
const (
	FirstCorrect   = "first_correct"
	Combo10        = "combo_10"
	SpeedDemon     = "speed_demon"
	HighScorer     = "high_scorer"
	NoHints        = "no_hints"
	DailyChampion  = "daily_champion"
	SequenceMaster = "sequence_master"
	EquationWizard = "equation_wizard"
	PatternGenius  = "pattern_genius"
)

var rules = []Rule{
	{
		Achievement: Achievement{FirstCorrect, "First Steps", "Answer your first problem correctly", "🎯", RarityCommon},
		Predicate:   func(s State) bool { return s.CorrectAnswers >= 1 },
	},
	{
		Achievement: Achievement{Combo10, "Combo Master", "Reach a 10x combo", "🔥", RarityRare},
		Predicate:   func(s State) bool { return s.Combo >= 10 },
	},
	{
		Achievement: Achievement{SpeedDemon, "Speed Demon", "Score 1000 points in speed mode", "⚡", RarityEpic},
		Predicate:   func(s State) bool { return s.Mode == modes.Speed && s.Score >= 1000 },
	},
	{
		Achievement: Achievement{HighScorer, "High Scorer", "Score 5000 points in one game", "🏆", RarityLegendary},
		Predicate:   func(s State) bool { return s.Score >= 5000 },
	},
	{
		Achievement: Achievement{NoHints, "Self Reliant", "Score 2000 points without using a hint", "🧠", RarityEpic},
		Predicate:   func(s State) bool { return s.Score >= 2000 && s.HintsUsed == 0 },
	},
	{
		Achievement: Achievement{DailyChampion, "Daily Champion", "Complete a daily challenge", "📅", RarityRare},
		Predicate:   func(s State) bool { return s.DailyChallengesCompleted >= 1 },
	},
	{
		Achievement: Achievement{SequenceMaster, "Sequence Master", "Answer 10 sequence problems correctly in one game", "🔢", RarityRare},
		Predicate:   func(s State) bool { return s.Mode == modes.Sequence && s.CorrectAnswers >= 10 },
	},
	{
		Achievement: Achievement{EquationWizard, "Equation Wizard", "Find 5 different solutions for one target", "🧙", RarityEpic},
		Predicate:   func(s State) bool { return s.Mode == modes.Equation && s.EquationSolutions >= 5 },
	},
	{
		Achievement: Achievement{PatternGenius, "Pattern Genius", "Keep 90% accuracy over at least 10 sequence problems", "🌀", RarityLegendary},
		Predicate: func(s State) bool {
			return s.Mode == modes.Sequence && s.TotalAttempts >= 10 && s.Accuracy() >= 0.9
		},
	},
}

// Rules returns the canonical rule set in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Lookup returns the achievement with the given id.
func Lookup(id string) (Achievement, bool) {
	for _, r := range rules {
		if r.Achievement.ID == id {
			return r.Achievement, true
		}
	}
	return Achievement{}, false
}

// All returns every achievement in rule order.
func All() []Achievement {
	out := make([]Achievement, len(rules))
	for i, r := range rules {
		out[i] = r.Achievement
	}
	return out
}
