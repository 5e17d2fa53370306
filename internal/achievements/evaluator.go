package achievements

// Evaluator checks a rule list against a state snapshot.
type Evaluator struct {
	rules []Rule
}

// NewEvaluator returns an evaluator over the canonical rules.
func NewEvaluator() *Evaluator {
	return &Evaluator{rules: Rules()}
}

// NewEvaluatorWithRules returns an evaluator over a custom rule list.
func NewEvaluatorWithRules(rules []Rule) *Evaluator {
	return &Evaluator{rules: rules}
}

// Check evaluates every rule not yet in unlocked, in declaration order, and
// adds those whose predicate holds. It returns the newly unlocked
// achievements; a second call with the same state returns none.
func (e *Evaluator) Check(s State, unlocked *Set) []Achievement {
	var fresh []Achievement
	for _, r := range e.rules {
		if unlocked.Has(r.Achievement.ID) {
			continue
		}
		if r.Predicate(s) {
			unlocked.Add(r.Achievement.ID)
			fresh = append(fresh, r.Achievement)
		}
	}
	return fresh
}
