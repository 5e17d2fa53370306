// Package session runs a single play session: it generates problems,
// checks answers, applies scoring and the countdown, evaluates achievements
// and persists statistics when a session ends.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathrush/internal/achievements"
	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/problemgen"
	"github.com/abhisek/mathrush/internal/rng"
	"github.com/abhisek/mathrush/internal/scoring"
	"github.com/abhisek/mathrush/internal/stats"
	"github.com/abhisek/mathrush/internal/store"
)

// DefaultHintsPerSession is the hint budget when Options leaves it unset.
const DefaultHintsPerSession = 3

const diagnosticSource = "session"

// Generator produces the next problem. *problemgen.Generator implements it.
type Generator interface {
	Generate(ctx context.Context, input problemgen.GenerateInput) *problemgen.Problem
}

// Options configures a Game. Zero values select defaults.
type Options struct {
	Generator    Generator
	Scoring      *scoring.Engine
	Achievements *achievements.Evaluator

	// Progress persists statistics and achievements. Nil disables
	// persistence.
	Progress store.ProgressRepo

	// Events receives session lifecycle events and diagnostics. May be nil.
	Events store.EventRepo

	Listener Listener
	Timers   TimerFactory
	Now      func() time.Time

	HintsPerSession int
	WeeklyGoal      int
}

// AnswerResult describes the outcome of one submitted answer.
type AnswerResult struct {
	Correct   bool
	Points    int
	Combo     int
	Score     int
	Level     int
	LeveledUp bool

	// TimeLeft after any speed-mode penalty, or modes.Unbounded.
	TimeLeft int

	// Expected is the problem's answer (the target for equations).
	Expected float64

	// Duplicate is set when an equation solution was already found. No
	// attempt is counted and no points are awarded.
	Duplicate bool

	// Reason explains a rejected equation solution.
	Reason string
}

// Game is the session state machine:
//
//	Idle -> Playing <-> Paused -> Ended -> (Start) Playing
//
// All methods are safe for concurrent use; they serialize on one mutex so
// timer callbacks and user input never interleave.
type Game struct {
	mu sync.Mutex

	gen      Generator
	scoring  *scoring.Engine
	eval     *achievements.Evaluator
	progress store.ProgressRepo
	events   store.EventRepo
	listener Listener
	timers   TimerFactory
	now      func() time.Time
	hints    int

	state    *SessionState
	stats    *stats.Statistics
	unlocked *achievements.Set

	// timer is the only armed countdown; timerGen identifies it so a tick
	// from a replaced timer is ignored.
	timer    Timer
	timerGen uint64

	lastSummary *SessionSummary
}

// New creates a Game and loads saved progress. A missing or unreadable
// profile yields fresh statistics; the failure is recorded as a diagnostic.
func New(opts Options) *Game {
	g := &Game{
		gen:      opts.Generator,
		scoring:  opts.Scoring,
		eval:     opts.Achievements,
		progress: opts.Progress,
		events:   opts.Events,
		listener: opts.Listener,
		timers:   opts.Timers,
		now:      opts.Now,
		hints:    opts.HintsPerSession,
		state:    &SessionState{Phase: PhaseIdle, Level: 1},
	}
	if g.gen == nil {
		g.gen = problemgen.New(rng.New(), problemgen.DefaultConfig(), opts.Events)
	}
	if g.scoring == nil {
		g.scoring = scoring.NewEngine(scoring.DefaultConfig())
	}
	if g.eval == nil {
		g.eval = achievements.NewEvaluator()
	}
	if g.listener == nil {
		g.listener = NopListener{}
	}
	if g.timers == nil {
		g.timers = NewIntervalTimer
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.hints <= 0 {
		g.hints = DefaultHintsPerSession
	}

	g.stats, g.unlocked = loadProgress(context.Background(), opts.Progress, opts.Events, opts.WeeklyGoal)
	return g
}

// Start begins a new session in mode. A session already in progress is
// abandoned first.
func (g *Game) Start(mode modes.Mode) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.startLocked(mode, false)
}

// StartDaily begins today's daily challenge.
func (g *Game) StartDaily() (modes.Mode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	mode := modes.Daily(g.now())
	return mode, g.startLocked(mode, true)
}

func (g *Game) startLocked(mode modes.Mode, daily bool) error {
	cfg, err := modes.Lookup(mode)
	if err != nil {
		return &ModeError{Mode: mode, Err: err}
	}
	if g.state.IsPlaying() {
		g.abandonLocked()
	}
	g.stopTimerLocked()

	g.state = newSessionState(uuid.New().String(), mode, cfg, daily, g.hints, g.now())
	g.lastSummary = nil
	g.recordSessionEvent(store.SessionStart)

	g.nextProblemLocked()
	if !cfg.Untimed() {
		g.armTimerLocked()
	}
	g.listener.TimerTick(g.state.TimeLeft)
	return nil
}

// TogglePause flips between Playing and Paused and reports whether the
// game is now paused.
func (g *Game) TogglePause() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.state.Phase {
	case PhasePlaying:
		g.state.Phase = PhasePaused
		return true, nil
	case PhasePaused:
		g.state.Phase = PhasePlaying
		return false, nil
	default:
		return false, ErrNotPlaying
	}
}

// Pause pauses a running session. It is a no-op in any other phase.
func (g *Game) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.Phase == PhasePlaying {
		g.state.Phase = PhasePaused
	}
}

// Tick advances the countdown by one second. It is a no-op unless a timed
// session is playing. Reaching zero ends the session.
func (g *Game) Tick() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tickLocked()
}

func (g *Game) tickFrom(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.timerGen || g.timer == nil {
		return
	}
	g.tickLocked()
}

func (g *Game) tickLocked() {
	if g.state.Phase != PhasePlaying || g.state.Config.Untimed() {
		return
	}
	g.state.TimeLeft = max(g.state.TimeLeft-1, 0)
	g.listener.TimerTick(g.state.TimeLeft)
	if g.state.TimeLeft == 0 {
		g.endLocked(EndTimeout)
	}
}

// CheckAnswer submits input for the current problem. Unparseable input
// returns an error wrapping ErrInvalidInput and changes nothing. In
// equation mode input is an expression over the given numbers.
func (g *Game) CheckAnswer(input string) (AnswerResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.state.Phase == PhasePaused:
		return AnswerResult{}, ErrPaused
	case g.state.Phase != PhasePlaying || g.state.CurrentProblem == nil:
		return AnswerResult{}, ErrNotPlaying
	}

	p := g.state.CurrentProblem
	if p.Operation == modes.OpEquation {
		return g.checkEquationLocked(input, p)
	}

	value, err := problemgen.ParseAnswer(input)
	if err != nil {
		return AnswerResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	correct := problemgen.CheckAnswer(value, p)
	res := g.applyAnswerLocked(p, input, correct)
	g.afterAnswerLocked(res, correct)
	return res, nil
}

func (g *Game) checkEquationLocked(input string, p *problemgen.Problem) (AnswerResult, error) {
	sol, err := problemgen.ValidateSolution(input, p)
	if err != nil {
		return AnswerResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if sol.Valid && slices.Contains(g.state.EquationSolutions, sol.Canonical) {
		res := g.resultLocked(p)
		res.Duplicate = true
		g.listener.AnswerResult(res)
		return res, nil
	}
	if sol.Valid {
		g.state.EquationSolutions = append(g.state.EquationSolutions, sol.Canonical)
	}
	res := g.applyAnswerLocked(p, input, sol.Valid)
	res.Reason = sol.Reason
	// The target stays until the player skips, so more solutions can be found.
	g.afterAnswerLocked(res, false)
	return res, nil
}

// applyAnswerLocked counts the attempt and applies scoring.
func (g *Game) applyAnswerLocked(p *problemgen.Problem, input string, correct bool) AnswerResult {
	st := g.state
	now := g.now()
	st.TotalAttempts++

	g.stats.RecordTopic(p.Operation, correct, now)
	g.stats.RecordActivity(stats.Activity{
		Timestamp: now,
		Problem:   p,
		Answer:    input,
		Correct:   correct,
		Mode:      st.Mode,
	})

	var leveledUp bool
	var points int
	if correct {
		out := g.scoring.ScoreCorrect(st.Config, st.Combo, st.Score, st.Level)
		st.CorrectAnswers++
		st.Combo = out.Combo
		st.MaxCombo = max(st.MaxCombo, st.Combo)
		st.Score = out.Score
		st.Level = out.Level
		points = out.Points
		leveledUp = out.LeveledUp
	} else {
		st.Combo = 0
	}
	st.TimeLeft = g.scoring.AdjustTime(st.Mode, st.TimeLeft, correct)

	res := g.resultLocked(p)
	res.Correct = correct
	res.Points = points
	res.LeveledUp = leveledUp
	return res
}

// afterAnswerLocked notifies, evaluates achievements and advances. It ends
// the session when a speed-mode penalty empties the clock.
func (g *Game) afterAnswerLocked(res AnswerResult, advance bool) {
	g.listener.AnswerResult(res)
	if res.LeveledUp {
		g.listener.LevelUp(res.Level)
	}
	g.checkAchievementsLocked()

	if !g.state.Config.Untimed() && g.state.TimeLeft == 0 {
		g.listener.TimerTick(0)
		g.endLocked(EndTimeout)
		return
	}
	if advance {
		g.nextProblemLocked()
	}
}

func (g *Game) resultLocked(p *problemgen.Problem) AnswerResult {
	return AnswerResult{
		Combo:    g.state.Combo,
		Score:    g.state.Score,
		Level:    g.state.Level,
		TimeLeft: g.state.TimeLeft,
		Expected: p.Answer,
	}
}

// ShowHint spends one hint and returns the hint for the current problem.
func (g *Game) ShowHint() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.state.Phase == PhasePaused:
		return "", ErrPaused
	case g.state.Phase != PhasePlaying || g.state.CurrentProblem == nil:
		return "", ErrNotPlaying
	case g.state.HintsLeft <= 0:
		return "", ErrNoHints
	}
	g.state.HintsLeft--
	g.state.HintsUsed++
	return problemgen.Hint(g.state.CurrentProblem), nil
}

// Skip replaces the current problem without scoring it.
func (g *Game) Skip() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.state.Phase == PhasePaused:
		return ErrPaused
	case g.state.Phase != PhasePlaying:
		return ErrNotPlaying
	}
	g.nextProblemLocked()
	return nil
}

// End finishes the session and records its score.
func (g *Game) End() (*SessionSummary, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.state.IsPlaying() {
		return nil, ErrNotPlaying
	}
	return g.endLocked(EndFinished), nil
}

// Abandon cancels the session without recording a score. Play time still
// counts.
func (g *Game) Abandon() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.state.IsPlaying() {
		return ErrNotPlaying
	}
	g.abandonLocked()
	return nil
}

func (g *Game) abandonLocked() {
	g.stopTimerLocked()
	g.stats.AddPlayTime(g.now().Sub(g.state.StartTime))
	g.state.Phase = PhaseIdle
	g.state.CurrentProblem = nil
	g.recordSessionEvent(store.SessionAbandon)
	g.saveLocked()
}

func (g *Game) endLocked(reason EndReason) *SessionSummary {
	g.stopTimerLocked()
	st := g.state
	now := g.now()
	elapsed := now.Sub(st.StartTime)
	st.Phase = PhaseEnded
	st.CurrentProblem = nil

	g.stats.RecordScore(st.Score)
	newBest := g.stats.UpdateBestScore(st.Mode, st.Score)
	g.stats.UpdateStreak(now)
	g.stats.AddWeeklyProgress(now, 1)
	g.stats.AddPlayTime(elapsed)
	g.stats.GamesPlayed++
	if st.IsDaily {
		g.stats.RecordDailyCompleted(now)
	}
	g.checkAchievementsLocked()

	g.recordSessionEvent(store.SessionEnd)
	g.saveLocked()

	summary := buildSummary(st, reason, elapsed, newBest)
	g.lastSummary = summary
	g.listener.SessionEnded(summary)
	return summary
}

func (g *Game) nextProblemLocked() {
	p := g.gen.Generate(context.Background(), problemgen.GenerateInput{
		Mode:   g.state.Mode,
		Config: &g.state.Config,
	})
	if p == nil {
		p = problemgen.Fallback()
	}
	g.state.CurrentProblem = p
	g.state.EquationSolutions = nil
	g.listener.ProblemChanged(p.Clone())
}

func (g *Game) checkAchievementsLocked() {
	st := g.state
	fresh := g.eval.Check(achievements.State{
		Mode:                     st.Mode,
		IsDaily:                  st.IsDaily,
		Score:                    st.Score,
		Level:                    st.Level,
		Combo:                    st.Combo,
		MaxCombo:                 st.MaxCombo,
		CorrectAnswers:           st.CorrectAnswers,
		TotalAttempts:            st.TotalAttempts,
		HintsUsed:                st.HintsUsed,
		EquationSolutions:        len(st.EquationSolutions),
		DailyChallengesCompleted: g.stats.DailyChallengesCompleted,
	}, g.unlocked)
	if len(fresh) == 0 {
		return
	}
	st.Unlocked = append(st.Unlocked, fresh...)
	for _, a := range fresh {
		g.listener.AchievementUnlocked(a)
	}
	g.saveLocked()
}

// armTimerLocked replaces any armed timer with a new one.
func (g *Game) armTimerLocked() {
	g.stopTimerLocked()
	gen := g.timerGen
	g.timer = g.timers(TickInterval, func() { g.tickFrom(gen) })
}

func (g *Game) stopTimerLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.timerGen++
}

func (g *Game) saveLocked() {
	if g.progress == nil {
		return
	}
	ctx := context.Background()
	err := g.progress.Save(ctx, &store.ProgressData{
		Statistics:   g.stats.SnapshotData(),
		Achievements: g.unlocked.IDs(),
	})
	if err != nil {
		store.RecordDiagnostic(ctx, g.events, diagnosticSource, "save progress failed", err)
	}
}

func (g *Game) recordSessionEvent(action string) {
	if g.events == nil {
		return
	}
	st := g.state
	_ = g.events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:         st.SessionID,
		Action:            action,
		Mode:              string(st.Mode),
		Daily:             st.IsDaily,
		Score:             st.Score,
		Level:             st.Level,
		QuestionsAnswered: st.TotalAttempts,
		QuestionsCorrect:  st.CorrectAnswers,
		DurationSecs:      int(g.now().Sub(st.StartTime) / time.Second),
	})
}

// State returns a copy of the current session state.
func (g *Game) State() SessionState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.clone()
}

// Statistics returns a copy of the lifetime statistics.
func (g *Game) Statistics() *stats.Statistics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return stats.FromSnapshot(g.stats.SnapshotData(), g.stats.WeeklyGoal)
}

// Unlocked returns the ids of every unlocked achievement.
func (g *Game) Unlocked() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unlocked.IDs()
}

// LastSummary returns the summary of the most recently ended session, or
// nil if the last session was abandoned or none has ended.
func (g *Game) LastSummary() *SessionSummary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastSummary
}

// Close stops any armed timer. A session in progress is abandoned.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.IsPlaying() {
		g.abandonLocked()
	}
	g.stopTimerLocked()
}

// loadProgress reads the saved profile, falling back to defaults.
func loadProgress(ctx context.Context, repo store.ProgressRepo, events store.EventRepo, weeklyGoal int) (*stats.Statistics, *achievements.Set) {
	if repo == nil {
		return stats.New(weeklyGoal), achievements.NewSet()
	}
	data, err := repo.Load(ctx)
	if err != nil {
		msg := "load progress failed, starting fresh"
		if errors.Is(err, store.ErrCorruptProgress) {
			msg = "saved progress is corrupt, starting fresh"
		}
		store.RecordDiagnostic(ctx, events, diagnosticSource, msg, err)
		return stats.New(weeklyGoal), achievements.NewSet()
	}
	if data == nil {
		return stats.New(weeklyGoal), achievements.NewSet()
	}
	s := stats.FromSnapshot(data.Statistics, weeklyGoal)
	if weeklyGoal > 0 {
		s.WeeklyGoal = weeklyGoal
	}
	return s, achievements.NewSet(data.Achievements...)
}
