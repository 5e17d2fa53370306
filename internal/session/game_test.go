package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathrush/internal/achievements"
	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/problemgen"
	"github.com/abhisek/mathrush/internal/store"
)

// scriptedGen returns problems in order, cycling when exhausted.
type scriptedGen struct {
	problems []*problemgen.Problem
	calls    int
}

func (s *scriptedGen) Generate(context.Context, problemgen.GenerateInput) *problemgen.Problem {
	p := s.problems[s.calls%len(s.problems)]
	s.calls++
	return p.Clone()
}

// manualTimers records every timer the game arms.
type manualTimers struct {
	armed []*ManualTimer
}

func (m *manualTimers) factory(_ time.Duration, fire func()) Timer {
	t := NewManualTimer(fire)
	m.armed = append(m.armed, t)
	return t
}

func (m *manualTimers) last() *ManualTimer {
	if len(m.armed) == 0 {
		return nil
	}
	return m.armed[len(m.armed)-1]
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingListener struct {
	NopListener
	problems []*problemgen.Problem
	levels   []int
	unlocked []string
	ended    []*SessionSummary
	ticks    []int
}

func (l *recordingListener) ProblemChanged(p *problemgen.Problem) { l.problems = append(l.problems, p) }
func (l *recordingListener) LevelUp(level int)                    { l.levels = append(l.levels, level) }
func (l *recordingListener) SessionEnded(s *SessionSummary)       { l.ended = append(l.ended, s) }
func (l *recordingListener) TimerTick(n int)                      { l.ticks = append(l.ticks, n) }
func (l *recordingListener) AchievementUnlocked(a achievements.Achievement) {
	l.unlocked = append(l.unlocked, a.ID)
}

type harness struct {
	game     *Game
	gen      *scriptedGen
	timers   *manualTimers
	clock    *fakeClock
	listener *recordingListener
	store    *store.Store
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustArithmetic(t *testing.T, op modes.Operation, a, b int) *problemgen.Problem {
	t.Helper()
	p, err := problemgen.Arithmetic(op, a, b)
	require.NoError(t, err)
	return p
}

func newHarness(t *testing.T, st *store.Store, problems ...*problemgen.Problem) *harness {
	t.Helper()
	if st == nil {
		st = openTestStore(t)
	}
	if len(problems) == 0 {
		problems = []*problemgen.Problem{mustArithmetic(t, modes.OpAdd, 7, 5)}
	}
	h := &harness{
		gen:      &scriptedGen{problems: problems},
		timers:   &manualTimers{},
		clock:    &fakeClock{now: time.Date(2026, 3, 11, 18, 0, 0, 0, time.Local)},
		listener: &recordingListener{},
		store:    st,
	}
	h.game = New(Options{
		Generator: h.gen,
		Progress:  st.ProgressRepo(),
		Events:    st.EventRepo(),
		Listener:  h.listener,
		Timers:    h.timers.factory,
		Now:       h.clock.Now,
	})
	t.Cleanup(h.game.Close)
	return h
}

func sessionActions(t *testing.T, st *store.Store) []string {
	t.Helper()
	events, err := st.EventRepo().QuerySessionEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	// Newest first; reverse into chronological order.
	actions := make([]string, len(events))
	for i, e := range events {
		actions[len(events)-1-i] = e.Action
	}
	return actions
}

func TestStart_InitialState(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Basic))

	s := h.game.State()
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Equal(t, modes.Basic, s.Mode)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 60, s.TimeLeft)
	assert.Equal(t, DefaultHintsPerSession, s.HintsLeft)
	assert.NotEmpty(t, s.SessionID)
	require.NotNil(t, s.CurrentProblem)
	assert.Equal(t, "7 + 5", s.CurrentProblem.Text)
	assert.Len(t, h.timers.armed, 1)
	assert.Len(t, h.listener.problems, 1)
	assert.Equal(t, []string{store.SessionStart}, sessionActions(t, h.store))
}

func TestStart_UnknownMode(t *testing.T) {
	h := newHarness(t, nil)
	err := h.game.Start(modes.Mode("chess"))

	var modeErr *ModeError
	require.ErrorAs(t, err, &modeErr)
	assert.Equal(t, modes.Mode("chess"), modeErr.Mode)
	assert.ErrorIs(t, err, modes.ErrUnknownMode)
	assert.Equal(t, PhaseIdle, h.game.State().Phase)
}

func TestCheckAnswer_CorrectEndToEnd(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Basic))

	res, err := h.game.CheckAnswer("12")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 110, res.Points)
	assert.Equal(t, 1, res.Combo)
	assert.Equal(t, 110, res.Score)
	assert.Equal(t, 60, res.TimeLeft)

	s := h.game.State()
	assert.Equal(t, 110, s.Score)
	assert.Equal(t, 1, s.CorrectAnswers)
	assert.Equal(t, 1, s.TotalAttempts)
	assert.Equal(t, 1, s.MaxCombo)
	assert.Equal(t, 2, h.gen.calls, "a correct answer advances to the next problem")
	assert.Equal(t, []string{achievements.FirstCorrect}, h.listener.unlocked)

	st := h.game.Statistics()
	assert.Equal(t, 1, st.TopicsPerformance[modes.OpAdd].Attempts)
	assert.Equal(t, 1, st.TopicsPerformance[modes.OpAdd].Correct)
	require.Len(t, st.RecentActivities, 1)
	assert.Equal(t, "12", st.RecentActivities[0].Answer)
}

func TestCheckAnswer_InvalidInputChangesNothing(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Basic))
	before := h.game.State()

	for _, in := range []string{"abc", "", "12abc"} {
		_, err := h.game.CheckAnswer(in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}

	after := h.game.State()
	assert.Equal(t, before.TotalAttempts, after.TotalAttempts)
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.CurrentProblem, after.CurrentProblem)
	assert.Equal(t, 1, h.gen.calls)
}

func TestCheckAnswer_ComboResetsOnWrong(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Practice))

	for _, in := range []string{"12", "12", "3", "12"} {
		_, err := h.game.CheckAnswer(in)
		require.NoError(t, err)
	}

	s := h.game.State()
	assert.Equal(t, 1, s.Combo)
	assert.Equal(t, 2, s.MaxCombo)
	assert.Equal(t, 3, s.CorrectAnswers)
	assert.Equal(t, 4, s.TotalAttempts)
	assert.InDelta(t, 0.75, s.Accuracy(), 1e-9)
}

func TestCheckAnswer_WrongAnswerStaysOnProblem(t *testing.T) {
	h := newHarness(t, nil, mustArithmetic(t, modes.OpAdd, 7, 5), mustArithmetic(t, modes.OpMultiply, 3, 4))
	require.NoError(t, h.game.Start(modes.Basic))

	res, err := h.game.CheckAnswer("11")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 12.0, res.Expected)
	assert.Equal(t, "7 + 5", h.game.State().CurrentProblem.Text)
}

func TestCheckAnswer_LevelUp(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Basic))

	// 110 + 120 + 130 + 140 = 500 reaches the level 1 threshold.
	var last AnswerResult
	for i := range 4 {
		res, err := h.game.CheckAnswer("12")
		require.NoError(t, err)
		if i < 3 {
			assert.False(t, res.LeveledUp, "answer %d", i+1)
		}
		last = res
	}
	assert.True(t, last.LeveledUp)
	assert.Equal(t, 500, last.Score)
	assert.Equal(t, 2, last.Level)
	assert.Equal(t, []int{2}, h.listener.levels)

	// 650 is short of 2 × 500.
	res, err := h.game.CheckAnswer("12")
	require.NoError(t, err)
	assert.False(t, res.LeveledUp)
	assert.Equal(t, 650, res.Score)
	assert.Equal(t, 2, res.Level)
}

func TestCheckAnswer_SpeedPenalty(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Speed))

	_, err := h.game.CheckAnswer("12")
	require.NoError(t, err)
	assert.Equal(t, 30, h.game.State().TimeLeft, "correct answers earn no time")

	for range 3 {
		_, err := h.game.CheckAnswer("1")
		require.NoError(t, err)
	}
	s := h.game.State()
	assert.Equal(t, 15, s.TimeLeft)
	assert.Equal(t, 0, s.Combo)
	assert.Equal(t, PhasePlaying, s.Phase)

	for range 3 {
		_, err := h.game.CheckAnswer("1")
		require.NoError(t, err)
	}
	s = h.game.State()
	assert.Equal(t, 0, s.TimeLeft)
	assert.Equal(t, PhaseEnded, s.Phase)
	require.Len(t, h.listener.ended, 1)
	assert.Equal(t, EndTimeout, h.listener.ended[0].Reason)
	assert.False(t, h.timers.last().Active())

	_, err = h.game.CheckAnswer("12")
	assert.ErrorIs(t, err, ErrNotPlaying)
}

func TestCheckAnswer_EquationSolutions(t *testing.T) {
	target := 24.0
	eq := &problemgen.Problem{
		Text:            "Make 24 using 2, 3, 4, 1",
		Answer:          target,
		Operation:       modes.OpEquation,
		EquationNumbers: []int{2, 3, 4, 1},
		TargetValue:     &target,
	}
	h := newHarness(t, nil, eq)
	require.NoError(t, h.game.Start(modes.Equation))

	res, err := h.game.CheckAnswer("(2 + 3 + 1) * 4")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 220, res.Points)

	res, err = h.game.CheckAnswer("( 2+3+1 )*4")
	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.Zero(t, res.Points)
	assert.Equal(t, 1, h.game.State().TotalAttempts, "duplicates are not attempts")

	res, err = h.game.CheckAnswer("4 * (1 + 3 + 2)")
	require.NoError(t, err)
	assert.True(t, res.Duplicate, "reordered terms are the same solution")

	res, err = h.game.CheckAnswer("2 * 3 * 4 * 1")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 2, res.Combo)

	res, err = h.game.CheckAnswer("2 + 3")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, problemgen.ReasonWrongNumbers, res.Reason)
	assert.Equal(t, 0, res.Combo)

	_, err = h.game.CheckAnswer("3 +")
	assert.ErrorIs(t, err, ErrInvalidInput)

	s := h.game.State()
	assert.Len(t, s.EquationSolutions, 2)
	assert.Equal(t, 3, s.TotalAttempts)
	assert.Equal(t, 1, h.gen.calls, "the target stays until skipped")

	require.NoError(t, h.game.Skip())
	assert.Empty(t, h.game.State().EquationSolutions)
}

func TestAchievements_UnlockOnce(t *testing.T) {
	st := openTestStore(t)
	h := newHarness(t, st)
	require.NoError(t, h.game.Start(modes.Practice))
	for range 3 {
		_, err := h.game.CheckAnswer("12")
		require.NoError(t, err)
	}
	_, err := h.game.End()
	require.NoError(t, err)
	assert.Equal(t, []string{achievements.FirstCorrect}, h.listener.unlocked)

	require.NoError(t, h.game.Start(modes.Practice))
	_, err = h.game.CheckAnswer("12")
	require.NoError(t, err)
	assert.Equal(t, []string{achievements.FirstCorrect}, h.listener.unlocked)
	assert.Empty(t, h.game.State().Unlocked)

	// A fresh game over the same profile does not re-award either.
	h2 := newHarness(t, st)
	require.NoError(t, h2.game.Start(modes.Practice))
	_, err = h2.game.CheckAnswer("12")
	require.NoError(t, err)
	assert.Empty(t, h2.listener.unlocked)
}

func TestEnd_PersistsProgress(t *testing.T) {
	st := openTestStore(t)
	h := newHarness(t, st)
	require.NoError(t, h.game.Start(modes.Basic))
	_, err := h.game.CheckAnswer("12")
	require.NoError(t, err)
	h.clock.Advance(42 * time.Second)

	summary, err := h.game.End()
	require.NoError(t, err)
	assert.Equal(t, EndFinished, summary.Reason)
	assert.Equal(t, 110, summary.Score)
	assert.Equal(t, 42*time.Second, summary.Duration)
	assert.True(t, summary.NewBest)
	assert.Equal(t, summary, h.game.LastSummary())
	assert.Equal(t, PhaseEnded, h.game.State().Phase)
	assert.False(t, h.timers.last().Active())

	reloaded := newHarness(t, st)
	stats := reloaded.game.Statistics()
	assert.Equal(t, []int{110}, stats.RecentScores)
	assert.Equal(t, 110, stats.BestScores[modes.Basic])
	assert.Equal(t, 1, stats.GamesPlayed)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.WeeklyProgress)
	assert.Equal(t, 42*time.Second, stats.TotalPlayTime)
	assert.Equal(t, []string{achievements.FirstCorrect}, reloaded.game.Unlocked())

	assert.Equal(t, []string{store.SessionStart, store.SessionEnd}, sessionActions(t, st))
}

func TestEnd_NotPlaying(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.game.End()
	assert.ErrorIs(t, err, ErrNotPlaying)
	assert.ErrorIs(t, h.game.Abandon(), ErrNotPlaying)
}

func TestAbandon_RecordsNoScore(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Basic))
	_, err := h.game.CheckAnswer("12")
	require.NoError(t, err)
	h.clock.Advance(10 * time.Second)

	require.NoError(t, h.game.Abandon())

	s := h.game.State()
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Nil(t, s.CurrentProblem)
	assert.Nil(t, h.game.LastSummary())
	assert.Empty(t, h.listener.ended)

	stats := h.game.Statistics()
	assert.Empty(t, stats.RecentScores)
	assert.Zero(t, stats.GamesPlayed)
	assert.Equal(t, 10*time.Second, stats.TotalPlayTime)
	assert.Equal(t, []string{store.SessionStart, store.SessionAbandon}, sessionActions(t, h.store))
}

func TestStart_WhilePlayingAbandons(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Basic))
	first := h.game.State().SessionID
	firstTimer := h.timers.last()

	require.NoError(t, h.game.Start(modes.Advanced))
	s := h.game.State()
	assert.NotEqual(t, first, s.SessionID)
	assert.Equal(t, modes.Advanced, s.Mode)
	assert.Equal(t, 90, s.TimeLeft)
	assert.False(t, firstTimer.Active())
	assert.Len(t, h.timers.armed, 2)
	assert.Empty(t, h.game.Statistics().RecentScores)
	assert.Equal(t, []string{store.SessionStart, store.SessionAbandon, store.SessionStart}, sessionActions(t, h.store))
}

func TestPause_BlocksAnswersAndTicks(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Basic))

	paused, err := h.game.TogglePause()
	require.NoError(t, err)
	assert.True(t, paused)

	_, err = h.game.CheckAnswer("12")
	assert.ErrorIs(t, err, ErrPaused)
	_, err = h.game.ShowHint()
	assert.ErrorIs(t, err, ErrPaused)
	assert.ErrorIs(t, h.game.Skip(), ErrPaused)

	h.timers.last().Fire()
	h.game.Tick()
	assert.Equal(t, 60, h.game.State().TimeLeft)

	paused, err = h.game.TogglePause()
	require.NoError(t, err)
	assert.False(t, paused)
	h.timers.last().Fire()
	assert.Equal(t, 59, h.game.State().TimeLeft)

	// Pause is idempotent and does not resume.
	h.game.Pause()
	h.game.Pause()
	assert.True(t, h.game.State().IsPaused())
}

func TestCheckAnswer_EquationReorderingsAreDuplicates(t *testing.T) {
	target := 10.0
	eq := &problemgen.Problem{
		Text:            "Make 10 using 1, 2, 3, 4",
		Answer:          target,
		Operation:       modes.OpEquation,
		EquationNumbers: []int{1, 2, 3, 4},
		TargetValue:     &target,
	}
	h := newHarness(t, nil, eq)
	require.NoError(t, h.game.Start(modes.Equation))

	res, err := h.game.CheckAnswer("1+2+3+4")
	require.NoError(t, err)
	require.True(t, res.Correct)
	score := res.Score

	for _, in := range []string{"4+3+2+1", "2+1+3+4", "3+4+1+2", "4+1+2+3"} {
		res, err := h.game.CheckAnswer(in)
		require.NoError(t, err)
		assert.True(t, res.Duplicate, in)
		assert.False(t, res.Correct, in)
		assert.Zero(t, res.Points, in)
	}

	s := h.game.State()
	assert.Len(t, s.EquationSolutions, 1)
	assert.Equal(t, score, s.Score)
	assert.NotContains(t, h.game.Unlocked(), achievements.EquationWizard)
}

func TestTogglePause_NotPlaying(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.game.TogglePause()
	assert.ErrorIs(t, err, ErrNotPlaying)
}

func TestTimer_TimeoutEndsSession(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Basic))
	timer := h.timers.last()

	for range 59 {
		require.True(t, timer.Fire())
	}
	assert.Equal(t, 1, h.game.State().TimeLeft)
	assert.Empty(t, h.listener.ended)

	require.True(t, timer.Fire())
	s := h.game.State()
	assert.Equal(t, 0, s.TimeLeft)
	assert.Equal(t, PhaseEnded, s.Phase)
	require.Len(t, h.listener.ended, 1)
	assert.Equal(t, EndTimeout, h.listener.ended[0].Reason)

	assert.False(t, timer.Fire(), "the timer is stopped at zero")
	assert.Len(t, h.listener.ended, 1)
	assert.Equal(t, 0, h.listener.ticks[len(h.listener.ticks)-1])
}

// leakyTimer never stops, so only the game's own bookkeeping can discard
// its ticks.
type leakyTimer struct{}

func (leakyTimer) Stop() {}

func TestTimer_StaleTicksIgnored(t *testing.T) {
	var fires []func()
	h := newHarness(t, nil)
	h.game.timers = func(_ time.Duration, fire func()) Timer {
		fires = append(fires, fire)
		return leakyTimer{}
	}

	require.NoError(t, h.game.Start(modes.Basic))
	require.NoError(t, h.game.Start(modes.Basic))
	require.Len(t, fires, 2)

	fires[0]()
	assert.Equal(t, 60, h.game.State().TimeLeft, "tick from a replaced timer")

	fires[1]()
	assert.Equal(t, 59, h.game.State().TimeLeft)

	_, err := h.game.End()
	require.NoError(t, err)
	fires[1]()
	assert.Equal(t, 59, h.game.State().TimeLeft, "tick after end")
}

func TestUntimedMode(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Practice))

	assert.Empty(t, h.timers.armed)
	h.game.Tick()
	s := h.game.State()
	assert.Equal(t, modes.Unbounded, s.TimeLeft)
	assert.Equal(t, PhasePlaying, s.Phase)

	for range 5 {
		_, err := h.game.CheckAnswer("1")
		require.NoError(t, err)
	}
	assert.Equal(t, PhasePlaying, h.game.State().Phase)
}

func TestShowHint_Budget(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.game.Start(modes.Basic))

	for range DefaultHintsPerSession {
		hint, err := h.game.ShowHint()
		require.NoError(t, err)
		assert.Equal(t, "Split 7 into 3 + 4, then add 5.", hint)
	}
	_, err := h.game.ShowHint()
	assert.ErrorIs(t, err, ErrNoHints)

	s := h.game.State()
	assert.Zero(t, s.HintsLeft)
	assert.Equal(t, DefaultHintsPerSession, s.HintsUsed)
}

func TestSkip_NoAttempt(t *testing.T) {
	h := newHarness(t, nil, mustArithmetic(t, modes.OpAdd, 7, 5), mustArithmetic(t, modes.OpMultiply, 3, 4))
	require.NoError(t, h.game.Start(modes.Basic))
	require.NoError(t, h.game.Skip())

	s := h.game.State()
	assert.Equal(t, "3 × 4", s.CurrentProblem.Text)
	assert.Zero(t, s.TotalAttempts)
	assert.Zero(t, s.Combo)
}

func TestStartDaily(t *testing.T) {
	h := newHarness(t, nil)
	mode, err := h.game.StartDaily()
	require.NoError(t, err)
	assert.Equal(t, modes.Daily(h.clock.now), mode)

	s := h.game.State()
	assert.True(t, s.IsDaily)
	assert.Equal(t, mode, s.Mode)

	summary, err := h.game.End()
	require.NoError(t, err)
	assert.True(t, summary.IsDaily)

	stats := h.game.Statistics()
	assert.Equal(t, 1, stats.DailyChallengesCompleted)
	assert.True(t, stats.DailyDoneOn(h.clock.now))
	assert.Contains(t, h.listener.unlocked, achievements.DailyChampion)

	// A second daily the same day does not count twice.
	_, err = h.game.StartDaily()
	require.NoError(t, err)
	_, err = h.game.End()
	require.NoError(t, err)
	assert.Equal(t, 1, h.game.Statistics().DailyChallengesCompleted)
}

func TestNew_CorruptProgressStartsFresh(t *testing.T) {
	st := openTestStore(t)
	_, err := st.DB().Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		store.ProgressKey, `{"statistics": 7}`, "2026-03-11T00:00:00Z")
	require.NoError(t, err)

	h := newHarness(t, st)
	assert.Zero(t, h.game.Statistics().GamesPlayed)
	assert.Empty(t, h.game.Unlocked())

	diags, err := st.EventRepo().QueryDiagnostics(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "session", diags[0].Source)
}

func TestNew_NilProgress(t *testing.T) {
	g := New(Options{
		Generator: &scriptedGen{problems: []*problemgen.Problem{problemgen.Fallback()}},
		Timers:    (&manualTimers{}).factory,
	})
	defer g.Close()

	require.NoError(t, g.Start(modes.Practice))
	_, err := g.CheckAnswer("4")
	require.NoError(t, err)
	_, err = g.End()
	require.NoError(t, err)
	assert.Equal(t, 1, g.Statistics().GamesPlayed)
}
