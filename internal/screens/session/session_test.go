package session

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/problemgen"
	"github.com/abhisek/mathrush/internal/router"
	"github.com/abhisek/mathrush/internal/screens/summary"
	sess "github.com/abhisek/mathrush/internal/session"
	"github.com/abhisek/mathrush/internal/store"
)

type fixedGen struct {
	p *problemgen.Problem
}

func (g fixedGen) Generate(context.Context, problemgen.GenerateInput) *problemgen.Problem {
	return g.p.Clone()
}

func newDeps(t *testing.T) Deps {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	p, err := problemgen.Arithmetic(modes.OpAdd, 7, 5)
	require.NoError(t, err)

	deps := Deps{Clock: NewClock(), Notifier: NewNotifier()}
	deps.Game = sess.New(sess.Options{
		Generator: fixedGen{p: p},
		Progress:  st.ProgressRepo(),
		Events:    st.EventRepo(),
		Listener:  deps.Notifier,
		Timers:    deps.Clock.Factory,
	})
	t.Cleanup(deps.Game.Close)
	return deps
}

func typeText(s *SessionScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func tick(s *SessionScreen) tea.Cmd {
	_, cmd := s.Update(timerTickMsg{gen: s.tickGen})
	return cmd
}

func TestSessionScreen_InitStartsGame(t *testing.T) {
	deps := newDeps(t)
	s := New(deps, modes.Basic)
	s.Init()

	assert.Equal(t, sess.PhasePlaying, deps.Game.State().Phase)
	assert.Equal(t, modes.Basic.DisplayName(), s.Title())
	view := s.View(80, 24)
	assert.Contains(t, view, "7 + 5 = ?")
	assert.Contains(t, view, "01:00")
}

func TestSessionScreen_CorrectAnswer(t *testing.T) {
	deps := newDeps(t)
	s := New(deps, modes.Basic)
	s.Init()

	typeText(s, "12")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.Equal(t, 110, deps.Game.State().Score)
	assert.Equal(t, feedbackCorrect, s.feedbackKind)
	assert.Contains(t, s.View(80, 24), "Correct! +110")
	assert.Empty(t, s.input.Value())
}

func TestSessionScreen_WrongAnswer(t *testing.T) {
	deps := newDeps(t)
	s := New(deps, modes.Basic)
	s.Init()

	typeText(s, "13")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.Equal(t, feedbackWrong, s.feedbackKind)
	assert.Equal(t, 0, deps.Game.State().Score)
	assert.Equal(t, 1, deps.Game.State().TotalAttempts)
}

func TestSessionScreen_CharsetFiltersInput(t *testing.T) {
	deps := newDeps(t)
	s := New(deps, modes.Basic)
	s.Init()

	typeText(s, "1a2")
	assert.Equal(t, "12", s.input.Value())
}

func TestSessionScreen_TicksCountDown(t *testing.T) {
	deps := newDeps(t)
	s := New(deps, modes.Basic)
	s.Init()

	cmd := tick(s)
	assert.NotNil(t, cmd, "tick loop should continue")
	assert.Equal(t, 59, deps.Game.State().TimeLeft)

	// A tick from an earlier loop is dropped.
	s.Update(timerTickMsg{gen: s.tickGen - 1})
	assert.Equal(t, 59, deps.Game.State().TimeLeft)
}

func TestSessionScreen_TimeoutShowsSummary(t *testing.T) {
	deps := newDeps(t)
	s := New(deps, modes.Speed)
	s.Init()

	var cmd tea.Cmd
	for range 30 {
		cmd = tick(s)
	}
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected the summary to replace the game screen")
	assert.IsType(t, &summary.SummaryScreen{}, msg.Screen)
	assert.Equal(t, sess.PhaseEnded, deps.Game.State().Phase)
}

func TestSessionScreen_FinishEarly(t *testing.T) {
	deps := newDeps(t)
	s := New(deps, modes.Practice)
	s.Init()

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, router.ReplaceScreenMsg{}, cmd())
	require.NotNil(t, deps.Game.LastSummary())
	assert.Equal(t, sess.EndFinished, deps.Game.LastSummary().Reason)
}

func TestSessionScreen_PauseAndBlur(t *testing.T) {
	deps := newDeps(t)
	s := New(deps, modes.Basic)
	s.Init()

	s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	assert.Equal(t, sess.PhasePaused, deps.Game.State().Phase)
	assert.Contains(t, s.View(80, 24), "PAUSED")

	tick(s)
	assert.Equal(t, 60, deps.Game.State().TimeLeft, "paused clock must not move")

	s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	assert.Equal(t, sess.PhasePlaying, deps.Game.State().Phase)

	s.Update(tea.BlurMsg{})
	assert.Equal(t, sess.PhasePaused, deps.Game.State().Phase)
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	deps := newDeps(t)
	s := New(deps, modes.Basic)
	s.Init()
	require.True(t, s.HandlesEscape())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.True(t, s.showingQuitConfirm)
	assert.Contains(t, s.View(80, 24), "Quit this game?")

	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	assert.False(t, s.showingQuitConfirm)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())

	// The router closes the screen on pop.
	s.Close()
	assert.Equal(t, sess.PhaseIdle, deps.Game.State().Phase)
	assert.Nil(t, deps.Game.LastSummary())
}

func TestSessionScreen_Hint(t *testing.T) {
	deps := newDeps(t)
	s := New(deps, modes.Basic)
	s.Init()

	s.Update(tea.KeyPressMsg{Code: '?', Text: "?"})
	assert.NotEmpty(t, s.hint)
	assert.Equal(t, sess.DefaultHintsPerSession-1, deps.Game.State().HintsLeft)
}

func TestSessionScreen_DailyTitle(t *testing.T) {
	deps := newDeps(t)
	s := NewDaily(deps)
	s.Init()

	assert.True(t, deps.Game.State().IsDaily)
	assert.Contains(t, s.Title(), "Daily Challenge")
}

func TestClock_FiresLatestTimer(t *testing.T) {
	c := NewClock()
	assert.False(t, c.Fire())

	var first, second int
	t1 := c.Factory(0, func() { first++ })
	c.Factory(0, func() { second++ })
	t1.Stop()

	assert.True(t, c.Fire())
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestNotifier_Queues(t *testing.T) {
	n := NewNotifier()
	n.LevelUp(2)
	notes := n.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, NoticeLevelUp, notes[0].Kind)
	assert.Empty(t, n.Drain())
	assert.Nil(t, n.TakeEnded())
}
