package session

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/router"
	"github.com/abhisek/mathrush/internal/screen"
	"github.com/abhisek/mathrush/internal/screens/summary"
	sess "github.com/abhisek/mathrush/internal/session"
	"github.com/abhisek/mathrush/internal/ui/components"
	"github.com/abhisek/mathrush/internal/ui/layout"
)

const (
	feedbackDuration = 1500 * time.Millisecond
	noticeDuration   = 2500 * time.Millisecond
	inputWidth       = 24
)

// Deps are the long-lived collaborators shared by every game screen.
type Deps struct {
	Game     *sess.Game
	Clock    *Clock
	Notifier *Notifier
}

type feedbackKind int

const (
	feedbackNone feedbackKind = iota
	feedbackCorrect
	feedbackWrong
	feedbackInfo
)

// SessionScreen implements screen.Screen for a running game.
type SessionScreen struct {
	deps  Deps
	mode  modes.Mode
	daily bool

	state sess.SessionState
	input components.TextInput

	feedback     string
	feedbackKind feedbackKind
	feedbackSeq  int
	hint         string
	notices      []Notice

	tickGen            int
	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.Closer = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New creates a game screen for mode.
func New(deps Deps, mode modes.Mode) *SessionScreen {
	return &SessionScreen{deps: deps, mode: mode}
}

// NewDaily creates a game screen for today's daily challenge.
func NewDaily(deps Deps) *SessionScreen {
	return &SessionScreen{deps: deps, daily: true}
}

func (s *SessionScreen) Init() tea.Cmd {
	var err error
	if s.daily {
		s.mode, err = s.deps.Game.StartDaily()
	} else {
		err = s.deps.Game.Start(s.mode)
	}
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	// Drop leftovers from a previous screen.
	s.deps.Notifier.Drain()
	s.deps.Notifier.TakeEnded()

	s.refresh()
	s.resetInput()
	return tea.Batch(s.input.Init(), s.startTicking())
}

func (s *SessionScreen) Title() string {
	if s.daily {
		return "Daily Challenge: " + s.mode.DisplayName()
	}
	return s.mode.DisplayName()
}

func (s *SessionScreen) HandlesEscape() bool { return true }

// Close abandons the game if the screen leaves while it is still running.
func (s *SessionScreen) Close() {
	_ = s.deps.Game.Abandon()
	s.tickGen++
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit game"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	if s.state.IsPaused() {
		return []layout.KeyHint{
			{Key: "P", Description: "Resume"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "?", Description: fmt.Sprintf("Hint (%d)", s.state.HintsLeft)},
		{Key: "P", Description: "Pause"},
	}
	if s.mode == modes.Equation {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "New target"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+E", Description: "Finish"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	return s.renderGame(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick(msg)

	case feedbackDoneMsg:
		if msg.seq == s.feedbackSeq {
			s.feedback = ""
			s.feedbackKind = feedbackNone
		}
		return s, nil

	case noticeDoneMsg:
		if len(s.notices) > 0 {
			s.notices = s.notices[1:]
		}
		return s, nil

	case tea.BlurMsg:
		s.deps.Game.Pause()
		s.refresh()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.state.Phase == sess.PhasePlaying && !s.showingQuitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.gen != s.tickGen {
		return s, nil
	}
	s.deps.Clock.Fire()
	s.refresh()
	if cmd := s.checkEnded(); cmd != nil {
		return s, cmd
	}
	return s, s.tickCmd()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
			if s.state.IsPaused() {
				_, _ = s.deps.Game.TogglePause()
				s.refresh()
			}
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		s.deps.Game.Pause()
		s.refresh()
		return s, nil
	case "p", "P":
		if _, err := s.deps.Game.TogglePause(); err == nil {
			s.refresh()
		}
		return s, nil
	}

	if s.state.IsPaused() {
		return s, nil
	}

	switch key {
	case "enter":
		return s.submitAnswer()
	case "?":
		return s.showHint()
	case "ctrl+s":
		if err := s.deps.Game.Skip(); err == nil {
			s.hint = ""
			s.resetInput()
			s.refresh()
		}
		return s, nil
	case "ctrl+e":
		if _, err := s.deps.Game.End(); err == nil {
			return s, s.checkEnded()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submitAnswer sends the input to the game and shows the verdict.
func (s *SessionScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	value := s.input.Value()
	if value == "" {
		return s, nil
	}

	res, err := s.deps.Game.CheckAnswer(value)
	switch {
	case errors.Is(err, sess.ErrInvalidInput):
		if s.state.CurrentProblem != nil && s.state.CurrentProblem.Operation == modes.OpEquation {
			return s, s.setFeedback(feedbackInfo, "That is not a valid expression")
		}
		return s, s.setFeedback(feedbackInfo, "Please enter a number")
	case err != nil:
		return s, nil
	}

	var cmds []tea.Cmd
	switch {
	case res.Duplicate:
		cmds = append(cmds, s.setFeedback(feedbackInfo, "Already found that one. Try another!"))
	case res.Correct:
		text := fmt.Sprintf("Correct! +%d", res.Points)
		if res.Combo > 1 {
			text += fmt.Sprintf("   Combo x%d", res.Combo)
		}
		cmds = append(cmds, s.setFeedback(feedbackCorrect, text))
		s.hint = ""
	case res.Reason != "":
		cmds = append(cmds, s.setFeedback(feedbackWrong, reasonText(res.Reason)))
	default:
		cmds = append(cmds, s.setFeedback(feedbackWrong, "Not quite. Try again!"))
	}
	s.resetInput()
	s.input.Submit(res.Correct)

	s.refresh()
	cmds = append(cmds, s.collectNotices())
	if cmd := s.checkEnded(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return s, tea.Batch(cmds...)
}

func (s *SessionScreen) showHint() (screen.Screen, tea.Cmd) {
	hint, err := s.deps.Game.ShowHint()
	switch {
	case errors.Is(err, sess.ErrNoHints):
		return s, s.setFeedback(feedbackInfo, "No hints left")
	case err != nil:
		return s, nil
	}
	s.hint = hint
	s.refresh()
	return s, nil
}

// checkEnded moves to the summary once the game has finished.
func (s *SessionScreen) checkEnded() tea.Cmd {
	ended := s.deps.Notifier.TakeEnded()
	if ended == nil {
		return nil
	}
	s.tickGen++
	deps := s.deps
	mode, daily := s.mode, s.daily
	replay := func() screen.Screen {
		if daily {
			return NewDaily(deps)
		}
		return New(deps, mode)
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(ended, replay)}
	}
}

func (s *SessionScreen) collectNotices() tea.Cmd {
	fresh := s.deps.Notifier.Drain()
	if len(fresh) == 0 {
		return nil
	}
	s.notices = append(s.notices, fresh...)
	cmds := make([]tea.Cmd, len(fresh))
	for i := range fresh {
		cmds[i] = tea.Tick(noticeDuration*time.Duration(i+1), func(time.Time) tea.Msg {
			return noticeDoneMsg{}
		})
	}
	return tea.Batch(cmds...)
}

func (s *SessionScreen) setFeedback(kind feedbackKind, text string) tea.Cmd {
	s.feedbackSeq++
	s.feedback = text
	s.feedbackKind = kind
	seq := s.feedbackSeq
	return tea.Tick(feedbackDuration, func(time.Time) tea.Msg {
		return feedbackDoneMsg{seq: seq}
	})
}

func (s *SessionScreen) resetInput() {
	charset, placeholder := components.NumberCharset, "Type your answer..."
	if s.mode == modes.Equation {
		charset, placeholder = components.ExpressionCharset, "e.g. (3 + 5) * 2"
	}
	if s.input.Charset != charset {
		s.input = components.NewTextInput(placeholder, charset, inputWidth)
		return
	}
	s.input.Reset()
}

func (s *SessionScreen) refresh() {
	s.state = s.deps.Game.State()
}

// startTicking begins a new tick loop, orphaning any earlier one.
func (s *SessionScreen) startTicking() tea.Cmd {
	s.tickGen++
	if s.state.Config.Untimed() {
		return nil
	}
	return s.tickCmd()
}

// tickCmd returns a 1-second tick command.
func (s *SessionScreen) tickCmd() tea.Cmd {
	gen := s.tickGen
	return tea.Tick(sess.TickInterval, func(t time.Time) tea.Msg {
		return timerTickMsg{gen: gen, time: t}
	})
}
