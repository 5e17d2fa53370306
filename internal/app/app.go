package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/router"
	"github.com/abhisek/mathrush/internal/screen"
	"github.com/abhisek/mathrush/internal/screens/home"
	sessionscreen "github.com/abhisek/mathrush/internal/screens/session"
	"github.com/abhisek/mathrush/internal/screens/welcome"
	"github.com/abhisek/mathrush/internal/session"
	"github.com/abhisek/mathrush/internal/store"
	"github.com/abhisek/mathrush/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Store *store.Store

	// HintsPerSession and WeeklyGoal override the game defaults when > 0.
	HintsPerSession int
	WeeklyGoal      int

	// StartMode, when set, skips the splash and opens a game directly.
	StartMode modes.Mode
	// StartDaily opens today's daily challenge directly.
	StartDaily bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	game    *session.Game
	initCmd tea.Cmd
	width   int
	height  int
}

// newAppModel wires the game to the screen stack.
func newAppModel(opts Options) AppModel {
	deps := sessionscreen.Deps{
		Clock:    sessionscreen.NewClock(),
		Notifier: sessionscreen.NewNotifier(),
	}
	gameOpts := session.Options{
		Listener:        deps.Notifier,
		Timers:          deps.Clock.Factory,
		HintsPerSession: opts.HintsPerSession,
		WeeklyGoal:      opts.WeeklyGoal,
	}
	var events store.EventRepo
	if opts.Store != nil {
		events = opts.Store.EventRepo()
		gameOpts.Progress = opts.Store.ProgressRepo()
		gameOpts.Events = events
	}
	deps.Game = session.New(gameOpts)

	homeDeps := home.Deps{Session: deps, Events: events}
	newHome := func() screen.Screen { return home.New(homeDeps) }

	m := AppModel{game: deps.Game}
	switch {
	case opts.StartDaily:
		m.router = router.New(newHome())
		m.initCmd = m.router.Push(sessionscreen.NewDaily(deps))
	case opts.StartMode != "":
		m.router = router.New(newHome())
		m.initCmd = m.router.Push(sessionscreen.New(deps, opts.StartMode))
	default:
		m.router = router.New(welcome.New(newHome))
		m.initCmd = m.router.Active().Init()
	}
	return m
}

// Init returns the first screen's start command. A game opened from the
// command line has already started.
func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	st := m.game.Statistics()
	header := layout.RenderHeader(title, layout.HeaderStats{
		Streak:    st.CurrentStreak,
		BestScore: st.BestScore(),
	}, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program. Any game still running when the
// program exits is abandoned.
func Run(opts Options) error {
	model := newAppModel(opts)
	defer model.game.Close()

	p := tea.NewProgram(model)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
