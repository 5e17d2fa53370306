package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/router"
	"github.com/abhisek/mathrush/internal/screen"
	"github.com/abhisek/mathrush/internal/screens/history"
	sessionscreen "github.com/abhisek/mathrush/internal/screens/session"
	statsscreen "github.com/abhisek/mathrush/internal/screens/stats"
	"github.com/abhisek/mathrush/internal/screens/trophies"
	"github.com/abhisek/mathrush/internal/store"
	"github.com/abhisek/mathrush/internal/ui/components"
)

// Deps are the collaborators the home screen hands to the screens it opens.
type Deps struct {
	Session sessionscreen.Deps
	Events  store.EventRepo

	// Now defaults to time.Now.
	Now func() time.Time
}

// dashboard is the stats bar content, refreshed on every resume.
type dashboard struct {
	streak      int
	best        int
	weekDone    int
	weekGoal    int
	unlocked    int
	dailyMode   modes.Mode
	dailyDone   bool
	weeklyMet   bool
	gamesPlayed int
}

// HomeScreen is the main menu: one entry per mode plus the daily challenge.
type HomeScreen struct {
	deps  Deps
	menu  components.Menu
	board dashboard
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := &HomeScreen{deps: deps}
	h.refresh()
	return h
}

func (h *HomeScreen) buildMenu() components.Menu {
	deps := h.deps
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	var items []components.MenuItem
	for _, m := range modes.All() {
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(m.DisplayName()),
			Action: push(func() screen.Screen { return sessionscreen.New(deps.Session, m) }),
		})
	}
	items = append(items,
		components.MenuItem{
			Label:  "DAILY: " + strings.ToUpper(h.board.dailyMode.DisplayName()),
			Action: push(func() screen.Screen { return sessionscreen.NewDaily(deps.Session) }),
		},
		components.MenuItem{
			Label:  "STATISTICS",
			Action: push(func() screen.Screen { return statsscreen.New(deps.Session.Game.Statistics()) }),
		},
		components.MenuItem{
			Label:  fmt.Sprintf("TROPHIES (%d)", h.board.unlocked),
			Action: push(func() screen.Screen { return trophies.New(deps.Session.Game.Unlocked()) }),
		},
		components.MenuItem{
			Label:    "HISTORY",
			Action:   push(func() screen.Screen { return history.New(deps.Events) }),
			Disabled: deps.Events == nil,
		},
		components.MenuItem{
			Label:  "EXIT GAME",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	menu := components.NewMenu(items)
	menu.Selected = h.menu.Selected
	return menu
}

// refresh reloads the dashboard from the game's statistics.
func (h *HomeScreen) refresh() {
	now := h.deps.Now()
	st := h.deps.Session.Game.Statistics()
	h.board = dashboard{
		streak:      st.CurrentStreak,
		best:        st.BestScore(),
		weekDone:    st.WeeklyProgress,
		weekGoal:    st.WeeklyGoal,
		unlocked:    len(h.deps.Session.Game.Unlocked()),
		dailyMode:   modes.Daily(now),
		dailyDone:   st.DailyDoneOn(now),
		weeklyMet:   st.WeeklyGoalMet(),
		gamesPlayed: st.GamesPlayed,
	}
	h.menu = h.buildMenu()
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the dashboard after a game or a sub-screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 40 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mood(), cw))
	}
	sections = append(sections, renderStatsBar(h.board, cw, compact))

	labels := h.menu.Labels()
	if compact {
		sections = append(sections, renderArcadeMenuCompact(labels, h.menu.Selected, cw, h.menu.DisabledSet()))
	} else {
		sections = append(sections, renderArcadeMenu(labels, h.menu.Selected, cw, h.menu.DisabledSet()))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// mood reflects the dashboard: a met weekly goal beats an open daily, and a
// brand-new player is never nagged.
func (h *HomeScreen) mood() Mood {
	switch {
	case h.board.weeklyMet:
		return MoodChampion
	case !h.board.dailyDone && h.board.gamesPlayed > 0:
		return MoodAlarm
	default:
		return MoodReady
	}
}
