package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrush/internal/router"
	"github.com/abhisek/mathrush/internal/screen"
	"github.com/abhisek/mathrush/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond

	// countStep is how long each of 3, 2, 1 stays up.
	countStep = 500 * time.Millisecond
	revealAt  = 3 * countStep
	totalDur  = 2500 * time.Millisecond

	// holdDur is how long the finished splash stays up before moving on.
	holdDur = 2 * time.Second

	meterWidth = 24
)

// Countdown digits, drawn in the same block style as the banner.
var countdownDigits = []string{
	"█▀▀█\n  ▀▄\n█▄▄█",
	"█▀▀█\n ▄▀ \n█▄▄▄",
	" ▄█ \n  █ \n ▄█▄",
}

const goArt = "█▀▀ █▀█ █\n█▄█ █▄█ ▄"

// operators scroll along the combo meter once the banner is up.
var operators = []rune("+−×÷")

type tickMsg time.Time

// WelcomeScreen counts down 3, 2, 1 and reveals the banner with a filling
// combo meter, then moves to the home screen. Any key skips ahead.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	held         time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		} else {
			w.held += tickInterval
			if w.held >= holdDur {
				return w, w.transition()
			}
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// countdown returns the digit shown at the current moment, 3 down to 1, or
// 0 once the banner is revealed.
func (w *WelcomeScreen) countdown() int {
	if w.elapsed >= revealAt {
		return 0
	}
	return 3 - int(w.elapsed/countStep)
}

// meter renders the combo meter filling from empty at the reveal to full at
// the end of the animation, with an operator riding its leading edge.
func (w *WelcomeScreen) meter() string {
	filled := meterWidth
	if span := totalDur - revealAt; w.elapsed < totalDur {
		filled = int(time.Duration(meterWidth) * (w.elapsed - revealAt) / span)
	}
	filled = min(max(filled, 0), meterWidth)

	op := string(operators[int(w.elapsed/tickInterval)%len(operators)])
	bar := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Repeat("░", meterWidth-filled))
	edge := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(op)
	return "COMBO " + bar + edge + rest
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if n := w.countdown(); n > 0 {
		digit := lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render(countdownDigits[3-n])
		sections = append(sections, digit, "", lipgloss.NewStyle().Foreground(theme.TextDim).Render("get ready"))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
	}

	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(goArt),
		"",
		RenderBanner(width),
		"",
		w.meter(),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Beat the clock. Chase the combo."),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to start"),
	)

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
