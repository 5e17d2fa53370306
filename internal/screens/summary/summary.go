package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrush/internal/router"
	"github.com/abhisek/mathrush/internal/screen"
	"github.com/abhisek/mathrush/internal/session"
	"github.com/abhisek/mathrush/internal/ui/components"
	"github.com/abhisek/mathrush/internal/ui/layout"
	"github.com/abhisek/mathrush/internal/ui/theme"
)

// SummaryScreen displays the result of a finished game.
type SummaryScreen struct {
	summary *session.SessionSummary

	// replay builds a fresh game screen for the same mode. Nil disables "R".
	replay func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.SessionSummary, replay func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{summary: summary, replay: replay}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Game Over"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
	}
	if s.replay != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Play again"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			// The game screen was replaced by this one, so a pop lands home.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r", "R":
			if s.replay != nil {
				next := s.replay()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder

	title := "TIME'S UP!"
	if sum.Reason == session.EndFinished {
		title = "GAME OVER"
	}
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(title)))
	b.WriteString("\n")
	mode := sum.Mode.DisplayName()
	if sum.IsDaily {
		mode = "Daily Challenge: " + mode
	}
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render(mode)))
	b.WriteString("\n\n")

	score := theme.ScoreStyle.Render(fmt.Sprintf("SCORE %d", sum.Score))
	if sum.NewBest {
		score += "  " + lipgloss.NewStyle().Foreground(theme.ArcadePink).Bold(true).Render("NEW BEST!")
	}
	b.WriteString(components.ArcadeCard(score, cw))
	b.WriteString("\n\n")

	lines := []string{
		fmt.Sprintf("Level %d      Best combo x%d", sum.Level, sum.MaxCombo),
		fmt.Sprintf("Answered %d      Correct %d      Accuracy %.0f%%",
			sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100),
		fmt.Sprintf("Hints used %d      Time %s", sum.HintsUsed, formatDuration(sum)),
	}
	for _, l := range lines {
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Text).Render(l)))
		b.WriteString("\n")
	}

	if len(sum.Unlocked) > 0 {
		b.WriteString("\n")
		b.WriteString(components.SectionTitle("Achievements", width))
		b.WriteString("\n\n")
		for _, a := range sum.Unlocked {
			line := fmt.Sprintf("%s %s (%s) %s", a.Icon, a.Title, a.Rarity.DisplayName(), a.Description)
			style := lipgloss.NewStyle().Foreground(components.RarityColor(a.Rarity))
			b.WriteString(center(width, style.Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatDuration(sum *session.SessionSummary) string {
	secs := int(sum.Duration.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
