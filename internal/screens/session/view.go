package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/problemgen"
	"github.com/abhisek/mathrush/internal/ui/components"
	"github.com/abhisek/mathrush/internal/ui/layout"
	"github.com/abhisek/mathrush/internal/ui/theme"
)

// lowTime is the countdown value at which the clock turns red.
const lowTime = 10

// renderGame renders the status line, the problem and the answer field.
func (s *SessionScreen) renderGame(width, height int) string {
	state := s.state
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderStatus(width))
	b.WriteString("\n")
	b.WriteString(components.Divider(width))
	b.WriteString("\n\n")

	if state.IsPaused() {
		b.WriteString(center(width, theme.Paused.Render("PAUSED")))
		b.WriteString("\n\n")
		b.WriteString(center(width, theme.Hint.Render("Press P to resume")))
		return b.String()
	}

	p := state.CurrentProblem
	if p == nil {
		b.WriteString(center(width, theme.Hint.Render("Generating problem...")))
		return b.String()
	}

	b.WriteString(components.ArcadeCard(theme.Problem.Render(problemText(p)), cw))
	b.WriteString("\n\n")
	b.WriteString(center(width, "Answer: "+s.input.View()))
	b.WriteString("\n\n")

	if s.feedback != "" {
		b.WriteString(center(width, feedbackStyle(s.feedbackKind).Render(s.feedback)))
		b.WriteString("\n")
	}
	if s.hint != "" {
		b.WriteString(center(width, theme.Hint.Render("Hint: "+s.hint)))
		b.WriteString("\n")
	}
	if n := len(state.EquationSolutions); n > 0 {
		b.WriteString("\n")
		b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("Solutions found: %d", n))))
		b.WriteString("\n")
	}
	if len(s.notices) > 0 {
		b.WriteString("\n")
		b.WriteString(renderNotice(s.notices[0], cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderStatus renders score, level, combo, clock and hints on one line.
func (s *SessionScreen) renderStatus(width int) string {
	state := s.state

	clock := theme.TimerStyle
	if !state.Config.Untimed() && state.TimeLeft <= lowTime {
		clock = theme.TimerLow
	}

	parts := []string{
		theme.ScoreStyle.Render(fmt.Sprintf("SCORE %d", state.Score)),
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(fmt.Sprintf("LV %d", state.Level)),
		theme.ComboStyle.Render(fmt.Sprintf("COMBO x%d", state.Combo)),
		clock.Render("⏱ " + layout.FormatClock(state.TimeLeft)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("HINTS %d", state.HintsLeft)),
	}
	return center(width, strings.Join(parts, "   "))
}

func renderNotice(n Notice, cw int) string {
	switch n.Kind {
	case NoticeAchievement:
		color := theme.ArcadeYellow
		if n.Achievement != nil {
			color = components.RarityColor(n.Achievement.Rarity)
		}
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Foreground(color).
			Bold(true).
			Width(cw - 2).
			Align(lipgloss.Center).
			Render("🏆 " + n.Text)
	default:
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render("▲ " + n.Text)
	}
}

// problemText formats a problem for display.
func problemText(p *problemgen.Problem) string {
	if p.Operation == modes.OpSequence {
		return p.Text + ", ?"
	}
	if p.Operation == modes.OpEquation {
		return p.Text
	}
	return p.Text + " = ?"
}

func feedbackStyle(kind feedbackKind) lipgloss.Style {
	switch kind {
	case feedbackCorrect:
		return theme.Correct
	case feedbackWrong:
		return theme.Incorrect
	default:
		return lipgloss.NewStyle().Foreground(theme.ArcadeYellow)
	}
}

// reasonText turns an equation rejection reason into a sentence.
func reasonText(reason string) string {
	if reason == "" {
		return "Not quite. Try again!"
	}
	return "Not quite: " + reason
}

func center(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Quit this game?")))
	b.WriteString("\n")
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.TextDim).Render("The score will not be recorded.")))
	b.WriteString("\n\n")
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, quit")))
	b.WriteString("\n")
	b.WriteString(center(width, lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep playing")))
	return b.String()
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
