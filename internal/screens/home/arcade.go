package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrush/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = `█▀▄▀█ ▄▀█ ▀█▀ █ █ █▀█ █ █ █▀ █ █
█ ▀ █ █▀█  █  █▀█ █▀▄ █▄█ ▄█ █▀█`

const arcadeTitleCompact = "M · A · T · H · R · U · S · H"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders the dashboard in a bordered box matching content width.
func renderStatsBar(d dashboard, cw int, compact bool) string {
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	weekStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	week := weekStyle
	if !d.weeklyMet {
		week = dimStyle
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s %s",
			streakStyle.Render(fmt.Sprintf("★%d", d.streak)),
			bestStyle.Render(fmt.Sprintf("♛%d", d.best)),
			week.Render(fmt.Sprintf("⚑%d/%d", d.weekDone, d.weekGoal)),
			dailyText(d, true, weekStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s  %s",
			streakStyle.Render(fmt.Sprintf("★ %d DAY STREAK", d.streak)),
			bestStyle.Render(fmt.Sprintf("♛ BEST %d", d.best)),
			week.Render(fmt.Sprintf("⚑ WEEK %d/%d", d.weekDone, d.weekGoal)),
			dailyText(d, false, weekStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func dailyText(d dashboard, compact bool, done, pending lipgloss.Style) string {
	if d.dailyDone {
		if compact {
			return done.Render("☀✓")
		}
		return done.Render("☀ DAILY DONE")
	}
	if compact {
		return pending.Render("☀")
	}
	return pending.Render("☀ DAILY OPEN")
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeYellow).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := normalBtn.Foreground(theme.TextDim)

	// Two columns keep thirteen buttons on screen.
	var left, right []string
	for i, label := range items {
		var btn string
		switch {
		case disabled[i]:
			btn = disabledBtn.Render(label)
		case i == selected:
			btn = selectedBtn.Render("▸ " + label)
		default:
			btn = normalBtn.Render(label)
		}
		if i < (len(items)+1)/2 {
			left = append(left, btn)
		} else {
			right = append(right, btn)
		}
	}
	block := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(left, "\n"), " ", strings.Join(right, "\n"))

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(mood Mood, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(mood))
}
