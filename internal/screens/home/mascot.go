package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrush/internal/ui/theme"
)

// Mood picks the stopwatch mascot's face on the home screen.
type Mood int

const (
	// MoodReady is shown when nothing needs the player's attention.
	MoodReady Mood = iota
	// MoodChampion is shown once the weekly goal is met.
	MoodChampion
	// MoodAlarm is shown while today's daily challenge is still open.
	MoodAlarm
)

// Stopwatch faces. Every frame is five rows so the home layout does not
// jump when the mood changes.
var mascotFaces = map[Mood]string{
	MoodReady: `   ╓─╖
 ╭─┴─┴─╮
 │ • • │
 │  ◡  │
 ╰─────╯`,
	MoodChampion: `  ♛ ╓─╖ ♛
 ╭─┴─┴─╮
 │ ★ ★ │
 │  ◡  │
 ╰─────╯`,
	MoodAlarm: `  ╲╓─╖╱
 ╭─┴─┴─╮
 │ ◉ ◉ │ ((!))
 │  ○  │
 ╰─────╯`,
}

var mascotCaptions = map[Mood]string{
	MoodReady:    "Tick tock. Pick a mode!",
	MoodChampion: "Weekly goal smashed!",
	MoodAlarm:    "Today's daily is waiting",
}

// RenderMascot returns the stopwatch art for mood with its caption below.
func RenderMascot(mood Mood) string {
	fg := theme.Primary
	switch mood {
	case MoodChampion:
		fg = theme.ArcadeYellow
	case MoodAlarm:
		fg = theme.Accent
	}

	face, ok := mascotFaces[mood]
	if !ok {
		mood, face = MoodReady, mascotFaces[MoodReady]
	}
	art := lipgloss.NewStyle().Foreground(fg).Render(face)
	caption := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(mascotCaptions[mood])
	return lipgloss.JoinVertical(lipgloss.Center, art, caption)
}
