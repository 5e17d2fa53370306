package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: arcade neon on a dark cabinet
var (
	Primary      = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary    = lipgloss.Color("#14B8A6") // Teal
	Accent       = lipgloss.Color("#F97316") // Orange
	Success      = lipgloss.Color("#22C55E") // Green
	Error        = lipgloss.Color("#F43F5E") // Rose
	Text         = lipgloss.Color("#F8FAFC") // White
	TextDim      = lipgloss.Color("#94A3B8") // Slate
	BgDark       = lipgloss.Color("#0F172A") // Deep Navy
	BgCard       = lipgloss.Color("#1E293B") // Dark Slate
	Border       = lipgloss.Color("#334155") // Slate
	ArcadeYellow = lipgloss.Color("#FACC15") // Marquee
	ArcadeCyan   = lipgloss.Color("#22D3EE") // Score display
	ArcadePink   = lipgloss.Color("#EC4899") // Combo flash
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Problem is the large centered problem text on the game screen.
	Problem = lipgloss.NewStyle().
		Bold(true).
		Foreground(ArcadeYellow).
		Align(lipgloss.Center)
)

// Status line
var (
	ScoreStyle = lipgloss.NewStyle().
			Foreground(ArcadeCyan).
			Bold(true)

	ComboStyle = lipgloss.NewStyle().
			Foreground(ArcadePink).
			Bold(true)

	TimerStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// TimerLow is used once ten seconds or fewer remain.
	TimerLow = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Paused = lipgloss.NewStyle().
		Foreground(ArcadeYellow).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
