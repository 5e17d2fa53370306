package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/screen"
	"github.com/abhisek/mathrush/internal/store"
	"github.com/abhisek/mathrush/internal/ui/layout"
	"github.com/abhisek/mathrush/internal/ui/theme"
)

// queryLimit bounds how many lifecycle events are read. Each game writes a
// start plus an end or abandon.
const queryLimit = 200

type historyLoadedMsg struct {
	Games []store.SessionEvent
	Err   error
}

// HistoryScreen lists finished and abandoned games, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	games     []store.SessionEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.QuerySessionEvents(context.Background(), store.QueryOpts{Limit: queryLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Games: finishedGames(events)}
	}
}

// finishedGames drops start events, keeping one row per completed game.
func finishedGames(events []store.SessionEvent) []store.SessionEvent {
	var out []store.SessionEvent
	for _, e := range events {
		if e.Action != store.SessionStart {
			out = append(out, e)
		}
	}
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.games = msg.Games
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.games)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.games) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No games yet. Go play one!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection on screen.
	maxVisible := max(height-3, 3)
	start := max(s.selected-maxVisible+1, 0)

	for i := start; i < len(s.games) && i < start+maxVisible; i++ {
		g := s.games[i]

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		mode := modes.Mode(g.Mode).DisplayName()
		if g.Daily {
			mode += " ☀"
		}
		outcome := fmt.Sprintf("%6d pts", g.Score)
		if g.Action == store.SessionAbandon {
			outcome = " abandoned"
		}
		line := fmt.Sprintf("%s%s  %-16s %s  %d/%d correct",
			prefix, g.Timestamp.Local().Format("Jan 02 15:04"), mode, outcome,
			g.QuestionsCorrect, g.QuestionsAnswered)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case g.Action == store.SessionAbandon:
			style = style.Foreground(theme.TextDim)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    Level %d   %d:%02d played   %.0f%% accuracy   %s",
				g.Level, g.DurationSecs/60, g.DurationSecs%60, accuracy(g), shortID(g.SessionID))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func accuracy(g store.SessionEvent) float64 {
	if g.QuestionsAnswered == 0 {
		return 0
	}
	return float64(g.QuestionsCorrect) / float64(g.QuestionsAnswered) * 100
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
