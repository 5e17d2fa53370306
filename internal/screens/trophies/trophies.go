package trophies

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrush/internal/achievements"
	"github.com/abhisek/mathrush/internal/screen"
	"github.com/abhisek/mathrush/internal/ui/components"
	"github.com/abhisek/mathrush/internal/ui/layout"
	"github.com/abhisek/mathrush/internal/ui/theme"
)

// TrophiesScreen lists every achievement, locked or unlocked, one rarity
// tab at a time.
type TrophiesScreen struct {
	unlocked     map[string]bool
	tabs         []achievements.Rarity
	selectedTab  int // index into tabs; 0 is "All"
	scrollOffset int
}

var _ screen.Screen = (*TrophiesScreen)(nil)
var _ screen.KeyHintProvider = (*TrophiesScreen)(nil)

// New creates a TrophiesScreen for the given unlocked achievement ids.
func New(unlockedIDs []string) *TrophiesScreen {
	unlocked := make(map[string]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlocked[id] = true
	}
	return &TrophiesScreen{
		unlocked: unlocked,
		tabs:     append([]achievements.Rarity{""}, achievements.AllRarities()...),
	}
}

func (s *TrophiesScreen) Init() tea.Cmd {
	return nil
}

func (s *TrophiesScreen) Title() string {
	return "Trophies"
}

func (s *TrophiesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch rarity"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TrophiesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "tab":
		s.selectedTab = (s.selectedTab + 1) % len(s.tabs)
		s.scrollOffset = 0
	case "shift+tab":
		s.selectedTab = (s.selectedTab - 1 + len(s.tabs)) % len(s.tabs)
		s.scrollOffset = 0
	case "up", "k":
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case "down", "j":
		if s.scrollOffset < len(s.filtered())-1 {
			s.scrollOffset++
		}
	}
	return s, nil
}

func (s *TrophiesScreen) View(width, height int) string {
	var b strings.Builder

	all := achievements.All()
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nUnlocked: %d / %d\n", s.unlockedCount(all), len(all))))
	b.WriteString("\n")

	var tabs []string
	for i, r := range s.tabs {
		label := "All"
		if r != "" {
			label = r.DisplayName()
		}
		label = fmt.Sprintf("%s (%d)", label, len(s.byRarity(r)))
		if i == s.selectedTab {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "   ")))
	b.WriteString("\n\n")
	b.WriteString(components.Divider(width))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No trophies of this rarity"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := min(s.scrollOffset, len(filtered))
	end := min(start+maxVisible, len(filtered))

	for _, a := range filtered[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderRow(a)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func (s *TrophiesScreen) renderRow(a achievements.Achievement) string {
	if !s.unlocked[a.ID] {
		line := fmt.Sprintf("  🔒 %-22s %-10s %s", a.Title, a.Rarity.DisplayName(), a.Description)
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
	}
	line := fmt.Sprintf("  %s %-22s %-10s %s", a.Icon, a.Title, a.Rarity.DisplayName(), a.Description)
	return lipgloss.NewStyle().Foreground(components.RarityColor(a.Rarity)).Bold(true).Render(line)
}

// filtered returns the achievements on the selected tab, unlocked first.
func (s *TrophiesScreen) filtered() []achievements.Achievement {
	list := s.byRarity(s.tabs[s.selectedTab])
	var unlocked, locked []achievements.Achievement
	for _, a := range list {
		if s.unlocked[a.ID] {
			unlocked = append(unlocked, a)
		} else {
			locked = append(locked, a)
		}
	}
	return append(unlocked, locked...)
}

// byRarity returns all achievements of rarity r, or every one when r is empty.
func (s *TrophiesScreen) byRarity(r achievements.Rarity) []achievements.Achievement {
	var out []achievements.Achievement
	for _, a := range achievements.All() {
		if r == "" || a.Rarity == r {
			out = append(out, a)
		}
	}
	return out
}

func (s *TrophiesScreen) unlockedCount(all []achievements.Achievement) int {
	n := 0
	for _, a := range all {
		if s.unlocked[a.ID] {
			n++
		}
	}
	return n
}
