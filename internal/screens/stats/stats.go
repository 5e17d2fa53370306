package stats

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/screen"
	"github.com/abhisek/mathrush/internal/stats"
	"github.com/abhisek/mathrush/internal/ui/components"
	"github.com/abhisek/mathrush/internal/ui/layout"
	"github.com/abhisek/mathrush/internal/ui/theme"
)

type rowKind int

const (
	rowHeader rowKind = iota
	rowText
	rowBar
)

type row struct {
	kind    rowKind
	label   string
	value   string
	percent float64
}

// StatsScreen shows lifetime statistics in scrollable sections.
type StatsScreen struct {
	rows         []row
	scrollOffset int
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen from a statistics snapshot.
func New(st *stats.Statistics) *StatsScreen {
	return &StatsScreen{rows: buildRows(st)}
}

func buildRows(st *stats.Statistics) []row {
	rows := []row{
		{kind: rowHeader, label: "Overview"},
		{kind: rowText, label: "Games played", value: fmt.Sprint(st.GamesPlayed)},
		{kind: rowText, label: "Accuracy", value: fmt.Sprintf("%.0f%%", st.Accuracy()*100)},
		{kind: rowText, label: "Play time", value: formatPlayTime(st.TotalPlayTime)},
		{kind: rowText, label: "Current streak", value: fmt.Sprintf("%d days", st.CurrentStreak)},
		{kind: rowText, label: "Longest streak", value: fmt.Sprintf("%d days", st.LongestStreak)},
		{kind: rowText, label: "Daily challenges", value: fmt.Sprint(st.DailyChallengesCompleted)},
		{kind: rowBar, label: fmt.Sprintf("Weekly goal %d/%d", st.WeeklyProgress, st.WeeklyGoal),
			percent: ratio(st.WeeklyProgress, st.WeeklyGoal)},
		{kind: rowHeader, label: "Best scores"},
	}
	for _, m := range modes.All() {
		value := "-"
		if best, ok := st.BestScores[m]; ok {
			value = fmt.Sprint(best)
		}
		rows = append(rows, row{kind: rowText, label: m.DisplayName(), value: value})
	}

	rows = append(rows, row{kind: rowHeader, label: "Topic mastery"})
	topics := st.Topics()
	if len(topics) == 0 {
		rows = append(rows, row{kind: rowText, label: "No problems answered yet"})
	}
	for _, op := range topics {
		tp := st.TopicsPerformance[op]
		rows = append(rows, row{
			kind:    rowBar,
			label:   fmt.Sprintf("%-9s %d/%d", topicName(op), tp.Correct, tp.Attempts),
			percent: tp.Mastery() / 100,
		})
	}

	rows = append(rows, row{kind: rowHeader, label: "Recent scores"})
	if len(st.RecentScores) == 0 {
		rows = append(rows, row{kind: rowText, label: "No finished games yet"})
	}
	top := 0
	for _, s := range st.RecentScores {
		top = max(top, s)
	}
	for i := len(st.RecentScores) - 1; i >= 0; i-- {
		s := st.RecentScores[i]
		rows = append(rows, row{kind: rowBar, label: fmt.Sprintf("%6d", s), percent: ratio(s, top)})
	}
	return rows
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.rows)-1 {
				s.scrollOffset++
			}
		case "home", "g":
			s.scrollOffset = 0
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var lines []string
	for _, r := range s.rows[s.scrollOffset:] {
		if len(lines) >= max(height-1, 1) {
			break
		}
		lines = append(lines, s.renderRow(r, cw))
	}
	block := strings.Join(lines, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func (s *StatsScreen) renderRow(r row, cw int) string {
	switch r.kind {
	case rowHeader:
		title := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("▸ " + strings.ToUpper(r.label))
		return lipgloss.NewStyle().Width(cw).PaddingTop(1).Render(title)
	case rowBar:
		return components.NewProgressBar(fmt.Sprintf("%-24s", r.label), r.percent, true, cw).View()
	default:
		label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(r.label)
		value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.value)
		gap := max(cw-lipgloss.Width(label)-lipgloss.Width(value), 1)
		return label + strings.Repeat(" ", gap) + value
	}
}

func topicName(op modes.Operation) string {
	switch op {
	case modes.OpAdd:
		return "Add"
	case modes.OpSubtract:
		return "Subtract"
	case modes.OpMultiply:
		return "Multiply"
	case modes.OpDivide:
		return "Divide"
	case modes.OpPower:
		return "Power"
	case modes.OpSqrt:
		return "Root"
	case modes.OpSequence:
		return "Sequence"
	case modes.OpEquation:
		return "Equation"
	default:
		return string(op)
	}
}

func formatPlayTime(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm %02ds", m, int(d.Seconds())%60)
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return min(float64(n)/float64(d), 1)
}
