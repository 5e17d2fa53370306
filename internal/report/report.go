package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/abhisek/mathrush/internal/achievements"
	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/stats"
)

const (
	terminalWidthBackup = 80
	minChartWidth       = 10
	maxActivities       = 10
	barRune             = "█"
)

// Input is everything the report shows.
type Input struct {
	Stats    *stats.Statistics
	Unlocked []string
	Now      time.Time

	// Width is the terminal width; <= 0 uses TerminalWidth(os.Stdout).
	Width int
}

// TerminalWidth returns the width of f, or 80 when f is not a terminal.
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// Write renders the full statistics report to w.
func Write(w io.Writer, in Input) error {
	if in.Width <= 0 {
		in.Width = TerminalWidth(os.Stdout)
	}
	st := in.Stats

	var b strings.Builder
	section(&b, "Overview")
	daily := "not yet"
	if st.DailyDoneOn(in.Now) {
		daily = "done"
	}
	writeLines(&b, formatTable(nil, [][]string{
		{"Games played", fmt.Sprint(st.GamesPlayed)},
		{"Accuracy", fmt.Sprintf("%.1f%%", st.Accuracy()*100)},
		{"Play time", st.TotalPlayTime.String()},
		{"Streak", fmt.Sprintf("%d days (longest %d)", st.CurrentStreak, st.LongestStreak)},
		{"Weekly goal", fmt.Sprintf("%d/%d", st.WeeklyProgress, st.WeeklyGoal)},
		{"Daily challenges", fmt.Sprint(st.DailyChallengesCompleted)},
		{"Today's daily", fmt.Sprintf("%s (%s)", modes.Daily(in.Now).DisplayName(), daily)},
	}, nil))

	section(&b, "Best scores")
	var bestRows [][]string
	for _, m := range modes.All() {
		if best, ok := st.BestScores[m]; ok {
			bestRows = append(bestRows, []string{m.DisplayName(), fmt.Sprint(best)})
		}
	}
	if len(bestRows) == 0 {
		b.WriteString("No finished games yet.\n")
	} else {
		writeLines(&b, formatTable([]string{"MODE", "BEST"}, bestRows, map[int]bool{1: true}))
	}

	section(&b, "Topics")
	var topicRows [][]string
	for _, op := range st.Topics() {
		tp := st.TopicsPerformance[op]
		topicRows = append(topicRows, []string{
			string(op), fmt.Sprint(tp.Attempts), fmt.Sprint(tp.Correct), fmt.Sprintf("%.0f%%", tp.Mastery()),
		})
	}
	if len(topicRows) == 0 {
		b.WriteString("No problems answered yet.\n")
	} else {
		writeLines(&b, formatTable([]string{"TOPIC", "TRIED", "RIGHT", "MASTERY"}, topicRows,
			map[int]bool{1: true, 2: true, 3: true}))
	}

	if len(st.RecentScores) > 0 {
		section(&b, "Recent scores")
		writeLines(&b, scoreChart(st.RecentScores, in.Width))
	}

	section(&b, "Achievements")
	writeLines(&b, achievementLines(in.Unlocked))

	if len(st.RecentActivities) > 0 {
		section(&b, "Recent activity")
		writeLines(&b, activityLines(st.RecentActivities, in.Width))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func section(b *strings.Builder, title string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(strings.ToUpper(title))
	b.WriteString("\n")
}

func writeLines(b *strings.Builder, lines []string) {
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
}

// scoreChart renders one horizontal bar per score, oldest first, scaled to
// the largest score.
func scoreChart(scores []int, width int) []string {
	top := 0
	labelWidth := 0
	for _, s := range scores {
		top = max(top, s)
		labelWidth = max(labelWidth, len(fmt.Sprint(s)))
	}
	chartWidth := max(width-labelWidth-3, minChartWidth)

	lines := make([]string, 0, len(scores))
	for _, s := range scores {
		n := 0
		if top > 0 {
			n = s * chartWidth / top
		}
		lines = append(lines, fmt.Sprintf("%*d │ %s", labelWidth, s, strings.Repeat(barRune, n)))
	}
	return lines
}

func achievementLines(unlocked []string) []string {
	have := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		have[id] = true
	}
	var rows [][]string
	count := 0
	for _, a := range achievements.All() {
		mark := "  "
		if have[a.ID] {
			mark = "✓ "
			count++
		}
		rows = append(rows, []string{mark + a.Icon + " " + a.Title, a.Rarity.DisplayName(), a.Description})
	}
	lines := formatTable(nil, rows, nil)
	return append(lines, fmt.Sprintf("%d of %d unlocked", count, len(rows)))
}

// activityLines lists the newest activities first, truncated to width.
func activityLines(acts []stats.Activity, width int) []string {
	var rows [][]string
	for i := len(acts) - 1; i >= 0 && len(rows) < maxActivities; i-- {
		a := acts[i]
		verdict := "✗"
		if a.Correct {
			verdict = "✓"
		}
		text := ""
		if a.Problem != nil {
			text = a.Problem.Text
		}
		rows = append(rows, []string{
			a.Timestamp.Local().Format("Jan 02 15:04"), a.Mode.DisplayName(), verdict, text, a.Answer,
		})
	}
	lines := formatTable(nil, rows, nil)
	for i, l := range lines {
		lines[i] = runewidth.Truncate(l, width, "…")
	}
	return lines
}
