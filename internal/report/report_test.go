package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathrush/internal/achievements"
	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/problemgen"
	"github.com/abhisek/mathrush/internal/stats"
)

var now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Input{Stats: stats.New(0), Now: now, Width: 80})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "OVERVIEW")
	assert.Contains(t, out, "No finished games yet.")
	assert.Contains(t, out, "No problems answered yet.")
	assert.Contains(t, out, "0 of 9 unlocked")
	assert.NotContains(t, out, "RECENT SCORES")
	assert.NotContains(t, out, "RECENT ACTIVITY")
}

func TestWrite_Populated(t *testing.T) {
	st := stats.New(3)
	st.GamesPlayed = 4
	st.RecordScore(200)
	st.RecordScore(400)
	st.UpdateBestScore(modes.Speed, 400)
	st.RecordTopic(modes.OpAdd, true, now)
	st.RecordTopic(modes.OpAdd, false, now)
	st.RecordActivity(stats.Activity{
		Timestamp: now,
		Problem:   &problemgen.Problem{Operation: modes.OpAdd, Text: "7 + 5"},
		Answer:    "12",
		Correct:   true,
		Mode:      modes.Basic,
	})

	var buf bytes.Buffer
	err := Write(&buf, Input{
		Stats:    st,
		Unlocked: []string{achievements.Combo10, "retired_badge"},
		Now:      now,
		Width:    40,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Games played")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "Weekly goal       0/3")
	assert.Contains(t, out, modes.Speed.DisplayName())
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "✓ 🔥 Combo Master")
	assert.Contains(t, out, "1 of 9 unlocked", "unknown ids are not counted")
	assert.Contains(t, out, "7 + 5")
}

func TestScoreChart_ScalesToWidth(t *testing.T) {
	lines := scoreChart([]int{50, 100}, 30)
	require.Len(t, lines, 2)

	for _, l := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 30)
	}
	full := strings.Count(lines[1], barRune)
	half := strings.Count(lines[0], barRune)
	assert.Equal(t, 24, full)
	assert.Equal(t, 12, half)
	assert.True(t, strings.HasPrefix(lines[0], " 50 │"))
}

func TestScoreChart_MinimumWidth(t *testing.T) {
	lines := scoreChart([]int{10}, 2)
	assert.Equal(t, minChartWidth, strings.Count(lines[0], barRune))
}

func TestScoreChart_AllZero(t *testing.T) {
	lines := scoreChart([]int{0, 0}, 40)
	for _, l := range lines {
		assert.Equal(t, 0, strings.Count(l, barRune))
	}
}

func TestFormatTable(t *testing.T) {
	lines := formatTable([]string{"MODE", "BEST"}, [][]string{
		{"Basic", "7"},
		{"Speed", "1200"},
	}, map[int]bool{1: true})

	assert.Equal(t, []string{
		"MODE   BEST",
		"Basic     7",
		"Speed  1200",
	}, lines)
}

func TestFormatTable_WideRunes(t *testing.T) {
	lines := formatTable(nil, [][]string{{"🔥", "x"}, {"ab", "y"}}, nil)
	assert.Equal(t, []string{"🔥  x", "ab  y"}, lines)
}

func TestActivityLines_NewestFirstAndTruncated(t *testing.T) {
	var acts []stats.Activity
	for i := range 12 {
		acts = append(acts, stats.Activity{
			Timestamp: now.Add(time.Duration(i) * time.Minute),
			Problem:   &problemgen.Problem{Text: strings.Repeat("9", i+1)},
			Answer:    "1",
			Mode:      modes.Basic,
		})
	}

	lines := activityLines(acts, 30)
	require.Len(t, lines, maxActivities)
	for _, l := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 30)
	}
	assert.Contains(t, activityLines(acts, 200)[0], strings.Repeat("9", 12))
}
