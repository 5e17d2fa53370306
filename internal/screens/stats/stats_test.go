package stats

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/stats"
)

func sampleStats() *stats.Statistics {
	st := stats.New(5)
	now := time.Date(2026, 3, 11, 18, 0, 0, 0, time.Local)
	st.GamesPlayed = 3
	st.RecordScore(400)
	st.RecordScore(1200)
	st.UpdateBestScore(modes.Basic, 1200)
	st.RecordTopic(modes.OpAdd, true, now)
	st.RecordTopic(modes.OpAdd, false, now)
	st.UpdateStreak(now)
	st.AddWeeklyProgress(now, 3)
	st.AddPlayTime(95 * time.Second)
	return st
}

func TestStatsScreen_Rows(t *testing.T) {
	s := New(sampleStats())
	view := s.View(100, 80)

	assert.Contains(t, view, "OVERVIEW")
	assert.Contains(t, view, "Weekly goal 3/5")
	assert.Contains(t, view, "1200")
	assert.Contains(t, view, "1m 35s")
	assert.Contains(t, view, "Add       1/2")
	assert.Contains(t, view, "50%")
}

func TestStatsScreen_Empty(t *testing.T) {
	view := New(stats.New(0)).View(100, 80)
	assert.Contains(t, view, "No problems answered yet")
	assert.Contains(t, view, "No finished games yet")
}

func TestStatsScreen_Scroll(t *testing.T) {
	s := New(sampleStats())
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.scrollOffset)

	for range 100 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, len(s.rows)-1, s.scrollOffset)

	s.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	assert.Equal(t, 0, s.scrollOffset)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, ratio(3, 0))
	assert.Equal(t, 0.6, ratio(3, 5))
	assert.Equal(t, 1.0, ratio(7, 5))
}
