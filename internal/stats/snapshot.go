package stats

import (
	"time"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/problemgen"
	"github.com/abhisek/mathrush/internal/store"
)

// SnapshotData converts s to its persisted shape.
func (s *Statistics) SnapshotData() store.StatisticsData {
	d := store.StatisticsData{
		TopicsPerformance:        make(map[string]store.TopicData, len(s.TopicsPerformance)),
		RecentScores:             append([]int{}, s.RecentScores...),
		BestScores:               make(map[string]int, len(s.BestScores)),
		CurrentStreak:            s.CurrentStreak,
		LongestStreak:            s.LongestStreak,
		LastPlayedDate:           s.LastPlayedDate,
		WeeklyGoal:               s.WeeklyGoal,
		WeeklyProgress:           s.WeeklyProgress,
		WeekStart:                s.WeekStart,
		RecentActivities:         make([]store.ActivityData, 0, len(s.RecentActivities)),
		TotalPlayTime:            int64(s.TotalPlayTime / time.Second),
		GamesPlayed:              s.GamesPlayed,
		DailyChallengesCompleted: s.DailyChallengesCompleted,
		LastDailyDate:            s.LastDailyDate,
	}
	for op, tp := range s.TopicsPerformance {
		d.TopicsPerformance[string(op)] = store.TopicData{
			Attempts:    tp.Attempts,
			Correct:     tp.Correct,
			LastUpdated: tp.LastUpdated,
		}
	}
	for m, v := range s.BestScores {
		d.BestScores[string(m)] = v
	}
	for _, a := range s.RecentActivities {
		ad := store.ActivityData{
			Timestamp: a.Timestamp,
			Answer:    a.Answer,
			Correct:   a.Correct,
			Mode:      string(a.Mode),
		}
		if a.Problem != nil {
			ad.Problem = a.Problem.Data()
		}
		d.RecentActivities = append(d.RecentActivities, ad)
	}
	return d
}

// FromSnapshot rebuilds statistics from their persisted shape. Lists longer
// than their caps keep the newest entries. A missing weekly goal falls back
// to defaultGoal.
func FromSnapshot(d store.StatisticsData, defaultGoal int) *Statistics {
	s := New(defaultGoal)
	if d.WeeklyGoal > 0 {
		s.WeeklyGoal = d.WeeklyGoal
	}
	for op, td := range d.TopicsPerformance {
		s.TopicsPerformance[modes.Operation(op)] = TopicPerformance{
			Attempts:    td.Attempts,
			Correct:     td.Correct,
			LastUpdated: td.LastUpdated,
		}
	}
	for _, v := range d.RecentScores {
		s.RecordScore(v)
	}
	for m, v := range d.BestScores {
		s.BestScores[modes.Mode(m)] = v
	}
	for _, ad := range d.RecentActivities {
		s.RecordActivity(Activity{
			Timestamp: ad.Timestamp,
			Problem:   problemgen.FromData(ad.Problem),
			Answer:    ad.Answer,
			Correct:   ad.Correct,
			Mode:      modes.Mode(ad.Mode),
		})
	}
	s.CurrentStreak = d.CurrentStreak
	s.LongestStreak = d.LongestStreak
	s.LastPlayedDate = d.LastPlayedDate
	s.WeeklyProgress = d.WeeklyProgress
	s.WeekStart = d.WeekStart
	s.TotalPlayTime = time.Duration(d.TotalPlayTime) * time.Second
	s.GamesPlayed = d.GamesPlayed
	s.DailyChallengesCompleted = d.DailyChallengesCompleted
	s.LastDailyDate = d.LastDailyDate
	return s
}
