// Package stats accumulates cross-session statistics: scores, streaks,
// weekly goal progress, per-operation accuracy and recent activity.
package stats

import (
	"maps"
	"slices"
	"time"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/problemgen"
)

const (
	// MaxRecentScores bounds RecentScores.
	MaxRecentScores = 10

	// MaxRecentActivities bounds RecentActivities.
	MaxRecentActivities = 50

	// DefaultWeeklyGoal is the number of games per week.
	DefaultWeeklyGoal = 5

	dateLayout = "2006-01-02"
)

// TopicPerformance tracks accuracy for one operation.
type TopicPerformance struct {
	Attempts    int
	Correct     int
	LastUpdated time.Time
}

// Mastery returns the accuracy as a percentage in [0, 100].
func (t TopicPerformance) Mastery() float64 {
	if t.Attempts == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Attempts) * 100
}

// Activity is one answered problem in the recent-activity feed.
type Activity struct {
	Timestamp time.Time
	Problem   *problemgen.Problem
	Answer    string
	Correct   bool
	Mode      modes.Mode
}

// Statistics is the lifetime record of a player.
type Statistics struct {
	TopicsPerformance map[modes.Operation]TopicPerformance
	RecentScores      []int
	BestScores        map[modes.Mode]int

	CurrentStreak  int
	LongestStreak  int
	LastPlayedDate string

	WeeklyGoal     int
	WeeklyProgress int
	WeekStart      string

	RecentActivities []Activity

	// TotalPlayTime is accumulated in whole seconds.
	TotalPlayTime time.Duration

	GamesPlayed              int
	DailyChallengesCompleted int
	LastDailyDate            string
}

// New returns empty statistics with the given weekly goal. A goal below 1
// uses DefaultWeeklyGoal.
func New(weeklyGoal int) *Statistics {
	if weeklyGoal < 1 {
		weeklyGoal = DefaultWeeklyGoal
	}
	return &Statistics{
		TopicsPerformance: make(map[modes.Operation]TopicPerformance),
		RecentScores:      []int{},
		BestScores:        make(map[modes.Mode]int),
		WeeklyGoal:        weeklyGoal,
		RecentActivities:  []Activity{},
	}
}

// RecordScore appends score, evicting the oldest entries beyond
// MaxRecentScores.
func (s *Statistics) RecordScore(score int) {
	s.RecentScores = append(s.RecentScores, score)
	if over := len(s.RecentScores) - MaxRecentScores; over > 0 {
		s.RecentScores = slices.Delete(s.RecentScores, 0, over)
	}
}

// RecordActivity appends a with a cloned problem, evicting the oldest
// entries beyond MaxRecentActivities.
func (s *Statistics) RecordActivity(a Activity) {
	a.Problem = a.Problem.Clone()
	a.Timestamp = a.Timestamp.UTC()
	s.RecentActivities = append(s.RecentActivities, a)
	if over := len(s.RecentActivities) - MaxRecentActivities; over > 0 {
		s.RecentActivities = slices.Delete(s.RecentActivities, 0, over)
	}
}

// RecordTopic counts one attempt at op.
func (s *Statistics) RecordTopic(op modes.Operation, correct bool, now time.Time) {
	if s.TopicsPerformance == nil {
		s.TopicsPerformance = make(map[modes.Operation]TopicPerformance)
	}
	tp := s.TopicsPerformance[op]
	tp.Attempts++
	if correct {
		tp.Correct++
	}
	tp.LastUpdated = now.UTC()
	s.TopicsPerformance[op] = tp
}

// Mastery returns the accuracy percentage for op, or 0 if never attempted.
func (s *Statistics) Mastery(op modes.Operation) float64 {
	return s.TopicsPerformance[op].Mastery()
}

// Topics returns the attempted operations in a stable order.
func (s *Statistics) Topics() []modes.Operation {
	return slices.Sorted(maps.Keys(s.TopicsPerformance))
}

// Accuracy returns the lifetime accuracy over every topic in [0, 1].
func (s *Statistics) Accuracy() float64 {
	var attempts, correct int
	for _, tp := range s.TopicsPerformance {
		attempts += tp.Attempts
		correct += tp.Correct
	}
	if attempts == 0 {
		return 0
	}
	return float64(correct) / float64(attempts)
}

// UpdateBestScore records score for mode and reports whether it is a new
// best.
func (s *Statistics) UpdateBestScore(mode modes.Mode, score int) bool {
	if s.BestScores == nil {
		s.BestScores = make(map[modes.Mode]int)
	}
	if prev, ok := s.BestScores[mode]; ok && score <= prev {
		return false
	}
	s.BestScores[mode] = score
	return true
}

// BestScore returns the highest score over every mode.
func (s *Statistics) BestScore() int {
	best := 0
	for _, v := range s.BestScores {
		best = max(best, v)
	}
	return best
}

// UpdateStreak marks the calendar date of now as played. Playing on
// consecutive days extends the streak; a gap resets it to 1.
func (s *Statistics) UpdateStreak(now time.Time) {
	today := dateOf(now)
	if s.LastPlayedDate != "" {
		if s.LastPlayedDate == today.Format(dateLayout) {
			return
		}
		last, err := time.Parse(dateLayout, s.LastPlayedDate)
		if err == nil && daysBetween(last, today) == 1 {
			s.CurrentStreak++
		} else {
			s.CurrentStreak = 1
		}
	} else {
		s.CurrentStreak = 1
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastPlayedDate = today.Format(dateLayout)
}

// AddWeeklyProgress adds n completed games to the week containing now.
// Progress resets when a new week starts.
func (s *Statistics) AddWeeklyProgress(now time.Time, n int) {
	week := weekStart(now).Format(dateLayout)
	if s.WeekStart != week {
		s.WeekStart = week
		s.WeeklyProgress = 0
	}
	s.WeeklyProgress += n
}

// WeeklyGoalMet reports whether this week's goal is reached.
func (s *Statistics) WeeklyGoalMet() bool {
	return s.WeeklyGoal > 0 && s.WeeklyProgress >= s.WeeklyGoal
}

// AddPlayTime accumulates d, truncated to whole seconds.
func (s *Statistics) AddPlayTime(d time.Duration) {
	if d <= 0 {
		return
	}
	s.TotalPlayTime += d.Truncate(time.Second)
}

// RecordDailyCompleted counts a finished daily challenge. Only the first
// completion per calendar date counts; it reports whether this one did.
func (s *Statistics) RecordDailyCompleted(now time.Time) bool {
	today := dateOf(now).Format(dateLayout)
	if s.LastDailyDate == today {
		return false
	}
	s.LastDailyDate = today
	s.DailyChallengesCompleted++
	return true
}

// DailyDoneOn reports whether the daily challenge was completed on the
// calendar date of t.
func (s *Statistics) DailyDoneOn(t time.Time) bool {
	return s.LastDailyDate == dateOf(t).Format(dateLayout)
}

// dateOf returns midnight UTC of t's local calendar date, so day arithmetic
// is free of DST shifts.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// weekStart returns the Monday of t's ISO week.
func weekStart(t time.Time) time.Time {
	d := dateOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
