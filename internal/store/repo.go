package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ProgressData is the persisted player profile: lifetime statistics plus the
// set of unlocked achievement ids. It is stored as a single JSON document.
type ProgressData struct {
	Statistics   StatisticsData `json:"statistics"`
	Achievements []string       `json:"achievements"`
}

// StatisticsData is the JSON shape of the lifetime statistics record.
type StatisticsData struct {
	TopicsPerformance        map[string]TopicData `json:"topicsPerformance"`
	RecentScores             []int                `json:"recentScores"`
	BestScores               map[string]int       `json:"bestScores"`
	CurrentStreak            int                  `json:"currentStreak"`
	LongestStreak            int                  `json:"longestStreak"`
	LastPlayedDate           string               `json:"lastPlayedDate,omitempty"`
	WeeklyGoal               int                  `json:"weeklyGoal"`
	WeeklyProgress           int                  `json:"weeklyProgress"`
	WeekStart                string               `json:"weekStart,omitempty"`
	RecentActivities         []ActivityData       `json:"recentActivities"`
	TotalPlayTime            int64                `json:"totalPlayTime"`
	GamesPlayed              int                  `json:"gamesPlayed"`
	DailyChallengesCompleted int                  `json:"dailyChallengesCompleted"`
	LastDailyDate            string               `json:"lastDailyDate,omitempty"`
}

// TopicData tracks accuracy for one operation.
type TopicData struct {
	Attempts    int       `json:"attempts"`
	Correct     int       `json:"correct"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ActivityData records one answered problem.
type ActivityData struct {
	Timestamp time.Time   `json:"timestamp"`
	Problem   ProblemData `json:"problem"`
	Answer    string      `json:"answer"`
	Correct   bool        `json:"correct"`
	Mode      string      `json:"mode"`
}

// ProblemData is the persisted snapshot of a problem.
type ProblemData struct {
	Num1            *int     `json:"num1,omitempty"`
	Num2            *int     `json:"num2,omitempty"`
	Operation       string   `json:"operation"`
	Answer          float64  `json:"answer"`
	Display         string   `json:"display"`
	SequenceType    string   `json:"sequenceType,omitempty"`
	SequenceValues  []int    `json:"sequenceValues,omitempty"`
	EquationNumbers []int    `json:"equationNumbers,omitempty"`
	TargetValue     *float64 `json:"targetValue,omitempty"`
}

// ProgressRepo loads and saves the player profile.
type ProgressRepo interface {
	// Load returns the stored profile, or nil if none has been saved.
	// A document that fails schema validation yields ErrCorruptProgress.
	Load(ctx context.Context) (*ProgressData, error)

	// Save replaces the stored profile.
	Save(ctx context.Context, data *ProgressData) error

	// Reset deletes the stored profile.
	Reset(ctx context.Context) error
}

// Session actions recorded in the event log.
const (
	SessionStart   = "start"
	SessionEnd     = "end"
	SessionAbandon = "abandon"
)

// SessionEventData captures one session lifecycle transition.
type SessionEventData struct {
	SessionID         string
	Action            string
	Mode              string
	Daily             bool
	Score             int
	Level             int
	QuestionsAnswered int
	QuestionsCorrect  int
	DurationSecs      int
}

// SessionEvent is a stored SessionEventData with its ordering metadata.
type SessionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// DiagnosticEventData captures a swallowed failure: a rejected generated
// problem, an unreadable profile, a failed save.
type DiagnosticEventData struct {
	Source  string
	Message string
	Detail  string
}

// DiagnosticEvent is a stored DiagnosticEventData with its ordering metadata.
type DiagnosticEvent struct {
	Sequence  int64
	Timestamp time.Time
	DiagnosticEventData
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendSessionEvent records a session lifecycle transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendDiagnostic records a diagnostic.
	AppendDiagnostic(ctx context.Context, data DiagnosticEventData) error

	// QuerySessionEvents returns session events matching opts.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// QueryDiagnostics returns diagnostics matching opts.
	QueryDiagnostics(ctx context.Context, opts QueryOpts) ([]DiagnosticEvent, error)
}
