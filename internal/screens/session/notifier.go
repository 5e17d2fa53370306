package session

import (
	"fmt"
	"sync"

	"github.com/abhisek/mathrush/internal/achievements"
	sess "github.com/abhisek/mathrush/internal/session"
)

// NoticeKind classifies a queued notice.
type NoticeKind int

const (
	NoticeLevelUp NoticeKind = iota
	NoticeAchievement
)

// Notice is a one-line announcement shown over the game screen.
type Notice struct {
	Kind        NoticeKind
	Text        string
	Achievement *achievements.Achievement
}

// Notifier is the game's Listener. Callbacks run under the game lock, so it
// only queues; the screen drains the queue after each operation.
type Notifier struct {
	sess.NopListener

	mu      sync.Mutex
	pending []Notice
	ended   *sess.SessionSummary
}

// NewNotifier returns an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) LevelUp(level int) {
	n.push(Notice{Kind: NoticeLevelUp, Text: fmt.Sprintf("LEVEL %d!", level)})
}

func (n *Notifier) AchievementUnlocked(a achievements.Achievement) {
	n.push(Notice{
		Kind:        NoticeAchievement,
		Text:        fmt.Sprintf("%s %s unlocked", a.Icon, a.Title),
		Achievement: &a,
	})
}

func (n *Notifier) SessionEnded(s *sess.SessionSummary) {
	n.mu.Lock()
	n.ended = s
	n.mu.Unlock()
}

func (n *Notifier) push(note Notice) {
	n.mu.Lock()
	n.pending = append(n.pending, note)
	n.mu.Unlock()
}

// Drain returns and clears the queued notices.
func (n *Notifier) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}

// TakeEnded returns the summary of a session that ended since the last
// call, or nil.
func (n *Notifier) TakeEnded() *sess.SessionSummary {
	n.mu.Lock()
	defer n.mu.Unlock()
	s := n.ended
	n.ended = nil
	return s
}
