package session

import (
	"time"

	"line-knowledge-assistant/internal/model"
)

// Session is a snapshot of one conversation.
type Session struct {
	ID        string
	History   []model.Turn // oldest first
	TopicHint string
	ExpiresAt time.Time
}

// Empty reports whether the session has no history and no topic hint.
func (s Session) Empty() bool {
	return len(s.History) == 0 && s.TopicHint == ""
}

// Options configures a Store.
type Options struct {
	Capacity int           // max turns kept per session
	TTL      time.Duration // idle lifetime, refreshed on every write; 0 disables expiry
	Clock    func() time.Time
}
