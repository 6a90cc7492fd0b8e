package session

import (
	"context"

	"line-knowledge-assistant/internal/model"
)

// Store keeps one bounded conversation history per session id.
// None of its operations return errors: backend failures are logged and the
// caller sees an empty session instead.
type Store interface {
	// Get returns the session for id, or a fresh empty one.
	Get(ctx context.Context, id string) Session
	// Append adds turns in order, trimming the oldest turns past capacity.
	Append(ctx context.Context, id string, turns ...model.Turn)
	// Reset clears history and topic hint. Resetting an unknown id is a no-op.
	Reset(ctx context.Context, id string)
	// RememberTopicHint records the subject currently being discussed.
	RememberTopicHint(ctx context.Context, id string, hint string)
	// TopicHint returns the remembered subject, if any.
	TopicHint(ctx context.Context, id string) (string, bool)
}
