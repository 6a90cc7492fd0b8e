package repository

import (
	"context"
	"time"

	"line-knowledge-assistant/internal/model"
)

// Record is the persisted form of a session.
type Record struct {
	History   []model.Turn `json:"history"`
	TopicHint string       `json:"topic_hint,omitempty"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Repository is a session storage backend.
type Repository interface {
	// Load returns the record for id. ok is false when no record exists.
	Load(ctx context.Context, id string) (rec Record, ok bool, err error)
	// Save replaces the record for id. ttl <= 0 keeps it until deleted or evicted.
	Save(ctx context.Context, id string, rec Record, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
