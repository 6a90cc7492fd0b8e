package usecase

import (
	"context"
	"time"

	"line-knowledge-assistant/internal/model"
	"line-knowledge-assistant/internal/session"
	"line-knowledge-assistant/internal/session/repository"
)

func (s *implStore) Get(ctx context.Context, id string) session.Session {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	rec := s.load(ctx, id)
	return session.Session{
		ID:        id,
		History:   append([]model.Turn(nil), rec.History...),
		TopicHint: rec.TopicHint,
		ExpiresAt: rec.ExpiresAt,
	}
}

func (s *implStore) Append(ctx context.Context, id string, turns ...model.Turn) {
	if len(turns) == 0 {
		return
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	rec := s.load(ctx, id)
	history := append(append([]model.Turn(nil), rec.History...), turns...)
	if over := len(history) - s.capacity; over > 0 {
		history = history[over:]
	}
	rec.History = history
	s.save(ctx, id, rec)
}

func (s *implStore) Reset(ctx context.Context, id string) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.l.Errorf(ctx, "session.Reset: failed to delete %s, overwriting with empty session: %v", id, err)
		s.save(ctx, id, repository.Record{})
	}
}

func (s *implStore) RememberTopicHint(ctx context.Context, id string, hint string) {
	if hint == "" {
		return
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	rec := s.load(ctx, id)
	rec.TopicHint = hint
	s.save(ctx, id, rec)
}

func (s *implStore) TopicHint(ctx context.Context, id string) (string, bool) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	rec := s.load(ctx, id)
	return rec.TopicHint, rec.TopicHint != ""
}

// load reads the record for id. Expired, missing and unreadable records all
// come back empty. Caller holds the id lock.
func (s *implStore) load(ctx context.Context, id string) repository.Record {
	rec, ok, err := s.repo.Load(ctx, id)
	if err != nil {
		s.l.Warnf(ctx, "session: failed to load %s, using empty session: %v", id, err)
		return repository.Record{}
	}
	if !ok {
		return repository.Record{}
	}
	if !rec.ExpiresAt.IsZero() && !s.now().Before(rec.ExpiresAt) {
		return repository.Record{}
	}
	return rec
}

// save stamps the expiry and writes rec. A failed write is logged and dropped.
// Caller holds the id lock.
func (s *implStore) save(ctx context.Context, id string, rec repository.Record) {
	rec.ExpiresAt = time.Time{}
	if s.ttl > 0 {
		rec.ExpiresAt = s.now().Add(s.ttl)
	}
	if err := s.repo.Save(ctx, id, rec, s.ttl); err != nil {
		s.l.Errorf(ctx, "session: failed to save %s: %v", id, err)
	}
}
