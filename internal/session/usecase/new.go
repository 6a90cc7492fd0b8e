package usecase

import (
	"hash/fnv"
	"sync"
	"time"

	"line-knowledge-assistant/internal/session"
	"line-knowledge-assistant/internal/session/repository"
	pkgLog "line-knowledge-assistant/pkg/log"
)

const lockStripes = 64

type implStore struct {
	l        pkgLog.Logger
	repo     repository.Repository
	capacity int
	ttl      time.Duration
	now      func() time.Time
	locks    [lockStripes]sync.Mutex
}

// New creates a session Store over repo.
func New(l pkgLog.Logger, repo repository.Repository, opts session.Options) (session.Store, error) {
	if opts.Capacity <= 0 {
		return nil, session.ErrInvalidCapacity
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &implStore{
		l:        l,
		repo:     repo,
		capacity: opts.Capacity,
		ttl:      opts.TTL,
		now:      now,
	}, nil
}

// lock returns the mutex guarding id. Ids hashing to the same stripe share it.
func (s *implStore) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.locks[h.Sum32()%lockStripes]
}
