package memory

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"line-knowledge-assistant/internal/session/repository"
)

type implRepository struct {
	cache *lru.Cache[string, repository.Record]
}

// New creates an in-process backend holding at most size sessions. The least
// recently used session is evicted when full. Expiry is checked by the caller
// against Record.ExpiresAt.
func New(size int) (repository.Repository, error) {
	cache, err := lru.New[string, repository.Record](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return &implRepository{cache: cache}, nil
}

func (r *implRepository) Load(_ context.Context, id string) (repository.Record, bool, error) {
	rec, ok := r.cache.Get(id)
	return rec, ok, nil
}

func (r *implRepository) Save(_ context.Context, id string, rec repository.Record, _ time.Duration) error {
	r.cache.Add(id, rec)
	return nil
}

func (r *implRepository) Delete(_ context.Context, id string) error {
	r.cache.Remove(id)
	return nil
}
