package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-knowledge-assistant/internal/model"
	"line-knowledge-assistant/internal/session/repository"
	pkgLog "line-knowledge-assistant/pkg/log"
)

func openTestRepo(t *testing.T) repository.Repository {
	t.Helper()
	db, err := Open("", true, pkgLog.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, pkgLog.NewNop())
}

func TestBadgerRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	_, ok, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	rec := repository.Record{
		History: []model.Turn{
			model.NewTurn(model.RoleUser, "สวัสดี"),
			model.NewTurn(model.RoleAssistant, "hello"),
		},
		TopicHint: "AB-1234",
	}
	require.NoError(t, repo.Save(ctx, "u1", rec, 30*time.Minute))

	got, ok, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.History, got.History)
	assert.Equal(t, "AB-1234", got.TopicHint)

	// Other ids are independent.
	_, ok, _ = repo.Load(ctx, "u2")
	assert.False(t, ok)

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, ok, err = repo.Load(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBadgerRepository_TTL(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	require.NoError(t, repo.Save(ctx, "short", repository.Record{TopicHint: "x"}, time.Second))
	_, ok, err := repo.Load(ctx, "short")
	require.NoError(t, err)
	require.True(t, ok)

	// Badger TTLs have one second resolution.
	time.Sleep(2100 * time.Millisecond)

	_, ok, err = repo.Load(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}
