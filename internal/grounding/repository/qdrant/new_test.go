package qdrant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-knowledge-assistant/internal/grounding"
	"line-knowledge-assistant/internal/grounding/repository"
	pkgQdrant "line-knowledge-assistant/pkg/qdrant"
)

type stubEmbedder struct {
	err       error
	inputType string
}

func (e *stubEmbedder) Embed(_ context.Context, inputType string, texts []string) ([][]float32, error) {
	e.inputType = inputType
	if e.err != nil {
		return nil, e.err
	}
	return [][]float32{{0.1, 0.2}}, nil
}

func TestQdrantSearcher(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/collections/broken/points/search" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"result":[
			{"id": 1, "score": 0.9, "payload": {"title": "Warranty", "content": "One year", "category": "helpdesk"}}
		]}`))
	}))
	defer ts.Close()

	client := pkgQdrant.NewClient(ts.URL)

	t.Run("maps payload", func(t *testing.T) {
		emb := &stubEmbedder{}
		s := New(client, emb, "knowledge")
		docs, err := s.Search(context.Background(), "warranty", 3)
		require.NoError(t, err)
		assert.Equal(t, "query", emb.inputType)
		assert.Equal(t, []repository.Document{{Title: "Warranty", Content: "One year", Category: "helpdesk"}}, docs)
	})

	t.Run("embedding failure", func(t *testing.T) {
		s := New(client, &stubEmbedder{err: errors.New("quota")}, "knowledge")
		_, err := s.Search(context.Background(), "warranty", 3)
		assert.ErrorIs(t, err, grounding.ErrSearchUnavailable)
	})

	t.Run("search failure", func(t *testing.T) {
		s := New(client, &stubEmbedder{}, "broken")
		_, err := s.Search(context.Background(), "warranty", 3)
		assert.ErrorIs(t, err, grounding.ErrSearchUnavailable)
	})
}
