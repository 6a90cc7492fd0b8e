package qdrant

import (
	"context"
	"fmt"

	"line-knowledge-assistant/internal/grounding"
	"line-knowledge-assistant/internal/grounding/repository"
	pkgQdrant "line-knowledge-assistant/pkg/qdrant"
	"line-knowledge-assistant/pkg/voyage"
)

// Payload keys written by the document indexer.
const (
	PayloadTitle    = "title"
	PayloadContent  = "content"
	PayloadCategory = "category"
)

type implSearcher struct {
	client     *pkgQdrant.Client
	embedder   voyage.Embedder
	collection string
}

// New creates a vector Searcher: the query is embedded and matched against collection.
func New(client *pkgQdrant.Client, embedder voyage.Embedder, collection string) repository.Searcher {
	return &implSearcher{client: client, embedder: embedder, collection: collection}
}

func (s *implSearcher) Name() string {
	return "qdrant:" + s.collection
}

func (s *implSearcher) Search(ctx context.Context, query string, topN int) ([]repository.Document, error) {
	vectors, err := s.embedder.Embed(ctx, voyage.InputTypeQuery, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: embed: %v", grounding.ErrSearchUnavailable, s.Name(), err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: %s: empty embedding", grounding.ErrSearchUnavailable, s.Name())
	}

	resp, err := s.client.SearchPoints(ctx, s.collection, pkgQdrant.SearchRequest{
		Vector:      vectors[0],
		Limit:       topN,
		WithPayload: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", grounding.ErrSearchUnavailable, s.Name(), err)
	}

	docs := make([]repository.Document, 0, len(resp.Result))
	for _, p := range resp.Result {
		docs = append(docs, repository.Document{
			Title:    payloadString(p.Payload, PayloadTitle),
			Content:  payloadString(p.Payload, PayloadContent),
			Category: payloadString(p.Payload, PayloadCategory),
		})
	}
	return docs, nil
}

func payloadString(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
