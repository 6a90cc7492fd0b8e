package qdrant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"line-knowledge-assistant/internal/grounding/repository"
	pkgQdrant "line-knowledge-assistant/pkg/qdrant"
	"line-knowledge-assistant/pkg/voyage"
)

const defaultBatchSize = 32

// Indexer embeds documents and stores them where the vector Searcher looks.
type Indexer struct {
	client     *pkgQdrant.Client
	embedder   voyage.Embedder
	collection string
	vectorSize int
	batchSize  int
}

// NewIndexer creates an Indexer for collection. vectorSize must match the embedding model.
func NewIndexer(client *pkgQdrant.Client, embedder voyage.Embedder, collection string, vectorSize int) *Indexer {
	return &Indexer{
		client:     client,
		embedder:   embedder,
		collection: collection,
		vectorSize: vectorSize,
		batchSize:  defaultBatchSize,
	}
}

// EnsureCollection creates the collection with cosine distance if it is missing.
func (i *Indexer) EnsureCollection(ctx context.Context) error {
	return i.client.EnsureCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name: i.collection,
		Vectors: pkgQdrant.VectorConfig{
			Size:     i.vectorSize,
			Distance: "Cosine",
		},
	})
}

// Index embeds and upserts docs in batches. It returns how many documents were
// stored before the first failure.
func (i *Indexer) Index(ctx context.Context, docs []repository.Document) (int, error) {
	stored := 0
	for start := 0; start < len(docs); start += i.batchSize {
		end := start + i.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		texts := make([]string, 0, len(batch))
		for _, d := range batch {
			texts = append(texts, embeddingText(d))
		}
		vectors, err := i.embedder.Embed(ctx, voyage.InputTypeDocument, texts)
		if err != nil {
			return stored, fmt.Errorf("embed documents %d-%d: %w", start, end-1, err)
		}
		if len(vectors) != len(batch) {
			return stored, fmt.Errorf("embed documents %d-%d: got %d vectors for %d documents", start, end-1, len(vectors), len(batch))
		}

		points := make([]pkgQdrant.Point, 0, len(batch))
		for j, d := range batch {
			points = append(points, pkgQdrant.Point{
				ID:     uuid.NewString(),
				Vector: vectors[j],
				Payload: map[string]interface{}{
					PayloadTitle:    d.Title,
					PayloadContent:  d.Content,
					PayloadCategory: d.Category,
				},
			})
		}
		if err := i.client.UpsertPoints(ctx, i.collection, pkgQdrant.UpsertPointsRequest{Points: points}); err != nil {
			return stored, fmt.Errorf("upsert documents %d-%d: %w", start, end-1, err)
		}
		stored += len(batch)
	}
	return stored, nil
}

func embeddingText(d repository.Document) string {
	return strings.TrimSpace(d.Title + "\n" + d.Content)
}
