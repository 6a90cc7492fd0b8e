package azure

import (
	"context"
	"fmt"

	"line-knowledge-assistant/internal/grounding"
	"line-knowledge-assistant/internal/grounding/repository"
	"line-knowledge-assistant/pkg/azuresearch"
)

// Fields names the index fields holding each part of a document.
type Fields struct {
	Title    string
	Content  string
	Category string
}

type implSearcher struct {
	client *azuresearch.Client
	fields Fields
}

// New creates a Searcher over one Azure AI Search index.
func New(client *azuresearch.Client, fields Fields) repository.Searcher {
	if fields.Title == "" {
		fields.Title = "title"
	}
	if fields.Content == "" {
		fields.Content = "chunk"
	}
	if fields.Category == "" {
		fields.Category = "category"
	}
	return &implSearcher{client: client, fields: fields}
}

func (s *implSearcher) Name() string {
	return "azure:" + s.client.Index()
}

func (s *implSearcher) Search(ctx context.Context, query string, topN int) ([]repository.Document, error) {
	resp, err := s.client.Search(ctx, azuresearch.SearchRequest{
		Search: query,
		Top:    topN,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", grounding.ErrSearchUnavailable, s.Name(), err)
	}

	docs := make([]repository.Document, 0, len(resp.Value))
	for _, d := range resp.Value {
		docs = append(docs, repository.Document{
			Title:    d.String(s.fields.Title),
			Content:  d.String(s.fields.Content),
			Category: d.String(s.fields.Category),
		})
	}
	return docs, nil
}
