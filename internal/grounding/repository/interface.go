package repository

import "context"

// Document is one search hit.
type Document struct {
	Title    string
	Content  string
	Category string
}

// Searcher is a search backend. Failures wrap grounding.ErrSearchUnavailable.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, topN int) ([]Document, error)
}
