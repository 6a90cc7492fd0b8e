package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"line-knowledge-assistant/internal/grounding"
	"line-knowledge-assistant/internal/grounding/repository"
)

func (r *implResolver) Resolve(ctx context.Context, query string) grounding.Result {
	if strings.TrimSpace(query) == "" {
		return r.fallbackResult(query, nil)
	}

	docs, err := r.search(ctx, query)
	if err != nil {
		r.l.Warnf(ctx, "grounding.Resolve: search failed, using fallback: %v", err)
		return r.fallbackResult(query, err)
	}
	if len(docs) == 0 {
		r.l.Infof(ctx, "grounding.Resolve: no documents for query %q", query)
		return r.fallbackResult(query, nil)
	}

	passages := make([]string, 0, len(docs))
	for _, d := range docs {
		passages = append(passages, r.render(d))
	}

	return grounding.Result{
		Found:    true,
		Passages: passages,
		Source:   grounding.SourceSearch,
	}
}

// search queries every searcher in order and concatenates the hits, capped
// at topN. It fails only when every searcher fails.
func (r *implResolver) search(ctx context.Context, query string) ([]repository.Document, error) {
	if len(r.searchers) == 0 {
		return nil, fmt.Errorf("%w: no search backend configured", grounding.ErrSearchUnavailable)
	}

	var (
		docs []repository.Document
		errs []error
	)
	for _, s := range r.searchers {
		if len(docs) >= r.topN {
			break
		}
		found, err := s.Search(ctx, query, r.topN-len(docs))
		if err != nil {
			r.l.Warnf(ctx, "grounding.search: %s failed: %v", s.Name(), err)
			errs = append(errs, err)
			continue
		}
		docs = append(docs, found...)
	}

	if len(errs) == len(r.searchers) {
		return nil, errors.Join(errs...)
	}
	if len(docs) > r.topN {
		docs = docs[:r.topN]
	}
	return docs, nil
}

// fallbackResult picks the first keyword entry matching query, or the generic message.
func (r *implResolver) fallbackResult(query string, cause error) grounding.Result {
	lowered := strings.ToLower(query)
	for _, kf := range r.keywords {
		for _, kw := range kf.Keywords {
			if strings.Contains(lowered, kw) {
				return grounding.Result{
					Passages: []string{kf.Message},
					Source:   grounding.SourceKeyword,
					Err:      cause,
				}
			}
		}
	}
	return grounding.Result{
		Passages: []string{r.fallback},
		Source:   grounding.SourceFallback,
		Err:      cause,
	}
}

func (r *implResolver) render(d repository.Document) string {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = "No Title"
	}
	content := strings.TrimSpace(d.Content)
	if content == "" {
		content = "No Content"
	}

	if prefix, ok := r.prefixes[strings.ToLower(strings.TrimSpace(d.Category))]; ok && prefix != "" {
		return prefix + " " + title + "\n" + content
	}
	return title + "\n" + content
}
