package usecase

import (
	"strings"

	"line-knowledge-assistant/internal/grounding"
	"line-knowledge-assistant/internal/grounding/repository"
	pkgLog "line-knowledge-assistant/pkg/log"
)

const defaultTopN = 5

type implResolver struct {
	l         pkgLog.Logger
	searchers []repository.Searcher
	topN      int
	fallback  string
	keywords  []grounding.KeywordFallback
	prefixes  map[string]string
}

// New creates a grounding Resolver. Searchers are queried in the given order.
func New(l pkgLog.Logger, searchers []repository.Searcher, opts grounding.Options) grounding.Resolver {
	if opts.TopN <= 0 {
		opts.TopN = defaultTopN
	}
	if opts.FallbackMessage == "" {
		opts.FallbackMessage = grounding.DefaultFallbackMessage
	}
	if len(opts.KeywordFallbacks) == 0 {
		opts.KeywordFallbacks = grounding.DefaultKeywordFallbacks()
	}
	if len(opts.CategoryPrefixes) == 0 {
		opts.CategoryPrefixes = grounding.DefaultCategoryPrefixes()
	}

	// Lower-case once so matching is a plain substring check.
	keywords := make([]grounding.KeywordFallback, 0, len(opts.KeywordFallbacks))
	for _, kf := range opts.KeywordFallbacks {
		lowered := make([]string, 0, len(kf.Keywords))
		for _, kw := range kf.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				lowered = append(lowered, kw)
			}
		}
		keywords = append(keywords, grounding.KeywordFallback{Keywords: lowered, Message: kf.Message})
	}

	prefixes := make(map[string]string, len(opts.CategoryPrefixes))
	for k, v := range opts.CategoryPrefixes {
		prefixes[strings.ToLower(k)] = v
	}

	return &implResolver{
		l:         l,
		searchers: searchers,
		topN:      opts.TopN,
		fallback:  opts.FallbackMessage,
		keywords:  keywords,
		prefixes:  prefixes,
	}
}
