package usecase

import (
	"regexp"

	"line-knowledge-assistant/internal/chat"
	"line-knowledge-assistant/internal/grounding"
	"line-knowledge-assistant/internal/prompt"
	"line-knowledge-assistant/internal/reply"
	"line-knowledge-assistant/internal/session"
	pkgLog "line-knowledge-assistant/pkg/log"
	"line-knowledge-assistant/pkg/metrics"
)

type implUseCase struct {
	l            pkgLog.Logger
	sessions     session.Store
	resolver     grounding.Resolver
	completer    chat.Completer
	dispatcher   *reply.Dispatcher
	metrics      *metrics.Metrics
	instruction  string
	placement    prompt.Placement
	topicPattern *regexp.Regexp
	sampling     chat.Sampling
}

// New creates a new chat UseCase instance.
func New(
	l pkgLog.Logger,
	sessions session.Store,
	resolver grounding.Resolver,
	completer chat.Completer,
	dispatcher *reply.Dispatcher,
	m *metrics.Metrics,
	opts chat.Options,
) chat.UseCase {
	if opts.Placement == "" {
		opts.Placement = prompt.PlacementSystem
	}
	return &implUseCase{
		l:            l,
		sessions:     sessions,
		resolver:     resolver,
		completer:    completer,
		dispatcher:   dispatcher,
		metrics:      m,
		instruction:  opts.SystemInstruction,
		placement:    opts.Placement,
		topicPattern: opts.TopicPattern,
		sampling:     opts.Sampling,
	}
}
