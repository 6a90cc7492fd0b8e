package line

import (
	"line-knowledge-assistant/internal/chat"
	"line-knowledge-assistant/internal/reply"
	"line-knowledge-assistant/internal/router"
	"line-knowledge-assistant/internal/webhook"
	pkgLog "line-knowledge-assistant/pkg/log"
	"line-knowledge-assistant/pkg/metrics"
)

type handler struct {
	l          pkgLog.Logger
	uc         chat.UseCase
	dispatcher *reply.Dispatcher
	security   *webhook.SecurityValidator
	router     *router.EventRouter
	metrics    *metrics.Metrics
}

// New creates the LINE webhook handler and registers its event routes.
func New(
	l pkgLog.Logger,
	uc chat.UseCase,
	dispatcher *reply.Dispatcher,
	security *webhook.SecurityValidator,
	m *metrics.Metrics,
) *handler {
	h := &handler{
		l:          l,
		uc:         uc,
		dispatcher: dispatcher,
		security:   security,
		router:     router.New(l),
		metrics:    m,
	}
	h.router.Handle(router.KindText, h.handleText)
	h.router.Handle(router.KindFollow, h.handleFollow)
	return h
}
