// Package router dispatches webhook events to handlers by event kind.
package router

import (
	"context"

	"line-knowledge-assistant/pkg/line"
	"line-knowledge-assistant/pkg/log"
)

// Router is the interface for event routing
type Router interface {
	Handle(kind Kind, h HandlerFunc)
	Dispatch(ctx context.Context, ev line.Event) (bool, error)
}

// EventRouter routes events through an explicit kind to handler table.
type EventRouter struct {
	l        log.Logger
	handlers map[Kind]HandlerFunc
}

var _ Router = (*EventRouter)(nil)

// New creates an EventRouter with no routes.
func New(l log.Logger) *EventRouter {
	return &EventRouter{
		l:        l,
		handlers: make(map[Kind]HandlerFunc),
	}
}
