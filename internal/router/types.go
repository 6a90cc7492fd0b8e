package router

import (
	"context"

	"line-knowledge-assistant/pkg/line"
)

// Kind identifies an event by its type and, for message events, its message type.
type Kind struct {
	Event   string
	Message string
}

// Supported event kinds.
var (
	KindText   = Kind{Event: line.EventTypeMessage, Message: line.MessageTypeText}
	KindFollow = Kind{Event: line.EventTypeFollow}
)

// HandlerFunc handles one routed event.
type HandlerFunc func(ctx context.Context, ev line.Event) error

func kindOf(ev line.Event) Kind {
	return Kind{Event: ev.Type, Message: ev.MessageType()}
}
