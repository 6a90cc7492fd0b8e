package router

import (
	"context"

	"line-knowledge-assistant/pkg/line"
)

// Handle registers h for kind, replacing any previous handler.
// Routes are set up once before serving.
func (r *EventRouter) Handle(kind Kind, h HandlerFunc) {
	r.handlers[kind] = h
}

// Dispatch runs the handler registered for ev. Unrouted events are ignored and
// reported as not handled.
func (r *EventRouter) Dispatch(ctx context.Context, ev line.Event) (bool, error) {
	kind := kindOf(ev)
	h, ok := r.handlers[kind]
	if !ok {
		r.l.Debugf(ctx, "router.Dispatch: ignoring event=%s message=%s", kind.Event, kind.Message)
		return false, nil
	}
	return true, h(ctx, ev)
}
