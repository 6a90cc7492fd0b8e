package chat

import (
	"context"

	"line-knowledge-assistant/internal/model"
	"line-knowledge-assistant/pkg/llmprovider"
)

// UseCase answers chat events for one user.
type UseCase interface {
	// HandleText answers a text message. Search and completion failures are
	// absorbed into the reply; an error means the input itself was unusable.
	HandleText(ctx context.Context, sc model.Scope, input TextInput) (model.OutboundMessage, error)

	// HandleFollow starts a fresh conversation when the user adds the account.
	HandleFollow(ctx context.Context, sc model.Scope) (model.OutboundMessage, error)
}

// Completer is the completion collaborator. llmprovider.Manager satisfies it.
type Completer interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}
