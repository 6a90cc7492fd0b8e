package chat

import "errors"

// Domain-specific errors for the chat package.
var (
	ErrEmptyInput            = errors.New("message text is empty")
	ErrMissingUser           = errors.New("event has no user id")
	ErrCompletionUnavailable = errors.New("completion unavailable")
)
