package grounding

import "context"

// Resolver turns a user query into grounding text for the prompt.
type Resolver interface {
	// Resolve never fails: search failures and empty results produce a
	// user-safe fallback with Found=false.
	Resolve(ctx context.Context, query string) Result
}
