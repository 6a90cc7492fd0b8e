package llmprovider

import "context"

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "azure", "deepseek")
	Name() string

	// Model returns the model or deployment being used
	Model() string
}

// Request represents a normalized chat completion request.
// Sampling parameters are passed through unchanged.
type Request struct {
	Messages         []Message
	MaxTokens        int
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// Message represents a conversation message
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// Response represents a normalized chat completion response
type Response struct {
	Content      string
	FinishReason string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
