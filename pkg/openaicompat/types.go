package openaicompat

import "time"

// Config selects the endpoint flavour and credentials.
type Config struct {
	Kind       string // azure, openai or deepseek
	APIKey     string
	BaseURL    string // Azure resource endpoint, or an OpenAI-compatible base URL
	Model      string // model name; the deployment name on Azure
	APIVersion string // Azure only
	Timeout    time.Duration
}

// Message is one chat message.
type Message struct {
	Role    string
	Content string
}

// Request is a chat completion request. Zero sampling values use the endpoint default.
type Request struct {
	Messages         []Message
	MaxTokens        int
	Temperature      float32
	TopP             float32
	FrequencyPenalty float32
	PresencePenalty  float32
}

// Response is the first choice of a chat completion.
type Response struct {
	Content      string
	FinishReason string
	Usage        Usage
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
