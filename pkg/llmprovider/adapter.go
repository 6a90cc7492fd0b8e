package llmprovider

import (
	"context"

	"line-knowledge-assistant/pkg/openaicompat"
)

// OpenAICompatAdapter adapts pkg/openaicompat to the Provider interface.
// It serves Azure OpenAI, OpenAI and DeepSeek endpoints.
type OpenAICompatAdapter struct {
	client *openaicompat.Client
}

// NewOpenAICompatAdapter creates a new adapter
func NewOpenAICompatAdapter(client *openaicompat.Client) *OpenAICompatAdapter {
	return &OpenAICompatAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAICompatAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]openaicompat.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openaicompat.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := a.client.Complete(ctx, &openaicompat.Request{
		Messages:         messages,
		MaxTokens:        req.MaxTokens,
		Temperature:      float32(req.Temperature),
		TopP:             float32(req.TopP),
		FrequencyPenalty: float32(req.FrequencyPenalty),
		PresencePenalty:  float32(req.PresencePenalty),
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      resp.Content,
		FinishReason: resp.FinishReason,
		ProviderName: a.client.Kind(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *OpenAICompatAdapter) Name() string {
	return a.client.Kind()
}

// Model returns model name
func (a *OpenAICompatAdapter) Model() string {
	return a.client.Model()
}
