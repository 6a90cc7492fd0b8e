package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse is returned when the endpoint answers with no choices.
var ErrEmptyResponse = errors.New("completion returned no choices")

// Client calls an OpenAI-compatible chat completion endpoint through go-openai.
type Client struct {
	client *openai.Client
	kind   string
	model  string
}

// New creates a client for cfg.Kind.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	var oc openai.ClientConfig
	switch cfg.Kind {
	case KindAzure:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("azure endpoint is required")
		}
		if cfg.Model == "" {
			return nil, fmt.Errorf("azure deployment is required")
		}
		if cfg.APIVersion == "" {
			cfg.APIVersion = DefaultAzureAPIVersion
		}
		oc = openai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
		oc.APIVersion = cfg.APIVersion
		deployment := cfg.Model
		oc.AzureModelMapperFunc = func(string) string { return deployment }

	case KindDeepSeek:
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultDeepSeekBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = DefaultDeepSeekModel
		}
		oc = openai.DefaultConfig(cfg.APIKey)
		oc.BaseURL = cfg.BaseURL

	case KindOpenAI:
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
		oc = openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}

	default:
		return nil, fmt.Errorf("unknown endpoint kind: %s", cfg.Kind)
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		client: openai.NewClientWithConfig(oc),
		kind:   cfg.Kind,
		model:  cfg.Model,
	}, nil
}

// Kind returns the endpoint flavour.
func (c *Client) Kind() string {
	return c.kind
}

// Model returns the model or deployment name.
func (c *Client) Model() string {
	return c.model
}

// Complete sends req and returns the first choice.
func (c *Client) Complete(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:            c.model,
		Messages:         messages,
		MaxTokens:        req.MaxTokens,
		Temperature:      req.Temperature,
		TopP:             req.TopP,
		FrequencyPenalty: req.FrequencyPenalty,
		PresencePenalty:  req.PresencePenalty,
	})
	if err != nil {
		return nil, fmt.Errorf("%s chat completion failed: %w", c.kind, err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return &Response{
		Content:      resp.Choices[0].Message.Content,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
