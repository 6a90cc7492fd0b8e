package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIURL = "https://api.line.me"

// Client is a minimal LINE Messaging API client.
type Client struct {
	accessToken string
	apiURL      string
	httpClient  *http.Client
}

// NewClient creates a client authenticated with the channel access token.
func NewClient(accessToken string) *Client {
	return &Client{
		accessToken: accessToken,
		apiURL:      defaultAPIURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SetAPIURL overrides the default API URL for testing purposes.
func (c *Client) SetAPIURL(url string) {
	if url != "" {
		c.apiURL = url
	}
}

// Reply sends messages using a reply token. A token can be used once.
func (c *Client) Reply(ctx context.Context, replyToken string, messages ...TextMessage) error {
	if replyToken == "" {
		return fmt.Errorf("reply token is empty")
	}
	if len(messages) == 0 {
		return fmt.Errorf("no messages to send")
	}

	return c.send(ctx, http.MethodPost, "/v2/bot/message/reply", ReplyRequest{ReplyToken: replyToken, Messages: messages})
}

// SetWebhookEndpoint points the channel's webhook at endpoint.
func (c *Client) SetWebhookEndpoint(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("webhook endpoint is empty")
	}
	return c.send(ctx, http.MethodPut, "/v2/bot/channel/webhook/endpoint", WebhookEndpointRequest{Endpoint: endpoint})
}

func (c *Client) send(ctx context.Context, method, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr APIError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("line API error %d on %s: %s", resp.StatusCode, path, apiErr.Message)
		}
		return fmt.Errorf("line API error %d on %s: %s", resp.StatusCode, path, string(raw))
	}

	return nil
}
