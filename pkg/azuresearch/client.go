package azuresearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultAPIVersion = "2024-07-01"

// Client queries a single Azure AI Search index over REST.
type Client struct {
	endpoint   string
	index      string
	apiKey     string
	apiVersion string
	httpClient *http.Client
}

// NewClient creates a client for index at endpoint, authenticated with an admin or query key.
func NewClient(endpoint, index, apiKey string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		index:      index,
		apiKey:     apiKey,
		apiVersion: DefaultAPIVersion,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithAPIVersion overrides the REST api-version.
func (c *Client) WithAPIVersion(v string) *Client {
	if v != "" {
		c.apiVersion = v
	}
	return c
}

// Index returns the index name this client searches.
func (c *Client) Index() string {
	return c.index
}

// Search runs a full-text query and returns documents in rank order.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	u := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s",
		c.endpoint, url.PathEscape(c.index), url.QueryEscape(c.apiVersion))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call azure search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("azure search API error (%d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("azure search API error: %d", resp.StatusCode)
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
