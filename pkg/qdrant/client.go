package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the Qdrant HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Qdrant client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithAPIKey sets the api-key header sent on every request.
func (c *Client) WithAPIKey(key string) *Client {
	c.apiKey = key
	return c
}

// CollectionExists reports whether the named collection exists.
func (c *Client) CollectionExists(ctx context.Context, name string) (bool, error) {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, name)

	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("qdrant API error: %d", resp.StatusCode)
	}
}

// CreateCollection creates a new collection with the given configuration.
func (c *Client) CreateCollection(ctx context.Context, req CreateCollectionRequest) error {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, req.Name)

	resp, err := c.do(ctx, http.MethodPut, url, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}

	return nil
}

// EnsureCollection creates the collection unless it already exists.
func (c *Client) EnsureCollection(ctx context.Context, req CreateCollectionRequest) error {
	exists, err := c.CollectionExists(ctx, req.Name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.CreateCollection(ctx, req)
}

// UpsertPoints inserts or updates points (vectors) in a collection.
func (c *Client) UpsertPoints(ctx context.Context, collectionName string, req UpsertPointsRequest) error {
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", c.baseURL, collectionName)

	resp, err := c.do(ctx, http.MethodPut, url, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	return nil
}

// SearchPoints performs semantic search in a collection.
func (c *Client) SearchPoints(ctx context.Context, collectionName string, req SearchRequest) (*SearchResponse, error) {
	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, collectionName)

	resp, err := c.do(ctx, http.MethodPost, url, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

func (c *Client) do(ctx context.Context, method, url string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call qdrant API: %w", err)
	}
	return resp, nil
}

func apiError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Status.Error != "" {
		return fmt.Errorf("qdrant API error: %d: %s", resp.StatusCode, errResp.Status.Error)
	}
	return fmt.Errorf("qdrant API error: %d", resp.StatusCode)
}
