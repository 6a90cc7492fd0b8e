package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"line-knowledge-assistant/config"
	"line-knowledge-assistant/pkg/line"
	"line-knowledge-assistant/pkg/log"
)

const (
	ngrokAttempts = 10
	ngrokInterval = 3 * time.Second
	callbackPath  = "/callback"
)

type ngrokTunnels struct {
	Tunnels []struct {
		PublicURL string `json:"public_url"`
		Proto     string `json:"proto"`
	} `json:"tunnels"`
}

// registerWebhook points the LINE channel at this server. An explicit
// line.webhook_url wins; otherwise the public URL of a local ngrok tunnel is used.
// Failures are logged and never stop startup.
func registerWebhook(ctx context.Context, l log.Logger, client *line.Client, cfg config.LineConfig) {
	endpoint := cfg.WebhookURL
	if endpoint == "" && cfg.NgrokAPIURL != "" {
		publicURL, err := detectNgrokURL(ctx, cfg.NgrokAPIURL)
		if err != nil {
			l.Warnf(ctx, "Could not detect ngrok URL: %v", err)
			return
		}
		endpoint = strings.TrimSuffix(publicURL, "/") + callbackPath
		l.Infof(ctx, "Auto-detected ngrok URL: %s", publicURL)
	}
	if endpoint == "" {
		return
	}

	if err := client.SetWebhookEndpoint(ctx, endpoint); err != nil {
		l.Warnf(ctx, "Failed to set LINE webhook endpoint: %v", err)
		return
	}
	l.Infof(ctx, "LINE webhook endpoint set to %s", endpoint)
}

// detectNgrokURL polls the ngrok local API for a tunnel, preferring HTTPS.
// ngrok may start after us, so it retries a few times.
func detectNgrokURL(ctx context.Context, apiBase string) (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	url := strings.TrimSuffix(apiBase, "/") + "/api/tunnels"

	var lastErr error
	for attempt := 1; attempt <= ngrokAttempts; attempt++ {
		publicURL, err := fetchTunnel(ctx, client, url)
		if err == nil {
			return publicURL, nil
		}
		lastErr = err

		if attempt < ngrokAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(ngrokInterval):
			}
		}
	}

	return "", fmt.Errorf("no ngrok tunnel after %d attempts: %w", ngrokAttempts, lastErr)
}

func fetchTunnel(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ngrok API not reachable: %w", err)
	}
	defer resp.Body.Close()

	var tunnels ngrokTunnels
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}

	for _, t := range tunnels.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels.Tunnels) > 0 {
		return tunnels.Tunnels[0].PublicURL, nil
	}
	return "", fmt.Errorf("ngrok has no active tunnels")
}
