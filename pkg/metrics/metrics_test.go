package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics(t *testing.T) {
	m := New()

	m.Grounding("search")
	m.Grounding("fallback")
	m.Grounding("fallback")
	m.Completion(nil, time.Second)
	m.Completion(errors.New("x"), time.Second)
	m.Reply(nil)
	m.Restart()
	m.WebhookEvent("message", "text", true)
	m.ObserveHTTP("POST", "/callback", "200", 10*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `line_assistant_grounding_resolutions_total{source="fallback"} 2`)
	assert.Contains(t, body, `line_assistant_completion_requests_total{status="error"} 1`)
	assert.Contains(t, body, `line_assistant_reply_requests_total{status="success"} 1`)
	assert.Contains(t, body, `line_assistant_session_restarts_total 1`)
	assert.Contains(t, body, `line_assistant_webhook_events_total{event="message",handled="true",message="text"} 1`)
	assert.Contains(t, body, `line_assistant_http_requests_total{method="POST",route="/callback",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
