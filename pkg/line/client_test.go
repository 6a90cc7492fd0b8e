package line_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"line-knowledge-assistant/pkg/line"
)

func TestClientReply(t *testing.T) {
	var got line.ReplyRequest
	var gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/bot/message/reply" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)

		if got.ReplyToken == "expired" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"Invalid reply token"}`))
			return
		}
		if got.ReplyToken == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`oops`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := line.NewClient("test-token")
	client.SetAPIURL(ts.URL)

	t.Run("Reply Success", func(t *testing.T) {
		msg := line.NewTextMessage("hello").WithQuickReplies(
			line.MessageAction{Label: "again", Text: "again"},
		)
		if err := client.Reply(context.Background(), "token-1", msg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotAuth != "Bearer test-token" {
			t.Errorf("expected bearer auth, got %q", gotAuth)
		}
		if len(got.Messages) != 1 || got.Messages[0].Text != "hello" {
			t.Fatalf("unexpected payload: %+v", got)
		}
		qr := got.Messages[0].QuickReply
		if qr == nil || len(qr.Items) != 1 {
			t.Fatalf("expected one quick reply item, got %+v", qr)
		}
		if qr.Items[0].Type != "action" || qr.Items[0].Action.Type != "message" {
			t.Errorf("unexpected quick reply item: %+v", qr.Items[0])
		}
	})

	t.Run("Reply API Failed", func(t *testing.T) {
		err := client.Reply(context.Background(), "expired", line.NewTextMessage("x"))
		if err == nil || !strings.Contains(err.Error(), "Invalid reply token") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("Reply HTTP Failed", func(t *testing.T) {
		err := client.Reply(context.Background(), "cause_500", line.NewTextMessage("x"))
		if err == nil || !strings.Contains(err.Error(), "500") {
			t.Fatalf("expected http error, got: %v", err)
		}
	})

	t.Run("Empty reply token", func(t *testing.T) {
		if err := client.Reply(context.Background(), "", line.NewTextMessage("x")); err == nil {
			t.Fatal("expected error for empty reply token")
		}
	})

	t.Run("No messages", func(t *testing.T) {
		if err := client.Reply(context.Background(), "token-1"); err == nil {
			t.Fatal("expected error when no messages given")
		}
	})
}

func TestClientSetWebhookEndpoint(t *testing.T) {
	var got line.WebhookEndpointRequest
	var method string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/bot/channel/webhook/endpoint" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		method = r.Method
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := line.NewClient("test-token")
	client.SetAPIURL(ts.URL)

	if err := client.SetWebhookEndpoint(context.Background(), "https://abc.ngrok.io/callback"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != http.MethodPut {
		t.Errorf("expected PUT, got %s", method)
	}
	if got.Endpoint != "https://abc.ngrok.io/callback" {
		t.Errorf("unexpected endpoint: %q", got.Endpoint)
	}

	if err := client.SetWebhookEndpoint(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}

func TestSignature(t *testing.T) {
	body := []byte(`{"events":[]}`)
	sig := line.Sign("secret", body)

	if !line.ValidateSignature("secret", body, sig) {
		t.Error("expected signature to validate")
	}
	if line.ValidateSignature("other", body, sig) {
		t.Error("expected signature with wrong secret to fail")
	}
	if line.ValidateSignature("secret", []byte(`{"events":[1]}`), sig) {
		t.Error("expected signature over different body to fail")
	}
	if line.ValidateSignature("secret", body, "not-base64!!") {
		t.Error("expected malformed signature to fail")
	}
	if line.ValidateSignature("secret", body, "") {
		t.Error("expected empty signature to fail")
	}
}
