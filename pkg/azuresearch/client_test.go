package azuresearch_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"line-knowledge-assistant/pkg/azuresearch"
)

func TestAzureSearchClient(t *testing.T) {
	var gotQuery azuresearch.SearchRequest
	var gotVersion string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != "search-key" {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"code":"Forbidden","message":"Invalid api key"}}`))
			return
		}
		if r.Method != http.MethodPost || r.URL.Path != "/indexes/docs/docs/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotVersion = r.URL.Query().Get("api-version")
		json.NewDecoder(r.Body).Decode(&gotQuery)

		if gotQuery.Search == "cause_500" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"value":[
			{"@search.score": 2.5, "title": "Router X1", "chunk": "Dual band", "category": "product"},
			{"@search.score": 1.1, "title": "Returns", "chunk": "Within 7 days"}
		]}`))
	}))
	defer ts.Close()

	client := azuresearch.NewClient(ts.URL+"/", "docs", "search-key")

	t.Run("Search Success", func(t *testing.T) {
		resp, err := client.Search(context.Background(), azuresearch.SearchRequest{Search: "router", Top: 5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotVersion != azuresearch.DefaultAPIVersion {
			t.Errorf("expected api-version %s, got %s", azuresearch.DefaultAPIVersion, gotVersion)
		}
		if gotQuery.Top != 5 || gotQuery.Search != "router" {
			t.Errorf("unexpected request: %+v", gotQuery)
		}
		if len(resp.Value) != 2 {
			t.Fatalf("expected 2 documents, got %d", len(resp.Value))
		}
		doc := resp.Value[0]
		if doc.String("title") != "Router X1" || doc.String("category") != "product" || doc.Score() != 2.5 {
			t.Errorf("unexpected document: %v", doc)
		}
		if resp.Value[1].String("category") != "" {
			t.Errorf("expected missing category to read as empty")
		}
	})

	t.Run("Search Server Error", func(t *testing.T) {
		_, err := client.Search(context.Background(), azuresearch.SearchRequest{Search: "cause_500"})
		if err == nil || !strings.Contains(err.Error(), "503") {
			t.Fatalf("expected 503 error, got %v", err)
		}
	})

	t.Run("Search Forbidden", func(t *testing.T) {
		bad := azuresearch.NewClient(ts.URL, "docs", "wrong").WithAPIVersion("2023-11-01")
		_, err := bad.Search(context.Background(), azuresearch.SearchRequest{Search: "router"})
		if err == nil || !strings.Contains(err.Error(), "Invalid api key") {
			t.Fatalf("expected forbidden error, got %v", err)
		}
	})
}
