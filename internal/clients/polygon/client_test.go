package polygon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("test-key", WithBaseURL(server.URL))
	return client, server
}

func TestSearchTickers_Success(t *testing.T) {
	var gotPath, gotSearch, gotActive, gotKey string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSearch = r.URL.Query().Get("search")
		gotActive = r.URL.Query().Get("active")
		gotKey = r.URL.Query().Get("apiKey")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[
			{"name":"Amazon.com Inc.","ticker":"AMZN","primary_exchange":"XNAS"},
			{"name":"Amazon Trust","ticker":"AMZT","primary_exchange":""}
		]}`)
	})
	defer server.Close()

	results, err := client.SearchTickers(context.Background(), "Amazon")
	if err != nil {
		t.Fatalf("SearchTickers failed: %v", err)
	}

	if gotPath != "/v3/reference/tickers" {
		t.Errorf("path = %q", gotPath)
	}
	if gotSearch != "Amazon" || gotActive != "true" || gotKey != "test-key" {
		t.Errorf("query params: search=%q active=%q apiKey=%q", gotSearch, gotActive, gotKey)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Ticker != "AMZN" || results[0].Name != "Amazon.com Inc." || results[0].PrimaryExchange != "XNAS" {
		t.Errorf("first result not mapped: %+v", results[0])
	}
	if results[1].PrimaryExchange != "" {
		t.Errorf("empty exchange should stay empty at the client layer: %+v", results[1])
	}
}

func TestSearchTickers_NoResults(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[]}`)
	})
	defer server.Close()

	results, err := client.SearchTickers(context.Background(), "Nothing")
	if err != nil {
		t.Fatalf("SearchTickers failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSearchTickers_HTTPError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
	defer server.Close()

	_, err := client.SearchTickers(context.Background(), "Amazon")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
}

func TestSearchTickers_BadJSON(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})
	defer server.Close()

	if _, err := client.SearchTickers(context.Background(), "Amazon"); err == nil {
		t.Fatal("expected decode error")
	}
}
