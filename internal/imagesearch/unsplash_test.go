package imagesearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUnsplashClient_Search(t *testing.T) {
	var gotQuery, gotOrientation, gotKey, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotOrientation = r.URL.Query().Get("orientation")
		gotKey = r.URL.Query().Get("client_id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"urls":{"regular":"https://img/1"}},{"urls":{}},{"urls":{"regular":"https://img/3"}}]}`))
	}))
	defer server.Close()

	c := NewUnsplashClient(server.Client(), server.URL+"/", "key123")
	urls, err := c.Search(context.Background(), "fast food", Landscape)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/search/photos/" {
		t.Errorf("path = %q, want /search/photos/", gotPath)
	}
	if gotQuery != "fast-food" {
		t.Errorf("query = %q, want fast-food", gotQuery)
	}
	if gotOrientation != "landscape" {
		t.Errorf("orientation = %q, want landscape", gotOrientation)
	}
	if gotKey != "key123" {
		t.Errorf("client_id = %q, want key123", gotKey)
	}
	if len(urls) != 3 || urls[0] != "https://img/1" || urls[1] != "" || urls[2] != "https://img/3" {
		t.Errorf("urls = %v", urls)
	}
}

func TestUnsplashClient_Search_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":0,"results":[]}`))
	}))
	defer server.Close()

	urls, err := NewUnsplashClient(server.Client(), server.URL, "k").Search(context.Background(), "zzz", Squarish)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(urls) != 0 {
		t.Errorf("expected no urls, got %v", urls)
	}
}

func TestUnsplashClient_Search_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewUnsplashClient(server.Client(), server.URL, "k").Search(context.Background(), "food", Landscape)
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestUnsplashClient_Search_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewUnsplashClient(server.Client(), server.URL, "k").Search(context.Background(), "food", Landscape)
	if err == nil {
		t.Fatal("expected decode error")
	}
}
