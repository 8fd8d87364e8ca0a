package testutil

import (
	"context"
	"sync"

	"teamspace/internal/imagesearch"
)

// FakeImageSearcher is an in-memory imagesearch.Searcher that records calls.
type FakeImageSearcher struct {
	mu      sync.Mutex
	Results []string
	Err     error
	Queries []string
}

// Search returns the configured results or error.
func (f *FakeImageSearcher) Search(_ context.Context, query string, _ imagesearch.Orientation) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Queries = append(f.Queries, query)
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]string(nil), f.Results...), nil
}

// Calls reports how many searches were made.
func (f *FakeImageSearcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Queries)
}
