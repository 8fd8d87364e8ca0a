// Package imagesearch picks pictures for categories and transactions from an
// external image search service.
package imagesearch

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/singleflight"

	"teamspace/internal/logger"
	"teamspace/internal/metrics"
)

// Orientation is the aspect hint passed to the search service.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Squarish  Orientation = "squarish"
)

// FallbackImage is used when a search succeeds but yields nothing usable.
const FallbackImage = "https://t3.ftcdn.net/jpg/02/48/42/64/360_F_248426448_NVKLywWqArG2ADUxDq6QprtIzsF82dMF.jpg"

// Searcher returns candidate image URLs for a free-text query. An empty
// result is not an error.
type Searcher interface {
	Search(ctx context.Context, query string, orientation Orientation) ([]string, error)
}

// Picker chooses one image URL per lookup. Identical lookups in flight at the
// same time share one search call.
type Picker struct {
	searcher Searcher
	timeout  time.Duration
	group    singleflight.Group
	intn     func(n int) int
}

// NewPicker wraps searcher. A non-positive timeout leaves the search itself
// unbounded; callers still stop waiting at their own deadline.
func NewPicker(searcher Searcher, timeout time.Duration) *Picker {
	return &Picker{
		searcher: searcher,
		timeout:  timeout,
		intn:     rand.IntN,
	}
}

// Pick searches for query and returns a random result, or FallbackImage when
// the results are empty or the chosen entry has no URL. A failed search is
// returned as an error so the caller can abort before writing.
//
// The shared search outlives any single caller: it keeps the first caller's
// values but not its cancellation, and is bounded by the picker timeout. Each
// caller stops waiting when its own ctx is done.
func (p *Picker) Pick(ctx context.Context, query string, orientation Orientation) (string, error) {
	key := string(orientation) + "|" + query
	ch := p.group.DoChan(key, func() (interface{}, error) {
		searchCtx := context.WithoutCancel(ctx)
		if p.timeout > 0 {
			var cancel context.CancelFunc
			searchCtx, cancel = context.WithTimeout(searchCtx, p.timeout)
			defer cancel()
		}
		return p.searcher.Search(searchCtx, query, orientation)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res = singleflight.Result{Err: ctx.Err()}
	}

	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		metrics.ImageSearches.WithLabelValues("error").Inc()
		logger.Get().Warnw("image search failed", "query", query, "orientation", orientation, "error", err)
		return "", fmt.Errorf("image search for %q: %w", query, err)
	}
	if shared {
		metrics.ImageSearches.WithLabelValues("shared").Inc()
	}

	results := v.([]string)
	if len(results) == 0 {
		metrics.ImageSearches.WithLabelValues("fallback").Inc()
		return FallbackImage, nil
	}
	url := results[p.intn(len(results))]
	if url == "" {
		metrics.ImageSearches.WithLabelValues("fallback").Inc()
		return FallbackImage, nil
	}
	metrics.ImageSearches.WithLabelValues("hit").Inc()
	return url, nil
}
