// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operations counts completed team space operations by envelope status.
var Operations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "teamspace",
	Name:      "operations_total",
	Help:      "Team space operations by name and envelope status.",
}, []string{"operation", "status"})

// StoreDuration observes record store calls.
var StoreDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "teamspace",
	Name:      "store_duration_seconds",
	Help:      "Latency of record store calls.",
	Buckets:   prometheus.DefBuckets,
}, []string{"op", "result"})

// ConflictRetries counts updates retried after a concurrent write.
var ConflictRetries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "teamspace",
	Name:      "conflict_retries_total",
	Help:      "Mutations re-run because the record changed between read and write.",
}, []string{"operation"})

// ImageSearches counts image lookups by outcome: hit, fallback, error, cached.
var ImageSearches = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "teamspace",
	Name:      "image_searches_total",
	Help:      "Image search lookups by outcome.",
}, []string{"outcome"})

// HTTPRequests counts served HTTP requests.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "teamspace",
	Name:      "http_requests_total",
	Help:      "HTTP requests by method, route and status code.",
}, []string{"method", "route", "code"})

// EventsPublished counts mutation events handed to the publisher.
var EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "teamspace",
	Name:      "events_published_total",
	Help:      "Mutation events by type and result.",
}, []string{"type", "result"})

// ObserveStore records the duration of one store call started at start.
func ObserveStore(op string, start time.Time, err error) {
	StoreDuration.WithLabelValues(op, resultLabel(err)).Observe(time.Since(start).Seconds())
}

// ObserveOperation records one finished operation.
func ObserveOperation(operation string, status int) {
	Operations.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}

// ObserveEvent records one publish attempt.
func ObserveEvent(eventType string, err error) {
	EventsPublished.WithLabelValues(eventType, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}
