package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(Operations.WithLabelValues("createTransaction", "201"))
	ObserveOperation("createTransaction", 201)
	after := testutil.ToFloat64(Operations.WithLabelValues("createTransaction", "201"))

	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, grew by %v", after-before)
	}
}

func TestObserveEvent(t *testing.T) {
	before := testutil.ToFloat64(EventsPublished.WithLabelValues("test.event", "error"))
	ObserveEvent("test.event", errors.New("broker down"))
	after := testutil.ToFloat64(EventsPublished.WithLabelValues("test.event", "error"))

	if after-before != 1 {
		t.Errorf("expected error counter to grow by 1, grew by %v", after-before)
	}
}

func TestObserveStore(t *testing.T) {
	ObserveStore("fetch", time.Now(), nil)
	if n := testutil.CollectAndCount(StoreDuration); n == 0 {
		t.Error("expected store duration samples")
	}
}
