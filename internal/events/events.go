// Package events publishes a message for every successful team space mutation.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Event types. Each doubles as the routing key.
const (
	TeamSpaceCreated   = "teamspace.created"
	TeamSpaceEdited    = "teamspace.edited"
	JoinCodeRotated    = "teamspace.join_code.rotated"
	MemberAdded        = "teamspace.member.added"
	MemberRemoved      = "teamspace.member.removed"
	CategoryCreated    = "teamspace.category.created"
	CategoryEdited     = "teamspace.category.edited"
	CategoryDeleted    = "teamspace.category.deleted"
	BudgetLimitChanged = "teamspace.category.budget_changed"
	TransactionCreated = "teamspace.transaction.created"
	TransactionEdited  = "teamspace.transaction.edited"
	TransactionDeleted = "teamspace.transaction.deleted"
)

// Event is a lightweight notice of a mutation. Consumers fetch the team space
// themselves; Version lets them discard stale notices.
type Event struct {
	Type        string    `json:"type"`
	TeamSpaceID string    `json:"teamSpaceID"`
	ResourceID  string    `json:"resourceID,omitempty"`
	ActorUserID string    `json:"actorUserID,omitempty"`
	Version     int64     `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
}

// New builds an event stamped with the current time.
func New(eventType, teamSpaceID, resourceID string, version int64) Event {
	return Event{
		Type:        eventType,
		TeamSpaceID: teamSpaceID,
		ResourceID:  resourceID,
		Version:     version,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event.
func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

// Publish discards e.
func (Nop) Publish(context.Context, Event) error { return nil }

// Close is a no-op.
func (Nop) Close() error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish records e.
func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Close is a no-op.
func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types returns the recorded event types in publish order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
