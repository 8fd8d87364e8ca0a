package events

import (
	"context"
	"testing"
)

func TestEventJSON(t *testing.T) {
	e := New(CategoryCreated, "T1", "C1", 4)
	e.ActorUserID = "U1"

	raw, err := e.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := FromJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != CategoryCreated || got.TeamSpaceID != "T1" || got.ResourceID != "C1" || got.Version != 4 || got.ActorUserID != "U1" {
		t.Errorf("unexpected event %+v", got)
	}
	if !got.Timestamp.Equal(e.Timestamp) {
		t.Errorf("timestamp changed: %v != %v", got.Timestamp, e.Timestamp)
	}
}

func TestConnect_EmptyURL(t *testing.T) {
	p, err := Connect("", "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(Nop); !ok {
		t.Errorf("expected Nop publisher, got %T", p)
	}
	if err := p.Publish(context.Background(), New(TeamSpaceCreated, "T1", "", 1)); err != nil {
		t.Errorf("nop publish failed: %v", err)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	_ = r.Publish(context.Background(), New(MemberAdded, "T1", "U2", 2))
	_ = r.Publish(context.Background(), New(MemberRemoved, "T1", "U2", 3))

	types := r.Types()
	if len(types) != 2 || types[0] != MemberAdded || types[1] != MemberRemoved {
		t.Errorf("unexpected types %v", types)
	}
}
