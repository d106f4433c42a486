package events

import (
	"context"
	"errors"
	"testing"
)

type recordingPublisher struct {
	events []*ChangeEvent
	err    error
	closed bool
}

func (r *recordingPublisher) Publish(_ context.Context, event *ChangeEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingPublisher) Close() error {
	r.closed = true
	return nil
}

func TestChangeEventRoundTrip(t *testing.T) {
	event := NewChangeEvent("gastos", OpCreate, "x1", "u1")
	if event.RoutingKey() != "gastos.create" {
		t.Errorf("RoutingKey() = %s, want gastos.create", event.RoutingKey())
	}

	data, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	decoded, err := ChangeEventFromJSON(data)
	if err != nil {
		t.Fatalf("ChangeEventFromJSON failed: %v", err)
	}
	if decoded.Table != "gastos" || decoded.Op != OpCreate || decoded.ID != "x1" || decoded.UserID != "u1" {
		t.Errorf("unexpected decoded event %+v", decoded)
	}
	if !decoded.At.Equal(event.At) {
		t.Errorf("At = %v, want %v", decoded.At, event.At)
	}
}

func TestNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("nil notifier is a no-op", func(t *testing.T) {
		var n *Notifier
		n.Notify(ctx, "itinerario", OpDelete, "e1", "")
		if err := n.Close(); err != nil {
			t.Errorf("Close() = %v", err)
		}
	})

	t.Run("publishes", func(t *testing.T) {
		rec := &recordingPublisher{}
		n := NewNotifier(rec)
		n.Notify(ctx, "lugares_progreso", OpToggle, "p1", "u1")

		if len(rec.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(rec.events))
		}
		if rec.events[0].RoutingKey() != "lugares_progreso.toggle" {
			t.Errorf("unexpected routing key %s", rec.events[0].RoutingKey())
		}
		n.Close()
		if !rec.closed {
			t.Error("expected publisher to be closed")
		}
	})

	t.Run("publish errors are swallowed", func(t *testing.T) {
		rec := &recordingPublisher{err: errors.New("connection closed")}
		NewNotifier(rec).Notify(ctx, "gastos", OpUpdate, "x1", "u1")
		if len(rec.events) != 1 {
			t.Errorf("expected publish attempt, got %d", len(rec.events))
		}
	})
}
