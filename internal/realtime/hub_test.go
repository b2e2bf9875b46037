package realtime

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHubDropsSlowClientWithoutStalling(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()

	hub := NewHub(bus, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// A client whose WritePump never runs: its send buffer fills and the
	// hub must drop it instead of blocking its own event loop.
	stalled := NewClient(hub, nil, "lenta@decora.es", zap.NewNop())
	hub.Register <- stalled

	for i := 0; i < 70; i++ {
		if err := bus.Publish(context.Background(), NewCalendarEvent()); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
	}

	// The hub must keep servicing registrations after the drop.
	fresh := NewClient(hub, nil, "nueva@decora.es", zap.NewNop())
	select {
	case hub.Register <- fresh:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped servicing registrations after dropping a slow client")
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.TotalClients() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("connected clients = %d, want 1 (stalled dropped, fresh kept)", hub.TotalClients())
		}
		time.Sleep(10 * time.Millisecond)
	}

	// The fresh client still receives events.
	if err := bus.Publish(context.Background(), NewCalendarEvent()); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	select {
	case <-fresh.send:
	case <-time.After(2 * time.Second):
		t.Fatal("fresh client received no event after slow-client drop")
	}
}

func TestClientSendReportsFullBuffer(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()
	hub := NewHub(bus, zap.NewNop())

	c := NewClient(hub, nil, "op@decora.es", zap.NewNop())
	payload := []byte(`{}`)

	for i := 0; i < cap(c.send); i++ {
		if !c.Send(payload) {
			t.Fatalf("Send reported failure with buffer space left (slot %d)", i)
		}
	}
	if c.Send(payload) {
		t.Error("Send reported success on a full buffer")
	}

	c.Close()
	if c.Send(payload) {
		t.Error("Send reported success on a closed client")
	}
}
