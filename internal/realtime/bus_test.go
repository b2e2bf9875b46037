package realtime

import (
	"context"
	"testing"
)

func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()

	var got []Event
	unsub := bus.Subscribe(TopicCustomers, func(ev Event) {
		got = append(got, ev)
	})

	ev := NewCustomerEvent("34600112233")
	if err := bus.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("handler invoked %d times, want 1", len(got))
	}
	if got[0].CustomerKey != "34600112233" {
		t.Errorf("CustomerKey = %q, want 34600112233", got[0].CustomerKey)
	}
	if got[0].ID == "" || got[0].At.IsZero() {
		t.Errorf("event missing ID or timestamp: %+v", got[0])
	}

	// Topic isolation: calendar events do not reach customer handlers.
	if err := bus.Publish(context.Background(), NewCalendarEvent()); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("handler saw %d events, want 1 (calendar should not leak)", len(got))
	}

	unsub()
	if err := bus.Publish(context.Background(), NewCustomerEvent("other")); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("handler invoked after unsubscribe")
	}
}

func TestMemoryBusMultipleSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()

	a, b := 0, 0
	bus.Subscribe(TopicCustomers, func(Event) { a++ })
	bus.Subscribe(TopicCustomers, func(Event) { b++ })

	bus.Publish(context.Background(), NewCustomerEvent("k"))
	if a != 1 || b != 1 {
		t.Errorf("subscriber counts = %d, %d, want 1, 1", a, b)
	}
}

func TestMemoryBusClosedDropsEvents(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	bus.Subscribe(TopicCalendar, func(Event) { calls++ })
	bus.Close()

	if err := bus.Publish(context.Background(), NewCalendarEvent()); err != nil {
		t.Fatalf("Publish after close should be a silent no-op, got %v", err)
	}
	if calls != 0 {
		t.Errorf("handler invoked after close")
	}
}
