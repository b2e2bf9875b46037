// internal/realtime/bus.go
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Topics carried by the bus. Customer events fan a record-changed
// signal to every open admin session so manual polling is unnecessary;
// calendar events do the same for blackout mutations.
const (
	TopicCustomers = "customers"
	TopicCalendar  = "calendar"
)

// Event is the lightweight payload broadcast to admin sessions.
type Event struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic"`
	CustomerKey string    `json:"customer_key,omitempty"`
	At          time.Time `json:"at"`
}

// NewCustomerEvent builds a customer-changed event.
func NewCustomerEvent(customerKey string) Event {
	return Event{
		ID:          uuid.NewString(),
		Topic:       TopicCustomers,
		CustomerKey: customerKey,
		At:          time.Now(),
	}
}

// NewCalendarEvent builds a calendar-changed event.
func NewCalendarEvent() Event {
	return Event{
		ID:    uuid.NewString(),
		Topic: TopicCalendar,
		At:    time.Now(),
	}
}

// Handler receives every event published to a subscribed topic,
// including events the same session published itself. Handlers must be
// idempotent reloads for that to be safe.
type Handler func(Event)

// Bus is the explicit publish/subscribe contract between mutating
// services and the admin sessions watching them. A bus is constructed
// once per process and disposed explicitly; nothing here is ambient.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(topic string, h Handler) (unsubscribe func())
	Close() error
}

// MemoryBus is the single-process bus implementation.
type MemoryBus struct {
	mu     sync.RWMutex
	subs   map[string]map[int]Handler
	nextID int
	closed bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[int]Handler)}
}

func (b *MemoryBus) Publish(_ context.Context, ev Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, h := range b.subs[ev.Topic] {
		h(ev)
	}
	return nil
}

func (b *MemoryBus) Subscribe(topic string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.subs[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = make(map[string]map[int]Handler)
	return nil
}
