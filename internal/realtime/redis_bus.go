// internal/realtime/redis_bus.go
package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisChannel = "decora:realtime"

// RedisBus extends a local bus across processes: events are published
// to a single Redis channel and every instance, the publisher included,
// dispatches what it receives into its local subscribers. Delivery is
// best effort; a broken Redis connection degrades to local-only fanout
// and manual refresh, which remains correct, just less immediate.
type RedisBus struct {
	client *redis.Client
	local  *MemoryBus
	pubsub *redis.PubSub
	logger *zap.Logger
	cancel context.CancelFunc
}

func NewRedisBus(client *redis.Client, logger *zap.Logger) *RedisBus {
	ctx, cancel := context.WithCancel(context.Background())

	b := &RedisBus{
		client: client,
		local:  NewMemoryBus(),
		pubsub: client.Subscribe(ctx, redisChannel),
		logger: logger,
		cancel: cancel,
	}
	go b.receive(ctx)
	return b
}

// Publish sends the event through Redis; local subscribers hear it when
// the instance's own subscription echoes it back. Failures are logged
// and the event is delivered locally anyway.
func (b *RedisBus) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, redisChannel, payload).Err(); err != nil {
		b.logger.Warn("realtime publish failed, delivering locally",
			zap.String("topic", ev.Topic),
			zap.Error(err),
		)
		return b.local.Publish(ctx, ev)
	}
	return nil
}

func (b *RedisBus) Subscribe(topic string, h Handler) func() {
	return b.local.Subscribe(topic, h)
}

func (b *RedisBus) Close() error {
	b.cancel()
	if err := b.pubsub.Close(); err != nil {
		return err
	}
	return b.local.Close()
}

func (b *RedisBus) receive(ctx context.Context) {
	ch := b.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.logger.Warn("dropping malformed realtime event", zap.Error(err))
				continue
			}
			if err := b.local.Publish(ctx, ev); err != nil {
				b.logger.Warn("local dispatch failed", zap.Error(err))
			}
		}
	}
}
