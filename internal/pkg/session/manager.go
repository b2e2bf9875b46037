// internal/pkg/session/manager.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "decora:admin:session:"
	sessionTTL = 30 * time.Minute
)

// Manager keeps a Redis registry of open admin sessions. It exists for
// visibility (the connection stats endpoint) rather than auth: tokens
// are verified cryptographically and sessions here are best effort.
type Manager struct {
	client *redis.Client
}

func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

// Touch records activity for a session, extending its TTL.
func (m *Manager) Touch(ctx context.Context, sessionID, operatorEmail string) error {
	key := keyPrefix + sessionID
	return m.client.Set(ctx, key, operatorEmail, sessionTTL).Err()
}

// Drop removes a session from the registry.
func (m *Manager) Drop(ctx context.Context, sessionID string) error {
	return m.client.Del(ctx, keyPrefix+sessionID).Err()
}

// ActiveCount counts sessions that touched the registry within the TTL.
func (m *Manager) ActiveCount(ctx context.Context) (int, error) {
	var (
		cursor uint64
		count  int
	)
	for {
		keys, next, err := m.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to scan sessions: %w", err)
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}
