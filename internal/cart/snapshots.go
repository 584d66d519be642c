package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harithaceylon/storefront-backend/pkg/redis"
)

// SnapshotStore persists cart state between processes. Saves and loads
// are whole-state operations; there is no incremental sync.
type SnapshotStore interface {
	Save(ctx context.Context, sessionID uuid.UUID, state State) error
	Load(ctx context.Context, sessionID uuid.UUID) (*State, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

type redisSnapshots struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshots builds a snapshot store writing JSON cart state to
// Redis with the provided TTL.
func NewRedisSnapshots(client *redis.Client, ttl time.Duration) (SnapshotStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("snapshot ttl must be positive")
	}
	return &redisSnapshots{client: client, ttl: ttl}, nil
}

func (r *redisSnapshots) Save(ctx context.Context, sessionID uuid.UUID, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart state: %w", err)
	}
	return r.client.Set(ctx, r.client.CartKey(sessionID.String()), string(payload), r.ttl)
}

func (r *redisSnapshots) Load(ctx context.Context, sessionID uuid.UUID) (*State, error) {
	raw, err := r.client.Get(ctx, r.client.CartKey(sessionID.String()))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("unmarshal cart state: %w", err)
	}
	return &state, nil
}

func (r *redisSnapshots) Delete(ctx context.Context, sessionID uuid.UUID) error {
	return r.client.Del(ctx, r.client.CartKey(sessionID.String()))
}
