package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const stateTTL = 10 * time.Minute

// LoginStateStore holds short-lived OAuth state values in Redis, bridging
// the login redirect and the provider callback across instances.
// Key format: login_state:<state>
type LoginStateStore struct {
	client *redis.Client
}

// NewLoginStateStore creates a LoginStateStore wrapping the given Redis client.
func NewLoginStateStore(client *redis.Client) *LoginStateStore {
	return &LoginStateStore{client: client}
}

// Save records a freshly minted state value. It expires after stateTTL, so
// an abandoned login attempt leaves nothing behind.
func (s *LoginStateStore) Save(ctx context.Context, state string) error {
	return s.client.Set(ctx, s.key(state), "1", stateTTL).Err()
}

// Consume deletes the state and reports whether it existed. A state can be
// consumed at most once.
func (s *LoginStateStore) Consume(ctx context.Context, state string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(state)).Result()
	if err != nil {
		return false, fmt.Errorf("consume login state: %w", err)
	}
	return n > 0, nil
}

func (s *LoginStateStore) key(state string) string {
	return "login_state:" + state
}
