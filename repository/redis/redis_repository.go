package redis

import (
	"context"
	"errors"
	"time"

	redisclient "github.com/nlhsang/chat-account/cmd/redis"
)

// ErrClientNotInitialized is returned when the shared redis client has not
// been connected. The registry fails closed: no client means no session can
// be written, read or revoked.
var ErrClientNotInitialized = errors.New("redis client not initialized")

// Repository is the session registry: each issued access token's jti is
// recorded here for the token's lifetime, and removed again on logout. A
// token whose jti is absent is treated as revoked even if its signature
// still verifies.
type Repository interface {
	SetSession(ctx context.Context, sessionID string, accountID uint64, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint64, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type redis struct{}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

// SetSession stores a session with accountID and TTL
func (r *redis) SetSession(ctx context.Context, sessionID string, accountID uint64, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return ErrClientNotInitialized
	}
	key := "session:" + sessionID
	return client.Set(ctx, key, accountID, ttl).Err()
}

// GetSession retrieves accountID from session
func (r *redis) GetSession(ctx context.Context, sessionID string) (uint64, error) {
	client := redisclient.Get()
	if client == nil {
		return 0, ErrClientNotInitialized
	}
	key := "session:" + sessionID
	val, err := client.Get(ctx, key).Uint64()
	if err != nil {
		return 0, err
	}
	return val, nil
}

// DeleteSession removes a session from Redis
func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	client := redisclient.Get()
	if client == nil {
		return ErrClientNotInitialized
	}
	key := "session:" + sessionID
	return client.Del(ctx, key).Err()
}
