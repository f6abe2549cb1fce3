package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tommyfx/storefront/internal/domain/cart"
	"github.com/tommyfx/storefront/internal/infrastructure/config"
)

// RedisCartStore implements cart.Store using Redis.
// Carts persist across page reloads for the lifetime of the session
// TTL and are keyed by the session ID, so one session never sees
// another session's cart.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCartStore creates a new Redis-backed cart store
func NewRedisCartStore(cfg *config.RedisConfig, ttl time.Duration) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCartStore{
		client:    client,
		keyPrefix: "cart:session:",
		ttl:       ttl,
	}, nil
}

// NewRedisCartStoreWithClient creates a store with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisCartStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCartStore {
	if keyPrefix == "" {
		keyPrefix = "cart:session:"
	}
	return &RedisCartStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get loads the cart for a session, returning an empty cart when none exists
func (s *RedisCartStore) Get(ctx context.Context, sessionID uuid.UUID) (*cart.Cart, error) {
	key := s.keyPrefix + sessionID.String()

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.NewCart(), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c := cart.NewCart()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return c, nil
}

// Save persists the cart for a session, refreshing the session TTL
func (s *RedisCartStore) Save(ctx context.Context, sessionID uuid.UUID, c *cart.Cart) error {
	key := s.keyPrefix + sessionID.String()

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the persisted cart for a session
func (s *RedisCartStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	key := s.keyPrefix + sessionID.String()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

// Ensure RedisCartStore implements cart.Store
var _ cart.Store = (*RedisCartStore)(nil)
