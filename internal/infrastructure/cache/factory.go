package cache

import (
	"fmt"
	"time"

	"github.com/tommyfx/storefront/internal/domain/cart"
	"github.com/tommyfx/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// CartStoreFactory creates cart stores based on configuration
type CartStoreFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CartStoreFactoryOption is a functional option for configuring the factory
type CartStoreFactoryOption func(*CartStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory store
// when Redis is unavailable. Default is true (allow fallback).
func WithInMemoryFallback(allow bool) CartStoreFactoryOption {
	return func(f *CartStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCartStoreFactory creates a new factory
func NewCartStoreFactory(cfg config.RedisConfig, ttl time.Duration, opts ...CartStoreFactoryOption) *CartStoreFactory {
	f := &CartStoreFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Create creates a Redis-backed cart store, falling back to an
// in-memory store when Redis is unreachable and fallback is allowed.
// An in-memory cart store does not survive a process restart, so the
// fallback is logged loudly.
func (f *CartStoreFactory) Create() (cart.Store, error) {
	store, err := NewRedisCartStore(&f.redisConfig, f.ttl)
	if err == nil {
		f.logger.Info("Using Redis cart store",
			zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("failed to create Redis cart store: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cart store",
		zap.String("addr", f.redisConfig.Addr()),
		zap.Error(err))
	return NewInMemoryCartStore(f.ttl), nil
}
