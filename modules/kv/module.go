package kv

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Module provides the key-value store as a mono module.
type Module struct {
	store     Store
	redis     *RedisStore
	redisAddr string
	prefix    string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a Redis-backed kv module. An empty redisAddr selects
// the in-memory store, which keeps the rest of the application unchanged.
// The store is built here so dependent modules can be wired before the
// application starts; Start only verifies the connection.
func NewModule(redisAddr, prefix string) *Module {
	m := &Module{
		redisAddr: redisAddr,
		prefix:    prefix,
	}

	if redisAddr == "" {
		m.store = NewMemoryStore()
		return m
	}

	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	m.redis = NewRedisStore(client, prefix)
	m.store = m.redis
	return m
}

// Name returns the module name.
func (m *Module) Name() string {
	return "kv"
}

// Start verifies the Redis connection when one is configured.
func (m *Module) Start(ctx context.Context) error {
	if m.redis == nil {
		log.Println("[kv] Module started (in-memory store)")
		return nil
	}

	if err := m.redis.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", m.redisAddr, err)
	}

	log.Printf("[kv] Module started (redis: %s, prefix: %q)", m.redisAddr, m.prefix)
	return nil
}

// Stop closes the Redis connection if one is open.
func (m *Module) Stop(_ context.Context) error {
	if m.redis != nil {
		if err := m.redis.Close(); err != nil {
			return err
		}
	}
	log.Println("[kv] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "store not initialized",
		}
	}

	if m.redis != nil {
		if err := m.redis.Ping(ctx); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("redis ping failed: %v", err),
			}
		}
		stats := m.redis.GetStats()
		return mono.HealthStatus{
			Healthy: true,
			Message: "operational",
			Details: map[string]any{
				"backend": "redis",
				"hits":    stats.Hits,
				"misses":  stats.Misses,
				"errors":  stats.Errors,
			},
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"backend": "memory",
		},
	}
}

// GetStore returns the active store for wiring into dependent modules.
func (m *Module) GetStore() Store {
	return m.store
}
