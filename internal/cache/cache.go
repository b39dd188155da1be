// Package cache provides a Redis-backed cache for fetched Solana
// transactions. Confirmed transactions are immutable, so cached entries
// never need invalidation beyond TTL expiry.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"solana-wallet-pnl/internal/solana"
)

// ErrNotFound is returned when a signature is not in the cache.
var ErrNotFound = errors.New("cache: not found")

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	// TTL is the expiry for cached transactions. Zero means no expiry.
	TTL time.Duration
}

// DefaultTTL keeps entries for a day, long enough to cover repeated
// analyses of the same wallet without growing unbounded.
const DefaultTTL = 24 * time.Hour

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// TxCache caches fetched transactions by signature.
type TxCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTxCache creates a transaction cache on top of a Redis client.
func NewTxCache(rdb *redis.Client, ttl time.Duration) *TxCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &TxCache{rdb: rdb, ttl: ttl}
}

func txKey(signature string) string {
	return "tx:" + signature
}

// Get returns the cached transaction for a signature, or ErrNotFound.
func (c *TxCache) Get(ctx context.Context, signature string) (*solana.Transaction, error) {
	data, err := c.rdb.Get(ctx, txKey(signature)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", signature, err)
	}

	var tx solana.Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("unmarshal cached tx %s: %w", signature, err)
	}
	return &tx, nil
}

// Set stores a transaction under its signature.
func (c *TxCache) Set(ctx context.Context, signature string, tx *solana.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("marshal tx %s: %w", signature, err)
	}
	if err := c.rdb.Set(ctx, txKey(signature), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", signature, err)
	}
	return nil
}
