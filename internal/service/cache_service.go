package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheService wraps the optional Redis-backed response cache. A nil
// receiver or a nil client disables caching without branching at call
// sites.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCacheService wires the cache. Pass a nil client to disable.
func NewCacheService(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CacheService{client: client, ttl: ttl, logger: logger}
}

// Enabled reports whether a cache backend is attached.
func (s *CacheService) Enabled() bool {
	return s != nil && s.client != nil
}

// TimetableKey builds a revision-versioned cache key. Bumping the store
// revision on any mutation invalidates every older key without explicit
// deletes.
func (s *CacheService) TimetableKey(kind, ownerID string, revision uint64) string {
	return fmt.Sprintf("timetable:%s:%s:rev%d", kind, ownerID, revision)
}

// GetJSON loads and decodes a cached value. A cache miss returns false
// with no error; backend failures are logged and treated as misses.
func (s *CacheService) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetJSON encodes and stores a value under the configured TTL. Failures
// are logged; the response path never depends on the cache.
func (s *CacheService) SetJSON(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
