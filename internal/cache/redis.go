package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bobmcallan/invest-portal/internal/common"
)

const scanBatch = 200

// RedisStore is a QueryStore backed by Redis so several portal instances
// share one cache. Every key is namespaced with prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *common.Logger
}

// NewRedisStore parses url and connects. The connection is not verified;
// call Ping before relying on it.
func NewRedisStore(url, prefix string, logger *common.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{
		client: redis.NewClient(opt),
		prefix: prefix,
		logger: logger,
	}, nil
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get returns a stored value. Errors other than a missing key are logged
// and reported as a miss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Str("key", key).Str("error", err.Error()).Msg("redis get failed")
		}
		return nil, false
	}
	return b, true
}

// Set stores value with an expiry of ttl.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		s.logger.Warn().Str("key", key).Str("error", err.Error()).Msg("redis set failed")
	}
}

// InvalidatePrefix deletes every key under prefix using SCAN so large
// keyspaces are never blocked.
func (s *RedisStore) InvalidatePrefix(ctx context.Context, prefix string) {
	match := s.prefix + prefix + "*"
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			s.logger.Warn().Str("prefix", prefix).Str("error", err.Error()).Msg("redis scan failed")
			return
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				s.logger.Warn().Str("prefix", prefix).Str("error", err.Error()).Msg("redis del failed")
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

func (s *RedisStore) Backend() string { return "redis" }

func (s *RedisStore) Close() error {
	return s.client.Close()
}
