package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airbooking-storefront/config"
	"github.com/redis/go-redis/v9"
)

// RedisSessions hands out one credential store per browser session. The storefront
// server is shared by many browsers, each needing its own "user_token".
type RedisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessions(cfg config.RedisConfig, ttl time.Duration) *RedisSessions {
	return &RedisSessions{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func NewRedisSessionsFromClient(client *redis.Client, ttl time.Duration) *RedisSessions {
	return &RedisSessions{client: client, ttl: ttl}
}

func (r *RedisSessions) ForSession(id string) Store {
	return &RedisStore{client: r.client, key: tokenKey(id), ttl: r.ttl}
}

func (r *RedisSessions) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisSessions) Close() error {
	return r.client.Close()
}

type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (s *RedisStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("read credential: %w", err)
	}
	if s.ttl > 0 {
		// sliding expiry: an active browser keeps its login
		_ = s.client.Expire(ctx, s.key, s.ttl).Err()
	}
	return token, nil
}

func (s *RedisStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.client.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func tokenKey(sessionID string) string {
	return fmt.Sprintf("storefront:session:%s:%s", sessionID, TokenKey)
}

var _ Store = (*RedisStore)(nil)
