package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"socialnet/internal/config"
)

const blacklistPrefix = "auth:blacklist:"

// TokenBlacklist remembers access tokens that were logged out before expiry.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	Close() error
}

type RedisBlacklist struct {
	client *redis.Client
}

// NewRedisClient connects to Redis and pings it once.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 10,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("не удалось подключиться к Redis %s: %w", cfg.Addr, err)
	}

	return client, nil
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

// NewBlacklist returns a Redis-backed blacklist when REDIS_ADDR is set and a
// no-op one otherwise.
func NewBlacklist(ctx context.Context, cfg config.Redis) (TokenBlacklist, error) {
	if cfg.Addr == "" {
		log.Println("REDIS_ADDR не задан, чёрный список токенов отключен")
		return NopBlacklist{}, nil
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.Printf("Redis подключен: %s", cfg.Addr)
	return NewRedisBlacklist(client), nil
}

func blacklistKey(jti string) string {
	return blacklistPrefix + jti
}

func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := b.client.Set(ctx, blacklistKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи токена в чёрный список: %w", err)
	}

	return nil
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("ошибка проверки чёрного списка: %w", err)
	}

	return n > 0, nil
}

func (b *RedisBlacklist) Close() error {
	return b.client.Close()
}

type NopBlacklist struct{}

func (NopBlacklist) Revoke(context.Context, string, time.Duration) error { return nil }

func (NopBlacklist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func (NopBlacklist) Close() error { return nil }
