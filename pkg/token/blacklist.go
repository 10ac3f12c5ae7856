package token

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Blacklist 刷新令牌黑名单
type Blacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisBlacklist Redis 实现，key 按令牌 jti，过期时间与令牌一致
type RedisBlacklist struct {
	client *redis.Client
}

// NewRedisBlacklist 连接 Redis 并创建黑名单
func NewRedisBlacklist(ctx context.Context, addr, password string) (*RedisBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	// 测试连接
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisBlacklist{client: client}, nil
}

// Revoke 将 jti 加入黑名单，ttl 之后自动过期
func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// 令牌已过期，无需入黑名单
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked 判断 jti 是否在黑名单中
func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := b.client.Get(ctx, blacklistKey(jti)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check token blacklist: %w", err)
	}
	return true, nil
}

// Close 关闭 Redis 连接
func (b *RedisBlacklist) Close() error {
	return b.client.Close()
}

func blacklistKey(jti string) string {
	return "token:blacklist:" + jti
}
