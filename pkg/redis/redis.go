package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yuanqiamanman-1/6667-sub001/config"
)

// Client Redis 客户端封装
// 当前用于 Token 黑名单、限流窗口和紧急事件角标缓存
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 滑动窗口限流 ──

// CheckRateLimit 固定窗口计数限流，窗口内超过 limit 次返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// ── 紧急事件角标缓存 ──

const urgentBadgeKey = "system:events:urgent_open_count"

// GetUrgentBadge 读取未关闭紧急事件数量缓存，未命中返回 (-1, nil)
func (c *Client) GetUrgentBadge(ctx context.Context) (int64, error) {
	val, err := c.rdb.Get(ctx, urgentBadgeKey).Result()
	if err == goredis.Nil {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return -1, err
	}
	return n, nil
}

// SetUrgentBadge 写入角标缓存，短 TTL 容忍轻微过期
func (c *Client) SetUrgentBadge(ctx context.Context, count int64, ttl time.Duration) error {
	return c.rdb.Set(ctx, urgentBadgeKey, strconv.FormatInt(count, 10), ttl).Err()
}

// InvalidateUrgentBadge 事件写操作后清除角标缓存
func (c *Client) InvalidateUrgentBadge(ctx context.Context) error {
	return c.rdb.Del(ctx, urgentBadgeKey).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
