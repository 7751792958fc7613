// Package storage 提供统一的文档存储适配器
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"z-novel-studio/internal/config"
	"z-novel-studio/pkg/metrics"
)

var redisTracer = otel.Tracer("storage.redis")

// RedisAdapter 键值后端
//
// 所有键统一挂在固定命名空间前缀下；List 通过 SCAN 按前缀过滤，
// Mkdir 对非层级后端是 no-op。
type RedisAdapter struct {
	rdb       *redis.Client
	namespace string
}

// NewRedisAdapter 创建键值后端并验证连接
func NewRedisAdapter(cfg *config.RedisConfig, namespace string) (*RedisAdapter, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// 验证连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	if namespace == "" {
		namespace = "z-novel-studio"
	}

	return &RedisAdapter{
		rdb:       rdb,
		namespace: namespace,
	}, nil
}

// Backend 返回后端标识
func (a *RedisAdapter) Backend() string {
	return "redis"
}

// key 文档名加命名空间前缀
func (a *RedisAdapter) key(path string) string {
	return a.namespace + ":" + path
}

// Read 读取文档内容
func (a *RedisAdapter) Read(ctx context.Context, path string) (string, error) {
	ctx, span := redisTracer.Start(ctx, "storage.redis.Read",
		trace.WithAttributes(attribute.String("storage.path", path)))
	defer span.End()
	start := time.Now()

	val, err := a.rdb.Get(ctx, a.key(path)).Result()
	if err != nil {
		if err == redis.Nil {
			observe("redis", "read", start, ErrNotFound)
			return "", ErrNotFound
		}
		span.RecordError(err)
		observe("redis", "read", start, err)
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	observe("redis", "read", start, nil)
	return val, nil
}

// Write 写入文档内容
func (a *RedisAdapter) Write(ctx context.Context, path string, data string) error {
	ctx, span := redisTracer.Start(ctx, "storage.redis.Write",
		trace.WithAttributes(
			attribute.String("storage.path", path),
			attribute.Int("storage.size", len(data)),
		))
	defer span.End()
	start := time.Now()

	if err := a.rdb.Set(ctx, a.key(path), data, 0).Err(); err != nil {
		span.RecordError(err)
		observe("redis", "write", start, err)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	metrics.StorageDocumentSize.WithLabelValues("redis").Observe(float64(len(data)))
	observe("redis", "write", start, nil)
	return nil
}

// Delete 删除文档
func (a *RedisAdapter) Delete(ctx context.Context, path string) error {
	ctx, span := redisTracer.Start(ctx, "storage.redis.Delete",
		trace.WithAttributes(attribute.String("storage.path", path)))
	defer span.End()
	start := time.Now()

	if err := a.rdb.Del(ctx, a.key(path)).Err(); err != nil {
		span.RecordError(err)
		observe("redis", "delete", start, err)
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	observe("redis", "delete", start, nil)
	return nil
}

// Exists 检查文档是否存在
func (a *RedisAdapter) Exists(ctx context.Context, path string) (bool, error) {
	n, err := a.rdb.Exists(ctx, a.key(path)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	return n > 0, nil
}

// List 列出指定前缀的文档名
func (a *RedisAdapter) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, span := redisTracer.Start(ctx, "storage.redis.List",
		trace.WithAttributes(attribute.String("storage.prefix", prefix)))
	defer span.End()
	start := time.Now()

	pattern := a.key(prefix) + "*"
	iter := a.rdb.Scan(ctx, 0, pattern, 0).Iterator()

	var names []string
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), a.namespace+":"))
	}
	if err := iter.Err(); err != nil {
		span.RecordError(err)
		observe("redis", "list", start, err)
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}

	sort.Strings(names)
	observe("redis", "list", start, nil)
	return names, nil
}

// Mkdir 非层级后端，no-op
func (a *RedisAdapter) Mkdir(ctx context.Context, path string) error {
	return nil
}

// Close 关闭连接
func (a *RedisAdapter) Close() error {
	return a.rdb.Close()
}
