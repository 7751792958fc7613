// Package service 提供领域服务层
//
// 服务层在存储适配器之上叠加缓存与失效纪律，
// 所有领域实体经由这里获得统一的 CRUD 生命周期。
package service

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"z-novel-studio/internal/infrastructure/cache"
	"z-novel-studio/internal/infrastructure/storage"
	"z-novel-studio/pkg/errors"
	"z-novel-studio/pkg/logger"
)

var storeTracer = otel.Tracer("service.store")

// Store 文档存储服务
//
// 组合适配器与缓存，向上提供"带默认值读 JSON / 写 JSON"原语。
// 缺失文档与解析失败都回退默认值：新项目的文档本就不存在，
// 这是正常状态而非错误。
type Store struct {
	adapter storage.Adapter
	cache   *cache.Cache
	group   singleflight.Group
}

// NewStore 创建文档存储服务
func NewStore(adapter storage.Adapter, c *cache.Cache) *Store {
	return &Store{
		adapter: adapter,
		cache:   c,
	}
}

// Adapter 返回底层适配器
func (s *Store) Adapter() storage.Adapter {
	return s.adapter
}

// Cache 返回缓存层
func (s *Store) Cache() *cache.Cache {
	return s.cache
}

// cloneJSON 经序列化往返深拷贝值，无法往返的值原样返回
func cloneJSON[T any](v T) T {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

// ReadJSON 读取 JSON 文档，缺失或解析失败时返回默认值
//
// 命中缓存直接返回；未命中经 singleflight 合并并发加载，
// 解码结果以 cacheKey 为键、ttl 为时长写回缓存（文档缺失时
// 缓存默认值，缺失文档的反复读取同样不穿透到适配器）。
//
// 返回值永远是独立副本：调用方在副本上变更，校验失败或
// 写入失败时缓存里仍是持久化过的状态。
func ReadJSON[T any](ctx context.Context, s *Store, path, cacheKey string, ttl time.Duration, def T) (T, error) {
	ctx, span := storeTracer.Start(ctx, "store.ReadJSON",
		trace.WithAttributes(attribute.String("store.path", path)))
	defer span.End()

	if cacheKey == "" {
		cacheKey = path
	}

	if v, ok := s.cache.Get(cacheKey); ok {
		if typed, ok := v.(T); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cloneJSON(typed), nil
		}
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	v, err, shared := s.group.Do(cacheKey, func() (any, error) {
		// 二次检查缓存（可能已被并发请求填充）
		if v, ok := s.cache.Get(cacheKey); ok {
			if typed, ok := v.(T); ok {
				return typed, nil
			}
		}

		raw, err := s.adapter.Read(ctx, path)
		if err != nil {
			if storage.IsNotFound(err) {
				s.cache.SetTTL(cacheKey, def, ttl)
				return def, nil
			}
			return nil, errors.Wrap(err, errors.CodeStorageError, "failed to read "+path)
		}

		var data T
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			// 损坏的文档按缺失处理，回退默认值而不是让整个操作失败
			logger.Warn(ctx, "document unmarshal failed, falling back to default",
				"path", path, "error", err.Error())
			return def, nil
		}

		s.cache.SetTTL(cacheKey, data, ttl)
		return data, nil
	})
	span.SetAttributes(attribute.Bool("cache.shared", shared))

	if err != nil {
		span.RecordError(err)
		return def, err
	}
	return cloneJSON(v.(T)), nil
}

// WriteJSON 序列化并写入 JSON 文档
//
// 固定两空格缩进，保持与桌面端生成的文档逐字节一致。
// 写入成功后使该键缓存失效；写入失败时缓存保持原样，
// 重试读取仍能看到一致的旧状态。
func WriteJSON[T any](ctx context.Context, s *Store, path, cacheKey string, data T) error {
	ctx, span := storeTracer.Start(ctx, "store.WriteJSON",
		trace.WithAttributes(attribute.String("store.path", path)))
	defer span.End()

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, errors.CodeStorageError, "failed to encode "+path)
	}

	if err := s.adapter.Write(ctx, path, string(raw)); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, errors.CodeStorageError, "failed to save "+path)
	}

	if cacheKey == "" {
		cacheKey = path
	}
	s.cache.Delete(cacheKey)
	return nil
}

// ReadText 读取原始文本文档（封面等非 JSON 内容）
func (s *Store) ReadText(ctx context.Context, path string) (string, error) {
	raw, err := s.adapter.Read(ctx, path)
	if err != nil {
		if storage.IsNotFound(err) {
			return "", err
		}
		return "", errors.Wrap(err, errors.CodeStorageError, "failed to read "+path)
	}
	return raw, nil
}

// WriteText 写入原始文本文档
func (s *Store) WriteText(ctx context.Context, path, data string) error {
	if err := s.adapter.Write(ctx, path, data); err != nil {
		return errors.Wrap(err, errors.CodeStorageError, "failed to save "+path)
	}
	s.cache.Delete(path)
	return nil
}

// Delete 删除文档并使该键缓存失效
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := s.adapter.Delete(ctx, path); err != nil {
		return errors.Wrap(err, errors.CodeStorageError, "failed to delete "+path)
	}
	s.cache.Delete(path)
	return nil
}

// Exists 检查文档是否存在
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	return s.adapter.Exists(ctx, path)
}

// List 列出指定前缀的文档名
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	names, err := s.adapter.List(ctx, prefix)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStorageError, "failed to list documents")
	}
	return names, nil
}

// Invalidate 按子串模式使缓存失效（项目 ID 即可命中该项目全部键）
func (s *Store) Invalidate(pattern string) {
	s.cache.Invalidate(pattern)
}
