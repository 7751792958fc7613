// Package service 提供领域服务层
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
)

var listTracer = otel.Tracer("service.list")

// ListConfig 集合服务配置
//
// 一个集合对应一个 JSON 文档；scope 是划分集合的项目 ID
// （全局集合留空）。
type ListConfig[T entity.Record] struct {
	// Name 实体名，用于错误消息与追踪
	Name string

	// FileName 由 scope 推导文档名
	FileName func(scope string) string

	// CacheKey 由 scope 推导缓存键，缺省等于 FileName
	CacheKey func(scope string) string

	// CacheTTL 缓存时长，零值使用缓存默认值
	CacheTTL time.Duration

	// Less 展示排序比较器，缺省保持存储顺序
	Less func(a, b T) bool

	// Validate 持久化前的实体校验
	Validate func(item T) error

	// SetOrder 写入 1 基连续序号；支持 Reorder 的实体必须提供
	SetOrder func(item T, order int)
}

// ListService 通用集合服务
//
// 每次变更都是对整个集合文档的读-改-写：集合按项目划分、规模很小，
// 以文档为单位持久化换来两端格式完全一致。同一 scope 上不允许并发变更
// 交错（由上层 UI 串行化保证），后写覆盖先写。
type ListService[T entity.Record] struct {
	store *Store
	cfg   ListConfig[T]
}

// NewListService 创建集合服务
func NewListService[T entity.Record](store *Store, cfg ListConfig[T]) *ListService[T] {
	return &ListService[T]{store: store, cfg: cfg}
}

func (s *ListService[T]) fileName(scope string) string {
	return s.cfg.FileName(scope)
}

func (s *ListService[T]) cacheKey(scope string) string {
	if s.cfg.CacheKey != nil {
		return s.cfg.CacheKey(scope)
	}
	return s.cfg.FileName(scope)
}

// load 读取集合的存储视图（未排序）
func (s *ListService[T]) load(ctx context.Context, scope string) ([]T, error) {
	return ReadJSON(ctx, s.store, s.fileName(scope), s.cacheKey(scope), s.cfg.CacheTTL, []T{})
}

// persist 持久化整个集合并使该 scope 缓存失效
func (s *ListService[T]) persist(ctx context.Context, scope string, items []T) error {
	return WriteJSON(ctx, s.store, s.fileName(scope), s.cacheKey(scope), items)
}

// List 返回排序后的集合视图
//
// 返回的是副本：排序只作用于展示视图，存储内的顺序保持不变，
// 调用方的修改也不会污染缓存。
func (s *ListService[T]) List(ctx context.Context, scope string) ([]T, error) {
	ctx, span := listTracer.Start(ctx, "list.List",
		trace.WithAttributes(
			attribute.String("list.entity", s.cfg.Name),
			attribute.String("list.scope", scope),
		))
	defer span.End()

	items, err := s.load(ctx, scope)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	view := make([]T, len(items))
	copy(view, items)
	if s.cfg.Less != nil {
		sort.SliceStable(view, func(i, j int) bool {
			return s.cfg.Less(view[i], view[j])
		})
	}
	return view, nil
}

// GetByID 按 ID 查找，未找到时返回零值（指针实体即 nil）
func (s *ListService[T]) GetByID(ctx context.Context, scope, id string) (T, error) {
	var zero T

	items, err := s.load(ctx, scope)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if item.GetID() == id {
			return item, nil
		}
	}
	return zero, nil
}

// Create 校验并追加新实体，持久化整个集合
//
// ID 为空时分配新 UUID；创建与修改时间戳由这里统一盖章。
func (s *ListService[T]) Create(ctx context.Context, scope string, item T) (T, error) {
	ctx, span := listTracer.Start(ctx, "list.Create",
		trace.WithAttributes(
			attribute.String("list.entity", s.cfg.Name),
			attribute.String("list.scope", scope),
		))
	defer span.End()

	var zero T

	if item.GetID() == "" {
		item.SetID(uuid.New().String())
	}
	item.Stamp(time.Now())

	if s.cfg.Validate != nil {
		if err := s.cfg.Validate(item); err != nil {
			span.RecordError(err)
			return zero, err
		}
	}

	items, err := s.load(ctx, scope)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}
	items = append(items, item)

	if err := s.persist(ctx, scope, items); err != nil {
		span.RecordError(err)
		return zero, err
	}
	return item, nil
}

// Update 对已有实体应用变更，刷新修改时间戳后重新校验并持久化
func (s *ListService[T]) Update(ctx context.Context, scope, id string, apply func(item T) error) (T, error) {
	ctx, span := listTracer.Start(ctx, "list.Update",
		trace.WithAttributes(
			attribute.String("list.entity", s.cfg.Name),
			attribute.String("list.id", id),
		))
	defer span.End()

	var zero T

	items, err := s.load(ctx, scope)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	idx := -1
	for i, item := range items {
		if item.GetID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		err := errors.Newf(errors.CodeItemNotFound, "%s not found: %s", s.cfg.Name, id)
		span.RecordError(err)
		return zero, err
	}

	target := items[idx]
	if apply != nil {
		if err := apply(target); err != nil {
			span.RecordError(err)
			return zero, err
		}
	}
	target.Touch(time.Now())

	if s.cfg.Validate != nil {
		if err := s.cfg.Validate(target); err != nil {
			span.RecordError(err)
			return zero, err
		}
	}

	if err := s.persist(ctx, scope, items); err != nil {
		span.RecordError(err)
		return zero, err
	}
	return target, nil
}

// Delete 从集合中移除实体并持久化，删除不存在的实体视为成功
func (s *ListService[T]) Delete(ctx context.Context, scope, id string) error {
	ctx, span := listTracer.Start(ctx, "list.Delete",
		trace.WithAttributes(
			attribute.String("list.entity", s.cfg.Name),
			attribute.String("list.id", id),
		))
	defer span.End()

	items, err := s.load(ctx, scope)
	if err != nil {
		span.RecordError(err)
		return err
	}

	kept := items[:0:0]
	for _, item := range items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}

	if err := s.persist(ctx, scope, kept); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Replace 整体替换集合内容（级联与重编号用）
func (s *ListService[T]) Replace(ctx context.Context, scope string, items []T) error {
	return s.persist(ctx, scope, items)
}

// Reorder 按给定 ID 顺序赋予 1 基连续序号
//
// 序列中不在集合里的 ID 静默忽略（客户端列表可能已过期）；
// 集合中未出现在序列里的实体按原相对顺序排在其后，
// 保证重排后序号依然连续无空洞。
func (s *ListService[T]) Reorder(ctx context.Context, scope string, ids []string) error {
	ctx, span := listTracer.Start(ctx, "list.Reorder",
		trace.WithAttributes(
			attribute.String("list.entity", s.cfg.Name),
			attribute.Int("list.count", len(ids)),
		))
	defer span.End()

	if s.cfg.SetOrder == nil {
		return errors.Newf(errors.CodeInternalError, "%s does not support reorder", s.cfg.Name)
	}

	items, err := s.load(ctx, scope)
	if err != nil {
		span.RecordError(err)
		return err
	}

	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[item.GetID()] = item
	}

	now := time.Now()
	next := 1
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		s.cfg.SetOrder(item, next)
		item.Touch(now)
		next++
	}
	for _, item := range items {
		if !seen[item.GetID()] {
			s.cfg.SetOrder(item, next)
			item.Touch(now)
			next++
		}
	}

	if err := s.persist(ctx, scope, items); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
