// Package service 提供领域服务层
package service

import (
	"context"

	"z-novel-studio/internal/config"
	"z-novel-studio/internal/domain/document"
	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
	"z-novel-studio/pkg/logger"
)

// WorldPatch 世界观条目可更新字段，nil 表示不变
type WorldPatch struct {
	Name        *string
	Category    *string
	Description *string
	Content     *string
	Tags        *[]string
	Status      *entity.WorldItemStatus
}

// WorldService 世界观服务
//
// 历史版本把集合存在 world_items 命名的文档里；任何操作前
// 先做一次惰性迁移，把旧文档内容搬到当前命名下，之后只写新文档。
type WorldService struct {
	store *Store
	list  *ListService[*entity.WorldItem]
}

// NewWorldService 创建世界观服务
func NewWorldService(store *Store, cfg *config.Config) *WorldService {
	list := NewListService(store, ListConfig[*entity.WorldItem]{
		Name:     "world item",
		FileName: document.World,
		CacheTTL: cfg.Cache.DefaultTTL,
		Less: func(a, b *entity.WorldItem) bool {
			if a.Category != b.Category {
				return a.Category < b.Category
			}
			return a.CreatedAt.Before(b.CreatedAt)
		},
		Validate: func(w *entity.WorldItem) error {
			if w.Name == "" {
				return errors.New(errors.CodeValidationFailed, "world item name is required")
			}
			return nil
		},
	})
	return &WorldService{store: store, list: list}
}

// ensureMigrated 若当前文档缺失而旧命名文档存在，则把旧内容迁移过来
func (s *WorldService) ensureMigrated(ctx context.Context, projectID string) error {
	current := document.World(projectID)
	ok, err := s.store.Exists(ctx, current)
	if err != nil || ok {
		return err
	}

	legacy := document.WorldLegacy(projectID)
	ok, err = s.store.Exists(ctx, legacy)
	if err != nil || !ok {
		return err
	}

	raw, err := s.store.ReadText(ctx, legacy)
	if err != nil {
		return err
	}
	if err := s.store.WriteText(ctx, current, raw); err != nil {
		return err
	}
	logger.Info(ctx, "migrated legacy world document",
		"project_id", projectID, "from", legacy, "to", current)
	return nil
}

// List 返回项目的全部世界观条目，按分类与创建时间排序
func (s *WorldService) List(ctx context.Context, projectID string) ([]*entity.WorldItem, error) {
	if err := s.ensureMigrated(ctx, projectID); err != nil {
		return nil, err
	}
	return s.list.List(ctx, projectID)
}

// Get 按 ID 查找条目，未找到时返回 nil
func (s *WorldService) Get(ctx context.Context, projectID, itemID string) (*entity.WorldItem, error) {
	if err := s.ensureMigrated(ctx, projectID); err != nil {
		return nil, err
	}
	return s.list.GetByID(ctx, projectID, itemID)
}

// ListByCategory 返回指定分类下的条目
func (s *WorldService) ListByCategory(ctx context.Context, projectID, category string) ([]*entity.WorldItem, error) {
	items, err := s.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	matched := make([]*entity.WorldItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// Create 创建新条目
func (s *WorldService) Create(ctx context.Context, projectID, name, category string) (*entity.WorldItem, error) {
	if err := s.ensureMigrated(ctx, projectID); err != nil {
		return nil, err
	}
	return s.list.Create(ctx, projectID, entity.NewWorldItem(projectID, name, category))
}

// Update 应用补丁
func (s *WorldService) Update(ctx context.Context, projectID, itemID string, patch WorldPatch) (*entity.WorldItem, error) {
	if err := s.ensureMigrated(ctx, projectID); err != nil {
		return nil, err
	}
	return s.list.Update(ctx, projectID, itemID, func(w *entity.WorldItem) error {
		if patch.Name != nil {
			w.Name = *patch.Name
		}
		if patch.Category != nil {
			w.Category = *patch.Category
		}
		if patch.Description != nil {
			w.Description = *patch.Description
		}
		if patch.Content != nil {
			w.Content = *patch.Content
		}
		if patch.Tags != nil {
			w.Tags = *patch.Tags
		}
		if patch.Status != nil {
			w.Status = *patch.Status
		}
		return nil
	})
}

// Delete 删除条目，删除不存在的条目视为成功
func (s *WorldService) Delete(ctx context.Context, projectID, itemID string) error {
	if err := s.ensureMigrated(ctx, projectID); err != nil {
		return err
	}
	return s.list.Delete(ctx, projectID, itemID)
}
