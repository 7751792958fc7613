// Package service 提供领域服务层
package service

import (
	"context"

	"z-novel-studio/internal/config"
	"z-novel-studio/internal/domain/document"
	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
)

// OutlinePatch 大纲节点可更新字段，nil 表示不变
type OutlinePatch struct {
	Title    *string
	Type     *entity.OutlineType
	Status   *entity.OutlineStatus
	Content  *string
	ParentID *string
}

// OutlineService 大纲服务
//
// 大纲是以 parentId 连接的扁平树，删除节点时级联删除整棵子树。
type OutlineService struct {
	list *ListService[*entity.OutlineItem]
}

// NewOutlineService 创建大纲服务
func NewOutlineService(store *Store, cfg *config.Config) *OutlineService {
	list := NewListService(store, ListConfig[*entity.OutlineItem]{
		Name:     "outline",
		FileName: document.Outlines,
		CacheTTL: cfg.Cache.DefaultTTL,
		Less: func(a, b *entity.OutlineItem) bool {
			if a.ParentID != b.ParentID {
				return a.ParentID < b.ParentID
			}
			return a.Order < b.Order
		},
		Validate: func(o *entity.OutlineItem) error {
			if o.Title == "" {
				return errors.New(errors.CodeValidationFailed, "outline title is required")
			}
			switch o.Type {
			case entity.OutlineTypeMain, entity.OutlineTypeDetailed:
			default:
				return errors.Newf(errors.CodeValidationFailed, "invalid outline type: %s", o.Type)
			}
			return nil
		},
		SetOrder: func(o *entity.OutlineItem, order int) {
			o.Order = order
		},
	})
	return &OutlineService{list: list}
}

// List 返回项目的全部大纲节点
func (s *OutlineService) List(ctx context.Context, projectID string) ([]*entity.OutlineItem, error) {
	return s.list.List(ctx, projectID)
}

// Get 按 ID 查找节点，未找到时返回 nil
func (s *OutlineService) Get(ctx context.Context, projectID, itemID string) (*entity.OutlineItem, error) {
	return s.list.GetByID(ctx, projectID, itemID)
}

// Create 创建新节点，序号排在同父节点的兄弟末尾
func (s *OutlineService) Create(ctx context.Context, projectID, title string, typ entity.OutlineType, parentID string) (*entity.OutlineItem, error) {
	items, err := s.list.List(ctx, projectID)
	if err != nil {
		return nil, err
	}

	o := entity.NewOutlineItem(projectID, title, typ)
	o.ParentID = parentID
	siblings := 0
	for _, item := range items {
		if item.ParentID == parentID {
			siblings++
		}
	}
	o.Order = siblings + 1
	return s.list.Create(ctx, projectID, o)
}

// Update 应用补丁
func (s *OutlineService) Update(ctx context.Context, projectID, itemID string, patch OutlinePatch) (*entity.OutlineItem, error) {
	return s.list.Update(ctx, projectID, itemID, func(o *entity.OutlineItem) error {
		if patch.Title != nil {
			o.Title = *patch.Title
		}
		if patch.Type != nil {
			o.Type = *patch.Type
		}
		if patch.Status != nil {
			o.Status = *patch.Status
		}
		if patch.Content != nil {
			o.Content = *patch.Content
		}
		if patch.ParentID != nil {
			if *patch.ParentID == o.ID {
				return errors.New(errors.CodeValidationFailed, "outline item cannot be its own parent")
			}
			o.ParentID = *patch.ParentID
		}
		return nil
	})
}

// Delete 删除节点及其全部后代，单次持久化
//
// 以不动点方式收敛删除集合：反复吸收父节点已在集合中的节点，
// 直到一轮没有新增，多层子树与乱序存储都能覆盖。
func (s *OutlineService) Delete(ctx context.Context, projectID, itemID string) error {
	items, err := s.list.List(ctx, projectID)
	if err != nil {
		return err
	}

	doomed := map[string]bool{itemID: true}
	for {
		grew := false
		for _, item := range items {
			if doomed[item.ID] {
				continue
			}
			if item.ParentID != "" && doomed[item.ParentID] {
				doomed[item.ID] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	kept := make([]*entity.OutlineItem, 0, len(items))
	for _, item := range items {
		if !doomed[item.ID] {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.list.Replace(ctx, projectID, kept)
}

// Reorder 按给定 ID 顺序重新编号
func (s *OutlineService) Reorder(ctx context.Context, projectID string, itemIDs []string) error {
	return s.list.Reorder(ctx, projectID, itemIDs)
}
