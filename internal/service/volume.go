// Package service 提供领域服务层
package service

import (
	"context"
	"sort"
	"time"

	"z-novel-studio/internal/config"
	"z-novel-studio/internal/domain/document"
	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
)

// VolumePatch 卷可更新字段，nil 表示不变
type VolumePatch struct {
	Title  *string
	Status *entity.VolumeStatus
}

// VolumeService 卷服务
type VolumeService struct {
	list     *ListService[*entity.Volume]
	chapters *ListService[*entity.Chapter]
}

// NewVolumeService 创建卷服务
//
// 直接持有章节集合服务：删除卷要级联删除卷下章节，
// 这一步绕过章节服务以避免逐章触发统计与重编号。
func NewVolumeService(store *Store, chapters *ChapterService, cfg *config.Config) *VolumeService {
	list := NewListService(store, ListConfig[*entity.Volume]{
		Name:     "volume",
		FileName: document.Volumes,
		CacheTTL: cfg.Cache.DefaultTTL,
		Less: func(a, b *entity.Volume) bool {
			return a.Order < b.Order
		},
		Validate: func(v *entity.Volume) error {
			if v.Title == "" {
				return errors.New(errors.CodeValidationFailed, "volume title is required")
			}
			if v.ProjectID == "" {
				return errors.New(errors.CodeValidationFailed, "volume project id is required")
			}
			return nil
		},
		SetOrder: func(v *entity.Volume, order int) {
			v.Order = order
		},
	})
	return &VolumeService{list: list, chapters: chapters.list}
}

// List 返回项目的全部卷，按序号排序
func (s *VolumeService) List(ctx context.Context, projectID string) ([]*entity.Volume, error) {
	return s.list.List(ctx, projectID)
}

// Get 按 ID 查找卷，未找到时返回 nil
func (s *VolumeService) Get(ctx context.Context, projectID, volumeID string) (*entity.Volume, error) {
	return s.list.GetByID(ctx, projectID, volumeID)
}

// Create 创建新卷，序号排在末尾
func (s *VolumeService) Create(ctx context.Context, projectID, title string) (*entity.Volume, error) {
	volumes, err := s.list.List(ctx, projectID)
	if err != nil {
		return nil, err
	}

	v := entity.NewVolume(projectID, title)
	v.Order = len(volumes) + 1
	return s.list.Create(ctx, projectID, v)
}

// Update 应用补丁
func (s *VolumeService) Update(ctx context.Context, projectID, volumeID string, patch VolumePatch) (*entity.Volume, error) {
	return s.list.Update(ctx, projectID, volumeID, func(v *entity.Volume) error {
		if patch.Title != nil {
			v.Title = *patch.Title
		}
		if patch.Status != nil {
			v.Status = *patch.Status
		}
		return nil
	})
}

// Delete 删除卷并级联删除卷下全部章节，剩余卷重新编号
func (s *VolumeService) Delete(ctx context.Context, projectID, volumeID string) error {
	chapters, err := s.chapters.List(ctx, projectID)
	if err != nil {
		return err
	}
	kept := make([]*entity.Chapter, 0, len(chapters))
	removed := false
	for _, ch := range chapters {
		if ch.VolumeID == volumeID {
			removed = true
			continue
		}
		kept = append(kept, ch)
	}
	if removed {
		if err := s.chapters.Replace(ctx, projectID, kept); err != nil {
			return err
		}
	}

	volumes, err := s.list.List(ctx, projectID)
	if err != nil {
		return err
	}
	keptVolumes := make([]*entity.Volume, 0, len(volumes))
	for _, v := range volumes {
		if v.ID != volumeID {
			keptVolumes = append(keptVolumes, v)
		}
	}
	if len(keptVolumes) == len(volumes) {
		return nil
	}

	sort.SliceStable(keptVolumes, func(i, j int) bool {
		return keptVolumes[i].Order < keptVolumes[j].Order
	})
	now := time.Now()
	for i, v := range keptVolumes {
		if v.Order != i+1 {
			v.Order = i + 1
			v.Touch(now)
		}
	}
	return s.list.Replace(ctx, projectID, keptVolumes)
}

// Reorder 按给定 ID 顺序重新编号
func (s *VolumeService) Reorder(ctx context.Context, projectID string, volumeIDs []string) error {
	return s.list.Reorder(ctx, projectID, volumeIDs)
}
