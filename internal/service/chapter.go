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
	"z-novel-studio/pkg/logger"
)

// ChapterPatch 章节可更新字段，nil 表示不变
type ChapterPatch struct {
	Title   *string
	Content *string
	Status  *entity.ChapterStatus
}

// ChapterService 章节服务
//
// 在通用集合服务之上叠加章节特有的规则：
// 字数永远从内容重算、内容增量记入写作统计、
// 删除与重排后在 (projectId, volumeId) 分区内保持序号连续。
type ChapterService struct {
	list  *ListService[*entity.Chapter]
	stats *StatsService
}

// NewChapterService 创建章节服务
func NewChapterService(store *Store, stats *StatsService, cfg *config.Config) *ChapterService {
	list := NewListService(store, ListConfig[*entity.Chapter]{
		Name:     "chapter",
		FileName: document.Chapters,
		CacheTTL: cfg.Cache.ContentTTL,
		Less: func(a, b *entity.Chapter) bool {
			if a.VolumeID != b.VolumeID {
				return a.VolumeID < b.VolumeID
			}
			return a.Order < b.Order
		},
		Validate: func(c *entity.Chapter) error {
			if c.Title == "" {
				return errors.New(errors.CodeValidationFailed, "chapter title is required")
			}
			if c.ProjectID == "" {
				return errors.New(errors.CodeValidationFailed, "chapter project id is required")
			}
			return nil
		},
		SetOrder: func(c *entity.Chapter, order int) {
			c.Order = order
		},
	})
	return &ChapterService{list: list, stats: stats}
}

// List 返回项目的全部章节，按卷与序号排序
func (s *ChapterService) List(ctx context.Context, projectID string) ([]*entity.Chapter, error) {
	return s.list.List(ctx, projectID)
}

// Get 按 ID 查找章节，未找到时返回 nil
func (s *ChapterService) Get(ctx context.Context, projectID, chapterID string) (*entity.Chapter, error) {
	return s.list.GetByID(ctx, projectID, chapterID)
}

// Create 创建新章节，序号排在 (projectId, volumeId) 分区末尾
func (s *ChapterService) Create(ctx context.Context, projectID, volumeID, title, content string) (*entity.Chapter, error) {
	chapters, err := s.list.List(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ch := entity.NewChapter(projectID, volumeID, title)
	ch.Order = partitionSize(chapters, volumeID) + 1
	if content != "" {
		ch.SetContent(content)
	}

	created, err := s.list.Create(ctx, projectID, ch)
	if err != nil {
		return nil, err
	}

	s.recordDelta(ctx, projectID, created.WordCount)
	return created, nil
}

// Update 应用补丁并重算字数
//
// 内容变化时把正向字数增量记入当日账本；统计写入失败只记日志，
// 章节本身的保存不受影响。
func (s *ChapterService) Update(ctx context.Context, projectID, chapterID string, patch ChapterPatch) (*entity.Chapter, error) {
	delta := 0
	updated, err := s.list.Update(ctx, projectID, chapterID, func(ch *entity.Chapter) error {
		if patch.Title != nil {
			ch.Title = *patch.Title
		}
		if patch.Status != nil {
			ch.Status = *patch.Status
		}
		if patch.Content != nil {
			before := ch.WordCount
			ch.SetContent(*patch.Content)
			delta = ch.WordCount - before
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordDelta(ctx, projectID, delta)
	return updated, nil
}

// Delete 删除章节并在其所在分区内重新编号
func (s *ChapterService) Delete(ctx context.Context, projectID, chapterID string) error {
	chapters, err := s.list.List(ctx, projectID)
	if err != nil {
		return err
	}

	var target *entity.Chapter
	kept := make([]*entity.Chapter, 0, len(chapters))
	for _, ch := range chapters {
		if ch.ID == chapterID {
			target = ch
			continue
		}
		kept = append(kept, ch)
	}
	if target == nil {
		return nil
	}

	renumberPartition(kept, target.VolumeID)
	return s.list.Replace(ctx, projectID, kept)
}

// Reorder 在指定卷分区内按给定顺序重新编号
func (s *ChapterService) Reorder(ctx context.Context, projectID, volumeID string, chapterIDs []string) error {
	chapters, err := s.list.List(ctx, projectID)
	if err != nil {
		return err
	}

	position := make(map[string]int, len(chapterIDs))
	for i, id := range chapterIDs {
		position[id] = i
	}

	partition := make([]*entity.Chapter, 0, len(chapters))
	for _, ch := range chapters {
		if ch.VolumeID == volumeID {
			partition = append(partition, ch)
		}
	}
	// 序列中未提及的章节保持原相对顺序排在其后
	sort.SliceStable(partition, func(i, j int) bool {
		pi, iok := position[partition[i].ID]
		pj, jok := position[partition[j].ID]
		if iok && jok {
			return pi < pj
		}
		return iok && !jok
	})

	now := time.Now()
	for i, ch := range partition {
		if ch.Order != i+1 {
			ch.Order = i + 1
			ch.Touch(now)
		}
	}
	return s.list.Replace(ctx, projectID, chapters)
}

// MoveToVolume 把章节移入另一卷，两个分区各自重新编号
func (s *ChapterService) MoveToVolume(ctx context.Context, projectID, chapterID, volumeID string) (*entity.Chapter, error) {
	chapters, err := s.list.List(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var target *entity.Chapter
	for _, ch := range chapters {
		if ch.ID == chapterID {
			target = ch
			break
		}
	}
	if target == nil {
		return nil, errors.New(errors.CodeChapterNotFound, "chapter not found").WithDetail(chapterID)
	}
	if target.VolumeID == volumeID {
		return target, nil
	}

	from := target.VolumeID
	target.VolumeID = volumeID
	target.Order = partitionSize(chapters, volumeID)
	target.Touch(time.Now())

	renumberPartition(chapters, from)
	if err := s.list.Replace(ctx, projectID, chapters); err != nil {
		return nil, err
	}
	return target, nil
}

// TotalWords 汇总项目全部章节的字数
func (s *ChapterService) TotalWords(ctx context.Context, projectID string) (int, error) {
	chapters, err := s.list.List(ctx, projectID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, ch := range chapters {
		total += ch.WordCount
	}
	return total, nil
}

func (s *ChapterService) recordDelta(ctx context.Context, projectID string, delta int) {
	if delta <= 0 {
		return
	}
	if err := s.stats.RecordDelta(ctx, projectID, delta); err != nil {
		logger.Warn(ctx, "failed to record writing stats",
			"project_id", projectID, "delta", delta, "error", err.Error())
	}
}

// partitionSize 统计指定卷分区内的章节数
func partitionSize(chapters []*entity.Chapter, volumeID string) int {
	n := 0
	for _, ch := range chapters {
		if ch.VolumeID == volumeID {
			n++
		}
	}
	return n
}

// renumberPartition 在指定卷分区内按当前顺序重赋 1 基连续序号
func renumberPartition(chapters []*entity.Chapter, volumeID string) {
	partition := make([]*entity.Chapter, 0, len(chapters))
	for _, ch := range chapters {
		if ch.VolumeID == volumeID {
			partition = append(partition, ch)
		}
	}
	sort.SliceStable(partition, func(i, j int) bool {
		return partition[i].Order < partition[j].Order
	})

	now := time.Now()
	for i, ch := range partition {
		if ch.Order != i+1 {
			ch.Order = i + 1
			ch.Touch(now)
		}
	}
}
