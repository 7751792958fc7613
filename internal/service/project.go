// Package service 提供领域服务层
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"z-novel-studio/internal/config"
	"z-novel-studio/internal/domain/document"
	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
	"z-novel-studio/pkg/logger"
)

// ProjectPatch 项目可更新字段，nil 表示不变
type ProjectPatch struct {
	Name        *string
	Type        *string
	Description *string
	TargetWords *int
	Status      *entity.ProjectStatus
	Settings    *entity.ProjectSettings
}

// ProjectService 项目服务
//
// 项目索引是全局单文档；项目的从属文档（章节、卷、统计、封面等）
// 随项目删除一并清理，清理是尽力而为的，索引移除成功即视为删除成功。
type ProjectService struct {
	list     *ListService[*entity.Project]
	store    *Store
	chapters *ChapterService
	settings *SettingsService
	ttl      time.Duration
}

// NewProjectService 创建项目服务
func NewProjectService(store *Store, chapters *ChapterService, settings *SettingsService, cfg *config.Config) *ProjectService {
	list := NewListService(store, ListConfig[*entity.Project]{
		Name: "project",
		FileName: func(string) string {
			return document.Projects
		},
		CacheTTL: cfg.Cache.DefaultTTL,
		Less: func(a, b *entity.Project) bool {
			return a.LastModified.After(b.LastModified)
		},
		Validate: func(p *entity.Project) error {
			if strings.TrimSpace(p.Name) == "" {
				return errors.New(errors.CodeValidationFailed, "project name is required")
			}
			if p.TargetWords < 0 {
				return errors.New(errors.CodeValidationFailed, "target words must not be negative")
			}
			return nil
		},
	})
	return &ProjectService{
		list:     list,
		store:    store,
		chapters: chapters,
		settings: settings,
		ttl:      cfg.Cache.DefaultTTL,
	}
}

// List 返回全部项目，最近修改的在前
func (s *ProjectService) List(ctx context.Context) ([]*entity.Project, error) {
	return s.list.List(ctx, "")
}

// Get 按 ID 查找项目，未找到时返回错误
func (s *ProjectService) Get(ctx context.Context, projectID string) (*entity.Project, error) {
	p, err := s.list.GetByID(ctx, "", projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New(errors.CodeProjectNotFound, "project not found").WithDetail(projectID)
	}
	return p, nil
}

// Create 创建新项目并写入索引
func (s *ProjectService) Create(ctx context.Context, name, typ, description string, targetWords int) (*entity.Project, error) {
	p := entity.NewProject(name)
	p.Type = typ
	p.Description = description
	p.TargetWords = targetWords
	return s.list.Create(ctx, "", p)
}

// Update 应用补丁
func (s *ProjectService) Update(ctx context.Context, projectID string, patch ProjectPatch) (*entity.Project, error) {
	p, err := s.list.Update(ctx, "", projectID, func(p *entity.Project) error {
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Type != nil {
			p.Type = *patch.Type
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.TargetWords != nil {
			p.TargetWords = *patch.TargetWords
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.Settings != nil {
			p.Settings = patch.Settings
		}
		return nil
	})
	if err != nil {
		if errors.IsCode(err, errors.CodeItemNotFound) {
			return nil, errors.New(errors.CodeProjectNotFound, "project not found").WithDetail(projectID)
		}
		return nil, err
	}
	return p, nil
}

// Delete 从索引移除项目并清理其全部从属文档
//
// 索引移除成功后，从属文档逐个尽力删除，失败只记日志；
// 残留文档对外不可见，下次同名项目也不会读到它们。
func (s *ProjectService) Delete(ctx context.Context, projectID string) error {
	projects, err := s.list.List(ctx, "")
	if err != nil {
		return err
	}
	kept := make([]*entity.Project, 0, len(projects))
	found := false
	for _, p := range projects {
		if p.ID == projectID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return nil
	}
	if err := s.list.Replace(ctx, "", kept); err != nil {
		return err
	}

	for _, name := range document.ProjectScoped(projectID) {
		if err := s.store.Delete(ctx, name); err != nil {
			logger.Warn(ctx, "failed to delete project document",
				"project_id", projectID, "document", name, "error", err.Error())
		}
	}
	s.deleteCoverBackups(ctx, projectID)

	// 指向被删项目的全局指针一并清除
	current, err := s.GetCurrent(ctx)
	if err == nil && current == projectID {
		if err := s.SetCurrent(ctx, ""); err != nil {
			logger.Warn(ctx, "failed to clear current project pointer",
				"project_id", projectID, "error", err.Error())
		}
	}

	s.store.Invalidate(projectID)
	return nil
}

// GetCurrent 返回最近打开的项目 ID，无指针时返回空串
func (s *ProjectService) GetCurrent(ctx context.Context) (string, error) {
	ptr, err := ReadJSON(ctx, s.store, document.CurrentProject, "", s.ttl, (*entity.CurrentProject)(nil))
	if err != nil {
		return "", err
	}
	if ptr == nil {
		return "", nil
	}
	return ptr.ProjectID, nil
}

// SetCurrent 更新最近打开的项目指针，空 ID 表示清除
func (s *ProjectService) SetCurrent(ctx context.Context, projectID string) error {
	if projectID == "" {
		return WriteJSON(ctx, s.store, document.CurrentProject, "", &entity.CurrentProject{})
	}
	if _, err := s.Get(ctx, projectID); err != nil {
		return err
	}
	return WriteJSON(ctx, s.store, document.CurrentProject, "", &entity.CurrentProject{ProjectID: projectID})
}

// GetCurrentChapter 返回项目内最近打开的章节 ID，无指针时返回空串
func (s *ProjectService) GetCurrentChapter(ctx context.Context, projectID string) (string, error) {
	ptr, err := ReadJSON(ctx, s.store, document.Current(projectID), "", s.ttl, (*entity.CurrentChapter)(nil))
	if err != nil {
		return "", err
	}
	if ptr == nil {
		return "", nil
	}
	return ptr.ChapterID, nil
}

// SetCurrentChapter 更新项目内最近打开的章节指针
func (s *ProjectService) SetCurrentChapter(ctx context.Context, projectID, chapterID string) error {
	return WriteJSON(ctx, s.store, document.Current(projectID), "", &entity.CurrentChapter{ChapterID: chapterID})
}

// GetCover 返回项目封面（data-URL 文本），无封面时返回空串
func (s *ProjectService) GetCover(ctx context.Context, projectID string) (string, error) {
	cover, err := s.store.ReadText(ctx, document.Cover(projectID))
	if err != nil {
		if errors.IsCode(err, errors.CodeStorageError) {
			return "", err
		}
		return "", nil
	}
	return cover, nil
}

// SetCover 保存项目封面，旧封面按备份策略保留
//
// 备份开启时先把现有封面存为时间戳备份，再裁剪到保留数量上限。
func (s *ProjectService) SetCover(ctx context.Context, projectID, cover string) error {
	if _, err := s.Get(ctx, projectID); err != nil {
		return err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if settings.Backup.Enabled {
		if old, err := s.GetCover(ctx, projectID); err == nil && old != "" {
			backup := document.CoverBackup(projectID, time.Now())
			if err := s.store.WriteText(ctx, backup, old); err != nil {
				logger.Warn(ctx, "failed to back up project cover",
					"project_id", projectID, "error", err.Error())
			}
			s.pruneCoverBackups(ctx, projectID, settings.Backup.KeepCount)
		}
	}

	if err := s.store.WriteText(ctx, document.Cover(projectID), cover); err != nil {
		return err
	}

	_, err = s.Update(ctx, projectID, ProjectPatch{})
	return err
}

// coverBackups 返回项目的封面备份文档名，按时间戳升序
func (s *ProjectService) coverBackups(ctx context.Context, projectID string) ([]string, error) {
	prefix := fmt.Sprintf("project_%s_cover_", projectID)
	names, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	backups := names[:0:0]
	for _, name := range names {
		if strings.HasSuffix(name, ".bak.txt") {
			backups = append(backups, name)
		}
	}
	sort.Strings(backups)
	return backups, nil
}

// pruneCoverBackups 裁剪封面备份到保留数量上限，最旧的先删
func (s *ProjectService) pruneCoverBackups(ctx context.Context, projectID string, keep int) {
	if keep <= 0 {
		keep = 1
	}
	backups, err := s.coverBackups(ctx, projectID)
	if err != nil {
		logger.Warn(ctx, "failed to list cover backups",
			"project_id", projectID, "error", err.Error())
		return
	}
	for len(backups) > keep {
		if err := s.store.Delete(ctx, backups[0]); err != nil {
			logger.Warn(ctx, "failed to prune cover backup",
				"project_id", projectID, "document", backups[0], "error", err.Error())
			return
		}
		backups = backups[1:]
	}
}

// deleteCoverBackups 删除项目的全部封面备份
func (s *ProjectService) deleteCoverBackups(ctx context.Context, projectID string) {
	backups, err := s.coverBackups(ctx, projectID)
	if err != nil {
		logger.Warn(ctx, "failed to list cover backups",
			"project_id", projectID, "error", err.Error())
		return
	}
	for _, name := range backups {
		if err := s.store.Delete(ctx, name); err != nil {
			logger.Warn(ctx, "failed to delete cover backup",
				"project_id", projectID, "document", name, "error", err.Error())
		}
	}
}

// RefreshWordCount 以章节内容为准刷新项目字数汇总
func (s *ProjectService) RefreshWordCount(ctx context.Context, projectID string) (*entity.Project, error) {
	total, err := s.chapters.TotalWords(ctx, projectID)
	if err != nil {
		return nil, err
	}
	p, err := s.list.Update(ctx, "", projectID, func(p *entity.Project) error {
		p.WordCount = total
		return nil
	})
	if err != nil {
		if errors.IsCode(err, errors.CodeItemNotFound) {
			return nil, errors.New(errors.CodeProjectNotFound, "project not found").WithDetail(projectID)
		}
		return nil, err
	}
	return p, nil
}
