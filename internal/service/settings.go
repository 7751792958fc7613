// Package service 提供领域服务层
package service

import (
	"context"
	"time"

	"z-novel-studio/internal/config"
	"z-novel-studio/internal/domain/document"
	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
)

// SettingsPatch 全局设置可更新字段，nil 表示不变
type SettingsPatch struct {
	Theme    *entity.Theme
	Language *string
	Editor   *entity.EditorSettings
	Backup   *entity.BackupSettings
}

// SettingsService 全局设置服务
//
// 设置是单文档，缺失时落回默认值，首次保存时才生成文件。
type SettingsService struct {
	store *Store
	ttl   time.Duration
}

// NewSettingsService 创建全局设置服务
func NewSettingsService(store *Store, cfg *config.Config) *SettingsService {
	return &SettingsService{store: store, ttl: cfg.Cache.SettingsTTL}
}

// Get 返回全局设置，文档缺失时返回默认设置
func (s *SettingsService) Get(ctx context.Context) (*entity.AppSettings, error) {
	settings, err := ReadJSON(ctx, s.store, document.Settings, "", s.ttl, (*entity.AppSettings)(nil))
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return entity.DefaultAppSettings(), nil
	}
	return settings, nil
}

// Update 应用补丁并持久化
func (s *SettingsService) Update(ctx context.Context, patch SettingsPatch) (*entity.AppSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if patch.Theme != nil {
		switch *patch.Theme {
		case entity.ThemeLight, entity.ThemeDark, entity.ThemeSystem:
		default:
			return nil, errors.Newf(errors.CodeValidationFailed, "invalid theme: %s", *patch.Theme)
		}
		settings.Theme = *patch.Theme
	}
	if patch.Language != nil {
		settings.Language = *patch.Language
	}
	if patch.Editor != nil {
		settings.Editor = *patch.Editor
	}
	if patch.Backup != nil {
		settings.Backup = *patch.Backup
	}
	settings.LastModified = time.Now()

	if err := WriteJSON(ctx, s.store, document.Settings, "", settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Reset 恢复默认设置并持久化
func (s *SettingsService) Reset(ctx context.Context) (*entity.AppSettings, error) {
	settings := entity.DefaultAppSettings()
	settings.LastModified = time.Now()
	if err := WriteJSON(ctx, s.store, document.Settings, "", settings); err != nil {
		return nil, err
	}
	return settings, nil
}
