// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"z-novel-studio/internal/domain/entity"
)

// UpdateSettingsRequest 更新全局设置请求，nil 字段不变
type UpdateSettingsRequest struct {
	Theme    *entity.Theme          `json:"theme,omitempty" binding:"omitempty,oneof=light dark system"`
	Language *string                `json:"language,omitempty"`
	Editor   *entity.EditorSettings `json:"editor,omitempty"`
	Backup   *entity.BackupSettings `json:"backup,omitempty"`
}

// RecordStatsRequest 写作统计增量请求
type RecordStatsRequest struct {
	Delta int `json:"delta" binding:"required,gt=0"`
}
