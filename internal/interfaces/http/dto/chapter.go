// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"z-novel-studio/internal/domain/entity"
)

// CreateChapterRequest 创建章节请求
type CreateChapterRequest struct {
	Title    string `json:"title" binding:"required"`
	VolumeID string `json:"volumeId,omitempty"`
	Content  string `json:"content,omitempty"`
}

// UpdateChapterRequest 更新章节请求，nil 字段不变
type UpdateChapterRequest struct {
	Title   *string               `json:"title,omitempty"`
	Content *string               `json:"content,omitempty"`
	Status  *entity.ChapterStatus `json:"status,omitempty" binding:"omitempty,oneof=draft writing review completed"`
}

// MoveChapterRequest 章节移卷请求
type MoveChapterRequest struct {
	VolumeID string `json:"volumeId"`
}

// ReorderChaptersRequest 章节重排请求
type ReorderChaptersRequest struct {
	VolumeID   string   `json:"volumeId"`
	ChapterIDs []string `json:"chapterIds" binding:"required"`
}
