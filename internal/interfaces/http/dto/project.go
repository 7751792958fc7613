// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"z-novel-studio/internal/domain/entity"
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	TargetWords int    `json:"targetWords,omitempty" binding:"omitempty,min=0"`
}

// UpdateProjectRequest 更新项目请求，nil 字段不变
type UpdateProjectRequest struct {
	Name        *string                 `json:"name,omitempty"`
	Type        *string                 `json:"type,omitempty"`
	Description *string                 `json:"description,omitempty"`
	TargetWords *int                    `json:"targetWords,omitempty" binding:"omitempty,min=0"`
	Status      *entity.ProjectStatus   `json:"status,omitempty" binding:"omitempty,oneof=draft writing completed archived"`
	Settings    *entity.ProjectSettings `json:"settings,omitempty"`
}

// SetCoverRequest 设置项目封面请求
type SetCoverRequest struct {
	Cover string `json:"cover" binding:"required"`
}

// CoverResponse 项目封面响应
type CoverResponse struct {
	Cover string `json:"cover"`
}

// SetCurrentProjectRequest 设置当前项目请求，空 ID 表示清除指针
type SetCurrentProjectRequest struct {
	ProjectID string `json:"projectId"`
}

// CurrentProjectResponse 当前项目响应
type CurrentProjectResponse struct {
	ProjectID string `json:"projectId"`
}

// SetCurrentChapterRequest 设置项目当前章节请求
type SetCurrentChapterRequest struct {
	ChapterID string `json:"chapterId"`
}

// CurrentChapterResponse 项目当前章节响应
type CurrentChapterResponse struct {
	ChapterID string `json:"chapterId"`
}
