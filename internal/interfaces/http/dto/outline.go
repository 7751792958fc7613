// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"z-novel-studio/internal/domain/entity"
)

// CreateOutlineRequest 创建大纲节点请求
type CreateOutlineRequest struct {
	Title    string             `json:"title" binding:"required"`
	Type     entity.OutlineType `json:"type" binding:"required,oneof=main detailed"`
	ParentID string             `json:"parentId,omitempty"`
}

// UpdateOutlineRequest 更新大纲节点请求，nil 字段不变
type UpdateOutlineRequest struct {
	Title    *string               `json:"title,omitempty"`
	Type     *entity.OutlineType   `json:"type,omitempty" binding:"omitempty,oneof=main detailed"`
	Status   *entity.OutlineStatus `json:"status,omitempty" binding:"omitempty,oneof=planned in_progress done"`
	Content  *string               `json:"content,omitempty"`
	ParentID *string               `json:"parentId,omitempty"`
}

// ReorderOutlinesRequest 大纲重排请求
type ReorderOutlinesRequest struct {
	ItemIDs []string `json:"itemIds" binding:"required"`
}
