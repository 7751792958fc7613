// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"z-novel-studio/internal/domain/entity"
)

// CreateWorldItemRequest 创建世界观条目请求
type CreateWorldItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category,omitempty"`
}

// UpdateWorldItemRequest 更新世界观条目请求，nil 字段不变
type UpdateWorldItemRequest struct {
	Name        *string                 `json:"name,omitempty"`
	Category    *string                 `json:"category,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Content     *string                 `json:"content,omitempty"`
	Tags        *[]string               `json:"tags,omitempty"`
	Status      *entity.WorldItemStatus `json:"status,omitempty" binding:"omitempty,oneof=draft completed"`
}
