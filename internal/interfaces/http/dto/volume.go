// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"z-novel-studio/internal/domain/entity"
)

// CreateVolumeRequest 创建卷请求
type CreateVolumeRequest struct {
	Title string `json:"title" binding:"required"`
}

// UpdateVolumeRequest 更新卷请求，nil 字段不变
type UpdateVolumeRequest struct {
	Title  *string              `json:"title,omitempty"`
	Status *entity.VolumeStatus `json:"status,omitempty" binding:"omitempty,oneof=draft writing completed"`
}

// ReorderVolumesRequest 卷重排请求
type ReorderVolumesRequest struct {
	VolumeIDs []string `json:"volumeIds" binding:"required"`
}
