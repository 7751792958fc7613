// Package entity 定义领域实体
package entity

import (
	"time"
)

// VolumeStatus 卷状态
type VolumeStatus string

const (
	VolumeStatusDraft     VolumeStatus = "draft"
	VolumeStatusWriting   VolumeStatus = "writing"
	VolumeStatusCompleted VolumeStatus = "completed"
)

// Volume 卷/部实体
//
// Order 在项目内从 1 开始连续递增。
type Volume struct {
	Meta
	ProjectID string       `json:"projectId"`
	Title     string       `json:"title"`
	Order     int          `json:"order"`
	Status    VolumeStatus `json:"status"`
}

// NewVolume 创建新卷
func NewVolume(projectID, title string) *Volume {
	now := time.Now()
	v := &Volume{
		ProjectID: projectID,
		Title:     title,
		Status:    VolumeStatusDraft,
	}
	v.Stamp(now)
	return v
}
