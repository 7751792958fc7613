// Package entity 定义领域实体
package entity

import (
	"time"
)

// WorldItemStatus 世界观条目状态
type WorldItemStatus string

const (
	WorldItemStatusDraft     WorldItemStatus = "draft"
	WorldItemStatusCompleted WorldItemStatus = "completed"
)

// WorldItem 世界观条目实体
type WorldItem struct {
	Meta
	ProjectID   string          `json:"projectId"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Content     string          `json:"content,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Status      WorldItemStatus `json:"status"`
}

// NewWorldItem 创建新世界观条目
func NewWorldItem(projectID, name, category string) *WorldItem {
	now := time.Now()
	w := &WorldItem{
		ProjectID: projectID,
		Name:      name,
		Category:  category,
		Tags:      []string{},
		Status:    WorldItemStatusDraft,
	}
	w.Stamp(now)
	return w
}
