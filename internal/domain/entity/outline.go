// Package entity 定义领域实体
package entity

import (
	"time"
)

// OutlineType 大纲节点类型
type OutlineType string

const (
	OutlineTypeMain     OutlineType = "main"
	OutlineTypeDetailed OutlineType = "detailed"
)

// OutlineStatus 大纲节点状态
type OutlineStatus string

const (
	OutlineStatusPlanned    OutlineStatus = "planned"
	OutlineStatusInProgress OutlineStatus = "in_progress"
	OutlineStatusDone       OutlineStatus = "done"
)

// OutlineItem 大纲节点实体
//
// ParentID 为空表示根节点；删除节点时级联删除其全部后代。
type OutlineItem struct {
	Meta
	ProjectID string        `json:"projectId"`
	Title     string        `json:"title"`
	Type      OutlineType   `json:"type"`
	Status    OutlineStatus `json:"status"`
	Content   string        `json:"content,omitempty"`
	ParentID  string        `json:"parentId,omitempty"`
	Order     int           `json:"order"`
}

// NewOutlineItem 创建新大纲节点
func NewOutlineItem(projectID, title string, typ OutlineType) *OutlineItem {
	now := time.Now()
	o := &OutlineItem{
		ProjectID: projectID,
		Title:     title,
		Type:      typ,
		Status:    OutlineStatusPlanned,
	}
	o.Stamp(now)
	return o
}
