// Package entity 定义领域实体
//
// 所有实体以 JSON 文档形式持久化，字段名与桌面端既有文档保持 camelCase，
// 保证两端可以互读同一份数据文件。
package entity

import (
	"time"
)

// Meta 所有持久化实体共有的标识与时间戳
type Meta struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// GetID 返回实体 ID
func (m *Meta) GetID() string {
	return m.ID
}

// SetID 设置实体 ID
func (m *Meta) SetID(id string) {
	m.ID = id
}

// Stamp 初始化创建与修改时间戳
func (m *Meta) Stamp(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.LastModified = now
}

// Touch 刷新修改时间戳
func (m *Meta) Touch(now time.Time) {
	m.LastModified = now
}

// Record 集合服务可管理的实体约束
type Record interface {
	GetID() string
	SetID(id string)
	Stamp(now time.Time)
	Touch(now time.Time)
}
