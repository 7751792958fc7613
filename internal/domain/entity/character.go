// Package entity 定义领域实体
package entity

import (
	"time"
)

// Character 角色实体
type Character struct {
	Meta
	ProjectID   string   `json:"projectId"`
	Name        string   `json:"name"`
	Role        string   `json:"role,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Age         string   `json:"age,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
}

// NewCharacter 创建新角色
func NewCharacter(projectID, name string) *Character {
	now := time.Now()
	c := &Character{
		ProjectID: projectID,
		Name:      name,
		Tags:      []string{},
	}
	c.Stamp(now)
	return c
}
