// Package dto 提供 HTTP 层数据传输对象
package dto

// CreateCharacterRequest 创建角色请求
type CreateCharacterRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role,omitempty"`
}

// UpdateCharacterRequest 更新角色请求，nil 字段不变
type UpdateCharacterRequest struct {
	Name        *string   `json:"name,omitempty"`
	Role        *string   `json:"role,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Age         *string   `json:"age,omitempty"`
	Gender      *string   `json:"gender,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
}
