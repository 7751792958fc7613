// Package dto 提供 HTTP 层数据传输对象
package dto

// OpenSessionRequest 打开写作会话请求
type OpenSessionRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
	ChapterID string `json:"chapterId" binding:"required"`
}

// UpdateDraftRequest 更新会话草稿请求
//
// Content 允许为空串（清空章节内容），因此不加 required 校验。
type UpdateDraftRequest struct {
	Content string `json:"content"`
}
