// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/dto"
	"z-novel-studio/internal/service"
	"z-novel-studio/pkg/logger"
)

// SessionHandler 写作会话处理器
type SessionHandler struct {
	session *service.SessionService
}

// NewSessionHandler 创建写作会话处理器
func NewSessionHandler(session *service.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

// Open 打开写作会话
// @Summary 打开写作会话并启动自动保存
// @Tags Session
// @Accept json
// @Produce json
// @Param body body dto.OpenSessionRequest true "会话目标"
// @Success 200 {object} dto.Response[service.SessionStatus]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/session/open [post]
func (h *SessionHandler) Open(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	status, err := h.session.Open(ctx, req.ProjectID, req.ChapterID)
	if err != nil {
		logger.Error(ctx, "failed to open writing session", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, status)
}

// UpdateDraft 更新会话草稿
// @Summary 更新内存草稿并置脏标记
// @Tags Session
// @Accept json
// @Produce json
// @Param body body dto.UpdateDraftRequest true "草稿内容"
// @Success 200 {object} dto.Response[service.SessionStatus]
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/session/draft [put]
func (h *SessionHandler) UpdateDraft(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	status, err := h.session.UpdateDraft(ctx, req.Content)
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, status)
}

// Flush 立即保存草稿
// @Summary 立即冲洗脏草稿到存储
// @Tags Session
// @Produce json
// @Success 200 {object} dto.Response[service.SessionStatus]
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/session/flush [post]
func (h *SessionHandler) Flush(c *gin.Context) {
	ctx := c.Request.Context()

	status, err := h.session.Flush(ctx)
	if err != nil {
		logger.Error(ctx, "failed to flush writing session", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, status)
}

// Status 获取会话状态
// @Summary 获取当前会话状态
// @Tags Session
// @Produce json
// @Success 200 {object} dto.Response[service.SessionStatus]
// @Router /v1/session [get]
func (h *SessionHandler) Status(c *gin.Context) {
	dto.Success(c, h.session.Status())
}

// Close 关闭写作会话
// @Summary 冲洗草稿并关闭会话
// @Tags Session
// @Success 204
// @Router /v1/session/close [post]
func (h *SessionHandler) Close(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.session.Close(ctx); err != nil {
		logger.Error(ctx, "failed to close writing session", err)
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}
