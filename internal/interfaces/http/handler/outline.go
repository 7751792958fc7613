// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/dto"
	"z-novel-studio/internal/service"
	"z-novel-studio/pkg/errors"
	"z-novel-studio/pkg/logger"
)

// OutlineHandler 大纲处理器
type OutlineHandler struct {
	outlines *service.OutlineService
}

// NewOutlineHandler 创建大纲处理器
func NewOutlineHandler(outlines *service.OutlineService) *OutlineHandler {
	return &OutlineHandler{outlines: outlines}
}

// ListOutlines 获取大纲列表
// @Summary 获取项目大纲节点列表
// @Tags Outlines
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[[]entity.OutlineItem]
// @Router /v1/projects/{pid}/outlines [get]
func (h *OutlineHandler) ListOutlines(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.outlines.List(ctx, c.Param("pid"))
	if err != nil {
		logger.Error(ctx, "failed to list outlines", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, items)
}

// GetOutline 获取大纲节点详情
// @Summary 获取大纲节点详情
// @Tags Outlines
// @Produce json
// @Param pid path string true "项目 ID"
// @Param oid path string true "节点 ID"
// @Success 200 {object} dto.Response[entity.OutlineItem]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/outlines/{oid} [get]
func (h *OutlineHandler) GetOutline(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.outlines.Get(ctx, c.Param("pid"), c.Param("oid"))
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	if item == nil {
		dto.RespondError(c, errors.New(errors.CodeItemNotFound, "outline item not found"))
		return
	}
	dto.Success(c, item)
}

// CreateOutline 创建大纲节点
// @Summary 创建大纲节点，序号排在同父兄弟末尾
// @Tags Outlines
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.CreateOutlineRequest true "节点信息"
// @Success 201 {object} dto.Response[entity.OutlineItem]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/outlines [post]
func (h *OutlineHandler) CreateOutline(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	item, err := h.outlines.Create(ctx, c.Param("pid"), req.Title, req.Type, req.ParentID)
	if err != nil {
		logger.Error(ctx, "failed to create outline item", err)
		dto.RespondError(c, err)
		return
	}
	dto.Created(c, item)
}

// UpdateOutline 更新大纲节点
// @Summary 更新大纲节点
// @Tags Outlines
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param oid path string true "节点 ID"
// @Param body body dto.UpdateOutlineRequest true "变更字段"
// @Success 200 {object} dto.Response[entity.OutlineItem]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/outlines/{oid} [put]
func (h *OutlineHandler) UpdateOutline(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateOutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	item, err := h.outlines.Update(ctx, c.Param("pid"), c.Param("oid"), service.OutlinePatch{
		Title:    req.Title,
		Type:     req.Type,
		Status:   req.Status,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, item)
}

// DeleteOutline 删除大纲节点
// @Summary 删除大纲节点及其全部后代
// @Tags Outlines
// @Param pid path string true "项目 ID"
// @Param oid path string true "节点 ID"
// @Success 204
// @Router /v1/projects/{pid}/outlines/{oid} [delete]
func (h *OutlineHandler) DeleteOutline(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.outlines.Delete(ctx, c.Param("pid"), c.Param("oid")); err != nil {
		logger.Error(ctx, "failed to delete outline item", err)
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}

// ReorderOutlines 重排大纲节点
// @Summary 按给定顺序重排大纲节点
// @Tags Outlines
// @Accept json
// @Param pid path string true "项目 ID"
// @Param body body dto.ReorderOutlinesRequest true "节点顺序"
// @Success 204
// @Router /v1/projects/{pid}/outlines/reorder [post]
func (h *OutlineHandler) ReorderOutlines(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReorderOutlinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.outlines.Reorder(ctx, c.Param("pid"), req.ItemIDs); err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}
