// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/dto"
	"z-novel-studio/internal/service"
	"z-novel-studio/pkg/errors"
	"z-novel-studio/pkg/logger"
)

// WorldHandler 世界观处理器
type WorldHandler struct {
	world *service.WorldService
}

// NewWorldHandler 创建世界观处理器
func NewWorldHandler(world *service.WorldService) *WorldHandler {
	return &WorldHandler{world: world}
}

// ListWorldItems 获取世界观条目列表
// @Summary 获取项目世界观条目列表，支持 category 过滤
// @Tags World
// @Produce json
// @Param pid path string true "项目 ID"
// @Param category query string false "分类过滤"
// @Success 200 {object} dto.Response[[]entity.WorldItem]
// @Router /v1/projects/{pid}/world [get]
func (h *WorldHandler) ListWorldItems(c *gin.Context) {
	ctx := c.Request.Context()

	category := c.Query("category")
	if category != "" {
		result, err := h.world.ListByCategory(ctx, c.Param("pid"), category)
		if err != nil {
			logger.Error(ctx, "failed to list world items", err)
			dto.RespondError(c, err)
			return
		}
		dto.Success(c, result)
		return
	}

	result, err := h.world.List(ctx, c.Param("pid"))
	if err != nil {
		logger.Error(ctx, "failed to list world items", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, result)
}

// GetWorldItem 获取世界观条目详情
// @Summary 获取世界观条目详情
// @Tags World
// @Produce json
// @Param pid path string true "项目 ID"
// @Param wid path string true "条目 ID"
// @Success 200 {object} dto.Response[entity.WorldItem]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/world/{wid} [get]
func (h *WorldHandler) GetWorldItem(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.world.Get(ctx, c.Param("pid"), c.Param("wid"))
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	if item == nil {
		dto.RespondError(c, errors.New(errors.CodeItemNotFound, "world item not found"))
		return
	}
	dto.Success(c, item)
}

// CreateWorldItem 创建世界观条目
// @Summary 创建世界观条目
// @Tags World
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.CreateWorldItemRequest true "条目信息"
// @Success 201 {object} dto.Response[entity.WorldItem]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/world [post]
func (h *WorldHandler) CreateWorldItem(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateWorldItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	item, err := h.world.Create(ctx, c.Param("pid"), req.Name, req.Category)
	if err != nil {
		logger.Error(ctx, "failed to create world item", err)
		dto.RespondError(c, err)
		return
	}
	dto.Created(c, item)
}

// UpdateWorldItem 更新世界观条目
// @Summary 更新世界观条目
// @Tags World
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param wid path string true "条目 ID"
// @Param body body dto.UpdateWorldItemRequest true "变更字段"
// @Success 200 {object} dto.Response[entity.WorldItem]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/world/{wid} [put]
func (h *WorldHandler) UpdateWorldItem(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateWorldItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	item, err := h.world.Update(ctx, c.Param("pid"), c.Param("wid"), service.WorldPatch{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Content:     req.Content,
		Tags:        req.Tags,
		Status:      req.Status,
	})
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, item)
}

// DeleteWorldItem 删除世界观条目
// @Summary 删除世界观条目
// @Tags World
// @Param pid path string true "项目 ID"
// @Param wid path string true "条目 ID"
// @Success 204
// @Router /v1/projects/{pid}/world/{wid} [delete]
func (h *WorldHandler) DeleteWorldItem(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.world.Delete(ctx, c.Param("pid"), c.Param("wid")); err != nil {
		logger.Error(ctx, "failed to delete world item", err)
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}
