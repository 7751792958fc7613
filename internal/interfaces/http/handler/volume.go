// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/dto"
	"z-novel-studio/internal/service"
	"z-novel-studio/pkg/errors"
	"z-novel-studio/pkg/logger"
)

// VolumeHandler 卷处理器
type VolumeHandler struct {
	volumes *service.VolumeService
}

// NewVolumeHandler 创建卷处理器
func NewVolumeHandler(volumes *service.VolumeService) *VolumeHandler {
	return &VolumeHandler{volumes: volumes}
}

// ListVolumes 获取卷列表
// @Summary 获取项目卷列表
// @Tags Volumes
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[[]entity.Volume]
// @Router /v1/projects/{pid}/volumes [get]
func (h *VolumeHandler) ListVolumes(c *gin.Context) {
	ctx := c.Request.Context()

	volumes, err := h.volumes.List(ctx, c.Param("pid"))
	if err != nil {
		logger.Error(ctx, "failed to list volumes", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, volumes)
}

// GetVolume 获取卷详情
// @Summary 获取卷详情
// @Tags Volumes
// @Produce json
// @Param pid path string true "项目 ID"
// @Param vid path string true "卷 ID"
// @Success 200 {object} dto.Response[entity.Volume]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/volumes/{vid} [get]
func (h *VolumeHandler) GetVolume(c *gin.Context) {
	ctx := c.Request.Context()

	volume, err := h.volumes.Get(ctx, c.Param("pid"), c.Param("vid"))
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	if volume == nil {
		dto.RespondError(c, errors.New(errors.CodeVolumeNotFound, "volume not found"))
		return
	}
	dto.Success(c, volume)
}

// CreateVolume 创建卷
// @Summary 创建卷，序号排在末尾
// @Tags Volumes
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.CreateVolumeRequest true "卷信息"
// @Success 201 {object} dto.Response[entity.Volume]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/volumes [post]
func (h *VolumeHandler) CreateVolume(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateVolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	volume, err := h.volumes.Create(ctx, c.Param("pid"), req.Title)
	if err != nil {
		logger.Error(ctx, "failed to create volume", err)
		dto.RespondError(c, err)
		return
	}
	dto.Created(c, volume)
}

// UpdateVolume 更新卷
// @Summary 更新卷
// @Tags Volumes
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param vid path string true "卷 ID"
// @Param body body dto.UpdateVolumeRequest true "变更字段"
// @Success 200 {object} dto.Response[entity.Volume]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/volumes/{vid} [put]
func (h *VolumeHandler) UpdateVolume(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateVolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	volume, err := h.volumes.Update(ctx, c.Param("pid"), c.Param("vid"), service.VolumePatch{
		Title:  req.Title,
		Status: req.Status,
	})
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, volume)
}

// DeleteVolume 删除卷
// @Summary 删除卷并级联删除卷下全部章节
// @Tags Volumes
// @Param pid path string true "项目 ID"
// @Param vid path string true "卷 ID"
// @Success 204
// @Router /v1/projects/{pid}/volumes/{vid} [delete]
func (h *VolumeHandler) DeleteVolume(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.volumes.Delete(ctx, c.Param("pid"), c.Param("vid")); err != nil {
		logger.Error(ctx, "failed to delete volume", err)
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}

// ReorderVolumes 重排卷
// @Summary 按给定顺序重排卷
// @Tags Volumes
// @Accept json
// @Param pid path string true "项目 ID"
// @Param body body dto.ReorderVolumesRequest true "卷顺序"
// @Success 204
// @Router /v1/projects/{pid}/volumes/reorder [post]
func (h *VolumeHandler) ReorderVolumes(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReorderVolumesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.volumes.Reorder(ctx, c.Param("pid"), req.VolumeIDs); err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}
