// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/dto"
	"z-novel-studio/internal/service"
	"z-novel-studio/pkg/logger"
)

// SettingsHandler 全局设置处理器
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler 创建全局设置处理器
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetSettings 获取全局设置
// @Summary 获取全局设置，文档缺失时返回默认值
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.Response[entity.AppSettings]
// @Router /v1/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	settings, err := h.settings.Get(ctx)
	if err != nil {
		logger.Error(ctx, "failed to get settings", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, settings)
}

// UpdateSettings 更新全局设置
// @Summary 更新全局设置
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body dto.UpdateSettingsRequest true "变更字段"
// @Success 200 {object} dto.Response[entity.AppSettings]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	settings, err := h.settings.Update(ctx, service.SettingsPatch{
		Theme:    req.Theme,
		Language: req.Language,
		Editor:   req.Editor,
		Backup:   req.Backup,
	})
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, settings)
}

// ResetSettings 恢复默认设置
// @Summary 恢复默认设置
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.Response[entity.AppSettings]
// @Router /v1/settings/reset [post]
func (h *SettingsHandler) ResetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	settings, err := h.settings.Reset(ctx)
	if err != nil {
		logger.Error(ctx, "failed to reset settings", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, settings)
}
