// Package handler 提供 HTTP 请求处理器
package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/dto"
	"z-novel-studio/internal/service"
	"z-novel-studio/pkg/logger"
)

// DataHandler 数据导出导入处理器
type DataHandler struct {
	data *service.DataService
}

// NewDataHandler 创建数据处理器
func NewDataHandler(data *service.DataService) *DataHandler {
	return &DataHandler{data: data}
}

// Export 导出全部数据
// @Summary 导出全部项目数据为单个 JSON 信封
// @Tags Data
// @Produce json
// @Success 200 {object} service.ExportEnvelope
// @Router /v1/data/export [get]
func (h *DataHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	env, err := h.data.Export(ctx)
	if err != nil {
		logger.Error(ctx, "failed to export data", err)
		dto.RespondError(c, err)
		return
	}

	// 信封本身就是下载产物，不再套统一响应结构
	c.Header("Content-Disposition", `attachment; filename="z-novel-studio-export.json"`)
	c.JSON(http.StatusOK, env)
}

// Import 导入数据
// @Summary 导入导出信封，已存在同 id 的项目默认整体跳过
// @Tags Data
// @Accept json
// @Produce json
// @Param overwrite query bool false "覆盖已存在的项目"
// @Success 200 {object} dto.Response[service.ImportReport]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/data/import [post]
func (h *DataHandler) Import(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		dto.BadRequest(c, "failed to read request body: "+err.Error())
		return
	}

	report, err := h.data.Import(ctx, body, dto.QueryBool(c, "overwrite"))
	if err != nil {
		logger.Error(ctx, "failed to import data", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, report)
}

// Cleanup 清理孤儿文档
// @Summary 清理项目索引不可达的孤儿文档
// @Tags Data
// @Produce json
// @Success 200 {object} dto.Response[service.CleanupReport]
// @Router /v1/data/cleanup [post]
func (h *DataHandler) Cleanup(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.data.Cleanup(ctx)
	if err != nil {
		logger.Error(ctx, "failed to cleanup data", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, report)
}

// Reset 重置全部数据
// @Summary 删除全部文档并清空缓存
// @Tags Data
// @Success 204
// @Router /v1/data/reset [post]
func (h *DataHandler) Reset(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.data.Reset(ctx); err != nil {
		logger.Error(ctx, "failed to reset data", err)
		dto.RespondError(c, err)
		return
	}
	dto.NoContent(c)
}
