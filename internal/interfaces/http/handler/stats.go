// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/interfaces/http/dto"
	"z-novel-studio/internal/service"
	"z-novel-studio/pkg/logger"
)

// StatsHandler 写作统计处理器
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler 创建写作统计处理器
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetStats 获取统计聚合
// @Summary 获取项目写作统计聚合
// @Tags Stats
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[service.StatsSummary]
// @Router /v1/projects/{pid}/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.stats.Summary(ctx, c.Param("pid"))
	if err != nil {
		logger.Error(ctx, "failed to get writing stats", err)
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, summary)
}

// RecordStats 记录字数增量
// @Summary 向今日账本累加字数增量
// @Tags Stats
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.RecordStatsRequest true "字数增量"
// @Success 200 {object} dto.Response[service.StatsSummary]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/projects/{pid}/stats/record [post]
func (h *StatsHandler) RecordStats(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.stats.RecordDelta(ctx, c.Param("pid"), req.Delta); err != nil {
		logger.Error(ctx, "failed to record writing stats", err)
		dto.RespondError(c, err)
		return
	}

	summary, err := h.stats.Summary(ctx, c.Param("pid"))
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	dto.Success(c, summary)
}
