// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"z-novel-studio/internal/infrastructure/storage"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	adapter storage.Adapter
	version string
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(adapter storage.Adapter, version string) *HealthHandler {
	return &HealthHandler{adapter: adapter, version: version}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Backend string `json:"backend,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Backend: h.adapter.Backend(),
	})
}

// Ready 就绪检查接口
// @Summary 就绪检查，探测存储后端可用性
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	check := &readinessCheck{Status: "ok"}
	start := time.Now()
	_, err := h.adapter.Exists(ctx, "projects.json")
	check.LatencyMs = time.Since(start).Milliseconds()

	resp := readinessResponse{
		Status: "ok",
		Checks: map[string]*readinessCheck{
			"storage": check,
		},
	}
	if err != nil {
		check.Status = "error"
		check.Error = err.Error()
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
