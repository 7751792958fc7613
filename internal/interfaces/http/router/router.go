// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"z-novel-studio/internal/config"
	"z-novel-studio/internal/interfaces/http/handler"
	"z-novel-studio/internal/interfaces/http/middleware"
	"z-novel-studio/internal/service"
)

// Router HTTP 路由器
type Router struct {
	engine    *gin.Engine
	cfg       *config.Config
	container *service.Container
}

// New 创建新的路由器
func New(cfg *config.Config, container *service.Container) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:    engine,
		cfg:       cfg,
		container: container,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	healthHandler := handler.NewHealthHandler(r.container.Store.Adapter(), r.cfg.App.Version)

	r.engine.GET("/health", healthHandler.Health)
	r.engine.GET("/ready", healthHandler.Ready)
	r.engine.GET("/live", healthHandler.Live)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	v1 := r.engine.Group("/v1")
	RegisterV1Routes(
		v1,
		handler.NewProjectHandler(r.container.Projects),
		handler.NewVolumeHandler(r.container.Volumes),
		handler.NewChapterHandler(r.container.Chapters),
		handler.NewCharacterHandler(r.container.Characters),
		handler.NewOutlineHandler(r.container.Outlines),
		handler.NewWorldHandler(r.container.World),
		handler.NewSettingsHandler(r.container.Settings),
		handler.NewStatsHandler(r.container.Stats),
		handler.NewDataHandler(r.container.Data),
		handler.NewSessionHandler(r.container.Session),
	)
}
