// Package service 提供领域服务层
package service

import (
	"context"

	"z-novel-studio/internal/config"
	"z-novel-studio/internal/infrastructure/cache"
	"z-novel-studio/internal/infrastructure/storage"
	"z-novel-studio/pkg/logger"
)

// Container 服务容器
//
// 显式构造注入的组合根：依赖关系在一个函数里一眼可见，
// 服务之间只通过构造函数传递，不做任何全局查找。
type Container struct {
	Store      *Store
	Stats      *StatsService
	Chapters   *ChapterService
	Volumes    *VolumeService
	Characters *CharacterService
	Outlines   *OutlineService
	World      *WorldService
	Settings   *SettingsService
	Projects   *ProjectService
	Data       *DataService
	Session    *SessionService

	adapter storage.Adapter
	cache   *cache.Cache
}

// NewContainer 按依赖顺序装配全部服务
func NewContainer(adapter storage.Adapter, cfg *config.Config) *Container {
	c := cache.New(cfg.Cache.DefaultTTL)
	if cfg.Cache.SweepInterval > 0 {
		c.StartSweeper(cfg.Cache.SweepInterval)
	}

	store := NewStore(adapter, c)
	stats := NewStatsService(store, cfg)
	chapters := NewChapterService(store, stats, cfg)
	volumes := NewVolumeService(store, chapters, cfg)
	characters := NewCharacterService(store, cfg)
	outlines := NewOutlineService(store, cfg)
	world := NewWorldService(store, cfg)
	settings := NewSettingsService(store, cfg)
	projects := NewProjectService(store, chapters, settings, cfg)
	data := NewDataService(store, projects)
	session := NewSessionService(chapters, projects, cfg)

	return &Container{
		Store:      store,
		Stats:      stats,
		Chapters:   chapters,
		Volumes:    volumes,
		Characters: characters,
		Outlines:   outlines,
		World:      world,
		Settings:   settings,
		Projects:   projects,
		Data:       data,
		Session:    session,

		adapter: adapter,
		cache:   c,
	}
}

// Shutdown 关闭会话、后台任务与存储连接
func (c *Container) Shutdown(ctx context.Context) error {
	if err := c.Session.Close(ctx); err != nil {
		logger.Error(ctx, "failed to close writing session on shutdown", err)
	}
	c.cache.StopSweeper()
	return c.adapter.Close()
}
