package service

import (
	"time"

	"z-novel-studio/internal/config"
	"z-novel-studio/internal/infrastructure/storage"
)

// testConfig 测试用配置：内存后端、不开后台清理与自动保存
func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			DefaultTTL:  time.Minute,
			ContentTTL:  time.Minute,
			SettingsTTL: time.Minute,
		},
		Autosave: config.AutosaveConfig{
			Enabled:  false,
			Interval: time.Hour,
		},
		Stats: config.StatsConfig{
			WeekStart: "monday",
		},
	}
}

// newTestContainer 构造内存后端上的完整服务容器
func newTestContainer() (*Container, *storage.MemoryAdapter) {
	adapter := storage.NewMemoryAdapter()
	return NewContainer(adapter, testConfig()), adapter
}
