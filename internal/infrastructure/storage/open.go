// Package storage 提供统一的文档存储适配器
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"z-novel-studio/internal/config"
	"z-novel-studio/pkg/logger"
)

// Open 按配置选择并创建存储后端
//
// backend 为 auto 时进行一次能力探测：数据目录可写则选文件后端，
// 否则回落到 Redis。探测只在进程启动时发生一次，
// 选定的适配器在整个进程生命周期内复用。
func Open(ctx context.Context, cfg *config.StorageConfig) (Adapter, error) {
	switch cfg.Backend {
	case "file":
		return NewFileAdapter(cfg.DataDir)
	case "redis":
		return NewRedisAdapter(&cfg.Redis, cfg.Namespace)
	case "postgres":
		return NewPostgresAdapter(&cfg.Postgres)
	case "", "auto":
		if dataDirUsable(cfg.DataDir) {
			logger.Info(ctx, "storage probe selected file backend", "data_dir", cfg.DataDir)
			return NewFileAdapter(cfg.DataDir)
		}
		logger.Warn(ctx, "data dir not usable, falling back to redis backend",
			"data_dir", cfg.DataDir)
		return NewRedisAdapter(&cfg.Redis, cfg.Namespace)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

// dataDirUsable 探测数据目录是否可创建且可写
func dataDirUsable(dataDir string) bool {
	if dataDir == "" {
		return false
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return false
	}
	probe := filepath.Join(dataDir, ".probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return false
	}
	_ = os.Remove(probe)
	return true
}
