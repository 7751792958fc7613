// Package entity 定义领域实体
package entity

import (
	"time"
)

// Theme 界面主题
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// EditorSettings 全局编辑器偏好
type EditorSettings struct {
	FontSize        int     `json:"fontSize"`
	LineHeight      float64 `json:"lineHeight"`
	FontFamily      string  `json:"fontFamily,omitempty"`
	AutoSaveEnabled bool    `json:"autoSaveEnabled"`
	AutoSaveSeconds int     `json:"autoSaveSeconds"`
}

// BackupSettings 备份策略
type BackupSettings struct {
	Enabled   bool `json:"enabled"`
	KeepCount int  `json:"keepCount"`
}

// AppSettings 进程级全局设置文档（不按项目划分）
type AppSettings struct {
	Theme        Theme          `json:"theme"`
	Language     string         `json:"language,omitempty"`
	Editor       EditorSettings `json:"editor"`
	Backup       BackupSettings `json:"backup"`
	LastModified time.Time      `json:"lastModified"`
}

// DefaultAppSettings 返回默认设置
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Theme:    ThemeSystem,
		Language: "zh-CN",
		Editor: EditorSettings{
			FontSize:        16,
			LineHeight:      1.8,
			AutoSaveEnabled: true,
			AutoSaveSeconds: 30,
		},
		Backup: BackupSettings{
			Enabled:   true,
			KeepCount: 5,
		},
	}
}
