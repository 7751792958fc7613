// Package document 定义持久化文档的命名约定
//
// 命名必须与桌面端既有数据文件保持逐字一致，两端才能互读。
package document

import (
	"fmt"
	"time"
)

// 全局文档
const (
	Projects       = "projects.json"
	Settings       = "settings.json"
	CurrentProject = "current_project.json"
)

// Chapters 项目章节集合文档
func Chapters(projectID string) string {
	return fmt.Sprintf("project_%s_chapters.json", projectID)
}

// Volumes 项目卷集合文档
func Volumes(projectID string) string {
	return fmt.Sprintf("project_%s_volumes.json", projectID)
}

// Characters 项目角色集合文档
func Characters(projectID string) string {
	return fmt.Sprintf("project_%s_characters.json", projectID)
}

// Outlines 项目大纲集合文档
func Outlines(projectID string) string {
	return fmt.Sprintf("project_%s_outlines.json", projectID)
}

// World 项目世界观集合文档
func World(projectID string) string {
	return fmt.Sprintf("project_%s_world.json", projectID)
}

// WorldLegacy 旧版世界观文档命名变体，仅在读取时回退使用
func WorldLegacy(projectID string) string {
	return fmt.Sprintf("project_%s_world_items.json", projectID)
}

// Stats 项目写作统计文档
func Stats(projectID string) string {
	return fmt.Sprintf("writing_stats_%s.json", projectID)
}

// Current 项目内最近打开章节的指针文档
func Current(projectID string) string {
	return fmt.Sprintf("project_%s_current.json", projectID)
}

// Cover 项目封面文档（data-URL 文本）
func Cover(projectID string) string {
	return fmt.Sprintf("project_%s_cover.txt", projectID)
}

// CoverBackup 封面的时间戳备份文档
func CoverBackup(projectID string, ts time.Time) string {
	return fmt.Sprintf("project_%s_cover_%s.bak.txt", projectID, ts.Format("20060102T150405"))
}

// ProjectScoped 项目删除时需要级联清理的全部文档
func ProjectScoped(projectID string) []string {
	return []string{
		Chapters(projectID),
		Volumes(projectID),
		Characters(projectID),
		Outlines(projectID),
		World(projectID),
		WorldLegacy(projectID),
		Stats(projectID),
		Current(projectID),
		Cover(projectID),
	}
}
