// Package entity 定义领域实体
package entity

import (
	"time"
)

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusWriting   ProjectStatus = "writing"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// ProjectSettings 项目编辑器偏好
type ProjectSettings struct {
	FontSize      int     `json:"fontSize,omitempty"`
	LineHeight    float64 `json:"lineHeight,omitempty"`
	FontFamily    string  `json:"fontFamily,omitempty"`
	EditorWidth   string  `json:"editorWidth,omitempty"`
	FirstLineIndent bool  `json:"firstLineIndent,omitempty"`
}

// Project 小说项目实体
//
// WordCount 是章节字数的冗余汇总，读取链路以章节内容为准刷新。
type Project struct {
	Meta
	Name        string           `json:"name"`
	Type        string           `json:"type,omitempty"`
	Description string           `json:"description,omitempty"`
	TargetWords int              `json:"targetWords,omitempty"`
	WordCount   int              `json:"wordCount"`
	Status      ProjectStatus    `json:"status"`
	Settings    *ProjectSettings `json:"settings,omitempty"`
	Cover       string           `json:"cover,omitempty"`
}

// NewProject 创建新项目
func NewProject(name string) *Project {
	now := time.Now()
	p := &Project{
		Name:     name,
		Status:   ProjectStatusDraft,
		Settings: &ProjectSettings{},
	}
	p.Stamp(now)
	return p
}

// IsEditable 检查项目是否可编辑
func (p *Project) IsEditable() bool {
	return p.Status == ProjectStatusDraft || p.Status == ProjectStatusWriting
}

// CurrentProject 全局"最近打开的项目"指针文档
type CurrentProject struct {
	ProjectID string `json:"projectId"`
}

// CurrentChapter 项目内"最近打开的章节"指针文档
type CurrentChapter struct {
	ChapterID string `json:"chapterId"`
}
