// Package entity 定义领域实体
package entity

import (
	"time"
	"unicode"
)

// ChapterStatus 章节状态
type ChapterStatus string

const (
	ChapterStatusDraft     ChapterStatus = "draft"
	ChapterStatusWriting   ChapterStatus = "writing"
	ChapterStatusReview    ChapterStatus = "review"
	ChapterStatusCompleted ChapterStatus = "completed"
)

// Chapter 章节实体
//
// Order 在 (projectId, volumeId) 分区内从 1 开始连续递增，
// 删除或重排后由服务层重新编号。
type Chapter struct {
	Meta
	ProjectID string        `json:"projectId"`
	VolumeID  string        `json:"volumeId,omitempty"`
	Title     string        `json:"title"`
	Order     int           `json:"order"`
	Content   string        `json:"content"`
	WordCount int           `json:"wordCount"`
	Status    ChapterStatus `json:"status"`
}

// NewChapter 创建新章节
func NewChapter(projectID, volumeID, title string) *Chapter {
	now := time.Now()
	c := &Chapter{
		ProjectID: projectID,
		VolumeID:  volumeID,
		Title:     title,
		Status:    ChapterStatusDraft,
	}
	c.Stamp(now)
	return c
}

// SetContent 设置章节内容并全量重算字数
//
// 字数永远从内容重新计算，绝不信任调用方传入的值，
// 因此重复写入同一内容不会产生偏差。
func (c *Chapter) SetContent(content string) {
	c.Content = content
	c.WordCount = CountWords(content)
	c.Touch(time.Now())
}

// CountWords 统计非空白字符数
func CountWords(s string) int {
	count := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}
