// Package entity 定义领域实体
package entity

import (
	"time"
)

// DateLayout dailyWords 账本的日期键格式
const DateLayout = "2006-01-02"

// WritingStats 写作统计实体
//
// DailyWords 是唯一的事实账本（日期 -> 当日新增字数），
// 其余聚合值全部在读取时从账本重新推导，绝不增量维护，
// 以保证聚合永远不会与账本漂移。
type WritingStats struct {
	ProjectID   string         `json:"projectId"`
	DailyWords  map[string]int `json:"dailyWords"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// NewWritingStats 创建空统计账本
func NewWritingStats(projectID string) *WritingStats {
	return &WritingStats{
		ProjectID:  projectID,
		DailyWords: map[string]int{},
	}
}

// Record 向指定日期累加字数增量
//
// 只统计正增量：删改不回收已写入的字数，
// 账本口径是"累计写过的字数"而非"当前留存的字数"。
func (s *WritingStats) Record(date time.Time, delta int) {
	if delta <= 0 {
		return
	}
	if s.DailyWords == nil {
		s.DailyWords = map[string]int{}
	}
	key := date.Format(DateLayout)
	s.DailyWords[key] += delta
	s.LastUpdated = time.Now()
}

// On 返回指定日期的字数
func (s *WritingStats) On(date time.Time) int {
	return s.DailyWords[date.Format(DateLayout)]
}

// Total 返回累计总字数
func (s *WritingStats) Total() int {
	total := 0
	for _, n := range s.DailyWords {
		total += n
	}
	return total
}

// RangeSum 返回 [from, to] 闭区间内（按自然日）的字数之和
func (s *WritingStats) RangeSum(from, to time.Time) int {
	fromKey := from.Format(DateLayout)
	toKey := to.Format(DateLayout)

	total := 0
	for key, n := range s.DailyWords {
		// 日期键格式固定，字符串比较即日期比较
		if key >= fromKey && key <= toKey {
			total += n
		}
	}
	return total
}

// Today 返回今日字数
func (s *WritingStats) Today(now time.Time) int {
	return s.On(now)
}

// Week 返回本周字数，weekStart 指定一周的起始日
func (s *WritingStats) Week(now time.Time, weekStart time.Weekday) int {
	offset := (int(now.Weekday()) - int(weekStart) + 7) % 7
	start := now.AddDate(0, 0, -offset)
	return s.RangeSum(start, start.AddDate(0, 0, 6))
}

// Month 返回本自然月字数
func (s *WritingStats) Month(now time.Time) int {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)
	return s.RangeSum(start, end)
}

// Year 返回本自然年字数
func (s *WritingStats) Year(now time.Time) int {
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), 12, 31, 0, 0, 0, 0, now.Location())
	return s.RangeSum(start, end)
}

// Streak 返回截至今日的连续写作天数
//
// 从今日向前逐日回溯，遇到零字数（或缺失）的自然日即中断。
func (s *WritingStats) Streak(now time.Time) int {
	streak := 0
	day := now
	for {
		if s.On(day) <= 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// AverageDaily 返回活跃日的日均字数
//
// 只有字数非零的日期算作活跃日，零字数日不稀释平均值。
func (s *WritingStats) AverageDaily() int {
	total := 0
	active := 0
	for _, n := range s.DailyWords {
		if n > 0 {
			total += n
			active++
		}
	}
	if active == 0 {
		return 0
	}
	return total / active
}
