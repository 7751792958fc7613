// Package service 提供领域服务层
package service

import (
	"context"
	"strings"
	"time"

	"z-novel-studio/internal/config"
	"z-novel-studio/internal/domain/document"
	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/metrics"
)

// StatsSummary 写作统计聚合视图
//
// 所有聚合值在每次读取时从 dailyWords 账本重新推导。
type StatsSummary struct {
	ProjectID         string         `json:"projectId"`
	TodayWords        int            `json:"todayWords"`
	WeekWords         int            `json:"weekWords"`
	MonthWords        int            `json:"monthWords"`
	YearWords         int            `json:"yearWords"`
	TotalWords        int            `json:"totalWords"`
	StreakDays        int            `json:"streakDays"`
	AverageDailyWords int            `json:"averageDailyWords"`
	DailyWords        map[string]int `json:"dailyWords"`
	LastUpdated       time.Time      `json:"lastUpdated"`
}

// StatsService 写作统计服务
type StatsService struct {
	store     *Store
	ttl       time.Duration
	weekStart time.Weekday
}

// NewStatsService 创建写作统计服务
func NewStatsService(store *Store, cfg *config.Config) *StatsService {
	weekStart := time.Monday
	if strings.EqualFold(cfg.Stats.WeekStart, "sunday") {
		weekStart = time.Sunday
	}
	return &StatsService{
		store:     store,
		ttl:       cfg.Cache.DefaultTTL,
		weekStart: weekStart,
	}
}

// Get 返回项目的统计账本，文档缺失时返回空账本
func (s *StatsService) Get(ctx context.Context, projectID string) (*entity.WritingStats, error) {
	stats, err := ReadJSON(ctx, s.store, document.Stats(projectID), "", s.ttl, (*entity.WritingStats)(nil))
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return entity.NewWritingStats(projectID), nil
	}
	if stats.ProjectID == "" {
		stats.ProjectID = projectID
	}
	return stats, nil
}

// Summary 返回当前时刻的统计聚合
func (s *StatsService) Summary(ctx context.Context, projectID string) (*StatsSummary, error) {
	stats, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &StatsSummary{
		ProjectID:         projectID,
		TodayWords:        stats.Today(now),
		WeekWords:         stats.Week(now, s.weekStart),
		MonthWords:        stats.Month(now),
		YearWords:         stats.Year(now),
		TotalWords:        stats.Total(),
		StreakDays:        stats.Streak(now),
		AverageDailyWords: stats.AverageDaily(),
		DailyWords:        stats.DailyWords,
		LastUpdated:       stats.LastUpdated,
	}, nil
}

// RecordDelta 向今日账本累加字数增量并持久化
//
// 非正增量直接忽略：删改不回收已写过的字数。
func (s *StatsService) RecordDelta(ctx context.Context, projectID string, delta int) error {
	if delta <= 0 {
		return nil
	}

	stats, err := s.Get(ctx, projectID)
	if err != nil {
		return err
	}
	stats.Record(time.Now(), delta)
	metrics.WordsRecordedTotal.Add(float64(delta))

	return WriteJSON(ctx, s.store, document.Stats(projectID), "", stats)
}
