// Package service 提供领域服务层
package service

import (
	"context"
	"sync"
	"time"

	"z-novel-studio/internal/config"
	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
	"z-novel-studio/pkg/logger"
	"z-novel-studio/pkg/metrics"
)

// SessionStatus 写作会话状态视图
type SessionStatus struct {
	Active    bool      `json:"active"`
	ProjectID string    `json:"projectId,omitempty"`
	ChapterID string    `json:"chapterId,omitempty"`
	Dirty     bool      `json:"dirty"`
	LastSaved time.Time `json:"lastSaved,omitempty"`
}

// SessionService 写作会话与自动保存
//
// 同一时刻最多一个活动会话（桌面端单窗口编辑）。草稿只存在内存里，
// 自动保存只在脏标记置位时落盘；保存失败脏标记保持置位，
// 下一个周期自动重试。
type SessionService struct {
	chapters *ChapterService
	projects *ProjectService
	enabled  bool
	interval time.Duration

	mu        sync.Mutex
	active    bool
	projectID string
	chapterID string
	draft     string
	dirty     bool
	lastSaved time.Time
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewSessionService 创建会话服务
func NewSessionService(chapters *ChapterService, projects *ProjectService, cfg *config.Config) *SessionService {
	interval := cfg.Autosave.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SessionService{
		chapters: chapters,
		projects: projects,
		enabled:  cfg.Autosave.Enabled,
		interval: interval,
	}
}

// Open 打开写作会话并启动自动保存
//
// 已有会话时先正常关闭（含冲洗草稿）再打开新会话；
// 最近打开的项目与章节指针随之更新。
func (s *SessionService) Open(ctx context.Context, projectID, chapterID string) (*SessionStatus, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	ch, err := s.chapters.Get(ctx, projectID, chapterID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, errors.New(errors.CodeChapterNotFound, "chapter not found").WithDetail(chapterID)
	}

	if err := s.Close(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.active = true
	s.projectID = projectID
	s.chapterID = chapterID
	s.draft = ch.Content
	s.dirty = false
	s.lastSaved = time.Time{}
	if s.enabled {
		loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		s.cancel = cancel
		s.done = make(chan struct{})
		go s.autosaveLoop(loopCtx, s.done)
	}
	s.mu.Unlock()

	if err := s.projects.SetCurrent(ctx, projectID); err != nil {
		logger.Warn(ctx, "failed to update current project pointer",
			"project_id", projectID, "error", err.Error())
	}
	if err := s.projects.SetCurrentChapter(ctx, projectID, chapterID); err != nil {
		logger.Warn(ctx, "failed to update current chapter pointer",
			"project_id", projectID, "chapter_id", chapterID, "error", err.Error())
	}

	logger.Info(ctx, "writing session opened",
		"project_id", projectID, "chapter_id", chapterID)
	return s.Status(), nil
}

// UpdateDraft 更新内存草稿并置脏标记
func (s *SessionService) UpdateDraft(ctx context.Context, content string) (*SessionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, errors.New(errors.CodeSessionState, "no active writing session")
	}
	if content != s.draft {
		s.draft = content
		s.dirty = true
	}
	return s.statusLocked(), nil
}

// Flush 立即冲洗脏草稿到存储
//
// 草稿干净时直接返回，不产生任何写入。
func (s *SessionService) Flush(ctx context.Context) (*SessionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, errors.New(errors.CodeSessionState, "no active writing session")
	}
	if err := s.flushLocked(ctx); err != nil {
		return nil, err
	}
	return s.statusLocked(), nil
}

// flushLocked 持锁冲洗草稿，调用方必须已持有 mu
func (s *SessionService) flushLocked(ctx context.Context) error {
	if !s.dirty {
		return nil
	}

	content := s.draft
	if _, err := s.chapters.Update(ctx, s.projectID, s.chapterID, ChapterPatch{Content: &content}); err != nil {
		return err
	}
	s.dirty = false
	s.lastSaved = time.Now()
	return nil
}

// Close 冲洗草稿并关闭会话，无活动会话时为空操作
func (s *SessionService) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return nil
	}

	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	// 先停自动保存循环，避免与最终冲洗并发写同一章节
	if cancel != nil {
		cancel()
		<-done
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flushLocked(ctx); err != nil {
		return err
	}

	logger.Info(ctx, "writing session closed",
		"project_id", s.projectID, "chapter_id", s.chapterID)
	s.active = false
	s.projectID = ""
	s.chapterID = ""
	s.draft = ""
	s.dirty = false
	return nil
}

// Status 返回当前会话状态
func (s *SessionService) Status() *SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *SessionService) statusLocked() *SessionStatus {
	return &SessionStatus{
		Active:    s.active,
		ProjectID: s.projectID,
		ChapterID: s.chapterID,
		Dirty:     s.dirty,
		LastSaved: s.lastSaved,
	}
}

// autosaveLoop 周期冲洗脏草稿，直到会话关闭
func (s *SessionService) autosaveLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.active {
				s.mu.Unlock()
				return
			}
			if !s.dirty {
				s.mu.Unlock()
				metrics.AutosaveTicksTotal.WithLabelValues("clean").Inc()
				continue
			}
			err := s.flushLocked(ctx)
			s.mu.Unlock()

			if err != nil {
				metrics.AutosaveTicksTotal.WithLabelValues("error").Inc()
				logger.Warn(ctx, "autosave failed, will retry next tick", "error", err.Error())
				continue
			}
			metrics.AutosaveTicksTotal.WithLabelValues("saved").Inc()
		}
	}
}

// CurrentChapter 返回会话章节的最新持久化实体，无会话时返回 nil
func (s *SessionService) CurrentChapter(ctx context.Context) (*entity.Chapter, error) {
	s.mu.Lock()
	projectID, chapterID, active := s.projectID, s.chapterID, s.active
	s.mu.Unlock()

	if !active {
		return nil, nil
	}
	return s.chapters.Get(ctx, projectID, chapterID)
}
