package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-studio/pkg/errors"
)

func openTestSession(t *testing.T) (*Container, string, string) {
	t.Helper()
	ctx := context.Background()
	c, _ := newTestContainer()

	p, err := c.Projects.Create(ctx, "山河志", "", "", 0)
	require.NoError(t, err)
	ch, err := c.Chapters.Create(ctx, p.ID, "", "第一章", "初稿。")
	require.NoError(t, err)

	status, err := c.Session.Open(ctx, p.ID, ch.ID)
	require.NoError(t, err)
	require.True(t, status.Active)
	return c, p.ID, ch.ID
}

func TestSessionService_OpenValidatesTargets(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	_, err := c.Session.Open(ctx, "no-such-project", "no-such-chapter")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeProjectNotFound))

	p, err := c.Projects.Create(ctx, "山河志", "", "", 0)
	require.NoError(t, err)
	_, err = c.Session.Open(ctx, p.ID, "no-such-chapter")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeChapterNotFound))
}

func TestSessionService_OpenUpdatesPointers(t *testing.T) {
	ctx := context.Background()
	c, projectID, chapterID := openTestSession(t)

	current, err := c.Projects.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, projectID, current)

	got, err := c.Projects.GetCurrentChapter(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, chapterID, got)
}

func TestSessionService_UpdateDraftRequiresSession(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	_, err := c.Session.UpdateDraft(ctx, "内容")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeSessionState))

	_, err = c.Session.Flush(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeSessionState))
}

func TestSessionService_DraftDirtyLifecycle(t *testing.T) {
	ctx := context.Background()
	c, projectID, chapterID := openTestSession(t)

	// 内容没变不置脏
	status, err := c.Session.UpdateDraft(ctx, "初稿。")
	require.NoError(t, err)
	assert.False(t, status.Dirty)

	status, err = c.Session.UpdateDraft(ctx, "初稿。改了一句。")
	require.NoError(t, err)
	assert.True(t, status.Dirty)

	// 冲洗前存储里仍是旧内容
	ch, err := c.Chapters.Get(ctx, projectID, chapterID)
	require.NoError(t, err)
	assert.Equal(t, "初稿。", ch.Content)

	status, err = c.Session.Flush(ctx)
	require.NoError(t, err)
	assert.False(t, status.Dirty)
	assert.False(t, status.LastSaved.IsZero())

	ch, err = c.Chapters.Get(ctx, projectID, chapterID)
	require.NoError(t, err)
	assert.Equal(t, "初稿。改了一句。", ch.Content)

	// 干净时再冲洗不产生写入，保存时间不变
	saved := status.LastSaved
	status, err = c.Session.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, status.LastSaved)
}

func TestSessionService_CloseFlushesDraft(t *testing.T) {
	ctx := context.Background()
	c, projectID, chapterID := openTestSession(t)

	_, err := c.Session.UpdateDraft(ctx, "终稿。")
	require.NoError(t, err)
	require.NoError(t, c.Session.Close(ctx))

	status := c.Session.Status()
	assert.False(t, status.Active)

	ch, err := c.Chapters.Get(ctx, projectID, chapterID)
	require.NoError(t, err)
	assert.Equal(t, "终稿。", ch.Content)

	// 无活动会话时关闭为空操作
	require.NoError(t, c.Session.Close(ctx))
}

func TestSessionService_ReopenSwitchesChapter(t *testing.T) {
	ctx := context.Background()
	c, projectID, chapterID := openTestSession(t)

	ch2, err := c.Chapters.Create(ctx, projectID, "", "第二章", "")
	require.NoError(t, err)

	_, err = c.Session.UpdateDraft(ctx, "第一章终稿。")
	require.NoError(t, err)

	// 切换章节先冲洗并关闭旧会话
	status, err := c.Session.Open(ctx, projectID, ch2.ID)
	require.NoError(t, err)
	assert.Equal(t, ch2.ID, status.ChapterID)
	assert.False(t, status.Dirty)

	old, err := c.Chapters.Get(ctx, projectID, chapterID)
	require.NoError(t, err)
	assert.Equal(t, "第一章终稿。", old.Content)

	current, err := c.Session.CurrentChapter(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, ch2.ID, current.ID)
}
