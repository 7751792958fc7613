package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-studio/internal/domain/document"
	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
)

func TestProjectService_GetMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	_, err := c.Projects.Get(ctx, "no-such-project")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeProjectNotFound))
}

func TestProjectService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	p, err := c.Projects.Create(ctx, "山河志", "长篇", "历史小说", 200000)
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	assert.Equal(t, 200000, p.TargetWords)

	name := "山河新志"
	updated, err := c.Projects.Update(ctx, p.ID, ProjectPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "山河新志", updated.Name)

	_, err = c.Projects.Update(ctx, "no-such-project", ProjectPatch{Name: &name})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeProjectNotFound))
}

func TestProjectService_CreateRejectsBlankName(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	_, err := c.Projects.Create(ctx, "   ", "", "", 0)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationFailed))
}

func TestProjectService_DeleteCascadesDocuments(t *testing.T) {
	ctx := context.Background()
	c, adapter := newTestContainer()

	p, err := c.Projects.Create(ctx, "山河志", "", "", 0)
	require.NoError(t, err)
	_, err = c.Chapters.Create(ctx, p.ID, "", "第一章", "今天天气很好。")
	require.NoError(t, err)
	require.NoError(t, c.Projects.SetCurrent(ctx, p.ID))

	require.NoError(t, c.Projects.Delete(ctx, p.ID))

	projects, err := c.Projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	// 从属文档随项目一并清理
	ok, err := adapter.Exists(ctx, document.Chapters(p.ID))
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = adapter.Exists(ctx, document.Stats(p.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	// 指向被删项目的全局指针被清除
	current, err := c.Projects.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Empty(t, current)
}

func TestProjectService_DeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	require.NoError(t, c.Projects.Delete(ctx, "no-such-project"))
}

func TestProjectService_CurrentPointers(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	current, err := c.Projects.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Empty(t, current)

	err = c.Projects.SetCurrent(ctx, "no-such-project")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeProjectNotFound))

	p, err := c.Projects.Create(ctx, "山河志", "", "", 0)
	require.NoError(t, err)
	require.NoError(t, c.Projects.SetCurrent(ctx, p.ID))
	current, err = c.Projects.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, current)

	require.NoError(t, c.Projects.SetCurrentChapter(ctx, p.ID, "ch-1"))
	chapterID, err := c.Projects.GetCurrentChapter(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "ch-1", chapterID)

	require.NoError(t, c.Projects.SetCurrent(ctx, ""))
	current, err = c.Projects.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Empty(t, current)
}

func TestProjectService_CoverRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	p, err := c.Projects.Create(ctx, "山河志", "", "", 0)
	require.NoError(t, err)

	cover, err := c.Projects.GetCover(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, cover)

	require.NoError(t, c.Projects.SetCover(ctx, p.ID, "data:image/png;base64,AAAA"))
	cover, err = c.Projects.GetCover(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", cover)
}

func TestProjectService_SetCoverPrunesBackups(t *testing.T) {
	ctx := context.Background()
	c, adapter := newTestContainer()

	keep := entity.BackupSettings{Enabled: true, KeepCount: 2}
	_, err := c.Settings.Update(ctx, SettingsPatch{Backup: &keep})
	require.NoError(t, err)

	p, err := c.Projects.Create(ctx, "山河志", "", "", 0)
	require.NoError(t, err)
	require.NoError(t, c.Projects.SetCover(ctx, p.ID, "cover-v1"))

	// 预置早于本次备份的历史备份，覆盖封面会把最旧的裁掉
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		name := document.CoverBackup(p.ID, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, adapter.Write(ctx, name, "old-backup"))
	}

	require.NoError(t, c.Projects.SetCover(ctx, p.ID, "cover-v2"))

	names, err := adapter.List(ctx, "project_"+p.ID+"_cover_")
	require.NoError(t, err)
	backups := 0
	for _, name := range names {
		if strings.HasSuffix(name, ".bak.txt") {
			backups++
		}
	}
	assert.Equal(t, 2, backups)

	cover, err := c.Projects.GetCover(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "cover-v2", cover)
}

func TestProjectService_RefreshWordCount(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	p, err := c.Projects.Create(ctx, "山河志", "", "", 0)
	require.NoError(t, err)
	_, err = c.Chapters.Create(ctx, p.ID, "", "第一章", "今天天气很好。")
	require.NoError(t, err)
	_, err = c.Chapters.Create(ctx, p.ID, "", "第二章", "hello")
	require.NoError(t, err)

	refreshed, err := c.Projects.RefreshWordCount(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, refreshed.WordCount)
}
