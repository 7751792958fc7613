package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-studio/internal/domain/document"
	"z-novel-studio/pkg/errors"
)

// seedProjectData 造一个带章节、设置与封面的项目
func seedProjectData(t *testing.T, c *Container) string {
	t.Helper()
	ctx := context.Background()

	p, err := c.Projects.Create(ctx, "山河志", "长篇", "", 0)
	require.NoError(t, err)
	_, err = c.Chapters.Create(ctx, p.ID, "", "第一章", "今天天气很好。")
	require.NoError(t, err)
	_, err = c.Settings.Reset(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Projects.SetCover(ctx, p.ID, "data:image/png;base64,AAAA"))
	return p.ID
}

func TestDataService_ExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, adapter := newTestContainer()
	projectID := seedProjectData(t, c)

	env, err := c.Data.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExportVersion, env.Version)
	assert.Contains(t, env.Documents, "projects")
	assert.Contains(t, env.Documents, "settings")
	assert.Contains(t, env.Documents, documentKey(document.Chapters(projectID)))
	assert.Contains(t, env.Documents, documentKey(document.Cover(projectID)))

	data, err := json.Marshal(env)
	require.NoError(t, err)

	// 导入到全新的空容器，内容逐字节还原
	c2, adapter2 := newTestContainer()
	report, err := c2.Data.Import(ctx, data, false)
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)

	original, err := adapter.Read(ctx, document.Chapters(projectID))
	require.NoError(t, err)
	restored, err := adapter2.Read(ctx, document.Chapters(projectID))
	require.NoError(t, err)
	assert.Equal(t, original, restored)

	cover, err := c2.Projects.GetCover(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", cover)

	chapters, err := c2.Chapters.List(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "第一章", chapters[0].Title)
}

func TestDataService_ImportSkipsExisting(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()
	projectID := seedProjectData(t, c)

	env, err := c.Data.Export(ctx)
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)

	// 目标已有同名文档：默认跳过，overwrite 时覆盖
	report, err := c.Data.Import(ctx, data, false)
	require.NoError(t, err)
	assert.Empty(t, report.Imported)
	assert.NotEmpty(t, report.Skipped)

	report, err = c.Data.Import(ctx, data, true)
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)
	assert.NotEmpty(t, report.Imported)

	chapters, err := c.Chapters.List(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, chapters, 1)
}

func TestDataService_ImportMergesNewProjects(t *testing.T) {
	ctx := context.Background()
	source, _ := newTestContainer()
	sourceID := seedProjectData(t, source)

	env, err := source.Data.Export(ctx)
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)

	// 目标已有自己的项目：导入的新项目并入索引，两边共存
	target, _ := newTestContainer()
	local, err := target.Projects.Create(ctx, "本地项目", "", "", 0)
	require.NoError(t, err)

	report, err := target.Data.Import(ctx, data, false)
	require.NoError(t, err)
	assert.Contains(t, report.Imported, document.Projects)

	projects, err := target.Projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	chapters, err := target.Chapters.List(ctx, sourceID)
	require.NoError(t, err)
	assert.Len(t, chapters, 1)

	// 再次导入：两个项目 id 都已存在，整体跳过，本地改动不被碰
	patch := "本地改稿。"
	_, err = target.Chapters.Update(ctx, sourceID, chapters[0].ID, ChapterPatch{Content: &patch})
	require.NoError(t, err)

	report, err = target.Data.Import(ctx, data, false)
	require.NoError(t, err)
	assert.Empty(t, report.Imported)

	chapters, err = target.Chapters.List(ctx, sourceID)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "本地改稿。", chapters[0].Content)

	_, err = target.Projects.Get(ctx, local.ID)
	require.NoError(t, err)
}

func TestDataService_ImportRejectsBadPayload(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	_, err := c.Data.Import(ctx, []byte("not json"), false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeImportFormat))

	_, err = c.Data.Import(ctx, []byte(`{"projects":[]}`), false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeImportFormat))

	// 有 version 但缺 exportDate
	_, err = c.Data.Import(ctx, []byte(`{"version":"1.0","projects":[]}`), false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeImportFormat))

	// 缺项目索引：从属文档不能作为孤儿落进存储
	_, err = c.Data.Import(ctx,
		[]byte(`{"version":"1.0","exportDate":"2026-01-01T00:00:00Z","project_p9_chapters":[]}`), false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeImportFormat))
	exists, err := c.Data.store.Exists(ctx, document.Chapters("p9"))
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = c.Data.Import(ctx,
		[]byte(`{"version":"1.0","exportDate":"2026-01-01T00:00:00Z","projects":{"not":"a list"}}`), false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeImportFormat))
}

func TestDataService_CleanupRemovesOrphans(t *testing.T) {
	ctx := context.Background()
	c, adapter := newTestContainer()
	projectID := seedProjectData(t, c)

	require.NoError(t, adapter.Write(ctx, document.Chapters("ghost"), "[]"))
	require.NoError(t, adapter.Write(ctx, document.Stats("ghost"), "{}"))

	report, err := c.Data.Cleanup(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{document.Chapters("ghost"), document.Stats("ghost")},
		report.Removed)

	// 存活项目的文档原样保留
	ok, err := adapter.Exists(ctx, document.Chapters(projectID))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDataService_Reset(t *testing.T) {
	ctx := context.Background()
	c, adapter := newTestContainer()
	seedProjectData(t, c)

	require.NoError(t, c.Data.Reset(ctx))

	names, err := adapter.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)

	projects, err := c.Projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}
