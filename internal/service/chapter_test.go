package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapterService_CreateAppendsToPartition(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	ch1, err := c.Chapters.Create(ctx, "p1", "v1", "第一章", "")
	require.NoError(t, err)
	ch2, err := c.Chapters.Create(ctx, "p1", "v1", "第二章", "")
	require.NoError(t, err)
	// 另一卷的分区从 1 重新开始
	other, err := c.Chapters.Create(ctx, "p1", "v2", "别卷第一章", "")
	require.NoError(t, err)

	assert.Equal(t, 1, ch1.Order)
	assert.Equal(t, 2, ch2.Order)
	assert.Equal(t, 1, other.Order)
}

func TestChapterService_CreateCountsWords(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	ch, err := c.Chapters.Create(ctx, "p1", "", "第一章", "今天天气很好。")
	require.NoError(t, err)
	assert.Equal(t, 7, ch.WordCount)

	// 初始内容计入当日写作统计
	stats, err := c.Stats.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Today(time.Now()))
}

func TestChapterService_UpdateContentRecordsDelta(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	ch, err := c.Chapters.Create(ctx, "p1", "", "第一章", "今天天气很好。")
	require.NoError(t, err)

	longer := "今天天气很好。出门散步去了。"
	updated, err := c.Chapters.Update(ctx, "p1", ch.ID, ChapterPatch{Content: &longer})
	require.NoError(t, err)
	assert.Equal(t, 14, updated.WordCount)

	stats, err := c.Stats.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 14, stats.Today(time.Now()))

	// 删减内容不回收已写过的字数
	shorter := "好。"
	updated, err = c.Chapters.Update(ctx, "p1", ch.ID, ChapterPatch{Content: &shorter})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.WordCount)

	stats, err = c.Stats.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 14, stats.Today(time.Now()))
}

func TestChapterService_UpdateSameContentNoDelta(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	content := "今天天气很好。"
	ch, err := c.Chapters.Create(ctx, "p1", "", "第一章", content)
	require.NoError(t, err)

	_, err = c.Chapters.Update(ctx, "p1", ch.ID, ChapterPatch{Content: &content})
	require.NoError(t, err)

	stats, err := c.Stats.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Today(time.Now()))
}

func TestChapterService_DeleteRenumbersPartition(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	chA, err := c.Chapters.Create(ctx, "p1", "v1", "A", "")
	require.NoError(t, err)
	chB, err := c.Chapters.Create(ctx, "p1", "v1", "B", "")
	require.NoError(t, err)
	chC, err := c.Chapters.Create(ctx, "p1", "v1", "C", "")
	require.NoError(t, err)
	_ = chA

	require.NoError(t, c.Chapters.Delete(ctx, "p1", chB.ID))

	chapters, err := c.Chapters.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "A", chapters[0].Title)
	assert.Equal(t, 1, chapters[0].Order)
	assert.Equal(t, "C", chapters[1].Title)
	assert.Equal(t, 2, chapters[1].Order)
	assert.Equal(t, chC.ID, chapters[1].ID)
}

func TestChapterService_Reorder(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	chA, err := c.Chapters.Create(ctx, "p1", "v1", "A", "")
	require.NoError(t, err)
	chB, err := c.Chapters.Create(ctx, "p1", "v1", "B", "")
	require.NoError(t, err)
	chC, err := c.Chapters.Create(ctx, "p1", "v1", "C", "")
	require.NoError(t, err)

	require.NoError(t, c.Chapters.Reorder(ctx, "p1", "v1", []string{chC.ID, chA.ID}))

	chapters, err := c.Chapters.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, "C", chapters[0].Title)
	assert.Equal(t, "A", chapters[1].Title)
	assert.Equal(t, "B", chapters[2].Title)
	_ = chB
}

func TestChapterService_MoveToVolume(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	chA, err := c.Chapters.Create(ctx, "p1", "v1", "A", "")
	require.NoError(t, err)
	chB, err := c.Chapters.Create(ctx, "p1", "v1", "B", "")
	require.NoError(t, err)
	existing, err := c.Chapters.Create(ctx, "p1", "v2", "X", "")
	require.NoError(t, err)
	_ = existing

	moved, err := c.Chapters.MoveToVolume(ctx, "p1", chA.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", moved.VolumeID)
	assert.Equal(t, 2, moved.Order)

	// 原分区重新编号
	got, err := c.Chapters.Get(ctx, "p1", chB.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Order)
}

func TestChapterService_TotalWords(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	_, err := c.Chapters.Create(ctx, "p1", "", "一", "今天天气很好。")
	require.NoError(t, err)
	_, err = c.Chapters.Create(ctx, "p1", "", "二", "hello")
	require.NoError(t, err)

	total, err := c.Chapters.TotalWords(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 12, total)
}
