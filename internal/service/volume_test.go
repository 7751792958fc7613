package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeService_CreateAppends(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	v1, err := c.Volumes.Create(ctx, "p1", "第一卷")
	require.NoError(t, err)
	v2, err := c.Volumes.Create(ctx, "p1", "第二卷")
	require.NoError(t, err)

	assert.Equal(t, 1, v1.Order)
	assert.Equal(t, 2, v2.Order)
}

func TestVolumeService_DeleteCascadesChapters(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	v1, err := c.Volumes.Create(ctx, "p1", "第一卷")
	require.NoError(t, err)
	v2, err := c.Volumes.Create(ctx, "p1", "第二卷")
	require.NoError(t, err)
	v3, err := c.Volumes.Create(ctx, "p1", "第三卷")
	require.NoError(t, err)

	_, err = c.Chapters.Create(ctx, "p1", v1.ID, "卷一章一", "")
	require.NoError(t, err)
	survivor, err := c.Chapters.Create(ctx, "p1", v2.ID, "卷二章一", "")
	require.NoError(t, err)
	_, err = c.Chapters.Create(ctx, "p1", v1.ID, "卷一章二", "")
	require.NoError(t, err)

	require.NoError(t, c.Volumes.Delete(ctx, "p1", v1.ID))

	chapters, err := c.Chapters.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, survivor.ID, chapters[0].ID)

	// 剩余卷重新编号为连续序号
	volumes, err := c.Volumes.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, volumes, 2)
	assert.Equal(t, v2.ID, volumes[0].ID)
	assert.Equal(t, 1, volumes[0].Order)
	assert.Equal(t, v3.ID, volumes[1].ID)
	assert.Equal(t, 2, volumes[1].Order)
}

func TestVolumeService_DeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	v, err := c.Volumes.Create(ctx, "p1", "第一卷")
	require.NoError(t, err)

	require.NoError(t, c.Volumes.Delete(ctx, "p1", "no-such-volume"))

	volumes, err := c.Volumes.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, volumes, 1)
	assert.Equal(t, v.ID, volumes[0].ID)
}
