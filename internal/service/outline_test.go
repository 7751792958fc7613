package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/pkg/errors"
)

func TestOutlineService_CreateNumbersSiblings(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	root, err := c.Outlines.Create(ctx, "p1", "主线", entity.OutlineTypeMain, "")
	require.NoError(t, err)
	child1, err := c.Outlines.Create(ctx, "p1", "伏笔一", entity.OutlineTypeDetailed, root.ID)
	require.NoError(t, err)
	child2, err := c.Outlines.Create(ctx, "p1", "伏笔二", entity.OutlineTypeDetailed, root.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, root.Order)
	assert.Equal(t, 1, child1.Order)
	assert.Equal(t, 2, child2.Order)
}

func TestOutlineService_CreateRejectsBadType(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	_, err := c.Outlines.Create(ctx, "p1", "主线", entity.OutlineType("banana"), "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationFailed))
}

func TestOutlineService_UpdateRejectsSelfParent(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	item, err := c.Outlines.Create(ctx, "p1", "主线", entity.OutlineTypeMain, "")
	require.NoError(t, err)

	_, err = c.Outlines.Update(ctx, "p1", item.ID, OutlinePatch{ParentID: &item.ID})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationFailed))
}

func TestOutlineService_DeleteCascadesSubtree(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	root, err := c.Outlines.Create(ctx, "p1", "主线", entity.OutlineTypeMain, "")
	require.NoError(t, err)
	child, err := c.Outlines.Create(ctx, "p1", "第一幕", entity.OutlineTypeDetailed, root.ID)
	require.NoError(t, err)
	_, err = c.Outlines.Create(ctx, "p1", "第一场", entity.OutlineTypeDetailed, child.ID)
	require.NoError(t, err)
	other, err := c.Outlines.Create(ctx, "p1", "支线", entity.OutlineTypeMain, "")
	require.NoError(t, err)

	require.NoError(t, c.Outlines.Delete(ctx, "p1", root.ID))

	items, err := c.Outlines.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, other.ID, items[0].ID)
}
