package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-studio/internal/domain/document"
)

func TestWorldService_CRUD(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	item, err := c.World.Create(ctx, "p1", "青云山", "地点")
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)

	desc := "门派驻地"
	updated, err := c.World.Update(ctx, "p1", item.ID, WorldPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "门派驻地", updated.Description)

	require.NoError(t, c.World.Delete(ctx, "p1", item.ID))
	got, err := c.World.Get(ctx, "p1", item.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWorldService_ListByCategory(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	_, err := c.World.Create(ctx, "p1", "青云山", "地点")
	require.NoError(t, err)
	_, err = c.World.Create(ctx, "p1", "诛仙剑", "法宝")
	require.NoError(t, err)

	places, err := c.World.ListByCategory(ctx, "p1", "地点")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "青云山", places[0].Name)
}

func TestWorldService_MigratesLegacyDocument(t *testing.T) {
	ctx := context.Background()
	c, adapter := newTestContainer()

	legacy := `[{"id":"w1","projectId":"p1","name":"青云山","category":"地点"}]`
	require.NoError(t, adapter.Write(ctx, document.WorldLegacy("p1"), legacy))

	items, err := c.World.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "青云山", items[0].Name)

	// 迁移后当前命名文档存在，后续写入只落在新文档
	ok, err := adapter.Exists(ctx, document.World("p1"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = c.World.Create(ctx, "p1", "诛仙剑", "法宝")
	require.NoError(t, err)
	items, err = c.World.List(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
