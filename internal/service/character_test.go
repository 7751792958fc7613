package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterService_Search(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	hero, err := c.Characters.Create(ctx, "p1", "张小凡", "主角")
	require.NoError(t, err)
	_, err = c.Characters.Create(ctx, "p1", "陆雪琪", "女主角")
	require.NoError(t, err)
	tags := []string{"反派", "鬼王宗"}
	_, err = c.Characters.Update(ctx, "p1", hero.ID, CharacterPatch{Tags: &tags})
	require.NoError(t, err)

	// 关键词命中名称
	matched, err := c.Characters.Search(ctx, "p1", "小凡")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "张小凡", matched[0].Name)

	// 关键词命中标签，大小写不敏感
	matched, err = c.Characters.Search(ctx, "p1", "鬼王")
	require.NoError(t, err)
	require.Len(t, matched, 1)

	// 空关键词返回全部
	matched, err = c.Characters.Search(ctx, "p1", "  ")
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	matched, err = c.Characters.Search(ctx, "p1", "无此人")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestCharacterService_UpdatePatchesFields(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestContainer()

	ch, err := c.Characters.Create(ctx, "p1", "张小凡", "主角")
	require.NoError(t, err)

	age := "16"
	desc := "草庙村少年"
	updated, err := c.Characters.Update(ctx, "p1", ch.ID, CharacterPatch{Age: &age, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "16", updated.Age)
	assert.Equal(t, "草庙村少年", updated.Description)
	assert.Equal(t, "主角", updated.Role)
}
