package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get("missing")
	require.False(t, ok)

	c.Set("projects.json", []string{"a", "b"})
	v, ok := c.Get("projects.json")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestCache_Expiry(t *testing.T) {
	c := New(time.Minute)

	c.SetTTL("k", "v", 10*time.Millisecond)
	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	// 过期条目在读取时就地逐出
	assert.Equal(t, 0, c.Len())
}

func TestCache_Delete(t *testing.T) {
	c := New(time.Minute)

	c.Set("k", "v")
	c.Delete("k")
	_, ok := c.Get("k")
	assert.False(t, ok)

	// 删除不存在的键不报错
	c.Delete("k")
}

func TestCache_Invalidate(t *testing.T) {
	c := New(time.Minute)

	c.Set("project_p1_chapters.json", 1)
	c.Set("project_p1_volumes.json", 2)
	c.Set("project_p2_chapters.json", 3)
	c.Set("settings.json", 4)

	removed := c.Invalidate("p1")
	assert.Equal(t, 2, removed)
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get("project_p2_chapters.json")
	assert.True(t, ok)
	_, ok = c.Get("settings.json")
	assert.True(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c := New(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCache_Sweeper(t *testing.T) {
	c := New(time.Minute)
	c.StartSweeper(10 * time.Millisecond)
	defer c.StopSweeper()

	c.SetTTL("short", "v", 5*time.Millisecond)
	c.SetTTL("long", "v", time.Minute)

	assert.Eventually(t, func() bool {
		return c.Len() == 1
	}, time.Second, 10*time.Millisecond)
}
