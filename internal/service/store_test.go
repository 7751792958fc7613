package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-studio/internal/infrastructure/cache"
	"z-novel-studio/internal/infrastructure/storage"
)

// countingAdapter 统计读取次数的内存适配器
type countingAdapter struct {
	*storage.MemoryAdapter
	reads atomic.Int64
}

func (a *countingAdapter) Read(ctx context.Context, path string) (string, error) {
	a.reads.Add(1)
	return a.MemoryAdapter.Read(ctx, path)
}

func TestReadJSON_CachesDefaultForMissingDocument(t *testing.T) {
	ctx := context.Background()
	adapter := &countingAdapter{MemoryAdapter: storage.NewMemoryAdapter()}
	store := NewStore(adapter, cache.New(time.Minute))

	for i := 0; i < 3; i++ {
		got, err := ReadJSON(ctx, store, "settings.json", "", time.Minute, map[string]int{})
		require.NoError(t, err)
		assert.Empty(t, got)
	}

	// 缺失文档的默认值同样进缓存，反复读取不穿透到适配器
	assert.EqualValues(t, 1, adapter.reads.Load())
}

func TestReadJSON_ReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	adapter := &countingAdapter{MemoryAdapter: storage.NewMemoryAdapter()}
	store := NewStore(adapter, cache.New(time.Minute))
	require.NoError(t, adapter.Write(ctx, "counts.json", `{"a":1}`))

	first, err := ReadJSON(ctx, store, "counts.json", "", time.Minute, map[string]int{})
	require.NoError(t, err)
	first["a"] = 99

	second, err := ReadJSON(ctx, store, "counts.json", "", time.Minute, map[string]int{})
	require.NoError(t, err)
	assert.Equal(t, 1, second["a"])
	assert.EqualValues(t, 1, adapter.reads.Load())
}
