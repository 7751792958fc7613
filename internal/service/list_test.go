package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-studio/internal/domain/entity"
	"z-novel-studio/internal/infrastructure/cache"
	"z-novel-studio/internal/infrastructure/storage"
	"z-novel-studio/pkg/errors"
)

// brokenWriteAdapter 可开关写失败的内存适配器
type brokenWriteAdapter struct {
	*storage.MemoryAdapter
	failWrites bool
}

func (a *brokenWriteAdapter) Write(ctx context.Context, path, data string) error {
	if a.failWrites {
		return errors.New(errors.CodeStorageError, "disk full")
	}
	return a.MemoryAdapter.Write(ctx, path, data)
}

func newVolumeList() (*ListService[*entity.Volume], *storage.MemoryAdapter) {
	adapter := storage.NewMemoryAdapter()
	return newVolumeListOver(adapter), adapter
}

func newVolumeListOver(adapter storage.Adapter) *ListService[*entity.Volume] {
	store := NewStore(adapter, cache.New(time.Minute))
	return NewListService(store, ListConfig[*entity.Volume]{
		Name: "volume",
		FileName: func(scope string) string {
			return "project_" + scope + "_volumes.json"
		},
		Less: func(a, b *entity.Volume) bool {
			return a.Order < b.Order
		},
		Validate: func(v *entity.Volume) error {
			if v.Title == "" {
				return errors.New(errors.CodeValidationFailed, "volume title is required")
			}
			return nil
		},
		SetOrder: func(v *entity.Volume, order int) {
			v.Order = order
		},
	})
}

func TestListService_CreateAssignsID(t *testing.T) {
	ctx := context.Background()
	list, _ := newVolumeList()

	v := &entity.Volume{ProjectID: "p1", Title: "第一卷"}
	created, err := list.Create(ctx, "p1", v)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := list.GetByID(ctx, "p1", created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "第一卷", got.Title)
}

func TestListService_CreateValidates(t *testing.T) {
	ctx := context.Background()
	list, _ := newVolumeList()

	_, err := list.Create(ctx, "p1", &entity.Volume{ProjectID: "p1"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationFailed))

	items, err := list.List(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListService_GetByID_MissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	list, _ := newVolumeList()

	got, err := list.GetByID(ctx, "p1", "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListService_ListSorts(t *testing.T) {
	ctx := context.Background()
	list, _ := newVolumeList()

	for i, title := range []string{"乙", "甲"} {
		v := &entity.Volume{ProjectID: "p1", Title: title, Order: 2 - i}
		_, err := list.Create(ctx, "p1", v)
		require.NoError(t, err)
	}

	items, err := list.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "甲", items[0].Title)
	assert.Equal(t, "乙", items[1].Title)
}

func TestListService_Update(t *testing.T) {
	ctx := context.Background()
	list, _ := newVolumeList()

	created, err := list.Create(ctx, "p1", &entity.Volume{ProjectID: "p1", Title: "旧标题"})
	require.NoError(t, err)

	updated, err := list.Update(ctx, "p1", created.ID, func(v *entity.Volume) error {
		v.Title = "新标题"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "新标题", updated.Title)

	_, err = list.Update(ctx, "p1", "missing", nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeItemNotFound))
}

func TestListService_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	list, _ := newVolumeList()

	created, err := list.Create(ctx, "p1", &entity.Volume{ProjectID: "p1", Title: "卷"})
	require.NoError(t, err)

	require.NoError(t, list.Delete(ctx, "p1", created.ID))
	require.NoError(t, list.Delete(ctx, "p1", created.ID))

	items, err := list.List(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListService_UpdateValidationFailureKeepsOldState(t *testing.T) {
	ctx := context.Background()
	list, _ := newVolumeList()

	created, err := list.Create(ctx, "p1", &entity.Volume{ProjectID: "p1", Title: "旧标题"})
	require.NoError(t, err)

	// 预热缓存
	_, err = list.List(ctx, "p1")
	require.NoError(t, err)

	_, err = list.Update(ctx, "p1", created.ID, func(v *entity.Volume) error {
		v.Title = ""
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationFailed))

	// 校验失败的补丁不能透过缓存泄漏出去
	got, err := list.GetByID(ctx, "p1", created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "旧标题", got.Title)
}

func TestListService_UpdateWriteFailureKeepsOldState(t *testing.T) {
	ctx := context.Background()
	adapter := &brokenWriteAdapter{MemoryAdapter: storage.NewMemoryAdapter()}
	list := newVolumeListOver(adapter)

	created, err := list.Create(ctx, "p1", &entity.Volume{ProjectID: "p1", Title: "旧标题"})
	require.NoError(t, err)
	_, err = list.List(ctx, "p1")
	require.NoError(t, err)

	adapter.failWrites = true
	_, err = list.Update(ctx, "p1", created.ID, func(v *entity.Volume) error {
		v.Title = "新标题"
		return nil
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeStorageError))

	// 落盘失败后读到的必须仍是持久化过的状态
	got, err := list.GetByID(ctx, "p1", created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "旧标题", got.Title)
}

func TestListService_ReturnedItemsAreCopies(t *testing.T) {
	ctx := context.Background()
	list, _ := newVolumeList()

	created, err := list.Create(ctx, "p1", &entity.Volume{ProjectID: "p1", Title: "卷"})
	require.NoError(t, err)

	got, err := list.GetByID(ctx, "p1", created.ID)
	require.NoError(t, err)
	got.Title = "调用方乱改"

	again, err := list.GetByID(ctx, "p1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "卷", again.Title)
}

func TestListService_Reorder(t *testing.T) {
	ctx := context.Background()
	list, _ := newVolumeList()

	ids := make([]string, 0, 3)
	for _, title := range []string{"A", "B", "C"} {
		v, err := list.Create(ctx, "p1", &entity.Volume{ProjectID: "p1", Title: title})
		require.NoError(t, err)
		ids = append(ids, v.ID)
	}

	// 指定 C、A 顺序，未提及的 B 排在其后；未知 ID 静默忽略
	err := list.Reorder(ctx, "p1", []string{ids[2], "unknown", ids[0]})
	require.NoError(t, err)

	items, err := list.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "C", items[0].Title)
	assert.Equal(t, "A", items[1].Title)
	assert.Equal(t, "B", items[2].Title)
	for i, item := range items {
		assert.Equal(t, i+1, item.Order)
	}
}

func TestListService_CacheTransparency(t *testing.T) {
	ctx := context.Background()
	list, adapter := newVolumeList()

	created, err := list.Create(ctx, "p1", &entity.Volume{ProjectID: "p1", Title: "卷"})
	require.NoError(t, err)

	// 预热缓存
	_, err = list.List(ctx, "p1")
	require.NoError(t, err)

	// 绕过服务直接清空存储，缓存失效后读取必须反映存储状态
	require.NoError(t, adapter.Write(ctx, "project_p1_volumes.json", "[]"))
	require.NoError(t, list.Delete(ctx, "p1", created.ID))

	items, err := list.List(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
