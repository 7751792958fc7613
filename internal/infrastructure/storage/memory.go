// Package storage 提供统一的文档存储适配器
package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryAdapter 内存后端
//
// 测试用假实现，与真实后端实现同一接口；
// 服务层测试直接对它构造，不经过任何单例。
type MemoryAdapter struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMemoryAdapter 创建内存后端
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		docs: make(map[string]string),
	}
}

// Backend 返回后端标识
func (a *MemoryAdapter) Backend() string {
	return "memory"
}

// Read 读取文档内容
func (a *MemoryAdapter) Read(ctx context.Context, path string) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	data, ok := a.docs[path]
	if !ok {
		return "", ErrNotFound
	}
	return data, nil
}

// Write 写入文档内容
func (a *MemoryAdapter) Write(ctx context.Context, path string, data string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.docs[path] = data
	return nil
}

// Delete 删除文档
func (a *MemoryAdapter) Delete(ctx context.Context, path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.docs, path)
	return nil
}

// Exists 检查文档是否存在
func (a *MemoryAdapter) Exists(ctx context.Context, path string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	_, ok := a.docs[path]
	return ok, nil
}

// List 列出指定前缀的文档名
func (a *MemoryAdapter) List(ctx context.Context, prefix string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var names []string
	for name := range a.docs {
		if prefix == "" || strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Mkdir no-op
func (a *MemoryAdapter) Mkdir(ctx context.Context, path string) error {
	return nil
}

// Close no-op
func (a *MemoryAdapter) Close() error {
	return nil
}
