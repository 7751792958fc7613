// Package storage 提供统一的文档存储适配器
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"z-novel-studio/pkg/metrics"
)

var fileTracer = otel.Tracer("storage.file")

// FileAdapter 文件系统后端
//
// 每个文档对应数据目录下的一个文件，文档名即文件名（扁平命名空间）。
type FileAdapter struct {
	dataDir string
}

// NewFileAdapter 创建文件系统后端，确保数据目录存在
func NewFileAdapter(dataDir string) (*FileAdapter, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data dir is empty")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
	}
	return &FileAdapter{dataDir: dataDir}, nil
}

// Backend 返回后端标识
func (a *FileAdapter) Backend() string {
	return "file"
}

// resolve 将文档名解析为数据目录内的绝对路径
func (a *FileAdapter) resolve(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if cleaned == "." || cleaned == ".." ||
		strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) ||
		filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid document path: %s", path)
	}
	return filepath.Join(a.dataDir, cleaned), nil
}

// Read 读取文档内容
func (a *FileAdapter) Read(ctx context.Context, path string) (string, error) {
	_, span := fileTracer.Start(ctx, "storage.file.Read",
		trace.WithAttributes(attribute.String("storage.path", path)))
	defer span.End()
	start := time.Now()

	full, err := a.resolve(path)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			observe("file", "read", start, ErrNotFound)
			return "", ErrNotFound
		}
		span.RecordError(err)
		observe("file", "read", start, err)
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	observe("file", "read", start, nil)
	return string(data), nil
}

// Write 写入文档内容
//
// 先写临时文件再原子改名，避免进程中断留下半写的文档。
func (a *FileAdapter) Write(ctx context.Context, path string, data string) error {
	_, span := fileTracer.Start(ctx, "storage.file.Write",
		trace.WithAttributes(
			attribute.String("storage.path", path),
			attribute.Int("storage.size", len(data)),
		))
	defer span.End()
	start := time.Now()

	full, err := a.resolve(path)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		span.RecordError(err)
		observe("file", "write", start, err)
		return fmt.Errorf("failed to prepare dir for %s: %w", path, err)
	}

	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		span.RecordError(err)
		observe("file", "write", start, err)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		span.RecordError(err)
		observe("file", "write", start, err)
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}

	metrics.StorageDocumentSize.WithLabelValues("file").Observe(float64(len(data)))
	observe("file", "write", start, nil)
	return nil
}

// Delete 删除文档
func (a *FileAdapter) Delete(ctx context.Context, path string) error {
	_, span := fileTracer.Start(ctx, "storage.file.Delete",
		trace.WithAttributes(attribute.String("storage.path", path)))
	defer span.End()
	start := time.Now()

	full, err := a.resolve(path)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		span.RecordError(err)
		observe("file", "delete", start, err)
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	observe("file", "delete", start, nil)
	return nil
}

// Exists 检查文档是否存在
func (a *FileAdapter) Exists(ctx context.Context, path string) (bool, error) {
	full, err := a.resolve(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return true, nil
}

// List 列出指定前缀的文档名
func (a *FileAdapter) List(ctx context.Context, prefix string) ([]string, error) {
	_, span := fileTracer.Start(ctx, "storage.file.List",
		trace.WithAttributes(attribute.String("storage.prefix", prefix)))
	defer span.End()
	start := time.Now()

	entries, err := os.ReadDir(a.dataDir)
	if err != nil {
		span.RecordError(err)
		observe("file", "list", start, err)
		return nil, fmt.Errorf("failed to list data dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".tmp") {
			continue
		}
		if prefix == "" || strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}

	observe("file", "list", start, nil)
	return names, nil
}

// Mkdir 创建数据目录下的子目录
func (a *FileAdapter) Mkdir(ctx context.Context, path string) error {
	full, err := a.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, 0o755); err != nil {
		return fmt.Errorf("failed to mkdir %s: %w", path, err)
	}
	return nil
}

// Close 释放资源（文件后端无持有资源）
func (a *FileAdapter) Close() error {
	return nil
}

// observe 记录适配器操作指标
func observe(backend, op string, start time.Time, err error) {
	status := "ok"
	switch {
	case IsNotFound(err):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	metrics.StorageOpsTotal.WithLabelValues(backend, op, status).Inc()
	metrics.StorageOpDuration.WithLabelValues(backend, op).Observe(time.Since(start).Seconds())
}
