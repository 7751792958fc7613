// Package storage 提供统一的文档存储适配器
//
// 适配器以"命名文本文档"为粒度对外提供读写能力，
// 文件系统、Redis 与 PostgreSQL 后端对同一能力集多态实现。
package storage

import (
	"context"
	"errors"
)

// ErrNotFound 文档不存在
//
// 读取缺失文档是正常状态（新项目就是空的），调用方据此回退默认值，
// 与真正的 I/O 故障严格区分。
var ErrNotFound = errors.New("storage: document not found")

// IsNotFound 检查是否为文档不存在错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Adapter 存储适配器能力接口
//
// 写入与删除失败向上传播（静默丢数据不可接受）；
// 读取缺失返回 ErrNotFound 而非一般错误。
type Adapter interface {
	// Read 读取文档内容，不存在时返回 ErrNotFound
	Read(ctx context.Context, path string) (string, error)

	// Write 写入文档内容（整体覆盖）
	Write(ctx context.Context, path string, data string) error

	// Delete 删除文档，删除不存在的文档视为成功
	Delete(ctx context.Context, path string) error

	// Exists 检查文档是否存在
	Exists(ctx context.Context, path string) (bool, error)

	// List 列出指定前缀的全部文档名，前缀为空列出全部
	List(ctx context.Context, prefix string) ([]string, error)

	// Mkdir 创建目录，非层级后端为 no-op
	Mkdir(ctx context.Context, path string) error

	// Backend 返回后端标识（file / redis / postgres / memory）
	Backend() string

	// Close 释放后端资源
	Close() error
}
