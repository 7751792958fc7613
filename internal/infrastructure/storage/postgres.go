// Package storage 提供统一的文档存储适配器
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"z-novel-studio/internal/config"
	"z-novel-studio/pkg/metrics"
)

var pgTracer = otel.Tracer("storage.postgres")

// PostgresAdapter PostgreSQL 后端
//
// 文档整体存放在单张 documents 表里（path 主键 + content 文本），
// 保持与其他后端相同的"整文档读写"语义，不做行级映射。
type PostgresAdapter struct {
	db *sql.DB
}

// NewPostgresAdapter 创建 PostgreSQL 后端并初始化文档表
func NewPostgresAdapter(cfg *config.PostgresConfig) (*PostgresAdapter, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS documents (
		path       TEXT PRIMARY KEY,
		content    TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init documents table: %w", err)
	}

	return &PostgresAdapter{db: db}, nil
}

// Backend 返回后端标识
func (a *PostgresAdapter) Backend() string {
	return "postgres"
}

// Read 读取文档内容
func (a *PostgresAdapter) Read(ctx context.Context, path string) (string, error) {
	ctx, span := pgTracer.Start(ctx, "storage.postgres.Read",
		trace.WithAttributes(attribute.String("storage.path", path)))
	defer span.End()
	start := time.Now()

	var content string
	err := a.db.QueryRowContext(ctx,
		`SELECT content FROM documents WHERE path = $1`, path).Scan(&content)
	if err != nil {
		if err == sql.ErrNoRows {
			observe("postgres", "read", start, ErrNotFound)
			return "", ErrNotFound
		}
		span.RecordError(err)
		observe("postgres", "read", start, err)
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	observe("postgres", "read", start, nil)
	return content, nil
}

// Write 写入文档内容
func (a *PostgresAdapter) Write(ctx context.Context, path string, data string) error {
	ctx, span := pgTracer.Start(ctx, "storage.postgres.Write",
		trace.WithAttributes(
			attribute.String("storage.path", path),
			attribute.Int("storage.size", len(data)),
		))
	defer span.End()
	start := time.Now()

	_, err := a.db.ExecContext(ctx,
		`INSERT INTO documents (path, content, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (path) DO UPDATE SET content = EXCLUDED.content, updated_at = now()`,
		path, data)
	if err != nil {
		span.RecordError(err)
		observe("postgres", "write", start, err)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	metrics.StorageDocumentSize.WithLabelValues("postgres").Observe(float64(len(data)))
	observe("postgres", "write", start, nil)
	return nil
}

// Delete 删除文档
func (a *PostgresAdapter) Delete(ctx context.Context, path string) error {
	ctx, span := pgTracer.Start(ctx, "storage.postgres.Delete",
		trace.WithAttributes(attribute.String("storage.path", path)))
	defer span.End()
	start := time.Now()

	if _, err := a.db.ExecContext(ctx,
		`DELETE FROM documents WHERE path = $1`, path); err != nil {
		span.RecordError(err)
		observe("postgres", "delete", start, err)
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	observe("postgres", "delete", start, nil)
	return nil
}

// Exists 检查文档是否存在
func (a *PostgresAdapter) Exists(ctx context.Context, path string) (bool, error) {
	var exists bool
	err := a.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE path = $1)`, path).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}
	return exists, nil
}

// List 列出指定前缀的文档名
func (a *PostgresAdapter) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, span := pgTracer.Start(ctx, "storage.postgres.List",
		trace.WithAttributes(attribute.String("storage.prefix", prefix)))
	defer span.End()
	start := time.Now()

	rows, err := a.db.QueryContext(ctx,
		`SELECT path FROM documents WHERE path LIKE $1 || '%' ORDER BY path`, prefix)
	if err != nil {
		span.RecordError(err)
		observe("postgres", "list", start, err)
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan document path: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	observe("postgres", "list", start, nil)
	return names, nil
}

// Mkdir 非层级后端，no-op
func (a *PostgresAdapter) Mkdir(ctx context.Context, path string) error {
	return nil
}

// Close 关闭连接池
func (a *PostgresAdapter) Close() error {
	return a.db.Close()
}
