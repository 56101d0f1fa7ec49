// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// referenceFileRow 参考文件内容行
type referenceFileRow struct {
	FileID    string    `gorm:"type:uuid;primaryKey;column:file_id"`
	Content   []byte    `gorm:"type:bytea;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName 指定表名
func (referenceFileRow) TableName() string {
	return "reference_file_contents"
}

// ReferenceFileRepository 参考文件内容仓储实现
type ReferenceFileRepository struct {
	client *Client
}

// NewReferenceFileRepository 创建参考文件仓储
func NewReferenceFileRepository(client *Client) *ReferenceFileRepository {
	return &ReferenceFileRepository{client: client}
}

// SaveContent 保存文件内容
func (r *ReferenceFileRepository) SaveContent(ctx context.Context, fileID string, content []byte) error {
	ctx, span := tracer.Start(ctx, "postgres.ReferenceFileRepository.SaveContent")
	defer span.End()

	row := &referenceFileRow{FileID: fileID, Content: content}
	if err := getDB(ctx, r.client.db).Create(row).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save file content: %w", err)
	}
	return nil
}

// GetContent 读取文件内容；未找到时返回 (nil, nil)
func (r *ReferenceFileRepository) GetContent(ctx context.Context, fileID string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "postgres.ReferenceFileRepository.GetContent")
	defer span.End()

	var row referenceFileRow
	err := getDB(ctx, r.client.db).First(&row, "file_id = ?", fileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get file content: %w", err)
	}
	return row.Content, nil
}

// DeleteContent 删除文件内容
func (r *ReferenceFileRepository) DeleteContent(ctx context.Context, fileID string) error {
	ctx, span := tracer.Start(ctx, "postgres.ReferenceFileRepository.DeleteContent")
	defer span.End()

	if err := getDB(ctx, r.client.db).Delete(&referenceFileRow{}, "file_id = ?", fileID).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete file content: %w", err)
	}
	return nil
}
