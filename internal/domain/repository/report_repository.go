// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"report-ai-api/internal/domain/entity"
)

// ReportFilter 报告过滤条件
type ReportFilter struct {
	OwnerID string
	Status  entity.ReportStatus
	Keyword string
}

// ReportRepository 报告仓储接口
type ReportRepository interface {
	// Create 创建报告
	Create(ctx context.Context, report *entity.Report) error

	// GetByID 根据 ID 获取报告
	GetByID(ctx context.Context, id string) (*entity.Report, error)

	// Update 更新报告（整体写回，含段落与参考资料）
	Update(ctx context.Context, report *entity.Report) error

	// Delete 删除报告
	Delete(ctx context.Context, id string) error

	// List 获取报告列表
	List(ctx context.Context, filter *ReportFilter, pagination Pagination) (*PagedResult[*entity.Report], error)

	// ListByOwner 获取用户报告列表
	ListByOwner(ctx context.Context, ownerID string, pagination Pagination) (*PagedResult[*entity.Report], error)

	// UpdateStatus 更新报告状态
	UpdateStatus(ctx context.Context, id string, status entity.ReportStatus) error

	// CountByOwner 统计用户报告数
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}

// ReferenceFileRepository 参考资料文件内容仓储接口
// PDF 字节与报告分表存放，避免报告行膨胀
type ReferenceFileRepository interface {
	// SaveContent 保存文件内容
	SaveContent(ctx context.Context, fileID string, content []byte) error

	// GetContent 读取文件内容
	GetContent(ctx context.Context, fileID string) ([]byte, error)

	// DeleteContent 删除文件内容
	DeleteContent(ctx context.Context, fileID string) error
}
