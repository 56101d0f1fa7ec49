// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"report-ai-api/internal/domain/entity"
	"report-ai-api/internal/domain/repository"
)

// ReportRepository 报告仓储实现
type ReportRepository struct {
	client *Client
}

// NewReportRepository 创建报告仓储
func NewReportRepository(client *Client) *ReportRepository {
	return &ReportRepository{client: client}
}

// Create 创建报告
func (r *ReportRepository) Create(ctx context.Context, report *entity.Report) error {
	ctx, span := tracer.Start(ctx, "postgres.ReportRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(report).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取报告；未找到时返回 (nil, nil)
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	ctx, span := tracer.Start(ctx, "postgres.ReportRepository.GetByID")
	defer span.End()

	var report entity.Report
	err := getDB(ctx, r.client.db).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

// Update 更新报告（整体写回）
func (r *ReportRepository) Update(ctx context.Context, report *entity.Report) error {
	ctx, span := tracer.Start(ctx, "postgres.ReportRepository.Update")
	defer span.End()

	if err := getDB(ctx, r.client.db).Save(report).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update report: %w", err)
	}
	return nil
}

// Delete 删除报告
func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ReportRepository.Delete")
	defer span.End()

	if err := getDB(ctx, r.client.db).Delete(&entity.Report{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

// List 获取报告列表
func (r *ReportRepository) List(ctx context.Context, filter *repository.ReportFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Report], error) {
	ctx, span := tracer.Start(ctx, "postgres.ReportRepository.List")
	defer span.End()

	q := getDB(ctx, r.client.db).Model(&entity.Report{})

	if filter != nil {
		if filter.OwnerID != "" {
			q = q.Where("owner_id = ?", filter.OwnerID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.Keyword != "" {
			q = q.Where("theme ILIKE ?", "%"+filter.Keyword+"%")
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	var reports []*entity.Report
	err := q.Order("updated_at DESC").
		Limit(pagination.Limit()).
		Offset(pagination.Offset()).
		Find(&reports).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	return repository.NewPagedResult(reports, total, pagination), nil
}

// ListByOwner 获取用户报告列表
func (r *ReportRepository) ListByOwner(ctx context.Context, ownerID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Report], error) {
	return r.List(ctx, &repository.ReportFilter{OwnerID: ownerID}, pagination)
}

// UpdateStatus 更新报告状态
func (r *ReportRepository) UpdateStatus(ctx context.Context, id string, status entity.ReportStatus) error {
	ctx, span := tracer.Start(ctx, "postgres.ReportRepository.UpdateStatus")
	defer span.End()

	err := getDB(ctx, r.client.db).Model(&entity.Report{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update report status: %w", err)
	}
	return nil
}

// CountByOwner 统计用户报告数
func (r *ReportRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.ReportRepository.CountByOwner")
	defer span.End()

	var total int64
	err := getDB(ctx, r.client.db).Model(&entity.Report{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return total, nil
}
