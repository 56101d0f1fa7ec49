package handler

import (
	"context"

	"report-ai-api/internal/domain/entity"
	"report-ai-api/internal/domain/repository"
	"report-ai-api/internal/interfaces/http/dto"
	"report-ai-api/pkg/errors"
	"report-ai-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError 统一处理业务错误：AppError 按其状态码返回，其余走 500
func respondError(c *gin.Context, ctx context.Context, err error, fallbackMsg string) {
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
			Code:    appErr.HTTPStatus,
			Message: appErr.Message,
			TraceID: c.GetString("trace_id"),
		})
		return
	}
	logger.Error(ctx, fallbackMsg, err)
	dto.InternalError(c, fallbackMsg)
}

// loadOwnedReport 加载报告并校验归属；失败时已写入响应，返回 nil
// 不存在返回 404，归属不符返回 403，两者语义分开便于前端区分
func loadOwnedReport(c *gin.Context, ctx context.Context, repo repository.ReportRepository, reportID, userID string) *entity.Report {
	report, err := repo.GetByID(ctx, reportID)
	if err != nil {
		logger.Error(ctx, "failed to get report", err)
		dto.InternalError(c, "failed to get report")
		return nil
	}
	if report == nil {
		dto.NotFound(c, "report not found")
		return nil
	}
	if !report.IsOwnedBy(userID) {
		dto.Forbidden(c, "report belongs to another user")
		return nil
	}
	return report
}
