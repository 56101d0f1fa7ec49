package handler

import (
	"net/http"

	"report-ai-api/internal/domain/entity"
	"report-ai-api/internal/domain/repository"
	"report-ai-api/internal/interfaces/http/dto"
	"report-ai-api/internal/interfaces/http/middleware"
	"report-ai-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ReportHandler 报告处理器
type ReportHandler struct {
	reportRepo repository.ReportRepository
}

// NewReportHandler 创建报告处理器
func NewReportHandler(reportRepo repository.ReportRepository) *ReportHandler {
	return &ReportHandler{
		reportRepo: reportRepo,
	}
}

// ListReports 获取报告列表
// @Summary 获取报告列表
// @Description 获取当前用户的报告列表，按更新时间倒序
// @Tags Reports
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[[]dto.ReportSummaryResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	pageReq := dto.BindPage(c)

	result, err := h.reportRepo.ListByOwner(ctx, userID, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		logger.Error(ctx, "failed to list reports", err)
		dto.InternalError(c, "failed to list reports")
		return
	}

	resp := dto.ToReportSummaryResponses(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// CreateReport 创建报告
// @Summary 创建报告
// @Description 以主题创建新报告，可附带初始设置
// @Tags Reports
// @Accept json
// @Produce json
// @Param body body dto.CreateReportRequest true "报告信息"
// @Success 201 {object} dto.Response[dto.ReportResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/reports [post]
func (h *ReportHandler) CreateReport(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	report := entity.NewReport(userID, req.Theme)
	if req.Settings != nil {
		patch := req.Settings.ToPatch()
		if err := patch.Validate(); err != nil {
			dto.BadRequest(c, "invalid settings: "+err.Error())
			return
		}
		report.Settings.Merge(patch)
	}

	if err := h.reportRepo.Create(ctx, report); err != nil {
		logger.Error(ctx, "failed to create report", err)
		dto.InternalError(c, "failed to create report")
		return
	}

	dto.Created(c, dto.ToReportResponse(report))
}

// GetReport 获取报告详情
// @Summary 获取报告详情
// @Description 获取报告全量数据，含段落与参考资料
// @Tags Reports
// @Produce json
// @Param rid path string true "报告 ID"
// @Success 200 {object} dto.Response[dto.ReportResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid} [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	dto.Success(c, dto.ToReportResponse(report))
}

// UpdateReport 更新报告
// @Summary 更新报告
// @Description 更新报告主题或生成设置
// @Tags Reports
// @Accept json
// @Produce json
// @Param rid path string true "报告 ID"
// @Param body body dto.UpdateReportRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.ReportResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid} [put]
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	var req dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	if req.Theme != nil {
		report.Theme = *req.Theme
	}
	if req.Settings != nil {
		patch := req.Settings.ToPatch()
		if err := patch.Validate(); err != nil {
			dto.BadRequest(c, "invalid settings: "+err.Error())
			return
		}
		report.Settings.Merge(patch)
	}

	if err := h.reportRepo.Update(ctx, report); err != nil {
		logger.Error(ctx, "failed to update report", err)
		dto.InternalError(c, "failed to update report")
		return
	}

	dto.Success(c, dto.ToReportResponse(report))
}

// DeleteReport 删除报告
// @Summary 删除报告
// @Description 删除报告及其段落与参考资料
// @Tags Reports
// @Produce json
// @Param rid path string true "报告 ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid} [delete]
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	if err := h.reportRepo.Delete(ctx, report.ID); err != nil {
		logger.Error(ctx, "failed to delete report", err)
		dto.InternalError(c, "failed to delete report")
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateContent 保存手工编辑的全文
// @Summary 保存编辑全文
// @Description 覆盖保存用户手工编辑后的全文，导出时优先使用
// @Tags Reports
// @Accept json
// @Produce json
// @Param rid path string true "报告 ID"
// @Param body body dto.UpdateContentRequest true "编辑后全文"
// @Success 200 {object} dto.Response[dto.ReportResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/content [put]
func (h *ReportHandler) UpdateContent(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	var req dto.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	report.SetEditedContent(req.Content)

	if err := h.reportRepo.Update(ctx, report); err != nil {
		logger.Error(ctx, "failed to update report content", err)
		dto.InternalError(c, "failed to update report content")
		return
	}

	dto.Success(c, dto.ToReportResponse(report))
}
