package handler

import (
	"net/http"

	"report-ai-api/internal/domain/entity"
	"report-ai-api/internal/domain/repository"
	"report-ai-api/internal/interfaces/http/dto"
	"report-ai-api/internal/interfaces/http/middleware"
	"report-ai-api/pkg/errors"
	"report-ai-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ParagraphHandler 段落处理器
type ParagraphHandler struct {
	reportRepo repository.ReportRepository
}

// NewParagraphHandler 创建段落处理器
func NewParagraphHandler(reportRepo repository.ReportRepository) *ParagraphHandler {
	return &ParagraphHandler{
		reportRepo: reportRepo,
	}
}

// AddParagraph 追加段落
// @Summary 追加段落
// @Description 在列表末尾追加段落，满员（10 个）时返回 409
// @Tags Paragraphs
// @Accept json
// @Produce json
// @Param rid path string true "报告 ID"
// @Param body body dto.AddParagraphRequest true "段落信息"
// @Success 201 {object} dto.Response[dto.ReportResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/paragraphs [post]
func (h *ParagraphHandler) AddParagraph(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	var req dto.AddParagraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	targetLength := req.TargetLength
	if targetLength == 0 {
		targetLength = entity.BaseTargetLength
	}

	p := entity.NewParagraph(req.Title, req.Description, targetLength)
	if !report.Paragraphs.Insert(p) {
		respondError(c, ctx, errors.ErrParagraphCapacity, "failed to add paragraph")
		return
	}

	if err := h.reportRepo.Update(ctx, report); err != nil {
		logger.Error(ctx, "failed to save paragraph", err)
		dto.InternalError(c, "failed to save paragraph")
		return
	}

	dto.Created(c, dto.ToReportResponse(report))
}

// ReplaceParagraphs 整体替换段落列表
// @Summary 整体替换段落列表
// @Description 丢弃既有段落并按给定顺序重建，超过 10 个时返回 409
// @Tags Paragraphs
// @Accept json
// @Produce json
// @Param rid path string true "报告 ID"
// @Param body body dto.ReplaceParagraphsRequest true "段落列表"
// @Success 200 {object} dto.Response[dto.ReportResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/paragraphs [put]
func (h *ParagraphHandler) ReplaceParagraphs(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	var req dto.ReplaceParagraphsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if len(req.Paragraphs) > entity.MaxParagraphs {
		respondError(c, ctx, errors.ErrParagraphCapacity, "failed to replace paragraphs")
		return
	}

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	items := make([]*entity.Paragraph, 0, len(req.Paragraphs))
	for _, item := range req.Paragraphs {
		targetLength := item.TargetLength
		if targetLength == 0 {
			targetLength = entity.BaseTargetLength
		}
		items = append(items, entity.NewParagraph(item.Title, item.Description, entity.ClampTargetLength(targetLength)))
	}
	report.Paragraphs.ReplaceAll(items)

	if err := h.reportRepo.Update(ctx, report); err != nil {
		logger.Error(ctx, "failed to save paragraphs", err)
		dto.InternalError(c, "failed to save paragraphs")
		return
	}

	dto.Success(c, dto.ToReportResponse(report))
}

// UpdateParagraph 更新段落
// @Summary 更新段落
// @Description 部分更新段落字段，目标字数收敛到 [100, 3000]
// @Tags Paragraphs
// @Accept json
// @Produce json
// @Param rid path string true "报告 ID"
// @Param pid path string true "段落 ID"
// @Param body body dto.UpdateParagraphRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.ReportResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/paragraphs/{pid} [put]
func (h *ParagraphHandler) UpdateParagraph(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)
	paragraphID := dto.BindParagraphID(c)

	var req dto.UpdateParagraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	if !report.Paragraphs.Update(paragraphID, req.ToPatch()) {
		dto.NotFound(c, "paragraph not found")
		return
	}

	if err := h.reportRepo.Update(ctx, report); err != nil {
		logger.Error(ctx, "failed to save paragraph", err)
		dto.InternalError(c, "failed to save paragraph")
		return
	}

	dto.Success(c, dto.ToReportResponse(report))
}

// DeleteParagraph 删除段落
// @Summary 删除段落
// @Description 删除段落并重排剩余段落序号
// @Tags Paragraphs
// @Produce json
// @Param rid path string true "报告 ID"
// @Param pid path string true "段落 ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/paragraphs/{pid} [delete]
func (h *ParagraphHandler) DeleteParagraph(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)
	paragraphID := dto.BindParagraphID(c)

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	if !report.Paragraphs.Remove(paragraphID) {
		dto.NotFound(c, "paragraph not found")
		return
	}

	if err := h.reportRepo.Update(ctx, report); err != nil {
		logger.Error(ctx, "failed to save paragraph removal", err)
		dto.InternalError(c, "failed to save paragraph removal")
		return
	}

	c.Status(http.StatusNoContent)
}

// ReorderParagraphs 重排段落
// @Summary 重排段落
// @Description 将段落移动到目标位置（1 起始），越界位置收敛到边界
// @Tags Paragraphs
// @Accept json
// @Produce json
// @Param rid path string true "报告 ID"
// @Param body body dto.ReorderRequest true "重排信息"
// @Success 200 {object} dto.Response[dto.ReportResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/paragraphs/reorder [post]
func (h *ParagraphHandler) ReorderParagraphs(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	if !report.Paragraphs.Reorder(req.ParagraphID, req.Position) {
		dto.NotFound(c, "paragraph not found")
		return
	}

	if err := h.reportRepo.Update(ctx, report); err != nil {
		logger.Error(ctx, "failed to save paragraph order", err)
		dto.InternalError(c, "failed to save paragraph order")
		return
	}

	dto.Success(c, dto.ToReportResponse(report))
}

// MoveParagraph 相邻移动段落
// @Summary 相邻移动段落
// @Description 向上或向下移动一位；首段上移、末段下移为 no-op，返回当前状态
// @Tags Paragraphs
// @Accept json
// @Produce json
// @Param rid path string true "报告 ID"
// @Param pid path string true "段落 ID"
// @Param body body dto.MoveRequest true "移动方向"
// @Success 200 {object} dto.Response[dto.ReportResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/paragraphs/{pid}/move [post]
func (h *ParagraphHandler) MoveParagraph(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)
	paragraphID := dto.BindParagraphID(c)

	var req dto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	if report.Paragraphs.Get(paragraphID) == nil {
		dto.NotFound(c, "paragraph not found")
		return
	}

	// 边界 no-op 不落库，直接返回当前状态
	if report.Paragraphs.MoveAdjacent(paragraphID, req.Direction) {
		if err := h.reportRepo.Update(ctx, report); err != nil {
			logger.Error(ctx, "failed to save paragraph order", err)
			dto.InternalError(c, "failed to save paragraph order")
			return
		}
	}

	dto.Success(c, dto.ToReportResponse(report))
}
