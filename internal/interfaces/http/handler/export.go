package handler

import (
	"net/http"

	"report-ai-api/internal/application/export"
	"report-ai-api/internal/domain/repository"
	"report-ai-api/internal/interfaces/http/dto"
	"report-ai-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	reportRepo repository.ReportRepository
	exporter   *export.Exporter
}

// NewExportHandler 创建导出处理器
func NewExportHandler(reportRepo repository.ReportRepository, exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{
		reportRepo: reportRepo,
		exporter:   exporter,
	}
}

// ExportReport 导出报告
// @Summary 导出报告
// @Description 以 Markdown 或纯文本下载报告全文；手工编辑过的全文优先
// @Tags Export
// @Produce octet-stream
// @Param rid path string true "报告 ID"
// @Param format query string false "导出格式 markdown|text" default(markdown)
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/export [get]
func (h *ExportHandler) ExportReport(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	format := export.Format(c.DefaultQuery("format", string(export.FormatMarkdown)))
	if !format.Valid() {
		dto.BadRequest(c, "unsupported export format")
		return
	}

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	result, err := h.exporter.Export(report, format)
	if err != nil {
		respondError(c, ctx, err, "export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, []byte(result.Content))
}
