package handler

import (
	"report-ai-api/internal/application/report"
	"report-ai-api/internal/interfaces/http/dto"
	"report-ai-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// GenerationHandler 生成处理器
type GenerationHandler struct {
	generator *report.GenerateService
}

// NewGenerationHandler 创建生成处理器
func NewGenerationHandler(generator *report.GenerateService) *GenerationHandler {
	return &GenerationHandler{
		generator: generator,
	}
}

// GenerateStructure 生成段落构成
// @Summary 生成段落构成
// @Description 由 LLM 生成段落构成，失败时落到确定性构成表；结果整体替换既有构成
// @Tags Generation
// @Produce json
// @Param rid path string true "报告 ID"
// @Success 200 {object} dto.Response[dto.GenerationResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/structure/generate [post]
func (h *GenerationHandler) GenerateStructure(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	result, err := h.generator.GenerateStructure(ctx, userID, reportID)
	if err != nil {
		respondError(c, ctx, err, "structure generation failed")
		return
	}

	dto.Success(c, &dto.GenerationResponse{
		Strategy: result.Strategy,
		Report:   dto.ToReportResponse(result.Report),
	})
}

// GenerateContent 生成全部段落内容
// @Summary 生成全部段落内容
// @Description 依次尝试全文生成、逐段生成与确定性 Mock，调用方总能得到内容
// @Tags Generation
// @Produce json
// @Param rid path string true "报告 ID"
// @Success 200 {object} dto.Response[dto.GenerationResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/content/generate [post]
func (h *GenerationHandler) GenerateContent(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	result, err := h.generator.GenerateContent(ctx, userID, reportID)
	if err != nil {
		respondError(c, ctx, err, "content generation failed")
		return
	}

	dto.Success(c, &dto.GenerationResponse{
		Strategy: result.Strategy,
		Report:   dto.ToReportResponse(result.Report),
	})
}

// GenerateParagraph 重新生成单个段落内容
// @Summary 重新生成单个段落内容
// @Tags Generation
// @Produce json
// @Param rid path string true "报告 ID"
// @Param pid path string true "段落 ID"
// @Success 200 {object} dto.Response[dto.ParagraphGenerationResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/paragraphs/{pid}/content/generate [post]
func (h *GenerationHandler) GenerateParagraph(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)
	paragraphID := dto.BindParagraphID(c)

	result, err := h.generator.GenerateParagraphContent(ctx, userID, reportID, paragraphID)
	if err != nil {
		respondError(c, ctx, err, "paragraph generation failed")
		return
	}

	dto.Success(c, &dto.ParagraphGenerationResponse{
		Strategy:  result.Strategy,
		Paragraph: dto.ToParagraphResponse(result.Report.Paragraphs.Get(paragraphID)),
	})
}
