package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"report-ai-api/internal/domain/entity"
	"report-ai-api/internal/domain/repository"
	"report-ai-api/internal/interfaces/http/dto"
	"report-ai-api/internal/interfaces/http/middleware"
	"report-ai-api/pkg/errors"
	"report-ai-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// pdfMagic PDF 文件头
var pdfMagic = []byte("%PDF-")

// ReferenceHandler 参考资料处理器
type ReferenceHandler struct {
	reportRepo repository.ReportRepository
	fileRepo   repository.ReferenceFileRepository
	tx         repository.Transactor
	maxPDFSize int64
}

// NewReferenceHandler 创建参考资料处理器
func NewReferenceHandler(
	reportRepo repository.ReportRepository,
	fileRepo repository.ReferenceFileRepository,
	tx repository.Transactor,
	maxPDFSize int64,
) *ReferenceHandler {
	if maxPDFSize <= 0 {
		maxPDFSize = entity.MaxPDFSizeBytes
	}
	return &ReferenceHandler{
		reportRepo: reportRepo,
		fileRepo:   fileRepo,
		tx:         tx,
		maxPDFSize: maxPDFSize,
	}
}

// inTransaction 文件内容与报告聚合跨两张表，必须同事务落盘
func (h *ReferenceHandler) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if h.tx == nil {
		return fn(ctx)
	}
	return h.tx.WithTransaction(ctx, fn)
}

// AddLink 追加参考链接
// @Summary 追加参考链接
// @Description 追加 URL 参考资料，超出 5 条或 URL 重复时返回 409
// @Tags References
// @Accept json
// @Produce json
// @Param rid path string true "报告 ID"
// @Param body body dto.AddLinkRequest true "链接信息"
// @Success 201 {object} dto.Response[dto.ReferencesResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/references/links [post]
func (h *ReferenceHandler) AddLink(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	var req dto.AddLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	if report.References == nil {
		report.References = &entity.ReferenceMaterial{}
	}

	if _, ok := report.References.AddLink(req.URL, req.Title); !ok {
		if len(report.References.Links) >= entity.MaxReferenceLinks {
			respondError(c, ctx, errors.ErrReferenceCapacity, "failed to add link")
		} else {
			respondError(c, ctx, errors.ErrDuplicateLink, "failed to add link")
		}
		return
	}

	if err := h.reportRepo.Update(ctx, report); err != nil {
		logger.Error(ctx, "failed to save reference link", err)
		dto.InternalError(c, "failed to save reference link")
		return
	}

	dto.Created(c, dto.ToReferencesResponse(report.References))
}

// RemoveLink 删除参考链接
// @Summary 删除参考链接
// @Tags References
// @Produce json
// @Param rid path string true "报告 ID"
// @Param lid path string true "链接 ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/references/links/{lid} [delete]
func (h *ReferenceHandler) RemoveLink(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)
	linkID := dto.BindLinkID(c)

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	if report.References == nil || !report.References.RemoveLink(linkID) {
		dto.NotFound(c, "reference link not found")
		return
	}

	if err := h.reportRepo.Update(ctx, report); err != nil {
		logger.Error(ctx, "failed to save reference removal", err)
		dto.InternalError(c, "failed to save reference removal")
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadFile 上传 PDF 参考文件
// @Summary 上传 PDF 参考文件
// @Description 以 multipart form 上传 PDF，超过大小上限或非 PDF 时拒绝
// @Tags References
// @Accept multipart/form-data
// @Produce json
// @Param rid path string true "报告 ID"
// @Param file formData file true "PDF 文件"
// @Success 201 {object} dto.Response[dto.ReferencesResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/references/files [post]
func (h *ReferenceHandler) UploadFile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		dto.BadRequest(c, "missing file field")
		return
	}

	if fileHeader.Size > h.maxPDFSize {
		respondError(c, ctx, errors.New(errors.CodeFileTooLarge, "file exceeds size limit"), "upload failed")
		return
	}

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error(ctx, "failed to open uploaded file", err)
		dto.InternalError(c, "upload failed")
		return
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, h.maxPDFSize+1))
	if err != nil {
		logger.Error(ctx, "failed to read uploaded file", err)
		dto.InternalError(c, "upload failed")
		return
	}
	if int64(len(content)) > h.maxPDFSize {
		respondError(c, ctx, errors.New(errors.CodeFileTooLarge, "file exceeds size limit"), "upload failed")
		return
	}

	// 以文件头判断格式，Content-Type 可被客户端伪造
	if !bytes.HasPrefix(content, pdfMagic) {
		respondError(c, ctx, errors.New(errors.CodeFileNotPDF, "file is not a valid PDF"), "upload failed")
		return
	}

	if report.References == nil {
		report.References = &entity.ReferenceMaterial{}
	}

	file := report.References.AddFile(fileHeader.Filename, int64(len(content)))

	err = h.inTransaction(ctx, func(txCtx context.Context) error {
		if err := h.fileRepo.SaveContent(txCtx, file.ID, content); err != nil {
			return err
		}
		return h.reportRepo.Update(txCtx, report)
	})
	if err != nil {
		logger.Error(ctx, "failed to save reference file", err)
		dto.InternalError(c, "upload failed")
		return
	}

	dto.Created(c, dto.ToReferencesResponse(report.References))
}

// DeleteFile 删除参考文件
// @Summary 删除参考文件
// @Tags References
// @Produce json
// @Param rid path string true "报告 ID"
// @Param fid path string true "文件 ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/references/files/{fid} [delete]
func (h *ReferenceHandler) DeleteFile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)
	fileID := dto.BindFileID(c)

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	if report.References == nil || !report.References.RemoveFile(fileID) {
		dto.NotFound(c, "reference file not found")
		return
	}

	err := h.inTransaction(ctx, func(txCtx context.Context) error {
		if err := h.fileRepo.DeleteContent(txCtx, fileID); err != nil {
			return err
		}
		return h.reportRepo.Update(txCtx, report)
	})
	if err != nil {
		logger.Error(ctx, "failed to save reference removal", err)
		dto.InternalError(c, "failed to save reference removal")
		return
	}

	c.Status(http.StatusNoContent)
}

// DownloadFile 下载参考文件
// @Summary 下载参考文件
// @Tags References
// @Produce application/pdf
// @Param rid path string true "报告 ID"
// @Param fid path string true "文件 ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/reports/{rid}/references/files/{fid} [get]
func (h *ReferenceHandler) DownloadFile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)
	reportID := dto.BindReportID(c)
	fileID := dto.BindFileID(c)

	report := loadOwnedReport(c, ctx, h.reportRepo, reportID, userID)
	if report == nil {
		return
	}

	var meta *entity.ReferenceFile
	if report.References != nil {
		for _, f := range report.References.Files {
			if f.ID == fileID {
				meta = f
				break
			}
		}
	}
	if meta == nil {
		dto.NotFound(c, "reference file not found")
		return
	}

	content, err := h.fileRepo.GetContent(ctx, fileID)
	if err != nil {
		logger.Error(ctx, "failed to load file content", err)
		dto.InternalError(c, "failed to load file content")
		return
	}
	if content == nil {
		dto.NotFound(c, "reference file content not found")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+meta.FileName+`"`)
	c.Data(http.StatusOK, entity.PDFContentType, content)
}
