package handler

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-ai-api/internal/domain/entity"
	"report-ai-api/internal/domain/repository"
)

type txCtxKey struct{}

// fakeTransactor 在上下文中打标记，供仓储侧断言写入发生在事务内
type fakeTransactor struct {
	calls  int
	failed bool
}

func (t *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if err := fn(context.WithValue(ctx, txCtxKey{}, true)); err != nil {
		t.failed = true
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txCtxKey{}).(bool)
	return v
}

type fakeReportStore struct {
	reports    map[string]*entity.Report
	updateErr  error
	updateInTx bool
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: map[string]*entity.Report{}}
}

func (s *fakeReportStore) Create(_ context.Context, report *entity.Report) error {
	s.reports[report.ID] = report
	return nil
}

func (s *fakeReportStore) GetByID(_ context.Context, id string) (*entity.Report, error) {
	return s.reports[id], nil
}

func (s *fakeReportStore) Update(ctx context.Context, report *entity.Report) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updateInTx = inTx(ctx)
	s.reports[report.ID] = report
	return nil
}

func (s *fakeReportStore) Delete(_ context.Context, id string) error {
	delete(s.reports, id)
	return nil
}

func (s *fakeReportStore) List(_ context.Context, _ *repository.ReportFilter, _ repository.Pagination) (*repository.PagedResult[*entity.Report], error) {
	return nil, nil
}

func (s *fakeReportStore) ListByOwner(_ context.Context, _ string, _ repository.Pagination) (*repository.PagedResult[*entity.Report], error) {
	return nil, nil
}

func (s *fakeReportStore) UpdateStatus(_ context.Context, _ string, _ entity.ReportStatus) error {
	return nil
}

func (s *fakeReportStore) CountByOwner(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

type fakeFileStore struct {
	contents    map[string][]byte
	savedInTx   bool
	deletedInTx bool
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{contents: map[string][]byte{}}
}

func (s *fakeFileStore) SaveContent(ctx context.Context, fileID string, content []byte) error {
	s.savedInTx = inTx(ctx)
	s.contents[fileID] = content
	return nil
}

func (s *fakeFileStore) GetContent(_ context.Context, fileID string) ([]byte, error) {
	return s.contents[fileID], nil
}

func (s *fakeFileStore) DeleteContent(ctx context.Context, fileID string) error {
	s.deletedInTx = inTx(ctx)
	delete(s.contents, fileID)
	return nil
}

func newReferenceTestEngine(h *ReferenceHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	r.POST("/v1/reports/:rid/references/files", h.UploadFile)
	r.DELETE("/v1/reports/:rid/references/files/:fid", h.DeleteFile)
	return r
}

func newPDFUploadRequest(t *testing.T, url string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "paper.pdf")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestReferenceHandler_UploadFile(t *testing.T) {
	const ownerID = "user-1"
	pdfContent := []byte("%PDF-1.7 test content")

	t.Run("文件内容与报告在同一事务内落盘", func(t *testing.T) {
		reports := newFakeReportStore()
		files := newFakeFileStore()
		tx := &fakeTransactor{}
		report := entity.NewReport(ownerID, "気候変動")
		report.ID = "r1"
		reports.reports["r1"] = report

		h := NewReferenceHandler(reports, files, tx, 0)
		r := newReferenceTestEngine(h, ownerID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newPDFUploadRequest(t, "/v1/reports/r1/references/files", pdfContent))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, tx.calls)
		assert.True(t, files.savedInTx, "file content must be written inside the transaction")
		assert.True(t, reports.updateInTx, "report aggregate must be written inside the transaction")
		require.Len(t, reports.reports["r1"].References.Files, 1)
	})

	t.Run("报告写回失败时事务整体失败", func(t *testing.T) {
		reports := newFakeReportStore()
		files := newFakeFileStore()
		tx := &fakeTransactor{}
		report := entity.NewReport(ownerID, "気候変動")
		report.ID = "r1"
		reports.reports["r1"] = report
		reports.updateErr = fmt.Errorf("connection reset")

		h := NewReferenceHandler(reports, files, tx, 0)
		r := newReferenceTestEngine(h, ownerID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newPDFUploadRequest(t, "/v1/reports/r1/references/files", pdfContent))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.True(t, tx.failed, "failure of either write must abort the transaction")
	})

	t.Run("非PDF内容被拒绝", func(t *testing.T) {
		reports := newFakeReportStore()
		files := newFakeFileStore()
		tx := &fakeTransactor{}
		report := entity.NewReport(ownerID, "気候変動")
		report.ID = "r1"
		reports.reports["r1"] = report

		h := NewReferenceHandler(reports, files, tx, 0)
		r := newReferenceTestEngine(h, ownerID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newPDFUploadRequest(t, "/v1/reports/r1/references/files", []byte("plain text")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, tx.calls)
		assert.Empty(t, files.contents)
	})
}

func TestReferenceHandler_DeleteFile(t *testing.T) {
	const ownerID = "user-1"

	reports := newFakeReportStore()
	files := newFakeFileStore()
	tx := &fakeTransactor{}
	report := entity.NewReport(ownerID, "気候変動")
	report.ID = "r1"
	file := report.References.AddFile("paper.pdf", 5)
	files.contents[file.ID] = []byte("%PDF-")
	reports.reports["r1"] = report

	h := NewReferenceHandler(reports, files, tx, 0)
	r := newReferenceTestEngine(h, ownerID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/reports/r1/references/files/"+file.ID, nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, tx.calls)
	assert.True(t, files.deletedInTx, "file content must be removed inside the transaction")
	assert.True(t, reports.updateInTx, "report aggregate must be written inside the transaction")
	assert.Empty(t, files.contents)
	assert.Empty(t, reports.reports["r1"].References.Files)
}
