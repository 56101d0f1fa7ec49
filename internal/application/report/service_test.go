package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-ai-api/internal/domain/entity"
	"report-ai-api/internal/domain/repository"
	"report-ai-api/pkg/errors"
)

// fakeReportRepo is an in-memory ReportRepository for service tests.
type fakeReportRepo struct {
	reports map[string]*entity.Report
	updates int
}

func newFakeReportRepo(reports ...*entity.Report) *fakeReportRepo {
	r := &fakeReportRepo{reports: make(map[string]*entity.Report)}
	for _, rep := range reports {
		r.reports[rep.ID] = rep
	}
	return r
}

func (r *fakeReportRepo) Create(_ context.Context, rep *entity.Report) error {
	r.reports[rep.ID] = rep
	return nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id string) (*entity.Report, error) {
	return r.reports[id], nil
}

func (r *fakeReportRepo) Update(_ context.Context, rep *entity.Report) error {
	r.updates++
	r.reports[rep.ID] = rep
	return nil
}

func (r *fakeReportRepo) Delete(_ context.Context, id string) error {
	delete(r.reports, id)
	return nil
}

func (r *fakeReportRepo) List(_ context.Context, _ *repository.ReportFilter, _ repository.Pagination) (*repository.PagedResult[*entity.Report], error) {
	return &repository.PagedResult[*entity.Report]{}, nil
}

func (r *fakeReportRepo) ListByOwner(_ context.Context, _ string, _ repository.Pagination) (*repository.PagedResult[*entity.Report], error) {
	return &repository.PagedResult[*entity.Report]{}, nil
}

func (r *fakeReportRepo) UpdateStatus(_ context.Context, id string, status entity.ReportStatus) error {
	if rep, ok := r.reports[id]; ok {
		rep.Status = status
	}
	return nil
}

func (r *fakeReportRepo) CountByOwner(_ context.Context, _ string) (int64, error) {
	return int64(len(r.reports)), nil
}

func newTestService(repo repository.ReportRepository) *GenerateService {
	// no model factory configured, so every chain ends at its deterministic strategy
	return NewGenerateService(repo, nil, nil, nil, NewTokenTracker(), 5*time.Second)
}

func testReport(ownerID string) *entity.Report {
	rep := entity.NewReport(ownerID, "気候変動")
	rep.ID = "report-1"
	return rep
}

func TestGenerateService_GenerateStructure(t *testing.T) {
	ctx := context.Background()

	t.Run("fallback structure is applied and persisted", func(t *testing.T) {
		rep := testReport("owner-1")
		rep.SetEditedContent("以前の編集")
		repo := newFakeReportRepo(rep)
		svc := newTestService(repo)

		result, err := svc.GenerateStructure(ctx, "owner-1", rep.ID)
		require.NoError(t, err)

		assert.Equal(t, "fallback", result.Strategy)
		assert.Len(t, result.Report.Paragraphs, 5)
		assert.Equal(t, entity.ReportStatusStructured, result.Report.Status)
		assert.Empty(t, result.Report.EditedContent)
		assert.Equal(t, 1, repo.updates)
	})

	t.Run("missing report", func(t *testing.T) {
		svc := newTestService(newFakeReportRepo())
		_, err := svc.GenerateStructure(ctx, "owner-1", "missing")
		assert.ErrorIs(t, err, errors.ErrReportNotFound)
	})

	t.Run("other owner is forbidden", func(t *testing.T) {
		rep := testReport("owner-1")
		svc := newTestService(newFakeReportRepo(rep))
		_, err := svc.GenerateStructure(ctx, "owner-2", rep.ID)
		assert.ErrorIs(t, err, errors.ErrForbidden)
	})
}

func TestGenerateService_GenerateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("mock strategy fills every paragraph", func(t *testing.T) {
		rep := testReport("owner-1")
		rep.ApplyStructure(FallbackStructure(rep.Theme, rep.Settings))
		repo := newFakeReportRepo(rep)
		svc := newTestService(repo)

		result, err := svc.GenerateContent(ctx, "owner-1", rep.ID)
		require.NoError(t, err)

		assert.Equal(t, "mock", result.Strategy)
		assert.Equal(t, entity.ReportStatusCompleted, result.Report.Status)
		require.NotNil(t, result.Report.GeneratedAt)
		for _, p := range result.Report.Paragraphs {
			assert.NotEmpty(t, p.Content)
			assert.Equal(t, entity.ParagraphStatusCompleted, p.Status)
			assert.LessOrEqual(t, p.ActualLength(), p.TargetLength)
		}
	})

	t.Run("report without paragraphs is rejected", func(t *testing.T) {
		rep := testReport("owner-1")
		svc := newTestService(newFakeReportRepo(rep))
		_, err := svc.GenerateContent(ctx, "owner-1", rep.ID)
		require.Error(t, err)
		appErr := errors.AsAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.CodeInvalidParam, appErr.Code)
	})
}

func TestGenerateService_GenerateParagraphContent(t *testing.T) {
	ctx := context.Background()

	rep := testReport("owner-1")
	rep.ApplyStructure(FallbackStructure(rep.Theme, rep.Settings))
	repo := newFakeReportRepo(rep)
	svc := newTestService(repo)

	target := rep.Paragraphs[2]
	result, err := svc.GenerateParagraphContent(ctx, "owner-1", rep.ID, target.ID)
	require.NoError(t, err)

	assert.Equal(t, "mock", result.Strategy)
	assert.NotEmpty(t, result.Report.Paragraphs.Get(target.ID).Content)
	// only the requested paragraph is regenerated
	assert.Empty(t, result.Report.Paragraphs[0].Content)

	_, err = svc.GenerateParagraphContent(ctx, "owner-1", rep.ID, "unknown-paragraph")
	assert.ErrorIs(t, err, errors.ErrParagraphNotFound)
}
