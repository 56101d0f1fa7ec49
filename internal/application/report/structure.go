package report

import (
	"context"

	"report-ai-api/internal/domain/entity"
	wfmodel "report-ai-api/internal/workflow/model"
	"report-ai-api/pkg/errors"
	"report-ai-api/pkg/logger"
)

// StructureResult 构成生成结果
type StructureResult struct {
	Report *entity.Report
	// Strategy 胜出的策略名（llm / fallback）
	Strategy string
}

// GenerateStructure 生成段落构成并整体替换报告既有构成
// LLM 不可用或失败时落到确定性构成表，调用方总能得到一份构成
func (s *GenerateService) GenerateStructure(ctx context.Context, userID, reportID string) (*StructureResult, error) {
	rep, err := s.loadOwned(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	token := s.tokens.Begin(structureSlot(reportID))

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	chain := s.buildStructureChain(rep)
	result, err := chain.Execute(genCtx, rep)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeGenerationFailed, "structure generation failed")
	}

	if !s.tokens.Valid(structureSlot(reportID), token) {
		s.tokens.Discard("structure")
		logger.Info(ctx, "stale structure result discarded", "report_id", reportID)
		return nil, errors.ErrGenerationStale
	}

	rep.ApplyStructure(result.Output)
	if err := s.reports.Update(ctx, rep); err != nil {
		return nil, err
	}

	return &StructureResult{Report: rep, Strategy: result.Strategy}, nil
}

func (s *GenerateService) buildStructureChain(rep *entity.Report) *Chain[*entity.Report, []*entity.Paragraph] {
	var strategies []Strategy[*entity.Report, []*entity.Paragraph]

	if s.factory != nil && s.factory.Enabled() && s.structureChain != nil {
		strategies = append(strategies, Strategy[*entity.Report, []*entity.Paragraph]{
			Name: "llm",
			Run:  s.runLLMStructure,
		})
	}

	strategies = append(strategies, Strategy[*entity.Report, []*entity.Paragraph]{
		Name: "fallback",
		Run: func(ctx context.Context, rep *entity.Report) ([]*entity.Paragraph, error) {
			return FallbackStructure(rep.Theme, rep.Settings), nil
		},
	})

	return &Chain[*entity.Report, []*entity.Paragraph]{Kind: "structure", Strategies: strategies}
}

func (s *GenerateService) runLLMStructure(ctx context.Context, rep *entity.Report) ([]*entity.Paragraph, error) {
	out, err := s.structureChain.Invoke(ctx, &wfmodel.StructureInput{
		Report:             reportContext(rep),
		QualityDescription: rep.Settings.Quality.PromptDescription(),
	})
	if err != nil {
		return nil, err
	}

	skeletons := out.Paragraphs
	if len(skeletons) > entity.MaxParagraphs {
		skeletons = skeletons[:entity.MaxParagraphs]
	}

	paragraphs := make([]*entity.Paragraph, 0, len(skeletons))
	for i, sk := range skeletons {
		weight := sk.TargetLengthWeight
		if weight <= 0 {
			weight = 1.0
		}
		p := entity.NewParagraph(sk.Title, sk.Description, CalculateTargetLength(rep.Settings.Quality, weight))
		p.Order = i + 1
		paragraphs = append(paragraphs, p)
	}
	return paragraphs, nil
}
