package report

import (
	"context"
	"fmt"

	"report-ai-api/internal/domain/entity"
	wfmodel "report-ai-api/internal/workflow/model"
	"report-ai-api/pkg/errors"
	"report-ai-api/pkg/logger"
)

// ContentResult 内容生成结果
type ContentResult struct {
	Report   *entity.Report
	Strategy string
}

// GenerateContent 生成全部段落的内容
// 策略顺序：全文一次生成 → 逐段生成 → 确定性 Mock
// 前两档允许部分降级：个别段落失败时该段落落入下一档，不拖垮整体
func (s *GenerateService) GenerateContent(ctx context.Context, userID, reportID string) (*ContentResult, error) {
	rep, err := s.loadOwned(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	if len(rep.Paragraphs) == 0 {
		return nil, errors.New(errors.CodeInvalidParam, "report has no paragraphs")
	}

	token := s.tokens.Begin(contentSlot(reportID))

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	chain := s.buildContentChain()
	result, err := chain.Execute(genCtx, rep)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeGenerationFailed, "content generation failed")
	}

	if !s.tokens.Valid(contentSlot(reportID), token) {
		s.tokens.Discard("content")
		logger.Info(ctx, "stale content result discarded", "report_id", reportID)
		return nil, errors.ErrGenerationStale
	}

	for _, p := range rep.Paragraphs {
		if content, ok := result.Output[p.ID]; ok {
			p.SetContent(content)
		}
	}
	rep.MarkGenerated()
	if err := s.reports.Update(ctx, rep); err != nil {
		return nil, err
	}

	return &ContentResult{Report: rep, Strategy: result.Strategy}, nil
}

// GenerateParagraphContent 只重新生成单个段落的内容
func (s *GenerateService) GenerateParagraphContent(ctx context.Context, userID, reportID, paragraphID string) (*ContentResult, error) {
	rep, err := s.loadOwned(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	target := rep.Paragraphs.Get(paragraphID)
	if target == nil {
		return nil, errors.ErrParagraphNotFound
	}

	slot := paragraphSlot(reportID, paragraphID)
	token := s.tokens.Begin(slot)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	chain := s.buildParagraphChain(target)
	result, err := chain.Execute(genCtx, rep)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeGenerationFailed, "paragraph generation failed")
	}

	if !s.tokens.Valid(slot, token) {
		s.tokens.Discard("paragraph")
		logger.Info(ctx, "stale paragraph result discarded",
			"report_id", reportID, "paragraph_id", paragraphID)
		return nil, errors.ErrGenerationStale
	}

	target.SetContent(result.Output)
	if err := s.reports.Update(ctx, rep); err != nil {
		return nil, err
	}

	return &ContentResult{Report: rep, Strategy: result.Strategy}, nil
}

// buildContentChain 全文生成的策略链，输出为 段落ID→内容 的完整映射
func (s *GenerateService) buildContentChain() *Chain[*entity.Report, map[string]string] {
	var strategies []Strategy[*entity.Report, map[string]string]

	llmReady := s.factory != nil && s.factory.Enabled() && s.contentChain != nil
	if llmReady {
		strategies = append(strategies,
			Strategy[*entity.Report, map[string]string]{Name: "llm_full", Run: s.runLLMFull},
			Strategy[*entity.Report, map[string]string]{Name: "llm_single", Run: s.runLLMPerParagraph},
		)
	}

	strategies = append(strategies, Strategy[*entity.Report, map[string]string]{
		Name: "mock",
		Run: func(ctx context.Context, rep *entity.Report) (map[string]string, error) {
			out := make(map[string]string, len(rep.Paragraphs))
			for _, p := range rep.Paragraphs {
				out[p.ID] = MockContent(rep.Theme, rep.Settings, p)
			}
			return out, nil
		},
	})

	return &Chain[*entity.Report, map[string]string]{Kind: "content", Strategies: strategies}
}

// runLLMFull 一次请求生成全部段落；缺失的段落用 Mock 补齐
func (s *GenerateService) runLLMFull(ctx context.Context, rep *entity.Report) (map[string]string, error) {
	out, err := s.contentChain.InvokeFull(ctx, &wfmodel.ContentFullInput{
		Report:           reportContext(rep),
		Outline:          outlineOf(rep.Paragraphs),
		StyleInstruction: styleInstruction(rep.Settings),
	})
	if err != nil {
		return nil, err
	}

	contents := make(map[string]string, len(rep.Paragraphs))
	for _, item := range out.Paragraphs {
		if rep.Paragraphs.Get(item.ID) != nil && item.Content != "" {
			contents[item.ID] = item.Content
		}
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("no paragraph ids matched")
	}

	// 部分降级：模型漏掉的段落用确定性内容补齐
	for _, p := range rep.Paragraphs {
		if _, ok := contents[p.ID]; !ok {
			logger.Warn(ctx, "paragraph missing from llm output, using deterministic content",
				"paragraph_id", p.ID)
			contents[p.ID] = MockContent(rep.Theme, rep.Settings, p)
		}
	}
	return contents, nil
}

// runLLMPerParagraph 逐段请求；单段失败时该段落用 Mock 补齐
func (s *GenerateService) runLLMPerParagraph(ctx context.Context, rep *entity.Report) (map[string]string, error) {
	outline := outlineOf(rep.Paragraphs)
	style := styleInstruction(rep.Settings)

	contents := make(map[string]string, len(rep.Paragraphs))
	failed := 0
	for i, p := range rep.Paragraphs {
		// 已生成内容作为后续段落的前文上下文
		for j := range outline {
			if c, ok := contents[outline[j].ID]; ok {
				outline[j].Content = c
			}
		}

		content, err := s.contentChain.InvokeSingle(ctx, &wfmodel.ContentSingleInput{
			Report:           reportContext(rep),
			Outline:          outline,
			Target:           outline[i],
			StyleInstruction: style,
		})
		if err != nil {
			failed++
			logger.Warn(ctx, "paragraph generation failed, using deterministic content",
				"paragraph_id", p.ID, "error", err)
			content = MockContent(rep.Theme, rep.Settings, p)
		}
		contents[p.ID] = content
	}

	// 全军覆没时视为策略失败，交给下一档
	if failed == len(rep.Paragraphs) {
		return nil, fmt.Errorf("all %d paragraph generations failed", failed)
	}
	return contents, nil
}

// buildParagraphChain 单段生成的策略链
func (s *GenerateService) buildParagraphChain(target *entity.Paragraph) *Chain[*entity.Report, string] {
	var strategies []Strategy[*entity.Report, string]

	if s.factory != nil && s.factory.Enabled() && s.contentChain != nil {
		strategies = append(strategies, Strategy[*entity.Report, string]{
			Name: "llm",
			Run: func(ctx context.Context, rep *entity.Report) (string, error) {
				outline := outlineOf(rep.Paragraphs)
				var targetItem wfmodel.OutlineItem
				for _, item := range outline {
					if item.ID == target.ID {
						targetItem = item
						break
					}
				}
				return s.contentChain.InvokeSingle(ctx, &wfmodel.ContentSingleInput{
					Report:           reportContext(rep),
					Outline:          outline,
					Target:           targetItem,
					StyleInstruction: styleInstruction(rep.Settings),
				})
			},
		})
	}

	strategies = append(strategies, Strategy[*entity.Report, string]{
		Name: "mock",
		Run: func(ctx context.Context, rep *entity.Report) (string, error) {
			return MockContent(rep.Theme, rep.Settings, target), nil
		},
	})

	return &Chain[*entity.Report, string]{Kind: "paragraph", Strategies: strategies}
}
