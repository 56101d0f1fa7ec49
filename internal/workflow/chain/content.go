package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openaiopts "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	llmctx "report-ai-api/internal/domain/service"
	wfmodel "report-ai-api/internal/workflow/model"
	"report-ai-api/internal/workflow/node"
	workflowport "report-ai-api/internal/workflow/port"
	workflowprompt "report-ai-api/internal/workflow/prompt"
	"report-ai-api/pkg/logger"
)

// ContentChain 段落内容生成链（单段/全文）
type ContentChain struct {
	factory workflowport.ChatModelFactory
}

func NewContentChain(factory workflowport.ChatModelFactory) *ContentChain {
	return &ContentChain{factory: factory}
}

// InvokeSingle 生成单个段落的内容，返回正文文本
func (c *ContentChain) InvokeSingle(ctx context.Context, in *wfmodel.ContentSingleInput) (string, error) {
	if c == nil || c.factory == nil {
		return "", fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return "", fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(in.Target.Title) == "" {
		return "", fmt.Errorf("paragraph title is required")
	}

	ctx = llmctx.WithWorkflowProvider(ctx, "content_single", strings.TrimSpace(in.Provider))
	chatModel, err := c.factory.Get(ctx, strings.TrimSpace(in.Provider))
	if err != nil {
		return "", err
	}

	msgs, err := formatContentSingleMessages(ctx, in)
	if err != nil {
		return "", err
	}

	outMsg, err := chatModel.Generate(ctx, msgs)
	if err != nil {
		return "", err
	}
	if outMsg == nil || strings.TrimSpace(outMsg.Content) == "" {
		return "", fmt.Errorf("empty llm response")
	}
	return strings.TrimSpace(outMsg.Content), nil
}

// InvokeFull 一次生成全部段落内容，按段落 ID 对应
func (c *ContentChain) InvokeFull(ctx context.Context, in *wfmodel.ContentFullInput) (*wfmodel.ContentFullOutput, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if len(in.Outline) == 0 {
		return nil, fmt.Errorf("outline is required")
	}

	ctx = llmctx.WithWorkflowProvider(ctx, "content_full", strings.TrimSpace(in.Provider))
	chatModel, err := c.factory.Get(ctx, strings.TrimSpace(in.Provider))
	if err != nil {
		return nil, err
	}

	msgs, err := formatContentFullMessages(ctx, in)
	if err != nil {
		return nil, err
	}

	// 优先使用 response_format=json_schema 强约束；不支持时降级为纯 Prompt 约束
	outMsg, err := chatModel.Generate(ctx, msgs, contentFullModelOptions(true)...)
	if err != nil && node.IsResponseFormatUnsupportedError(err) {
		logger.Warn(ctx, "llm json_schema not supported, fallback to prompt-only",
			"provider", strings.TrimSpace(in.Provider),
			"error", err.Error(),
		)
		outMsg, err = chatModel.Generate(ctx, msgs, contentFullModelOptions(false)...)
	}
	if err != nil {
		return nil, err
	}
	if outMsg == nil || strings.TrimSpace(outMsg.Content) == "" {
		return nil, fmt.Errorf("empty llm response")
	}

	raw := node.ExtractJSONObject(outMsg.Content)
	var out wfmodel.ContentFullOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse content output: %w", err)
	}
	if len(out.Paragraphs) == 0 {
		return nil, fmt.Errorf("content output contains no paragraphs")
	}
	return &out, nil
}

// contentFullModelOptions 单段生成输出纯文本，无需结构化约束，仅全文生成使用
func contentFullModelOptions(enableSchema bool) []model.Option {
	if !enableSchema {
		return nil
	}
	return []model.Option{
		openaiopts.WithExtraFields(map[string]any{
			"response_format": map[string]any{
				"type": "json_schema",
				"json_schema": map[string]any{
					"name":   "paragraph_contents",
					"strict": false,
					"schema": contentFullJSONSchema(),
				},
			},
		}),
	}
}

func contentFullJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"paragraphs"},
		"properties": map[string]any{
			"paragraphs": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []any{"id", "content"},
					"properties": map[string]any{
						"id":      map[string]any{"type": "string"},
						"content": map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

var contentPromptRegistry = workflowprompt.NewRegistry()

func formatContentSingleMessages(ctx context.Context, in *wfmodel.ContentSingleInput) ([]*schema.Message, error) {
	tpl, err := contentPromptRegistry.ChatTemplate(workflowprompt.PromptContentSingleV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"theme":                 strings.TrimSpace(in.Report.Theme),
		"language":              in.Report.Language,
		"writing_style":         in.Report.WritingStyle,
		"tone":                  in.Report.Tone,
		"quality":               in.Report.Quality,
		"purpose_block":         buildPurposeBlock(in.Report.Purpose),
		"reference_block":       buildReferenceBlock(in.Report),
		"outline":               buildOutline(in.Outline, in.Target.ID),
		"previous_block":        buildPreviousBlock(in.Outline, in.Target),
		"paragraph_title":       in.Target.Title,
		"paragraph_description": in.Target.Description,
		"target_length":         in.Target.TargetLength,
		"style_instruction":     in.StyleInstruction,
		"position_instruction":  buildPositionInstruction(in.Outline, in.Target),
		"language_instruction":  writeLanguageInstruction(in.Report.Language),
	}
	return tpl.Format(ctx, vars)
}

func formatContentFullMessages(ctx context.Context, in *wfmodel.ContentFullInput) ([]*schema.Message, error) {
	tpl, err := contentPromptRegistry.ChatTemplate(workflowprompt.PromptContentFullV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"theme":                strings.TrimSpace(in.Report.Theme),
		"language":             in.Report.Language,
		"writing_style":        in.Report.WritingStyle,
		"tone":                 in.Report.Tone,
		"quality":              in.Report.Quality,
		"purpose_block":        buildPurposeBlock(in.Report.Purpose),
		"reference_block":      buildReferenceBlock(in.Report),
		"paragraphs_info":      buildParagraphsInfo(in.Outline),
		"style_instruction":    in.StyleInstruction,
		"language_instruction": writeLanguageInstruction(in.Report.Language),
	}
	return tpl.Format(ctx, vars)
}

// buildOutline 构成一览，当前段落加【現在】标记
func buildOutline(outline []wfmodel.OutlineItem, currentID string) string {
	lines := make([]string, 0, len(outline))
	for _, item := range outline {
		line := fmt.Sprintf("%d. %s - %s", item.Order, item.Title, item.Description)
		if item.ID == currentID {
			line = fmt.Sprintf("【現在】%s", line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// buildPreviousBlock 已生成内容上下文：最后一段给全文，其余仅给概要
func buildPreviousBlock(outline []wfmodel.OutlineItem, target wfmodel.OutlineItem) string {
	var prev []wfmodel.OutlineItem
	for _, item := range outline {
		if item.ID == target.ID {
			break
		}
		if strings.TrimSpace(item.Content) != "" {
			prev = append(prev, item)
		}
	}
	if len(prev) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(prev))
	for i, item := range prev {
		if i == len(prev)-1 {
			blocks = append(blocks, fmt.Sprintf("【%s】\n%s", item.Title, item.Content))
		} else {
			blocks = append(blocks, fmt.Sprintf("【%s】\n概要: %s", item.Title, item.Description))
		}
	}
	return "\n\n# 既に書かれた内容（前の段落）\n" + strings.Join(blocks, "\n\n")
}

// buildPositionInstruction 首段/末段的追加执笔要求
func buildPositionInstruction(outline []wfmodel.OutlineItem, target wfmodel.OutlineItem) string {
	var lines []string
	if target.Order == 1 {
		lines = append(lines, "7. 導入として読者の興味を引く内容にしてください")
	}
	if len(outline) > 0 && target.Order == outline[len(outline)-1].Order {
		lines = append(lines, "8. 結論として全体をまとめ、今後の展望を示してください")
	}
	return strings.Join(lines, "\n")
}

func buildParagraphsInfo(outline []wfmodel.OutlineItem) string {
	blocks := make([]string, 0, len(outline))
	for _, item := range outline {
		blocks = append(blocks, fmt.Sprintf(
			"## %s\n- ID: %s\n- 説明: %s\n- 目標文字数: %d文字",
			item.Title, item.ID, item.Description, item.TargetLength,
		))
	}
	return strings.Join(blocks, "\n\n")
}

func writeLanguageInstruction(language string) string {
	if language == "英語" {
		return "Please write in English."
	}
	return "日本語で執筆してください。"
}
