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

// StructureChain 段落构成提案链
type StructureChain struct {
	factory workflowport.ChatModelFactory
}

func NewStructureChain(factory workflowport.ChatModelFactory) *StructureChain {
	return &StructureChain{factory: factory}
}

func (c *StructureChain) Invoke(ctx context.Context, in *wfmodel.StructureInput) (*wfmodel.StructureOutput, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(in.Report.Theme) == "" {
		return nil, fmt.Errorf("theme is required")
	}

	ctx = llmctx.WithWorkflowProvider(ctx, "structure_generate", strings.TrimSpace(in.Provider))
	chatModel, err := c.factory.Get(ctx, strings.TrimSpace(in.Provider))
	if err != nil {
		return nil, err
	}

	msgs, err := formatStructureMessages(ctx, in)
	if err != nil {
		return nil, err
	}

	// 优先使用 response_format=json_schema 强约束；不支持时降级为纯 Prompt 约束
	outMsg, err := chatModel.Generate(ctx, msgs, structureModelOptions(true)...)
	if err != nil && node.IsResponseFormatUnsupportedError(err) {
		logger.Warn(ctx, "llm json_schema not supported, fallback to prompt-only",
			"provider", strings.TrimSpace(in.Provider),
			"error", err.Error(),
		)
		outMsg, err = chatModel.Generate(ctx, msgs, structureModelOptions(false)...)
	}
	if err != nil {
		return nil, err
	}
	if outMsg == nil || strings.TrimSpace(outMsg.Content) == "" {
		return nil, fmt.Errorf("empty llm response")
	}

	return parseStructureOutput(outMsg)
}

func structureModelOptions(enableSchema bool) []model.Option {
	if !enableSchema {
		return nil
	}
	return []model.Option{
		openaiopts.WithExtraFields(map[string]any{
			"response_format": map[string]any{
				"type": "json_schema",
				"json_schema": map[string]any{
					"name":   "paragraph_structure",
					"strict": false,
					"schema": structureJSONSchema(),
				},
			},
		}),
	}
}

func structureJSONSchema() map[string]any {
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
					"required":             []any{"title", "description", "targetLengthWeight"},
					"properties": map[string]any{
						"title":              map[string]any{"type": "string"},
						"description":        map[string]any{"type": "string"},
						"targetLengthWeight": map[string]any{"type": "number"},
					},
				},
			},
		},
	}
}

var structurePromptRegistry = workflowprompt.NewRegistry()

func formatStructureMessages(ctx context.Context, in *wfmodel.StructureInput) ([]*schema.Message, error) {
	tpl, err := structurePromptRegistry.ChatTemplate(workflowprompt.PromptStructureV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"theme":                strings.TrimSpace(in.Report.Theme),
		"language":             in.Report.Language,
		"writing_style":        in.Report.WritingStyle,
		"tone":                 in.Report.Tone,
		"quality":              in.Report.Quality,
		"quality_description":  in.QualityDescription,
		"purpose_block":        buildPurposeBlock(in.Report.Purpose),
		"reference_block":      buildReferenceBlock(in.Report),
		"language_instruction": languageInstruction(in.Report.Language),
	}
	return tpl.Format(ctx, vars)
}

func parseStructureOutput(msg *schema.Message) (*wfmodel.StructureOutput, error) {
	raw := node.ExtractJSONObject(msg.Content)
	var out wfmodel.StructureOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse structure output: %w", err)
	}
	if len(out.Paragraphs) == 0 {
		return nil, fmt.Errorf("structure output contains no paragraphs")
	}
	return &out, nil
}

// buildPurposeBlock 有目的时追加一行，无目的时为空串
func buildPurposeBlock(purpose string) string {
	p := strings.TrimSpace(purpose)
	if p == "" {
		return ""
	}
	return "\n- 目的: " + p
}

// buildReferenceBlock 拼接参考资料段，无资料时为空串
func buildReferenceBlock(rc wfmodel.ReportContext) string {
	var lines []string
	if len(rc.ReferenceNames) > 0 {
		lines = append(lines, "参考PDFファイル: "+strings.Join(rc.ReferenceNames, ", "))
	}
	if len(rc.ReferenceLinks) > 0 {
		lines = append(lines, "参考リンク: "+strings.Join(rc.ReferenceLinks, ", "))
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n\n# 参考資料\n" + strings.Join(lines, "\n")
}

func languageInstruction(language string) string {
	if language == "英語" {
		return "Please respond in English."
	}
	return "日本語で回答してください。"
}
