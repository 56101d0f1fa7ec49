package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"report-ai-api/internal/domain/entity"
	"report-ai-api/internal/domain/repository"
	wfchain "report-ai-api/internal/workflow/chain"
	wfmodel "report-ai-api/internal/workflow/model"
	workflowport "report-ai-api/internal/workflow/port"
	"report-ai-api/pkg/errors"
)

// GenerateService 报告生成应用服务
// 每种生成走一条策略链：LLM 优先，确定性兜底殿后
type GenerateService struct {
	reports        repository.ReportRepository
	structureChain *wfchain.StructureChain
	contentChain   *wfchain.ContentChain
	factory        workflowport.ChatModelFactory
	tokens         *TokenTracker
	timeout        time.Duration
}

// NewGenerateService 创建生成服务
func NewGenerateService(
	reports repository.ReportRepository,
	structureChain *wfchain.StructureChain,
	contentChain *wfchain.ContentChain,
	factory workflowport.ChatModelFactory,
	tokens *TokenTracker,
	timeout time.Duration,
) *GenerateService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GenerateService{
		reports:        reports,
		structureChain: structureChain,
		contentChain:   contentChain,
		factory:        factory,
		tokens:         tokens,
		timeout:        timeout,
	}
}

// loadOwned 加载报告并校验归属
// 他人的报告返回 forbidden，与 not found 区分；响应文案由上层统一
func (s *GenerateService) loadOwned(ctx context.Context, userID, reportID string) (*entity.Report, error) {
	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, errors.ErrReportNotFound
	}
	if !rep.IsOwnedBy(userID) {
		return nil, errors.ErrForbidden
	}
	return rep, nil
}

// reportContext 组装提示词共享上下文
func reportContext(rep *entity.Report) wfmodel.ReportContext {
	rc := wfmodel.ReportContext{
		Theme:        rep.Theme,
		Language:     string(rep.Settings.Language),
		WritingStyle: string(rep.Settings.WritingStyle),
		Tone:         string(rep.Settings.Tone),
		Quality:      string(rep.Settings.Quality),
		Purpose:      rep.Settings.Purpose,
	}
	if rep.References != nil {
		for _, f := range rep.References.Files {
			rc.ReferenceNames = append(rc.ReferenceNames, f.FileName)
		}
		for _, l := range rep.References.Links {
			rc.ReferenceLinks = append(rc.ReferenceLinks, l.URL)
		}
	}
	return rc
}

// outlineOf 将段落列表转换为提示词用概要
func outlineOf(list entity.ParagraphList) []wfmodel.OutlineItem {
	items := make([]wfmodel.OutlineItem, 0, len(list))
	for _, p := range list {
		items = append(items, wfmodel.OutlineItem{
			ID:           p.ID,
			Order:        p.Order,
			Title:        p.Title,
			Description:  p.Description,
			TargetLength: p.TargetLength,
			Content:      p.Content,
		})
	}
	return items
}

// styleInstruction 组装执笔文体指示（文体 × 语气 × 品质）
func styleInstruction(settings *entity.ReportSettings) string {
	var b strings.Builder

	if settings.Language == entity.LanguageJapanese {
		if settings.WritingStyle == entity.WritingStylePlain {
			b.WriteString("「だ・である」調で執筆してください。")
		} else {
			b.WriteString("「です・ます」調で執筆してください。")
		}
		switch settings.Tone {
		case entity.ToneFormal:
			b.WriteString("格式高く、専門的な表現を使用してください。")
		case entity.ToneCasual:
			b.WriteString("親しみやすく、読みやすい表現を使用してください。")
		case entity.ToneSincere:
			b.WriteString("簡潔で分かりやすい表現を使用してください。")
		case entity.ToneConfident:
			b.WriteString("自信を持った、説得力のある表現を使用してください。")
		case entity.ToneFriendly:
			b.WriteString("親近感のある、優しい表現を使用してください。")
		}
	} else {
		switch settings.Tone {
		case entity.ToneFormal:
			b.WriteString("Use formal, academic language.")
		case entity.ToneCasual:
			b.WriteString("Use casual, conversational language.")
		case entity.ToneSincere:
			b.WriteString("Use simple, straightforward language.")
		case entity.ToneConfident:
			b.WriteString("Use confident, assertive language.")
		case entity.ToneFriendly:
			b.WriteString("Use friendly, approachable language.")
		}
	}

	switch settings.Quality {
	case entity.QualityHigh:
		if settings.Language == entity.LanguageJapanese {
			b.WriteString("学術的な深さと専門性を持った内容にしてください。必要に応じて引用や参考文献への言及を含めてください。")
		} else {
			b.WriteString(" Include scholarly depth and cite sources where appropriate.")
		}
	case entity.QualityMedium:
		if settings.Language == entity.LanguageJapanese {
			b.WriteString("バランスの取れた、読みやすい内容にしてください。")
		} else {
			b.WriteString(" Maintain a balanced, readable style.")
		}
	case entity.QualityLow:
		if settings.Language == entity.LanguageJapanese {
			b.WriteString("要点を簡潔にまとめた内容にしてください。")
		} else {
			b.WriteString(" Keep it concise and to the point.")
		}
	}

	return b.String()
}

// structureSlot / contentSlot 生成槽位键
func structureSlot(reportID string) string {
	return fmt.Sprintf("structure:%s", reportID)
}

func contentSlot(reportID string) string {
	return fmt.Sprintf("content:%s", reportID)
}

func paragraphSlot(reportID, paragraphID string) string {
	return fmt.Sprintf("content:%s:%s", reportID, paragraphID)
}
