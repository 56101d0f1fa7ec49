package report

import (
	"fmt"
	"strings"

	"report-ai-api/internal/domain/entity"
	"report-ai-api/internal/workflow/node"
)

// mockKind 模板段落类型，由标题推断
type mockKind int

const (
	mockIntro mockKind = iota
	mockBody
	mockConclusion
)

func classifyTitle(title string) mockKind {
	switch {
	case strings.Contains(title, "序論"):
		return mockIntro
	case strings.Contains(title, "結論"):
		return mockConclusion
	default:
		return mockBody
	}
}

// mockBase 按（段落类型 × 语言 × 文体）选择基础模板
func mockBase(theme string, kind mockKind, language entity.Language, style entity.WritingStyle) string {
	jp := language == entity.LanguageJapanese
	plain := style == entity.WritingStylePlain

	switch kind {
	case mockIntro:
		if !jp {
			return fmt.Sprintf("%s is one of the important issues in modern society. This report aims to examine %s from multiple perspectives and clarify its current status and challenges.", theme, theme)
		}
		if plain {
			return fmt.Sprintf("%sは、現代社会において重要な課題の一つである。本レポートでは、%sについて多角的な視点から検討を行い、その現状と課題を明らかにすることを目的とする。", theme, theme)
		}
		return fmt.Sprintf("%sは、現代社会において重要な課題の一つです。本レポートでは、%sについて多角的な視点から検討を行い、その現状と課題を明らかにすることを目的とします。", theme, theme)
	case mockConclusion:
		if !jp {
			return fmt.Sprintf("This report conducted a comprehensive examination of %s. The analysis revealed the importance of the role that %s plays in modern society. Moving forward, more practical approaches are expected based on the perspectives presented in this report.", theme, theme)
		}
		if plain {
			return fmt.Sprintf("本レポートでは、%sについて包括的な検討を行った。分析の結果、%sが現代社会において果たす役割の重要性が明らかになった。今後は、本レポートで示した視点を踏まえ、より実践的な取り組みが期待される。", theme, theme)
		}
		return fmt.Sprintf("本レポートでは、%sについて包括的な検討を行いました。分析の結果、%sが現代社会において果たす役割の重要性が明らかになりました。今後は、本レポートで示した視点を踏まえ、より実践的な取り組みが期待されます。", theme, theme)
	default:
		if !jp {
			return fmt.Sprintf("Regarding the main points about %s, analysis is conducted from the following perspectives. First, understanding the current situation based on historical background is crucial. Second, applying related theories and concepts enables deeper understanding. Third, examining specific cases from a practical perspective bridges theory and practice.", theme)
		}
		if plain {
			return fmt.Sprintf("%sに関する主要な論点として、以下の観点から分析を行う。第一に、歴史的背景を踏まえた現状の把握が重要である。第二に、関連する理論や概念を適用することで、より深い理解が可能となる。第三に、実践的な観点から具体的な事例を検討することで、理論と実践の橋渡しを図る。", theme)
		}
		return fmt.Sprintf("%sに関する主要な論点として、以下の観点から分析を行います。第一に、歴史的背景を踏まえた現状の把握が重要です。第二に、関連する理論や概念を適用することで、より深い理解が可能となります。第三に、実践的な観点から具体的な事例を検討することで、理論と実践の橋渡しを図ります。", theme)
	}
}

// applyTone 按语气做词尾替换，仅日语生效
func applyTone(content string, language entity.Language, tone entity.Tone) string {
	if language != entity.LanguageJapanese {
		return content
	}
	switch tone {
	case entity.ToneCasual:
		content = strings.ReplaceAll(content, "である", "だ")
		content = strings.ReplaceAll(content, "であった", "だった")
	case entity.ToneFriendly:
		content = strings.ReplaceAll(content, "である", "なんです")
		content = strings.ReplaceAll(content, "であった", "でした")
	}
	return content
}

// fillerSentence 为逼近目标字数追加的补充句
func fillerSentence(theme, description string, language entity.Language) string {
	if language == entity.LanguageJapanese {
		return fmt.Sprintf("さらに、%sことが重要な要素として挙げられる。これらの点を総合的に考慮することで、%sに対する理解を深めることができる。", description, theme)
	}
	return fmt.Sprintf("Furthermore, %s is an important element to consider. By comprehensively considering these points, we can deepen our understanding of %s.", description, theme)
}

// MockContent 确定性生成段落内容
// 长度不变式：结果不超过 targetLength；追加补充句直到达到其 80% 以上
// 字数一律按 rune 计
func MockContent(theme string, settings *entity.ReportSettings, p *entity.Paragraph) string {
	base := mockBase(theme, classifyTitle(p.Title), settings.Language, settings.WritingStyle)
	content := applyTone(base, settings.Language, settings.Tone)

	filler := " " + fillerSentence(theme, p.Description, settings.Language)
	for runeLen(content) < int(float64(p.TargetLength)*0.8) {
		content += filler
	}

	if runeLen(content) > p.TargetLength {
		content = node.TruncateByRunes(content, p.TargetLength)
	}
	return content
}

func runeLen(s string) int {
	return len([]rune(s))
}
