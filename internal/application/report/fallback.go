package report

import (
	"fmt"
	"math"

	"report-ai-api/internal/domain/entity"
)

// paragraphSeed 确定性构成表中的一条
type paragraphSeed struct {
	Title       string
	Description string
	Weight      float64
}

// fallbackSeeds 按品质等级返回确定性构成表
// 描述文案会内插主题，保证无 LLM 时输出依然可用
func fallbackSeeds(theme string, quality entity.Quality) []paragraphSeed {
	switch quality {
	case entity.QualityHigh:
		return []paragraphSeed{
			{"研究の背景と目的", fmt.Sprintf("%sに関する背景と、本レポートで扱う問題の概要を説明", theme), 1.0},
			{"先行研究の概観", fmt.Sprintf("%sに関する既存の研究や文献をレビューし、現在の知見を整理", theme), 2.0},
			{"理論的枠組み", fmt.Sprintf("%sを分析するための理論的な枠組みや概念を提示", theme), 3.0},
			{"主要な論点の分析", fmt.Sprintf("%sに関する主要な論点を詳細に分析し、批判的に検討", theme), 5.0},
			{"議論と考察", "提示した論点について分析を行い、独自の考察を展開", 3.0},
			{"結論と今後の展望", fmt.Sprintf("研究の成果を総括し、%sに関する今後の展望や課題を論述", theme), 2.0},
			{"参考文献", "本レポートで引用・参照した文献のリスト", 1.0},
		}
	case entity.QualityLow:
		return []paragraphSeed{
			{"序論", fmt.Sprintf("%sに関して詳述", theme), 1.0},
			{"本論", fmt.Sprintf("%sに関して詳述", theme), 3.0},
			{"結論", fmt.Sprintf("%sに関して詳述", theme), 1.0},
		}
	default:
		return []paragraphSeed{
			{"序論", fmt.Sprintf("%sに関する背景と、本レポートで扱う問題の概要を説明", theme), 1.0},
			{"背景と現状", fmt.Sprintf("%sの歴史的背景と現在の状況を解説", theme), 2.0},
			{"主要な論点", fmt.Sprintf("%sにおける重要な論点や課題を整理・提示", theme), 3.0},
			{"分析と考察", "提示した論点について分析を行い、独自の考察を展開", 3.0},
			{"結論", fmt.Sprintf("本レポートの要点をまとめ、%sに関する結論を提示", theme), 1.0},
		}
	}
}

// CalculateTargetLength 权重换算为目标字数：round(500 × weight × 品质系数)
func CalculateTargetLength(quality entity.Quality, weight float64) int {
	return int(math.Round(float64(entity.BaseTargetLength) * weight * quality.Multiplier()))
}

// FallbackStructure 生成确定性的段落构成
// 同一（主题、品质）输入永远得到相同输出
func FallbackStructure(theme string, settings *entity.ReportSettings) []*entity.Paragraph {
	seeds := fallbackSeeds(theme, settings.Quality)
	paragraphs := make([]*entity.Paragraph, 0, len(seeds))
	for i, seed := range seeds {
		p := entity.NewParagraph(seed.Title, seed.Description, CalculateTargetLength(settings.Quality, seed.Weight))
		p.Order = i + 1
		paragraphs = append(paragraphs, p)
	}
	return paragraphs
}
