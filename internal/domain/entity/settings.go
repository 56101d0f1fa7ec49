// Package entity 定义领域实体
package entity

import (
	"fmt"
	"unicode/utf8"
)

// Language 出力言語
type Language string

const (
	LanguageJapanese Language = "日本語"
	LanguageEnglish  Language = "英語"
)

// Valid 校验语言取值
func (l Language) Valid() bool {
	switch l {
	case LanguageJapanese, LanguageEnglish:
		return true
	default:
		return false
	}
}

// WritingStyle 文体（常体/敬体）
type WritingStyle string

const (
	WritingStylePlain  WritingStyle = "常体"
	WritingStylePolite WritingStyle = "敬体"
)

// Valid 校验文体取值
func (s WritingStyle) Valid() bool {
	switch s {
	case WritingStylePlain, WritingStylePolite:
		return true
	default:
		return false
	}
}

// Tone 语气
type Tone string

const (
	ToneFormal    Tone = "フォーマル"
	ToneCasual    Tone = "カジュアル"
	ToneSincere   Tone = "素直"
	ToneConfident Tone = "堂々"
	ToneFriendly  Tone = "フレンドリー"
)

// Valid 校验语气取值
func (t Tone) Valid() bool {
	switch t {
	case ToneFormal, ToneCasual, ToneSincere, ToneConfident, ToneFriendly:
		return true
	default:
		return false
	}
}

// Quality 品质等级，决定段落数量密度与长度系数
type Quality string

const (
	QualityHigh   Quality = "高レベル"
	QualityMedium Quality = "中レベル"
	QualityLow    Quality = "低レベル"
)

// Valid 校验品质取值
func (q Quality) Valid() bool {
	switch q {
	case QualityHigh, QualityMedium, QualityLow:
		return true
	default:
		return false
	}
}

// Multiplier 品质对应的长度系数
func (q Quality) Multiplier() float64 {
	switch q {
	case QualityHigh:
		return 1.5
	case QualityMedium:
		return 1.0
	case QualityLow:
		return 0.7
	default:
		return 1.0
	}
}

// PromptDescription 面向 LLM 提示词的品质说明（段落数量与总量只作指引，不硬性约束）
func (q Quality) PromptDescription() string {
	switch q {
	case QualityHigh:
		return "学術的で詳細な内容、参考文献を含む専門的なレポート（5〜7段落程度、合計5000文字以内）"
	case QualityMedium:
		return "バランスの取れた一般的なレポート（4〜5段落程度、合計3000〜4000文字程度）"
	case QualityLow:
		return "簡潔で要点のみをまとめたレポート（3〜4段落程度、合計2000文字程度）"
	default:
		return "一般的なレポート"
	}
}

// MaxPurposeLength 目的欄の最大文字数
const MaxPurposeLength = 256

// ReportSettings レポート生成設定
type ReportSettings struct {
	Language     Language     `json:"language"`
	WritingStyle WritingStyle `json:"writing_style"`
	Tone         Tone         `json:"tone"`
	Quality      Quality      `json:"quality"`
	Purpose      string       `json:"purpose,omitempty"`
}

// DefaultReportSettings 返回默认设置
func DefaultReportSettings() *ReportSettings {
	return &ReportSettings{
		Language:     LanguageJapanese,
		WritingStyle: WritingStylePlain,
		Tone:         ToneFormal,
		Quality:      QualityMedium,
	}
}

// Validate 校验全部字段取值
func (s *ReportSettings) Validate() error {
	if s == nil {
		return fmt.Errorf("settings is nil")
	}
	if !s.Language.Valid() {
		return fmt.Errorf("invalid language: %s", s.Language)
	}
	if !s.WritingStyle.Valid() {
		return fmt.Errorf("invalid writing style: %s", s.WritingStyle)
	}
	if !s.Tone.Valid() {
		return fmt.Errorf("invalid tone: %s", s.Tone)
	}
	if !s.Quality.Valid() {
		return fmt.Errorf("invalid quality: %s", s.Quality)
	}
	if utf8.RuneCountInString(s.Purpose) > MaxPurposeLength {
		return fmt.Errorf("purpose exceeds %d characters", MaxPurposeLength)
	}
	return nil
}

// Merge 按字段合并部分更新，空值字段保持原样
func (s *ReportSettings) Merge(patch *ReportSettingsPatch) {
	if patch == nil {
		return
	}
	if patch.Language != nil {
		s.Language = *patch.Language
	}
	if patch.WritingStyle != nil {
		s.WritingStyle = *patch.WritingStyle
	}
	if patch.Tone != nil {
		s.Tone = *patch.Tone
	}
	if patch.Quality != nil {
		s.Quality = *patch.Quality
	}
	if patch.Purpose != nil {
		s.Purpose = *patch.Purpose
	}
}

// ReportSettingsPatch 设置的部分更新
type ReportSettingsPatch struct {
	Language     *Language     `json:"language,omitempty"`
	WritingStyle *WritingStyle `json:"writing_style,omitempty"`
	Tone         *Tone         `json:"tone,omitempty"`
	Quality      *Quality      `json:"quality,omitempty"`
	Purpose      *string       `json:"purpose,omitempty"`
}

// Validate 校验补丁中出现的字段
func (p *ReportSettingsPatch) Validate() error {
	if p == nil {
		return nil
	}
	if p.Language != nil && !p.Language.Valid() {
		return fmt.Errorf("invalid language: %s", *p.Language)
	}
	if p.WritingStyle != nil && !p.WritingStyle.Valid() {
		return fmt.Errorf("invalid writing style: %s", *p.WritingStyle)
	}
	if p.Tone != nil && !p.Tone.Valid() {
		return fmt.Errorf("invalid tone: %s", *p.Tone)
	}
	if p.Quality != nil && !p.Quality.Valid() {
		return fmt.Errorf("invalid quality: %s", *p.Quality)
	}
	if p.Purpose != nil && utf8.RuneCountInString(*p.Purpose) > MaxPurposeLength {
		return fmt.Errorf("purpose exceeds %d characters", MaxPurposeLength)
	}
	return nil
}
