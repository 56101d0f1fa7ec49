// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"report-ai-api/internal/domain/entity"
)

// SettingsRequest 报告设置（部分更新）
type SettingsRequest struct {
	Language     *string `json:"language,omitempty"`
	WritingStyle *string `json:"writing_style,omitempty"`
	Tone         *string `json:"tone,omitempty"`
	Quality      *string `json:"quality,omitempty"`
	Purpose      *string `json:"purpose,omitempty"`
}

// ToPatch 转换为领域层的设置补丁
func (r *SettingsRequest) ToPatch() *entity.ReportSettingsPatch {
	if r == nil {
		return nil
	}
	patch := &entity.ReportSettingsPatch{Purpose: r.Purpose}
	if r.Language != nil {
		v := entity.Language(*r.Language)
		patch.Language = &v
	}
	if r.WritingStyle != nil {
		v := entity.WritingStyle(*r.WritingStyle)
		patch.WritingStyle = &v
	}
	if r.Tone != nil {
		v := entity.Tone(*r.Tone)
		patch.Tone = &v
	}
	if r.Quality != nil {
		v := entity.Quality(*r.Quality)
		patch.Quality = &v
	}
	return patch
}

// CreateReportRequest 创建报告请求
type CreateReportRequest struct {
	Theme    string           `json:"theme" binding:"required,max=255"`
	Settings *SettingsRequest `json:"settings,omitempty"`
}

// UpdateReportRequest 更新报告请求
type UpdateReportRequest struct {
	Theme    *string          `json:"theme,omitempty" binding:"omitempty,max=255"`
	Settings *SettingsRequest `json:"settings,omitempty"`
}

// UpdateContentRequest 保存手工编辑全文请求
type UpdateContentRequest struct {
	Content string `json:"content" binding:"required"`
}

// SettingsResponse 报告设置响应
type SettingsResponse struct {
	Language     string `json:"language"`
	WritingStyle string `json:"writing_style"`
	Tone         string `json:"tone"`
	Quality      string `json:"quality"`
	Purpose      string `json:"purpose,omitempty"`
}

// ReportResponse 报告响应
type ReportResponse struct {
	ID            string               `json:"id"`
	Theme         string               `json:"theme"`
	Settings      *SettingsResponse    `json:"settings"`
	Paragraphs    []*ParagraphResponse `json:"paragraphs"`
	References    *ReferencesResponse  `json:"references,omitempty"`
	EditedContent string               `json:"edited_content,omitempty"`
	Status        string               `json:"status"`
	// TotalTargetLength 目标字数合计
	TotalTargetLength int `json:"total_target_length"`
	// OverTotalBudget 合计超过上限时的警告标志
	OverTotalBudget bool       `json:"over_total_budget"`
	GeneratedAt     *time.Time `json:"generated_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ReportSummaryResponse 报告一览项
type ReportSummaryResponse struct {
	ID             string    `json:"id"`
	Theme          string    `json:"theme"`
	Status         string    `json:"status"`
	ParagraphCount int       `json:"paragraph_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToSettingsResponse 设置实体转换为响应
func ToSettingsResponse(s *entity.ReportSettings) *SettingsResponse {
	if s == nil {
		return nil
	}
	return &SettingsResponse{
		Language:     string(s.Language),
		WritingStyle: string(s.WritingStyle),
		Tone:         string(s.Tone),
		Quality:      string(s.Quality),
		Purpose:      s.Purpose,
	}
}

// ToReportResponse 报告实体转换为响应
func ToReportResponse(r *entity.Report) *ReportResponse {
	if r == nil {
		return nil
	}
	return &ReportResponse{
		ID:                r.ID,
		Theme:             r.Theme,
		Settings:          ToSettingsResponse(r.Settings),
		Paragraphs:        ToParagraphResponses(r.Paragraphs),
		References:        ToReferencesResponse(r.References),
		EditedContent:     r.EditedContent,
		Status:            string(r.Status),
		TotalTargetLength: r.Paragraphs.TotalTargetLength(),
		OverTotalBudget:   r.Paragraphs.OverTotalBudget(),
		GeneratedAt:       r.GeneratedAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// ToReportSummaryResponse 报告实体转换为一览项
func ToReportSummaryResponse(r *entity.Report) *ReportSummaryResponse {
	if r == nil {
		return nil
	}
	return &ReportSummaryResponse{
		ID:             r.ID,
		Theme:          r.Theme,
		Status:         string(r.Status),
		ParagraphCount: len(r.Paragraphs),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToReportSummaryResponses 实体列表转换为一览
func ToReportSummaryResponses(reports []*entity.Report) []*ReportSummaryResponse {
	items := make([]*ReportSummaryResponse, len(reports))
	for i, r := range reports {
		items[i] = ToReportSummaryResponse(r)
	}
	return items
}
