package dto

import (
	"time"

	"report-ai-api/internal/domain/entity"
)

// AddParagraphRequest 新增段落请求
type AddParagraphRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Description  string `json:"description" binding:"max=1000"`
	TargetLength int    `json:"target_length"`
}

// ReplaceParagraphsRequest 段落列表整体替换请求
type ReplaceParagraphsRequest struct {
	Paragraphs []AddParagraphRequest `json:"paragraphs" binding:"required,dive"`
}

// UpdateParagraphRequest 段落部分更新请求
type UpdateParagraphRequest struct {
	Title        *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Description  *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	Content      *string `json:"content,omitempty"`
	TargetLength *int    `json:"target_length,omitempty"`
}

// ToPatch 转换为领域补丁
func (r *UpdateParagraphRequest) ToPatch() *entity.ParagraphPatch {
	return &entity.ParagraphPatch{
		Title:        r.Title,
		Description:  r.Description,
		Content:      r.Content,
		TargetLength: r.TargetLength,
	}
}

// ReorderRequest 段落重排请求（position 为 1 起始的目标序号）
type ReorderRequest struct {
	ParagraphID string `json:"paragraph_id" binding:"required"`
	Position    int    `json:"position" binding:"required,min=1"`
}

// MoveRequest 段落相邻移动请求
type MoveRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// ParagraphResponse 段落响应
type ParagraphResponse struct {
	ID           string    `json:"id"`
	Order        int       `json:"order"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Content      string    `json:"content,omitempty"`
	TargetLength int       `json:"target_length"`
	ActualLength int       `json:"actual_length"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToParagraphResponse 转换段落实体
func ToParagraphResponse(p *entity.Paragraph) *ParagraphResponse {
	if p == nil {
		return nil
	}
	return &ParagraphResponse{
		ID:           p.ID,
		Order:        p.Order,
		Title:        p.Title,
		Description:  p.Description,
		Content:      p.Content,
		TargetLength: p.TargetLength,
		ActualLength: p.ActualLength(),
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToParagraphResponses 转换段落列表
func ToParagraphResponses(list entity.ParagraphList) []*ParagraphResponse {
	out := make([]*ParagraphResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToParagraphResponse(p))
	}
	return out
}
