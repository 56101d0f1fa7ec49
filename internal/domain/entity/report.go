package entity

import (
	"time"
)

// ReportStatus 报告状态
type ReportStatus string

const (
	ReportStatusDraft      ReportStatus = "draft"
	ReportStatusStructured ReportStatus = "structured"
	ReportStatusGenerating ReportStatus = "generating"
	ReportStatusCompleted  ReportStatus = "completed"
)

// Report 报告聚合根
// 段落列表与参考资料以 jsonb 内嵌，随报告整体读写
type Report struct {
	ID            string             `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID       string             `json:"owner_id" gorm:"type:uuid;index;not null"`
	Theme         string             `json:"theme" gorm:"type:varchar(255);not null"`
	Settings      *ReportSettings    `json:"settings" gorm:"type:jsonb;serializer:json"`
	Paragraphs    ParagraphList      `json:"paragraphs" gorm:"type:jsonb;serializer:json"`
	References    *ReferenceMaterial `json:"references,omitempty" gorm:"type:jsonb;serializer:json"`
	EditedContent string             `json:"edited_content,omitempty" gorm:"type:text"`
	Status        ReportStatus       `json:"status" gorm:"type:varchar(50);default:'draft'"`
	GeneratedAt   *time.Time         `json:"generated_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Report) TableName() string {
	return "reports"
}

// NewReport 创建新报告
func NewReport(ownerID, theme string) *Report {
	now := time.Now()
	return &Report{
		OwnerID:    ownerID,
		Theme:      theme,
		Settings:   DefaultReportSettings(),
		Paragraphs: ParagraphList{},
		References: &ReferenceMaterial{},
		Status:     ReportStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsOwnedBy 检查报告归属
func (r *Report) IsOwnedBy(userID string) bool {
	return r.OwnerID == userID
}

// ApplyStructure 替换段落构成并推进状态
func (r *Report) ApplyStructure(paragraphs []*Paragraph) {
	r.Paragraphs.ReplaceAll(paragraphs)
	r.EditedContent = ""
	r.Status = ReportStatusStructured
	r.UpdatedAt = time.Now()
}

// MarkGenerated 全文生成完成后记录时间并推进状态
func (r *Report) MarkGenerated() {
	now := time.Now()
	r.GeneratedAt = &now
	r.Status = ReportStatusCompleted
	r.UpdatedAt = now
}

// SetEditedContent 保存用户手工编辑的全文并推进状态
// 一旦设置，导出以该内容为准而非段落拼接
func (r *Report) SetEditedContent(content string) {
	r.EditedContent = content
	r.Status = ReportStatusCompleted
	r.UpdatedAt = time.Now()
}

// AssembledContent 按段落顺序拼接生成内容；存在手工编辑版本时优先返回它
func (r *Report) AssembledContent() string {
	if r.EditedContent != "" {
		return r.EditedContent
	}
	out := ""
	for _, p := range r.Paragraphs {
		if p.Content == "" {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += p.Content
	}
	return out
}
