package model

// ParagraphSkeleton 构成提案中的单个段落
type ParagraphSkeleton struct {
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	TargetLengthWeight float64 `json:"targetLengthWeight"`
}

// StructureOutput 构成提案的模型输出
type StructureOutput struct {
	Paragraphs []ParagraphSkeleton `json:"paragraphs"`
}

// ReportContext 提示词共享的报告上下文
type ReportContext struct {
	Theme        string
	Language     string
	WritingStyle string
	Tone         string
	Quality      string
	Purpose      string
	// ReferenceNames PDF 文件名
	ReferenceNames []string
	// ReferenceLinks 链接 URL
	ReferenceLinks []string
}

// StructureInput 构成提案输入
type StructureInput struct {
	Provider           string
	Report             ReportContext
	QualityDescription string
}

// OutlineItem 全文/单段生成时的段落概要
type OutlineItem struct {
	ID           string
	Order        int
	Title        string
	Description  string
	TargetLength int
	// Content 已生成内容（单段生成时作为前文上下文）
	Content string
}

// ContentSingleInput 单段生成输入
type ContentSingleInput struct {
	Provider         string
	Report           ReportContext
	Outline          []OutlineItem
	Target           OutlineItem
	StyleInstruction string
}

// ContentFullInput 全文生成输入
type ContentFullInput struct {
	Provider         string
	Report           ReportContext
	Outline          []OutlineItem
	StyleInstruction string
}

// ContentFullItem 全文生成输出中的单段
type ContentFullItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// ContentFullOutput 全文生成的模型输出
type ContentFullOutput struct {
	Paragraphs []ContentFullItem `json:"paragraphs"`
}
