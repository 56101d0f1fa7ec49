package dto

// GenerationResponse 生成结果响应（structure / content）
type GenerationResponse struct {
	Strategy string          `json:"strategy"`
	Report   *ReportResponse `json:"report"`
}

// ParagraphGenerationResponse 单段落生成结果响应
type ParagraphGenerationResponse struct {
	Strategy  string             `json:"strategy"`
	Paragraph *ParagraphResponse `json:"paragraph"`
}
