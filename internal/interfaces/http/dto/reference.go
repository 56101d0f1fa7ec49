package dto

import (
	"time"

	"report-ai-api/internal/domain/entity"
)

// AddLinkRequest 追加参考链接请求
type AddLinkRequest struct {
	URL   string `json:"url" binding:"required,url,max=2048"`
	Title string `json:"title" binding:"max=255"`
}

// LinkResponse 参考链接响应
type LinkResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FileResponse 参考文件响应（仅元信息）
type FileResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// ReferencesResponse 参考资料响应
type ReferencesResponse struct {
	Links []*LinkResponse `json:"links"`
	Files []*FileResponse `json:"files"`
}

// ToLinkResponse 转换链接实体
func ToLinkResponse(l *entity.ReferenceLink) *LinkResponse {
	if l == nil {
		return nil
	}
	return &LinkResponse{
		ID:        l.ID,
		URL:       l.URL,
		Title:     l.Title,
		CreatedAt: l.CreatedAt,
	}
}

// ToFileResponse 转换文件实体
func ToFileResponse(f *entity.ReferenceFile) *FileResponse {
	if f == nil {
		return nil
	}
	return &FileResponse{
		ID:        f.ID,
		FileName:  f.FileName,
		SizeBytes: f.SizeBytes,
		CreatedAt: f.CreatedAt,
	}
}

// ToReferencesResponse 转换参考资料集合，空集合返回空数组而非 null
func ToReferencesResponse(m *entity.ReferenceMaterial) *ReferencesResponse {
	resp := &ReferencesResponse{
		Links: make([]*LinkResponse, 0),
		Files: make([]*FileResponse, 0),
	}
	if m == nil {
		return resp
	}
	for _, l := range m.Links {
		resp.Links = append(resp.Links, ToLinkResponse(l))
	}
	for _, f := range m.Files {
		resp.Files = append(resp.Files, ToFileResponse(f))
	}
	return resp
}
