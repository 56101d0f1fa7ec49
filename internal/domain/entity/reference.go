package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// 参考资料约束
const (
	MaxReferenceLinks = 5
	MaxPDFSizeBytes   = 10 << 20
	PDFContentType    = "application/pdf"
)

// ReferenceLink 参考链接
type ReferenceLink struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ReferenceFile 上传的 PDF 资料（仅保存元信息，内容存对象列）
type ReferenceFile struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// ReferenceMaterial 报告的参考资料集合
type ReferenceMaterial struct {
	Links []*ReferenceLink `json:"links"`
	Files []*ReferenceFile `json:"files"`
}

// AddLink 追加链接；超出 5 条或 URL 重复（忽略大小写与尾部斜杠）时拒绝
func (m *ReferenceMaterial) AddLink(url, title string) (*ReferenceLink, bool) {
	if len(m.Links) >= MaxReferenceLinks {
		return nil, false
	}
	norm := normalizeURL(url)
	for _, l := range m.Links {
		if normalizeURL(l.URL) == norm {
			return nil, false
		}
	}
	link := &ReferenceLink{
		ID:        uuid.New().String(),
		URL:       url,
		Title:     title,
		CreatedAt: time.Now(),
	}
	m.Links = append(m.Links, link)
	return link, true
}

// RemoveLink 删除链接，id 不存在时为 no-op
func (m *ReferenceMaterial) RemoveLink(id string) bool {
	for i, l := range m.Links {
		if l.ID == id {
			m.Links = append(m.Links[:i], m.Links[i+1:]...)
			return true
		}
	}
	return false
}

// AddFile 记录上传的 PDF 元信息
func (m *ReferenceMaterial) AddFile(fileName string, sizeBytes int64) *ReferenceFile {
	f := &ReferenceFile{
		ID:        uuid.New().String(),
		FileName:  fileName,
		SizeBytes: sizeBytes,
		CreatedAt: time.Now(),
	}
	m.Files = append(m.Files, f)
	return f
}

// RemoveFile 删除文件记录，id 不存在时为 no-op
func (m *ReferenceMaterial) RemoveFile(id string) bool {
	for i, f := range m.Files {
		if f.ID == id {
			m.Files = append(m.Files[:i], m.Files[i+1:]...)
			return true
		}
	}
	return false
}

func normalizeURL(u string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(u)), "/")
}
