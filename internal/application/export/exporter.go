// Package export 实现报告的 Markdown / 纯文本导出
package export

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"report-ai-api/internal/domain/entity"
	"report-ai-api/pkg/errors"
	"report-ai-api/pkg/metrics"
)

// Format 导出格式
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Valid 检查导出格式
func (f Format) Valid() bool {
	switch f {
	case FormatMarkdown, FormatText:
		return true
	}
	return false
}

// 未生成段落的占位文案
const (
	placeholderMarkdown = "*[この段落はまだ生成されていません]*\n"
	placeholderText     = "[この段落はまだ生成されていません]\n"
)

// Result 导出产物
type Result struct {
	Content     string
	FileName    string
	ContentType string
}

// Exporter 报告导出器
type Exporter struct {
	now func() time.Time
}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// Export 按格式导出报告
// 存在手工编辑版本时以其为准；否则按段落构成拼装
func (e *Exporter) Export(rep *entity.Report, format Format) (*Result, error) {
	if !format.Valid() {
		return nil, errors.New(errors.CodeInvalidParam, fmt.Sprintf("unsupported export format: %s", format))
	}

	now := e.now()
	var content, ext, contentType string
	switch format {
	case FormatMarkdown:
		if rep.EditedContent != "" {
			content = rep.EditedContent
		} else {
			content = ToMarkdown(rep.Theme, rep.Paragraphs, rep.Settings, now)
		}
		ext = "md"
		contentType = "text/markdown; charset=utf-8"
	case FormatText:
		if rep.EditedContent != "" {
			content = StripMarkdown(rep.EditedContent)
		} else {
			content = ToPlainText(rep.Theme, rep.Paragraphs)
		}
		ext = "txt"
		contentType = "text/plain; charset=utf-8"
	}

	metrics.ExportTotal.WithLabelValues(string(format)).Inc()

	return &Result{
		Content:     content,
		FileName:    FileName(rep.Theme, ext, now),
		ContentType: contentType,
	}, nil
}

// ToMarkdown 生成 Markdown 文档：标题、设置元数据块、各段落小节
func ToMarkdown(theme string, paragraphs entity.ParagraphList, settings *entity.ReportSettings, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n", theme))

	b.WriteString("---\n")
	b.WriteString(fmt.Sprintf("言語: %s\n", settings.Language))
	b.WriteString(fmt.Sprintf("文体: %s\n", settings.WritingStyle))
	b.WriteString(fmt.Sprintf("トーン: %s\n", settings.Tone))
	b.WriteString(fmt.Sprintf("品質: %s\n", settings.Quality))
	if settings.Purpose != "" {
		b.WriteString(fmt.Sprintf("目的: %s\n", settings.Purpose))
	}
	b.WriteString(fmt.Sprintf("生成日: %s\n", now.Format("2006/1/2")))
	b.WriteString("---\n\n")

	sections := make([]string, 0, len(paragraphs))
	for _, p := range sortedByOrder(paragraphs) {
		heading := fmt.Sprintf("## %d. %s\n\n", p.Order, p.Title)
		body := p.Content
		if body == "" {
			body = placeholderMarkdown
		}
		sections = append(sections, heading+body+"\n")
	}
	b.WriteString(strings.Join(sections, "\n"))

	return b.String()
}

// ToPlainText 生成纯文本文档，标题用 = / - 下划线装饰
func ToPlainText(theme string, paragraphs entity.ParagraphList) string {
	var b strings.Builder
	b.WriteString(theme + "\n")
	b.WriteString(strings.Repeat("=", runeLen(theme)) + "\n\n")

	sections := make([]string, 0, len(paragraphs))
	for _, p := range sortedByOrder(paragraphs) {
		heading := fmt.Sprintf("%d. %s\n%s\n\n", p.Order, p.Title, strings.Repeat("-", runeLen(p.Title)+3))
		body := p.Content
		if body == "" {
			body = placeholderText
		}
		sections = append(sections, heading+body+"\n")
	}
	b.WriteString(strings.Join(sections, "\n"))

	return b.String()
}

var (
	headingRe  = regexp.MustCompile(`#{1,6} `)
	filenameRe = regexp.MustCompile(`[^a-zA-Z0-9ぁ-んァ-ヶー一-龯]`)
)

// StripMarkdown 去除标题标记、强调符号与反引号
func StripMarkdown(s string) string {
	s = headingRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}

// FileName 构造下载文件名：主题中的非英数・非日语字符替换为下划线，追加日期
func FileName(theme, ext string, now time.Time) string {
	safe := filenameRe.ReplaceAllString(theme, "_")
	return fmt.Sprintf("%s_%s.%s", safe, now.Format("2006-01-02"), ext)
}

func sortedByOrder(paragraphs entity.ParagraphList) entity.ParagraphList {
	sorted := append(entity.ParagraphList(nil), paragraphs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return sorted
}

func runeLen(s string) int {
	return len([]rune(s))
}
