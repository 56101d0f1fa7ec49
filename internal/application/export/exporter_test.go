package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-ai-api/internal/domain/entity"
)

var exportNow = time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

func exportReport() *entity.Report {
	rep := entity.NewReport("owner-1", "気候変動")
	p1 := entity.NewParagraph("序論", "", 500)
	p1.SetContent("序論の本文。")
	p2 := entity.NewParagraph("結論", "", 500)
	rep.Paragraphs.Insert(p1)
	rep.Paragraphs.Insert(p2)
	return rep
}

func newTestExporter() *Exporter {
	e := NewExporter()
	e.now = func() time.Time { return exportNow }
	return e
}

func TestFormat_Valid(t *testing.T) {
	assert.True(t, FormatMarkdown.Valid())
	assert.True(t, FormatText.Valid())
	assert.False(t, Format("pdf").Valid())
}

func TestExporter_Markdown(t *testing.T) {
	e := newTestExporter()
	result, err := e.Export(exportReport(), FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, "text/markdown; charset=utf-8", result.ContentType)
	assert.Equal(t, "気候変動_2026-03-07.md", result.FileName)

	assert.True(t, strings.HasPrefix(result.Content, "# 気候変動\n\n"))
	// settings metadata block
	assert.Contains(t, result.Content, "言語: 日本語\n")
	assert.Contains(t, result.Content, "生成日: 2026/3/7\n")
	// numbered section headings in paragraph order
	assert.Contains(t, result.Content, "## 1. 序論\n\n序論の本文。")
	assert.Contains(t, result.Content, "## 2. 結論\n\n*[この段落はまだ生成されていません]*")
}

func TestExporter_MarkdownOmitsEmptyPurpose(t *testing.T) {
	e := newTestExporter()
	rep := exportReport()

	result, err := e.Export(rep, FormatMarkdown)
	require.NoError(t, err)
	assert.NotContains(t, result.Content, "目的:")

	rep.Settings.Purpose = "講義の最終課題"
	result, err = e.Export(rep, FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, result.Content, "目的: 講義の最終課題\n")
}

func TestExporter_Text(t *testing.T) {
	e := newTestExporter()
	result, err := e.Export(exportReport(), FormatText)
	require.NoError(t, err)

	assert.Equal(t, "text/plain; charset=utf-8", result.ContentType)
	assert.Equal(t, "気候変動_2026-03-07.txt", result.FileName)

	// theme underlined with "=" per rune, titles with "-" per rune plus numbering
	assert.True(t, strings.HasPrefix(result.Content, "気候変動\n====\n\n"))
	assert.Contains(t, result.Content, "1. 序論\n-----\n")
	assert.Contains(t, result.Content, "2. 結論\n-----\n\n[この段落はまだ生成されていません]")
}

func TestExporter_EditedContentWins(t *testing.T) {
	e := newTestExporter()

	t.Run("markdown keeps the edit verbatim", func(t *testing.T) {
		rep := exportReport()
		rep.SetEditedContent("# 手直し版\n\n**要点**だけ。")
		result, err := e.Export(rep, FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, "# 手直し版\n\n**要点**だけ。", result.Content)
	})

	t.Run("text strips markdown from the edit", func(t *testing.T) {
		rep := exportReport()
		rep.SetEditedContent("# 手直し版\n\n**要点**だけ。")
		result, err := e.Export(rep, FormatText)
		require.NoError(t, err)
		assert.Equal(t, "手直し版\n\n要点だけ。", result.Content)
	})
}

func TestExporter_UnsupportedFormat(t *testing.T) {
	e := newTestExporter()
	_, err := e.Export(exportReport(), Format("docx"))
	assert.Error(t, err)
}

func TestStripMarkdown(t *testing.T) {
	in := "## 見出し\n\n**強調**と*斜体*と`コード`。"
	assert.Equal(t, "見出し\n\n強調と斜体とコード。", StripMarkdown(in))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		theme string
		want  string
	}{
		{"気候変動", "気候変動_2026-03-07.md"},
		{"AI & Society", "AI___Society_2026-03-07.md"},
		{"レポート/2026", "レポート_2026_2026-03-07.md"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.theme, "md", exportNow))
	}
}
