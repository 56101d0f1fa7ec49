package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_ApplyStructure(t *testing.T) {
	rep := NewReport("owner-1", "気候変動")
	rep.SetEditedContent("古い編集内容")

	items := []*Paragraph{
		NewParagraph("序論", "", 500),
		NewParagraph("本論", "", 1500),
	}
	items[0].Order = 1
	items[1].Order = 2

	rep.ApplyStructure(items)

	require.Len(t, rep.Paragraphs, 2)
	assert.Equal(t, ReportStatusStructured, rep.Status)
	// regenerating the structure invalidates a previous manual edit
	assert.Empty(t, rep.EditedContent)
}

func TestReport_AssembledContent(t *testing.T) {
	rep := NewReport("owner-1", "テーマ")
	p1 := NewParagraph("序論", "", 500)
	p1.SetContent("最初の段落。")
	p2 := NewParagraph("結論", "", 500)
	p2.SetContent("最後の段落。")
	rep.Paragraphs.Insert(p1)
	rep.Paragraphs.Insert(p2)

	assert.Equal(t, "最初の段落。\n\n最後の段落。", rep.AssembledContent())

	t.Run("edited content wins", func(t *testing.T) {
		rep.SetEditedContent("手で直した全文")
		assert.Equal(t, "手で直した全文", rep.AssembledContent())
	})
}

func TestReport_IsOwnedBy(t *testing.T) {
	rep := NewReport("owner-1", "テーマ")
	assert.True(t, rep.IsOwnedBy("owner-1"))
	assert.False(t, rep.IsOwnedBy("owner-2"))
}
