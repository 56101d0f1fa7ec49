package chain

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "report-ai-api/internal/workflow/model"
)

func newContentFullInput() *wfmodel.ContentFullInput {
	return &wfmodel.ContentFullInput{
		Report: wfmodel.ReportContext{
			Theme:        "気候変動",
			Language:     "日本語",
			WritingStyle: "常体",
			Tone:         "アカデミック",
			Quality:      "medium",
		},
		Outline: []wfmodel.OutlineItem{
			{ID: "p1", Order: 1, Title: "序論", Description: "導入", TargetLength: 500},
		},
	}
}

func TestContentChain_InvokeFull(t *testing.T) {
	payload := `{"paragraphs":[{"id":"p1","content":"本文"}]}`

	t.Run("首次调用携带结构化输出选项", func(t *testing.T) {
		cm := &fakeChatModel{replies: []fakeReply{{content: payload}}}
		c := NewContentChain(&fakeFactory{model: cm})

		out, err := c.InvokeFull(context.Background(), newContentFullInput())
		require.NoError(t, err)
		require.Len(t, out.Paragraphs, 1)
		assert.Equal(t, "p1", out.Paragraphs[0].ID)

		require.Equal(t, 1, cm.calls)
		assert.Positive(t, cm.optCounts[0])
	})

	t.Run("模型不支持结构化输出时去掉选项重试", func(t *testing.T) {
		cm := &fakeChatModel{replies: []fakeReply{
			{err: fmt.Errorf("unknown parameter 'response_format'")},
			{content: payload},
		}}
		c := NewContentChain(&fakeFactory{model: cm})

		out, err := c.InvokeFull(context.Background(), newContentFullInput())
		require.NoError(t, err)
		require.Len(t, out.Paragraphs, 1)

		require.Equal(t, 2, cm.calls)
		assert.Positive(t, cm.optCounts[0])
		assert.Zero(t, cm.optCounts[1])
	})

	t.Run("单段生成不附加结构化输出选项", func(t *testing.T) {
		cm := &fakeChatModel{replies: []fakeReply{{content: "段落の本文。"}}}
		c := NewContentChain(&fakeFactory{model: cm})

		in := &wfmodel.ContentSingleInput{
			Report:  newContentFullInput().Report,
			Outline: newContentFullInput().Outline,
			Target:  newContentFullInput().Outline[0],
		}
		got, err := c.InvokeSingle(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "段落の本文。", got)

		require.Equal(t, 1, cm.calls)
		assert.Zero(t, cm.optCounts[0])
	})
}
