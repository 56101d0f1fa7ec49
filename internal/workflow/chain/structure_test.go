package chain

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "report-ai-api/internal/workflow/model"
)

// fakeChatModel 按调用次序返回预设结果，并记录每次 Generate 的选项数量
type fakeChatModel struct {
	replies   []fakeReply
	calls     int
	optCounts []int
}

type fakeReply struct {
	content string
	err     error
}

func (m *fakeChatModel) Generate(_ context.Context, _ []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	idx := m.calls
	m.calls++
	m.optCounts = append(m.optCounts, len(opts))
	if idx >= len(m.replies) {
		return nil, fmt.Errorf("unexpected call %d", idx)
	}
	r := m.replies[idx]
	if r.err != nil {
		return nil, r.err
	}
	return &schema.Message{Role: schema.Assistant, Content: r.content}, nil
}

func (m *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("stream not supported")
}

type fakeFactory struct {
	model model.BaseChatModel
}

func (f *fakeFactory) Get(_ context.Context, _ string) (model.BaseChatModel, error) {
	return f.model, nil
}

func (f *fakeFactory) Enabled() bool { return true }

func newStructureInput() *wfmodel.StructureInput {
	return &wfmodel.StructureInput{
		Report: wfmodel.ReportContext{
			Theme:        "気候変動",
			Language:     "日本語",
			WritingStyle: "常体",
			Tone:         "アカデミック",
			Quality:      "medium",
		},
		QualityDescription: "標準的な構成",
	}
}

func TestStructureChain_Invoke(t *testing.T) {
	payload := `{"paragraphs":[{"title":"序論","description":"導入","targetLengthWeight":1.0}]}`

	t.Run("首次调用携带结构化输出选项", func(t *testing.T) {
		cm := &fakeChatModel{replies: []fakeReply{{content: payload}}}
		c := NewStructureChain(&fakeFactory{model: cm})

		out, err := c.Invoke(context.Background(), newStructureInput())
		require.NoError(t, err)
		require.Len(t, out.Paragraphs, 1)
		assert.Equal(t, "序論", out.Paragraphs[0].Title)

		require.Equal(t, 1, cm.calls)
		assert.Positive(t, cm.optCounts[0], "first attempt should constrain the response format")
	})

	t.Run("模型不支持结构化输出时去掉选项重试", func(t *testing.T) {
		cm := &fakeChatModel{replies: []fakeReply{
			{err: fmt.Errorf("invalid parameter: response_format is not supported by this model")},
			{content: payload},
		}}
		c := NewStructureChain(&fakeFactory{model: cm})

		out, err := c.Invoke(context.Background(), newStructureInput())
		require.NoError(t, err)
		require.Len(t, out.Paragraphs, 1)

		require.Equal(t, 2, cm.calls)
		assert.Positive(t, cm.optCounts[0])
		assert.Zero(t, cm.optCounts[1], "retry should drop the response format constraint")
	})

	t.Run("其他错误不触发重试", func(t *testing.T) {
		cm := &fakeChatModel{replies: []fakeReply{
			{err: fmt.Errorf("rate limited")},
		}}
		c := NewStructureChain(&fakeFactory{model: cm})

		_, err := c.Invoke(context.Background(), newStructureInput())
		require.Error(t, err)
		assert.Equal(t, 1, cm.calls)
	})
}
