package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object unchanged",
			in:   `{"title":"序論"}`,
			want: `{"title":"序論"}`,
		},
		{
			name: "object wrapped in prose",
			in:   "以下が構成案です。\n{\"title\":\"序論\"}\nご確認ください。",
			want: `{"title":"序論"}`,
		},
		{
			name: "code fenced array",
			in:   "```json\n[{\"order\":1}]\n```",
			want: `[{"order":1}]`,
		},
		{
			name: "array before object picks the array",
			in:   `[1,2] trailing {"a":1}`,
			want: `[1,2]`,
		},
		{
			name: "no json returns trimmed input",
			in:   "  申し訳ありません、生成できません  ",
			want: "申し訳ありません、生成できません",
		},
		{
			name: "empty input",
			in:   "   ",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONObject(tt.in))
		})
	}
}

func TestTruncateByRunes(t *testing.T) {
	assert.Equal(t, "こんに", TruncateByRunes("こんにちは", 3))
	assert.Equal(t, "abc", TruncateByRunes("abc", 10))
	assert.Equal(t, "", TruncateByRunes("abc", 0))
}
