package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-ai-api/internal/domain/entity"
)

func mockParagraph(title string, targetLength int) *entity.Paragraph {
	p := entity.NewParagraph(title, "この論点が持つ意味", targetLength)
	p.Order = 1
	return p
}

func TestMockContent_LengthBudget(t *testing.T) {
	settings := entity.DefaultReportSettings()

	for _, target := range []int{100, 500, 1500, 3000} {
		p := mockParagraph("主要な論点", target)
		content := MockContent("気候変動", settings, p)

		got := runeLen(content)
		assert.LessOrEqual(t, got, target, "content must never exceed the target length")
		assert.GreaterOrEqual(t, got, int(float64(target)*0.8),
			"short content gets padded toward the target")
	}
}

func TestMockContent_Deterministic(t *testing.T) {
	settings := entity.DefaultReportSettings()
	p := mockParagraph("序論", 800)

	first := MockContent("気候変動", settings, p)
	second := MockContent("気候変動", settings, p)
	assert.Equal(t, first, second)
}

func TestMockContent_SectionTemplates(t *testing.T) {
	settings := entity.DefaultReportSettings()

	t.Run("intro mentions the report goal", func(t *testing.T) {
		content := MockContent("気候変動", settings, mockParagraph("序論", 500))
		assert.Contains(t, content, "気候変動")
		assert.Contains(t, content, "本レポート")
	})

	t.Run("conclusion summarizes", func(t *testing.T) {
		content := MockContent("気候変動", settings, mockParagraph("結論", 500))
		assert.Contains(t, content, "包括的な検討")
	})

	t.Run("body enumerates viewpoints", func(t *testing.T) {
		content := MockContent("気候変動", settings, mockParagraph("背景と現状", 500))
		assert.Contains(t, content, "第一に")
	})
}

func TestMockContent_ToneAndStyle(t *testing.T) {
	t.Run("casual tone rewrites plain-form endings", func(t *testing.T) {
		settings := entity.DefaultReportSettings()
		settings.Tone = entity.ToneCasual
		content := MockContent("気候変動", settings, mockParagraph("序論", 300))
		assert.NotContains(t, content, "である")
	})

	t.Run("friendly tone rewrites plain-form endings", func(t *testing.T) {
		settings := entity.DefaultReportSettings()
		settings.Tone = entity.ToneFriendly
		content := MockContent("気候変動", settings, mockParagraph("序論", 300))
		assert.NotContains(t, content, "である")
		assert.Contains(t, content, "なんです")
	})

	t.Run("tone substitution skips english output", func(t *testing.T) {
		settings := entity.DefaultReportSettings()
		settings.Language = entity.LanguageEnglish
		settings.Tone = entity.ToneCasual
		content := MockContent("Climate Change", settings, mockParagraph("序論", 400))
		require.NotEmpty(t, content)
		assert.True(t, strings.Contains(content, "Climate Change"))
	})
}
