package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-ai-api/internal/domain/entity"
)

func TestCalculateTargetLength(t *testing.T) {
	tests := []struct {
		name    string
		quality entity.Quality
		weight  float64
		want    int
	}{
		{"high quality heaviest paragraph", entity.QualityHigh, 5.0, 3750},
		{"high quality base weight", entity.QualityHigh, 1.0, 750},
		{"medium quality base weight", entity.QualityMedium, 1.0, 500},
		{"medium quality triple weight", entity.QualityMedium, 3.0, 1500},
		{"low quality base weight", entity.QualityLow, 1.0, 350},
		{"low quality triple weight", entity.QualityLow, 3.0, 1050},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTargetLength(tt.quality, tt.weight))
		})
	}
}

func TestFallbackStructure(t *testing.T) {
	t.Run("medium quality produces five sections", func(t *testing.T) {
		settings := entity.DefaultReportSettings()
		paragraphs := FallbackStructure("気候変動", settings)
		require.Len(t, paragraphs, 5)

		wantTitles := []string{"序論", "背景と現状", "主要な論点", "分析と考察", "結論"}
		for i, p := range paragraphs {
			assert.Equal(t, i+1, p.Order)
			assert.Equal(t, wantTitles[i], p.Title)
		}
		// descriptions interpolate the theme so the outline reads naturally
		assert.Contains(t, paragraphs[0].Description, "気候変動")
		assert.Contains(t, paragraphs[4].Description, "気候変動")
	})

	t.Run("high quality produces seven sections", func(t *testing.T) {
		settings := entity.DefaultReportSettings()
		settings.Quality = entity.QualityHigh
		paragraphs := FallbackStructure("AI倫理", settings)
		require.Len(t, paragraphs, 7)
		assert.Equal(t, "研究の背景と目的", paragraphs[0].Title)
		assert.Equal(t, "参考文献", paragraphs[6].Title)
		assert.Equal(t, 3750, paragraphs[3].TargetLength)
	})

	t.Run("low quality produces three sections", func(t *testing.T) {
		settings := entity.DefaultReportSettings()
		settings.Quality = entity.QualityLow
		paragraphs := FallbackStructure("テーマ", settings)
		require.Len(t, paragraphs, 3)
		assert.Equal(t, []int{350, 1050, 350}, []int{
			paragraphs[0].TargetLength,
			paragraphs[1].TargetLength,
			paragraphs[2].TargetLength,
		})
	})

	t.Run("deterministic for the same input", func(t *testing.T) {
		settings := entity.DefaultReportSettings()
		first := FallbackStructure("同じ主題", settings)
		second := FallbackStructure("同じ主題", settings)
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].Title, second[i].Title)
			assert.Equal(t, first[i].Description, second[i].Description)
			assert.Equal(t, first[i].TargetLength, second[i].TargetLength)
		}
	})
}
