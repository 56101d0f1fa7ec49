package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuality_Multiplier(t *testing.T) {
	assert.InDelta(t, 1.5, QualityHigh.Multiplier(), 1e-9)
	assert.InDelta(t, 1.0, QualityMedium.Multiplier(), 1e-9)
	assert.InDelta(t, 0.7, QualityLow.Multiplier(), 1e-9)
}

func TestDefaultReportSettings(t *testing.T) {
	s := DefaultReportSettings()

	assert.Equal(t, LanguageJapanese, s.Language)
	assert.Equal(t, WritingStylePlain, s.WritingStyle)
	assert.Equal(t, ToneFormal, s.Tone)
	assert.Equal(t, QualityMedium, s.Quality)
	require.NoError(t, s.Validate())
}

func TestReportSettings_Validate(t *testing.T) {
	t.Run("rejects unknown enum values", func(t *testing.T) {
		s := DefaultReportSettings()
		s.Language = "フランス語"
		assert.Error(t, s.Validate())

		s = DefaultReportSettings()
		s.Tone = "怒り"
		assert.Error(t, s.Validate())
	})

	t.Run("rejects oversized purpose", func(t *testing.T) {
		s := DefaultReportSettings()
		for i := 0; i <= MaxPurposeLength; i++ {
			s.Purpose += "あ"
		}
		assert.Error(t, s.Validate())
	})
}

func TestReportSettings_Merge(t *testing.T) {
	s := DefaultReportSettings()

	lang := LanguageEnglish
	quality := QualityHigh
	purpose := "授業の最終課題"
	s.Merge(&ReportSettingsPatch{
		Language: &lang,
		Quality:  &quality,
		Purpose:  &purpose,
	})

	assert.Equal(t, LanguageEnglish, s.Language)
	assert.Equal(t, QualityHigh, s.Quality)
	assert.Equal(t, "授業の最終課題", s.Purpose)
	// untouched fields keep their defaults
	assert.Equal(t, WritingStylePlain, s.WritingStyle)
	assert.Equal(t, ToneFormal, s.Tone)

	t.Run("nil patch is a no-op", func(t *testing.T) {
		before := *s
		s.Merge(nil)
		assert.Equal(t, before, *s)
	})
}
