package entity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceMaterial_AddLink(t *testing.T) {
	t.Run("duplicate URL rejected ignoring case and trailing slash", func(t *testing.T) {
		m := &ReferenceMaterial{}

		link, ok := m.AddLink("https://example.com/paper", "論文")
		require.True(t, ok)
		require.NotNil(t, link)
		assert.NotEmpty(t, link.ID)

		_, ok = m.AddLink("https://EXAMPLE.com/paper/", "同じ論文")
		assert.False(t, ok)
		assert.Len(t, m.Links, 1)
	})

	t.Run("capacity limit", func(t *testing.T) {
		m := &ReferenceMaterial{}
		for i := 0; i < MaxReferenceLinks; i++ {
			_, ok := m.AddLink(fmt.Sprintf("https://example.com/%d", i), "")
			require.True(t, ok)
		}

		_, ok := m.AddLink("https://example.com/overflow", "")
		assert.False(t, ok)
		assert.Len(t, m.Links, MaxReferenceLinks)
	})
}

func TestReferenceMaterial_RemoveLink(t *testing.T) {
	m := &ReferenceMaterial{}
	link, _ := m.AddLink("https://example.com", "")

	assert.False(t, m.RemoveLink("missing"))
	assert.True(t, m.RemoveLink(link.ID))
	assert.Empty(t, m.Links)
}

func TestReferenceMaterial_Files(t *testing.T) {
	m := &ReferenceMaterial{}

	f := m.AddFile("資料.pdf", 2048)
	require.NotNil(t, f)
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "資料.pdf", f.FileName)
	assert.Equal(t, int64(2048), f.SizeBytes)

	assert.False(t, m.RemoveFile("missing"))
	assert.True(t, m.RemoveFile(f.ID))
	assert.Empty(t, m.Files)
}
