package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildList(titles ...string) ParagraphList {
	var l ParagraphList
	for _, title := range titles {
		l.Insert(NewParagraph(title, "", BaseTargetLength))
	}
	return l
}

func orders(l ParagraphList) []int {
	out := make([]int, 0, len(l))
	for _, p := range l {
		out = append(out, p.Order)
	}
	return out
}

func titles(l ParagraphList) []string {
	out := make([]string, 0, len(l))
	for _, p := range l {
		out = append(out, p.Title)
	}
	return out
}

func TestClampTargetLength(t *testing.T) {
	assert.Equal(t, MinTargetLength, ClampTargetLength(-50))
	assert.Equal(t, MinTargetLength, ClampTargetLength(0))
	assert.Equal(t, MinTargetLength, ClampTargetLength(99))
	assert.Equal(t, 100, ClampTargetLength(100))
	assert.Equal(t, 500, ClampTargetLength(500))
	assert.Equal(t, 3000, ClampTargetLength(3000))
	assert.Equal(t, MaxTargetLength, ClampTargetLength(9999))
}

func TestParagraphList_Insert(t *testing.T) {
	t.Run("orders stay dense", func(t *testing.T) {
		l := buildList("a", "b", "c")
		assert.Equal(t, []int{1, 2, 3}, orders(l))
	})

	t.Run("target length clamped on insert", func(t *testing.T) {
		var l ParagraphList
		require.True(t, l.Insert(NewParagraph("a", "", 10)))
		require.True(t, l.Insert(NewParagraph("b", "", 99999)))
		assert.Equal(t, MinTargetLength, l[0].TargetLength)
		assert.Equal(t, MaxTargetLength, l[1].TargetLength)
	})

	t.Run("rejects insert beyond capacity", func(t *testing.T) {
		var l ParagraphList
		for i := 0; i < MaxParagraphs; i++ {
			require.True(t, l.Insert(NewParagraph("p", "", BaseTargetLength)))
		}
		assert.False(t, l.Insert(NewParagraph("overflow", "", BaseTargetLength)))
		assert.Len(t, l, MaxParagraphs)
		assert.Equal(t, MaxParagraphs, l[len(l)-1].Order)
	})
}

func TestParagraphList_Remove(t *testing.T) {
	l := buildList("a", "b", "c", "d")

	require.True(t, l.Remove(l[1].ID))

	assert.Equal(t, []string{"a", "c", "d"}, titles(l))
	assert.Equal(t, []int{1, 2, 3}, orders(l))

	t.Run("unknown id is a no-op", func(t *testing.T) {
		assert.False(t, l.Remove("missing"))
		assert.Len(t, l, 3)
	})
}

func TestParagraphList_Reorder(t *testing.T) {
	t.Run("move forward", func(t *testing.T) {
		l := buildList("a", "b", "c", "d")
		require.True(t, l.Reorder(l[3].ID, 1))
		assert.Equal(t, []string{"d", "a", "b", "c"}, titles(l))
		assert.Equal(t, []int{1, 2, 3, 4}, orders(l))
	})

	t.Run("move backward", func(t *testing.T) {
		l := buildList("a", "b", "c", "d")
		require.True(t, l.Reorder(l[0].ID, 3))
		assert.Equal(t, []string{"b", "c", "a", "d"}, titles(l))
		assert.Equal(t, []int{1, 2, 3, 4}, orders(l))
	})

	t.Run("out of range position clamps to bounds", func(t *testing.T) {
		l := buildList("a", "b", "c")
		require.True(t, l.Reorder(l[0].ID, 99))
		assert.Equal(t, []string{"b", "c", "a"}, titles(l))

		require.True(t, l.Reorder(l[2].ID, -5))
		assert.Equal(t, []string{"a", "b", "c"}, titles(l))
	})

	t.Run("unknown id", func(t *testing.T) {
		l := buildList("a", "b")
		assert.False(t, l.Reorder("missing", 1))
	})
}

func TestParagraphList_MoveAdjacent(t *testing.T) {
	t.Run("swap neighbours", func(t *testing.T) {
		l := buildList("a", "b", "c")
		require.True(t, l.MoveAdjacent(l[1].ID, MoveDirectionUp))
		assert.Equal(t, []string{"b", "a", "c"}, titles(l))
		assert.Equal(t, []int{1, 2, 3}, orders(l))

		require.True(t, l.MoveAdjacent(l[1].ID, MoveDirectionDown))
		assert.Equal(t, []string{"b", "c", "a"}, titles(l))
	})

	t.Run("boundary moves are no-ops", func(t *testing.T) {
		l := buildList("a", "b")
		assert.False(t, l.MoveAdjacent(l[0].ID, MoveDirectionUp))
		assert.False(t, l.MoveAdjacent(l[1].ID, MoveDirectionDown))
		assert.Equal(t, []string{"a", "b"}, titles(l))
	})

	t.Run("invalid direction", func(t *testing.T) {
		l := buildList("a", "b")
		assert.False(t, l.MoveAdjacent(l[0].ID, "sideways"))
	})
}

func TestParagraphList_Update(t *testing.T) {
	l := buildList("a")
	id := l[0].ID

	newTitle := "renamed"
	tooLong := 99999
	require.True(t, l.Update(id, &ParagraphPatch{Title: &newTitle, TargetLength: &tooLong}))

	assert.Equal(t, "renamed", l[0].Title)
	assert.Equal(t, MaxTargetLength, l[0].TargetLength)

	assert.False(t, l.Update("missing", &ParagraphPatch{Title: &newTitle}))
}

func TestParagraphList_Totals(t *testing.T) {
	var l ParagraphList
	l.Insert(NewParagraph("a", "", 1000))
	l.Insert(NewParagraph("b", "", 2000))

	assert.Equal(t, 3000, l.TotalTargetLength())
	assert.False(t, l.OverTotalBudget())

	// 10 paragraphs at the cap exceed the 30000 soft limit marker only above it
	var full ParagraphList
	for i := 0; i < MaxParagraphs; i++ {
		full.Insert(NewParagraph("p", "", MaxTargetLength))
	}
	assert.Equal(t, 30000, full.TotalTargetLength())
	assert.False(t, full.OverTotalBudget())
}

func TestParagraph_ActualLength(t *testing.T) {
	p := NewParagraph("title", "", BaseTargetLength)
	p.SetContent("こんにちは")

	assert.Equal(t, 5, p.ActualLength())
	assert.Equal(t, ParagraphStatusCompleted, p.Status)
}
