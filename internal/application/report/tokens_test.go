package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenTracker(t *testing.T) {
	tracker := NewTokenTracker()

	t.Run("tokens increase per slot", func(t *testing.T) {
		first := tracker.Begin("structure:r1")
		second := tracker.Begin("structure:r1")
		assert.Equal(t, first+1, second)
	})

	t.Run("only the latest token is valid", func(t *testing.T) {
		old := tracker.Begin("content:r1:p1")
		latest := tracker.Begin("content:r1:p1")

		assert.False(t, tracker.Valid("content:r1:p1", old))
		assert.True(t, tracker.Valid("content:r1:p1", latest))
	})

	t.Run("slots are independent", func(t *testing.T) {
		a := tracker.Begin("content:r2:p1")
		b := tracker.Begin("content:r2:p2")
		assert.True(t, tracker.Valid("content:r2:p1", a))
		assert.True(t, tracker.Valid("content:r2:p2", b))
	})

	t.Run("unknown slot has zero token", func(t *testing.T) {
		assert.Zero(t, tracker.Current("structure:never-seen"))
	})
}
