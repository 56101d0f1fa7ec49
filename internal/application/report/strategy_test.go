package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("first success wins", func(t *testing.T) {
		chain := &Chain[string, string]{
			Kind: "structure",
			Strategies: []Strategy[string, string]{
				{Name: "llm", Run: func(_ context.Context, in string) (string, error) {
					return in + ":llm", nil
				}},
				{Name: "mock", Run: func(_ context.Context, _ string) (string, error) {
					t.Fatal("later strategies must not run after a success")
					return "", nil
				}},
			},
		}

		result, err := chain.Execute(ctx, "theme")
		require.NoError(t, err)
		assert.Equal(t, "theme:llm", result.Output)
		assert.Equal(t, "llm", result.Strategy)
	})

	t.Run("falls through to the next strategy", func(t *testing.T) {
		chain := &Chain[string, string]{
			Kind: "structure",
			Strategies: []Strategy[string, string]{
				{Name: "llm", Run: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("model unavailable")
				}},
				{Name: "mock", Run: func(_ context.Context, in string) (string, error) {
					return in + ":mock", nil
				}},
			},
		}

		result, err := chain.Execute(ctx, "theme")
		require.NoError(t, err)
		assert.Equal(t, "mock", result.Strategy)
	})

	t.Run("aggregates errors when everything fails", func(t *testing.T) {
		chain := &Chain[string, string]{
			Kind: "content",
			Strategies: []Strategy[string, string]{
				{Name: "llm", Run: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("first failure")
				}},
				{Name: "mock", Run: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("second failure")
				}},
			},
		}

		_, err := chain.Execute(ctx, "theme")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "first failure")
		assert.Contains(t, err.Error(), "second failure")
	})

	t.Run("empty chain is an error", func(t *testing.T) {
		chain := &Chain[string, string]{Kind: "content"}
		_, err := chain.Execute(ctx, "theme")
		assert.Error(t, err)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		chain := &Chain[string, string]{
			Kind: "content",
			Strategies: []Strategy[string, string]{
				{Name: "llm", Run: func(_ context.Context, _ string) (string, error) {
					t.Fatal("must not run with a cancelled context")
					return "", nil
				}},
			},
		}

		_, err := chain.Execute(cancelled, "theme")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
