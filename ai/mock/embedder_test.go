package mock

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietnguyen2358/findandseek/ai"
)

func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func TestMockEmbedderDeterminism(t *testing.T) {
	ctx := context.Background()
	embedder := NewMockEmbedder()

	t.Run("same text embeds identically", func(t *testing.T) {
		first, err := embedder.EmbedText(ctx, "person in a red hoodie near the station")
		require.NoError(t, err)
		second, err := embedder.EmbedText(ctx, "person in a red hoodie near the station")
		require.NoError(t, err)

		require.Len(t, first, ai.EmbeddingDimensions)
		require.Len(t, second, ai.EmbeddingDimensions)
		assert.InDelta(t, 1.0, cosine(first, second), 1e-6)
	})

	t.Run("distinct texts diverge", func(t *testing.T) {
		red, err := embedder.EmbedText(ctx, "red hoodie")
		require.NoError(t, err)
		blue, err := embedder.EmbedText(ctx, "blue sedan")
		require.NoError(t, err)

		assert.Less(t, cosine(red, blue), 0.9999)
	})

	t.Run("batch matches single", func(t *testing.T) {
		single, err := embedder.EmbedText(ctx, "elderly man walking a dog")
		require.NoError(t, err)
		batch, err := embedder.EmbedTexts(ctx, []string{"elderly man walking a dog"})
		require.NoError(t, err)

		require.Len(t, batch, 1)
		assert.InDelta(t, 1.0, cosine(single, batch[0]), 1e-6)
	})
}

func TestMockEmbedderConcurrentCallCount(t *testing.T) {
	ctx := context.Background()
	embedder := NewMockEmbedder()

	const calls = 64
	var wg sync.WaitGroup
	wg.Add(calls)
	for i := 0; i < calls; i++ {
		go func() {
			defer wg.Done()
			_, err := embedder.EmbedText(ctx, "person in a dark jacket")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, calls, embedder.CallCount())

	embedder.Reset()
	assert.Equal(t, 0, embedder.CallCount())
}
