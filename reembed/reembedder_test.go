package reembed

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReembedder_Run(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	added, err := repo.AddDetections(ctx,
		newDetection("teenager in a red hoodie", nil),
		newDetection("elderly man with a cane", []float32{0.5, 0.5, 0}),
		newDetection("woman in a yellow raincoat", nil),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	reembedder := NewReembedder(repo, &mockEmbedder{}, &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     1,
	}, &buf)

	err = reembedder.Run(ctx)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Starting reembedding of 3 detections")
	assert.Contains(t, buf.String(), "Reembedding complete")

	for _, detection := range added {
		updated, err := repo.GetDetection(ctx, detection.Id)
		require.NoError(t, err)
		require.NotEmpty(t, updated.Embedding)

		var magnitude float32
		for _, v := range updated.Embedding {
			magnitude += v * v
		}
		assert.InDelta(t, 1.0, magnitude, 0.01, "vector should be normalized")
	}
}

func TestReembedder_OnlyMissing(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	existing := []float32{1, 0, 0}
	added, err := repo.AddDetections(ctx,
		newDetection("already embedded", existing),
		newDetection("left behind by an outage", nil),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	config := DefaultConfig()
	config.OnlyMissing = true
	config.RetryDelay = 1

	reembedder := NewReembedder(repo, &mockEmbedder{}, config, &buf)
	require.NoError(t, reembedder.Run(ctx))

	assert.Contains(t, buf.String(), "Starting reembedding of 1 detections")

	untouched, err := repo.GetDetection(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, existing, untouched.Embedding, "existing vector should be untouched")

	backfilled, err := repo.GetDetection(ctx, added[1].Id)
	require.NoError(t, err)
	assert.NotEmpty(t, backfilled.Embedding)
}

func TestReembedder_EmptyStore(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	var buf bytes.Buffer
	reembedder := NewReembedder(repo, &mockEmbedder{}, nil, &buf)

	err := reembedder.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No detections to process")
}
