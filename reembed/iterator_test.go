package reembed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/storage"
	"github.com/vietnguyen2358/findandseek/storage/badger"
)

func setupTestDB(t *testing.T) (storage.DetectionRepository, func()) {
	backend, err := badger.OpenBackend("", true) // in-memory
	require.NoError(t, err)

	repo, err := badger.NewDetectionRepository(backend)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		backend.Close()
	}

	return repo, cleanup
}

func newDetection(description string, embedding []float32) *core.Detection {
	return &core.Detection{
		Timestamp:   time.Now().UTC(),
		BBox:        core.BBox{X: 0.1, Y: 0.1, W: 0.2, H: 0.4},
		Confidence:  0.9,
		Description: description,
		Details:     core.FallbackDetails(),
		Embedding:   embedding,
	}
}

func TestDetectionIterator_Basic(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	added, err := repo.AddDetections(ctx,
		newDetection("person one", nil),
		newDetection("person two", nil),
		newDetection("person three", nil),
	)
	require.NoError(t, err)
	require.Len(t, added, 3)

	iter := NewDetectionIterator(repo, 2, false) // Batch size of 2
	count := 0
	batches := 0

	err = iter.ForEach(ctx, func(detections []*core.Detection) error {
		batches++
		count += len(detections)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, count, "should iterate all 3 detections")
	assert.Equal(t, 2, batches, "should split into 2 batches")
}

func TestDetectionIterator_OnlyMissing(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	_, err := repo.AddDetections(ctx,
		newDetection("has vector", []float32{1, 0, 0}),
		newDetection("missing vector", nil),
	)
	require.NoError(t, err)

	iter := NewDetectionIterator(repo, 10, true)

	total, err := iter.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	var descriptions []string
	err = iter.ForEach(ctx, func(detections []*core.Detection) error {
		for _, d := range detections {
			descriptions = append(descriptions, d.Description)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"missing vector"}, descriptions)
}

func TestDetectionIterator_Empty(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	iter := NewDetectionIterator(repo, 10, false)
	called := false

	err := iter.ForEach(context.Background(), func([]*core.Detection) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.False(t, called, "callback should not run for an empty store")
}

func TestDetectionIterator_StopsOnError(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	_, err := repo.AddDetections(ctx,
		newDetection("a", nil),
		newDetection("b", nil),
		newDetection("c", nil),
	)
	require.NoError(t, err)

	iter := NewDetectionIterator(repo, 1, false)
	batchErr := errors.New("stop here")
	batches := 0

	err = iter.ForEach(ctx, func([]*core.Detection) error {
		batches++
		if batches == 2 {
			return batchErr
		}
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, batchErr, err)
	assert.Equal(t, 2, batches, "iteration should stop at the failing batch")
}

func TestDetectionIterator_ContextCanceled(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	iter := NewDetectionIterator(repo, 10, false)
	err := iter.ForEach(ctx, func([]*core.Detection) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
