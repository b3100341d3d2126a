package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/ai/mock"
	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/storage"
	"github.com/vietnguyen2358/findandseek/storage/badger"
)

func testPipeline(t *testing.T, opts ...Option) (*Pipeline, *mock.MockProvider, storage.DetectionRepository, storage.CameraRepository) {
	t.Helper()

	detectionRepo, cameraRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		cameraRepo.Close()
		detectionRepo.Close()
		backend.Close()
	})

	provider := mock.NewMockProvider().(*mock.MockProvider)
	pipeline, err := NewPipeline(detectionRepo, cameraRepo, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, provider, detectionRepo, cameraRepo
}

func testFrame(location string, timestamp time.Time, descriptions ...string) *Frame {
	detections := make([]core.Detection, len(descriptions))
	for i, description := range descriptions {
		detections[i] = core.Detection{
			Id:          core.ID(i + 1),
			Timestamp:   timestamp,
			BBox:        core.BBox{X: 0.1, Y: 0.1, W: 0.2, H: 0.4},
			Confidence:  0.9,
			Description: description,
			Details:     core.FallbackDetails(),
		}
	}
	return &Frame{
		CameraLocation: location,
		CameraType:     "fixed",
		Analysis: &core.FrameAnalysis{
			Detections: detections,
			Summary:    "Detected people in the scene",
		},
	}
}

func TestNewPipeline(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	provider := mock.NewMockProvider()

	t.Run("nil detection repository", func(t *testing.T) {
		_, err := NewPipeline(nil, cameraRepo, provider)
		assert.Equal(t, ErrDetectionRepositoryRequired, err)
	})

	t.Run("nil camera repository", func(t *testing.T) {
		_, err := NewPipeline(detectionRepo, nil, provider)
		assert.Equal(t, ErrCameraRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPipeline(detectionRepo, cameraRepo, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestIngest(t *testing.T) {
	ctx := context.Background()
	timestamp := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("persists detections with embeddings and camera", func(t *testing.T) {
		pipeline, _, detectionRepo, cameraRepo := testPipeline(t)

		frame := testFrame("Market Square", timestamp, "person one", "person two")
		require.NoError(t, pipeline.Ingest(ctx, frame))
		assert.NotEmpty(t, frame.Id)

		stored, err := detectionRepo.GetRecentDetections(ctx, 10)
		require.NoError(t, err)
		require.Len(t, stored, 2)

		camera, err := cameraRepo.GetOrCreateCamera(ctx, "Market Square", "fixed")
		require.NoError(t, err)

		for _, detection := range stored {
			assert.NotZero(t, detection.Id)
			assert.Equal(t, camera.Id, detection.CameraId)
			assert.NotEmpty(t, detection.Embedding)
		}

		// Camera activity advanced to the frame timestamp
		assert.True(t, camera.LastActive.Equal(timestamp) || camera.LastActive.After(timestamp))
	})

	t.Run("embedding failure stores without vectors", func(t *testing.T) {
		pipeline, provider, detectionRepo, _ := testPipeline(t)
		provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, ai.ErrEmbeddingUnavailable
		}

		frame := testFrame("Dock Road", timestamp, "person")
		require.NoError(t, pipeline.Ingest(ctx, frame))

		stored, err := detectionRepo.GetRecentDetections(ctx, 10)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Empty(t, stored[0].Embedding)
	})

	t.Run("empty frame is a no-op", func(t *testing.T) {
		pipeline, _, detectionRepo, _ := testPipeline(t)

		frame := &Frame{
			CameraLocation: "Quiet Street",
			Analysis:       &core.FrameAnalysis{Detections: []core.Detection{}, Summary: "Detected 0 people in the scene"},
		}
		require.NoError(t, pipeline.Ingest(ctx, frame))

		stored, err := detectionRepo.GetRecentDetections(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})
}

func TestEnqueueBackpressure(t *testing.T) {
	pipeline, _, _, _ := testPipeline(t, WithQueueDepth(2))

	timestamp := time.Now().UTC()

	// Queue not drained (Run not started), so the third frame is rejected
	require.NoError(t, pipeline.Enqueue(testFrame("A", timestamp, "p")))
	require.NoError(t, pipeline.Enqueue(testFrame("B", timestamp, "p")))
	assert.Equal(t, ErrQueueFull, pipeline.Enqueue(testFrame("C", timestamp, "p")))
}

func TestRunDrainsQueue(t *testing.T) {
	pipeline, _, detectionRepo, _ := testPipeline(t, WithQueueDepth(8), WithPoolSize(2))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pipeline.Run(ctx)

	timestamp := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, pipeline.Enqueue(testFrame("Plaza", timestamp, "person")))
	}

	// Wait for the queue to drain
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		stored, err := detectionRepo.GetRecentDetections(context.Background(), 10)
		require.NoError(t, err)
		if len(stored) == 4 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("queue was not drained in time")
}

func TestEnqueueAfterRelease(t *testing.T) {
	pipeline, _, _, _ := testPipeline(t)
	pipeline.Release()

	err := pipeline.Enqueue(testFrame("X", time.Now().UTC(), "p"))
	assert.Equal(t, ErrPipelineClosed, err)
}
