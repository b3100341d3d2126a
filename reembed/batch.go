package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/storage"
)

// BatchProcessor handles embedding generation for batches of detections.
type BatchProcessor struct {
	repo           storage.DetectionRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.DetectionRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of detections and updates them in
// the database. Each detection is embedded from its natural language
// description. Vectors are normalized after embedding to ensure compatibility
// with cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, detections []*core.Detection) error {
	if len(detections) == 0 {
		return nil
	}

	texts := make([]string, len(detections))
	for i, detection := range detections {
		texts[i] = detection.Description
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(detections) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(detections), len(embeddings))
	}

	for i := range detections {
		detections[i].Embedding = NormalizeVector(embeddings[i])
	}

	_, err = bp.repo.UpdateDetections(ctx, detections...)
	if err != nil {
		return fmt.Errorf("failed to update detections: %w", err)
	}

	return nil
}
