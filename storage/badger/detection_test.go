package badger

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/storage"
)

func newDetection(description string, timestamp time.Time, embedding []float32) *core.Detection {
	return &core.Detection{
		Timestamp:   timestamp,
		BBox:        core.BBox{X: 0.1, Y: 0.1, W: 0.2, H: 0.4},
		Confidence:  0.9,
		Description: description,
		Details:     core.FallbackDetails(),
		Embedding:   embedding,
	}
}

// vectorWithSimilarity builds a unit vector whose cosine similarity to the
// unit query vector [1,0,0] is exactly s.
func vectorWithSimilarity(s float64) []float32 {
	return []float32{float32(s), float32(math.Sqrt(1 - s*s)), 0}
}

func TestDetectionBasics(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		cameraRepo.Close()
		detectionRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	detection := newDetection("man in a red jacket", time.Now().UTC(), nil)

	added, err := detectionRepo.AddDetections(ctx, detection)
	if err != nil {
		t.Fatalf("Failed to add detection: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 detection, got %d", len(added))
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	retrieved, err := detectionRepo.GetDetection(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get detection: %v", err)
	}

	if retrieved.Description != "man in a red jacket" {
		t.Fatalf("Expected 'man in a red jacket', got '%s'", retrieved.Description)
	}

	// Missing IDs are an error for single lookup
	if _, err := detectionRepo.GetDetection(ctx, core.ID(99999)); err != storage.ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDetectionTimeRange(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	detections := []*core.Detection{
		newDetection("first", now.Add(-2*time.Hour), nil),
		newDetection("second", now.Add(-1*time.Hour), nil),
		newDetection("third", now, nil),
	}

	if _, err := detectionRepo.AddDetections(ctx, detections...); err != nil {
		t.Fatalf("Failed to add detections: %v", err)
	}

	// Both bounds are inclusive: a range ending exactly at a detection's
	// timestamp includes that detection.
	results, err := detectionRepo.GetDetectionsByTimeRange(ctx, core.TimeRange{
		Start: now.Add(-1 * time.Hour),
		End:   now,
	})
	if err != nil {
		t.Fatalf("Failed to get detections by time range: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 detections, got %d", len(results))
	}
	if results[0].Description != "second" || results[1].Description != "third" {
		t.Fatalf("Unexpected order: %s, %s", results[0].Description, results[1].Description)
	}

	// Start bound is inclusive too
	results, err = detectionRepo.GetDetectionsByTimeRange(ctx, core.TimeRange{
		Start: now.Add(-2 * time.Hour),
		End:   now.Add(-2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Failed to get detections by time range: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 detection, got %d", len(results))
	}
}

func TestDetectionRecent(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		detection := newDetection("person", now.Add(time.Duration(i)*time.Minute), nil)
		if _, err := detectionRepo.AddDetections(ctx, detection); err != nil {
			t.Fatalf("Failed to add detection: %v", err)
		}
	}

	results, err := detectionRepo.GetRecentDetections(ctx, 3)
	if err != nil {
		t.Fatalf("Failed to get recent detections: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 detections, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Timestamp.After(results[i-1].Timestamp) {
			t.Fatal("Expected timestamps in descending order")
		}
	}
}

func TestFindSimilarThresholdAndRanking(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	detections := []*core.Detection{
		newDetection("close match", now, vectorWithSimilarity(0.95)),
		newDetection("barely above", now, vectorWithSimilarity(0.71)),
		newDetection("below threshold", now, vectorWithSimilarity(0.69)),
	}
	if _, err := detectionRepo.AddDetections(ctx, detections...); err != nil {
		t.Fatalf("Failed to add detections: %v", err)
	}

	query := []float32{1, 0, 0}
	results, err := detectionRepo.FindSimilar(ctx, query, nil, 0.7, 5)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results above threshold, got %d", len(results))
	}
	if results[0].Detection.Description != "close match" {
		t.Fatalf("Expected 'close match' first, got '%s'", results[0].Detection.Description)
	}
	if results[1].Detection.Description != "barely above" {
		t.Fatalf("Expected 'barely above' second, got '%s'", results[1].Detection.Description)
	}
}

func TestFindSimilarStrictBoundary(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC()

	// A candidate at exactly the threshold is excluded: the comparison is
	// strictly greater-than. An identical vector scores exactly 1.0, so a
	// threshold of 1.0 must yield nothing.
	exact := newDetection("exact threshold", now, []float32{1, 0, 0})
	if _, err := detectionRepo.AddDetections(ctx, exact); err != nil {
		t.Fatalf("Failed to add detection: %v", err)
	}

	results, err := detectionRepo.FindSimilar(ctx, []float32{1, 0, 0}, nil, 1.0, 5)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected 0 results at exact threshold, got %d", len(results))
	}

	// Strictly above passes
	results, err = detectionRepo.FindSimilar(ctx, []float32{1, 0, 0}, nil, 0.99, 5)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result above threshold, got %d", len(results))
	}
}

func TestFindSimilarLimit(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 10; i++ {
		detection := newDetection("candidate", now, vectorWithSimilarity(0.8))
		if _, err := detectionRepo.AddDetections(ctx, detection); err != nil {
			t.Fatalf("Failed to add detection: %v", err)
		}
	}

	results, err := detectionRepo.FindSimilar(ctx, []float32{1, 0, 0}, nil, 0.7, 5)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("Expected results capped at 5, got %d", len(results))
	}
}

func TestFindSimilarRecencyTiebreak(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	older := newDetection("older", now.Add(-1*time.Hour), vectorWithSimilarity(0.9))
	newer := newDetection("newer", now, vectorWithSimilarity(0.9))
	if _, err := detectionRepo.AddDetections(ctx, older, newer); err != nil {
		t.Fatalf("Failed to add detections: %v", err)
	}

	results, err := detectionRepo.FindSimilar(ctx, []float32{1, 0, 0}, nil, 0.7, 5)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Detection.Description != "newer" {
		t.Fatalf("Expected newer detection first on equal similarity, got '%s'", results[0].Detection.Description)
	}
}

func TestFindSimilarFilters(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	station, err := cameraRepo.GetOrCreateCamera(ctx, "Central Station North", "fixed")
	if err != nil {
		t.Fatalf("Failed to create camera: %v", err)
	}
	park, err := cameraRepo.GetOrCreateCamera(ctx, "Riverside Park", "fixed")
	if err != nil {
		t.Fatalf("Failed to create camera: %v", err)
	}

	atStation := newDetection("at station", now, vectorWithSimilarity(0.9))
	atStation.CameraId = station.Id
	atPark := newDetection("at park", now.Add(-3*time.Hour), vectorWithSimilarity(0.9))
	atPark.CameraId = park.Id
	if _, err := detectionRepo.AddDetections(ctx, atStation, atPark); err != nil {
		t.Fatalf("Failed to add detections: %v", err)
	}

	// Location filter is a case-insensitive substring match
	results, err := detectionRepo.FindSimilar(ctx, []float32{1, 0, 0},
		&storage.DetectionFilter{Location: "central station"}, 0.7, 5)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 1 || results[0].Detection.Description != "at station" {
		t.Fatalf("Expected only the station detection, got %d results", len(results))
	}
	if results[0].Camera == nil || results[0].Camera.Id != station.Id {
		t.Fatal("Expected camera enrichment on result")
	}

	// Time range filter excludes the older detection
	results, err = detectionRepo.FindSimilar(ctx, []float32{1, 0, 0},
		&storage.DetectionFilter{TimeRange: &core.TimeRange{Start: now.Add(-1 * time.Hour), End: now}}, 0.7, 5)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 1 || results[0].Detection.Description != "at station" {
		t.Fatalf("Expected only the recent detection, got %d results", len(results))
	}
}

func TestFindSimilarSkipsUnembedded(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()

	unembedded := newDetection("no vector yet", time.Now().UTC(), nil)
	if _, err := detectionRepo.AddDetections(ctx, unembedded); err != nil {
		t.Fatalf("Failed to add detection: %v", err)
	}

	results, err := detectionRepo.FindSimilar(ctx, []float32{1, 0, 0}, nil, 0.0, 5)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected unembedded detections to be skipped, got %d results", len(results))
	}
}

func TestAddDetectionsReplacesCallerIDs(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()

	detection := newDetection("woman with a stroller", time.Now().UTC(), nil)
	detection.Id = 999999

	added, err := detectionRepo.AddDetections(ctx, detection)
	if err != nil {
		t.Fatalf("Failed to add detection: %v", err)
	}

	if added[0].Id == 999999 {
		t.Fatal("Expected caller-supplied ID to be replaced by a sequence ID")
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID from sequence")
	}
	if added[0].InsertedAt.IsZero() || added[0].UpdatedAt.IsZero() {
		t.Fatal("Expected insert timestamps to be stamped")
	}

	if _, err := detectionRepo.GetDetection(ctx, 999999); err == nil {
		t.Fatal("Expected no record under the caller-supplied ID")
	}
}
