package storage

import (
	"context"
	"time"

	"github.com/vietnguyen2358/findandseek/core"
)

// DetectionFilter narrows a similarity search to structured criteria
// evaluated alongside the vector comparison. Zero-value fields are ignored.
type DetectionFilter struct {
	// TimeRange bounds candidate detections to [Start, End], both inclusive.
	TimeRange *core.TimeRange

	// Location restricts candidates to detections whose camera location
	// contains this value, compared case-insensitively.
	Location string
}

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DetectionRepository provides operations for managing detection records.
type DetectionRepository interface {
	Repository
	// AddDetections adds one or more detections to storage.
	// Any caller-supplied ID is replaced with a new one from the sequence,
	// and InsertedAt/UpdatedAt are stamped with the current time.
	// Returns the detections with generated IDs and timestamps populated.
	AddDetections(ctx context.Context, detections ...*core.Detection) ([]*core.Detection, error)

	// UpdateDetections updates existing detections.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any detection doesn't exist.
	UpdateDetections(ctx context.Context, detections ...*core.Detection) ([]*core.Detection, error)

	// DeleteDetections removes detections by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any detection doesn't exist.
	DeleteDetections(ctx context.Context, ids ...core.ID) error

	// GetDetection retrieves a single detection by ID.
	// Returns ErrNotFound if the detection doesn't exist.
	GetDetection(ctx context.Context, id core.ID) (*core.Detection, error)

	// GetDetections retrieves multiple detections by their IDs.
	// Returns only the detections that exist (no error for missing detections).
	GetDetections(ctx context.Context, ids ...core.ID) ([]*core.Detection, error)

	// GetDetectionsByTimeRange retrieves detections within a time range.
	// Both bounds are inclusive. Results are ordered by timestamp ascending.
	GetDetectionsByTimeRange(ctx context.Context, timeRange core.TimeRange) ([]*core.Detection, error)

	// GetRecentDetections retrieves the N most recent detections, ordered by
	// timestamp descending. Returns up to limit detections.
	GetRecentDetections(ctx context.Context, limit int) ([]*core.Detection, error)

	// FindSimilar finds detections similar to the given query vector.
	// Candidates failing the filter are excluded before similarity ranking.
	// Only candidates with similarity strictly greater than minSimilarity are
	// returned, up to limit results, ordered by similarity descending with
	// more recent detections first among equals.
	FindSimilar(ctx context.Context, vector []float32, filter *DetectionFilter, minSimilarity float32, limit int) ([]*core.SearchResult, error)
}

// CameraRepository provides operations for managing camera records.
type CameraRepository interface {
	Repository
	// GetOrCreateCamera finds or creates a camera by its location.
	// Camera identity is content-derived from the location, so repeated calls
	// with the same location return the same camera.
	// Thread-safe: handles concurrent creation attempts.
	GetOrCreateCamera(ctx context.Context, location, cameraType string) (*core.Camera, error)

	// GetCamera retrieves a single camera by ID.
	// Returns ErrNotFound if the camera doesn't exist.
	GetCamera(ctx context.Context, id core.ID) (*core.Camera, error)

	// ListCameras retrieves every camera, ordered by location.
	ListCameras(ctx context.Context) ([]*core.Camera, error)

	// TouchCamera updates a camera's LastActive timestamp.
	// Returns ErrNotFound if the camera doesn't exist.
	TouchCamera(ctx context.Context, id core.ID, at time.Time) error
}
