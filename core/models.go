package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// BBox is a bounding box normalized to the [0,1] range of image width and
// height. Coordinates are scale-independent: X and Y locate the top-left
// corner, W and H are the box extent.
type BBox struct {
	X float32
	Y float32
	W float32
	H float32
}

// MarshalJSON encodes the box in the wire format [x, y, w, h].
func (b BBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float32{b.X, b.Y, b.W, b.H})
}

// UnmarshalJSON decodes the box from the wire format [x, y, w, h].
func (b *BBox) UnmarshalJSON(data []byte) error {
	var arr [4]float32
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBBox, err)
	}
	b.X, b.Y, b.W, b.H = arr[0], arr[1], arr[2], arr[3]
	return nil
}

// Clamp returns a copy of the box with every component forced into [0,1]
// and the extent trimmed so the box stays inside the unit square.
func (b BBox) Clamp() BBox {
	clamped := BBox{
		X: clamp01(b.X),
		Y: clamp01(b.Y),
		W: clamp01(b.W),
		H: clamp01(b.H),
	}
	if clamped.X+clamped.W > 1 {
		clamped.W = 1 - clamped.X
	}
	if clamped.Y+clamped.H > 1 {
		clamped.H = 1 - clamped.Y
	}
	return clamped
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// DetectionDetails holds the structured attributes extracted for one person.
// DistinctiveFeatures may be empty but is never nil.
type DetectionDetails struct {
	Age                 string
	Clothing            string
	Environment         string
	Movement            string
	DistinctiveFeatures []string
}

// FallbackDetails returns the sentinel attribute set substituted when
// attribute extraction fails for a crop. One person's analysis failing must
// never invalidate the rest of the frame, so this well-formed placeholder
// stands in for the failed result.
func FallbackDetails() DetectionDetails {
	return DetectionDetails{
		Age:                 "Unknown",
		Clothing:            "Not visible",
		Environment:         "Not specified",
		Movement:            "Unknown",
		DistinctiveFeatures: []string{},
	}
}

// FallbackDescription is the one-line description attached to a fallback
// detection record.
const FallbackDescription = "Analysis failed"

// Detection represents a single person localized and attributed within one
// frame. Description and Details are immutable once the record is created.
// MatchScore is set transiently per search and is never persisted as ground
// truth.
type Detection struct {
	Id          ID
	CameraId    ID
	Timestamp   time.Time // Frame capture time, stamped on every detection of the frame
	BBox        BBox
	Confidence  float32
	Description string
	Details     DetectionDetails
	Embedding   []float32 // Vector for semantic search (populated at ingestion)
	MatchScore  float32   // Transient, per-search
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// FrameAnalysis is the aggregate result of running the pipeline on one frame.
type FrameAnalysis struct {
	Detections []Detection
	Summary    string
}

// TimeRange bounds a search to [Start, End]. Both bounds are inclusive.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls within the range, bounds included.
func (r TimeRange) Contains(ts time.Time) bool {
	return !ts.Before(r.Start) && !ts.After(r.End)
}

// SearchCriteria describes one similarity search. It is immutable and
// constructed per query.
type SearchCriteria struct {
	Description string     // Required free-text description of the person
	TimeRange   *TimeRange // Optional, inclusive bounds
	Location    string     // Optional case-insensitive substring of the camera location
}

// FilterCategory classifies a parsed search filter.
type FilterCategory string

const (
	FilterClothing FilterCategory = "clothing"
	FilterPhysical FilterCategory = "physical"
	FilterLocation FilterCategory = "location"
	FilterTime     FilterCategory = "time"
	FilterAge      FilterCategory = "age"
	FilterAction   FilterCategory = "action"
)

// FilterCategories lists the valid categories for parsed search filters.
var FilterCategories = []FilterCategory{
	FilterClothing,
	FilterPhysical,
	FilterLocation,
	FilterTime,
	FilterAge,
	FilterAction,
}

// SearchFilter is one typed filter decomposed from a raw search query.
type SearchFilter struct {
	Category FilterCategory `json:"category"`
	Value    string         `json:"value"`
}

// Camera status values.
const (
	CameraStatusActive  = "active"
	CameraStatusOffline = "offline"
)

// Camera describes a surveillance camera. Records are owned by the
// persistent store; the pipeline only reads them for result enrichment.
type Camera struct {
	Id         ID
	Location   string
	LastActive time.Time
	Type       string
	Status     string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// SearchResult pairs a detection with its similarity to the query and the
// camera that produced it. Results are transient, constructed for one query,
// and ordered by descending similarity.
type SearchResult struct {
	Detection  *Detection
	Similarity float32
	Camera     *Camera
}
