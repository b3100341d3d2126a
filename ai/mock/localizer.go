package mock

import (
	"context"
	"sync/atomic"

	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/core"
)

// MockPersonLocalizer is a test double for ai.PersonLocalizer.
// It allows custom behavior injection via function fields.
type MockPersonLocalizer struct {
	// LocateFunc is called by Locate if set.
	// If nil, uses default single-box behavior.
	LocateFunc func(ctx context.Context, image []byte) ([]ai.LocatedPerson, error)

	callCount atomic.Int64
}

// NewMockPersonLocalizer creates a mock localizer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockLocalizer().
func NewMockPersonLocalizer() *MockPersonLocalizer {
	return &MockPersonLocalizer{}
}

// Locate returns mock bounding boxes for the frame.
// Default behavior: one centered box for a non-empty image, none otherwise.
func (m *MockPersonLocalizer) Locate(ctx context.Context, image []byte) ([]ai.LocatedPerson, error) {
	m.callCount.Add(1)

	if m.LocateFunc != nil {
		return m.LocateFunc(ctx, image)
	}

	if len(image) == 0 {
		return []ai.LocatedPerson{}, nil
	}

	return []ai.LocatedPerson{
		{
			BBox:       core.BBox{X: 0.4, Y: 0.3, W: 0.2, H: 0.4},
			Confidence: 0.9,
		},
	}, nil
}

// CallCount returns the number of times Locate was called.
func (m *MockPersonLocalizer) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockPersonLocalizer) Reset() {
	m.callCount.Store(0)
	m.LocateFunc = nil
}
