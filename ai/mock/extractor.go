package mock

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/core"
)

// MockAttributeExtractor is a test double for ai.AttributeExtractor.
// It allows custom behavior injection via function fields.
type MockAttributeExtractor struct {
	// AnalyzeFunc is called by Analyze if set.
	// If nil, uses default crop-derived behavior.
	AnalyzeFunc func(ctx context.Context, crop []byte) (ai.PersonAttributes, error)

	callCount atomic.Int64
}

// NewMockAttributeExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockAttributeExtractor() *MockAttributeExtractor {
	return &MockAttributeExtractor{}
}

// Analyze derives mock attributes from the crop.
// Default behavior: a deterministic description keyed on crop length, so
// distinct crops produce distinct descriptions.
func (m *MockAttributeExtractor) Analyze(ctx context.Context, crop []byte) (ai.PersonAttributes, error) {
	m.callCount.Add(1)

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, crop)
	}

	if len(crop) == 0 {
		return ai.FallbackAttributes(), nil
	}

	return ai.PersonAttributes{
		Description: fmt.Sprintf("Person in crop of %d bytes", len(crop)),
		Details: core.DetectionDetails{
			Age:                 "20-30",
			Clothing:            "dark jacket, blue jeans",
			Environment:         "outdoor walkway",
			Movement:            "walking left to right",
			DistinctiveFeatures: []string{"backpack"},
		},
	}, nil
}

// CallCount returns the number of times Analyze was called.
// Analyze runs on pool workers, so the count is kept atomic.
func (m *MockAttributeExtractor) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockAttributeExtractor) Reset() {
	m.callCount.Store(0)
	m.AnalyzeFunc = nil
}
