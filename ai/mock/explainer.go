package mock

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/vietnguyen2358/findandseek/core"
)

// MockMatchExplainer is a test double for ai.MatchExplainer.
// It allows custom behavior injection via function fields.
type MockMatchExplainer struct {
	// ExplainFunc is called by Explain if set.
	// If nil, uses default one-line-per-match behavior.
	ExplainFunc func(ctx context.Context, query string, matches []*core.SearchResult) (string, error)

	callCount atomic.Int64
}

// NewMockMatchExplainer creates a mock explainer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExplainer().
func NewMockMatchExplainer() *MockMatchExplainer {
	return &MockMatchExplainer{}
}

// Explain produces a deterministic one-line summary per match.
func (m *MockMatchExplainer) Explain(ctx context.Context, query string, matches []*core.SearchResult) (string, error) {
	m.callCount.Add(1)

	if m.ExplainFunc != nil {
		return m.ExplainFunc(ctx, query, matches)
	}

	if len(matches) == 0 {
		return fmt.Sprintf("No candidates matched %q.", query), nil
	}

	lines := make([]string, 0, len(matches)+1)
	lines = append(lines, fmt.Sprintf("Assessment for %q:", query))
	for i, match := range matches {
		lines = append(lines, fmt.Sprintf("%d. %s (similarity %.2f)",
			i+1, match.Detection.Description, match.Similarity))
	}
	return strings.Join(lines, "\n"), nil
}

// CallCount returns the number of times Explain was called.
func (m *MockMatchExplainer) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockMatchExplainer) Reset() {
	m.callCount.Store(0)
	m.ExplainFunc = nil
}
