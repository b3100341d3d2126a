package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/core"
)

// MockQueryParser is a test double for ai.QueryParser.
// It allows custom behavior injection via function fields.
type MockQueryParser struct {
	// ParseFunc is called by Parse if set.
	// If nil, uses default keyword-based behavior.
	ParseFunc func(ctx context.Context, query string) (*ai.ParsedQuery, error)

	callCount atomic.Int64
}

// NewMockQueryParser creates a mock query parser with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockParser().
func NewMockQueryParser() *MockQueryParser {
	return &MockQueryParser{}
}

// Parse extracts naive filters from the query.
// Default behavior: classifies words by a small keyword table. Unrecognized
// words become a single clothing filter so that results are never empty for
// a non-empty query.
func (m *MockQueryParser) Parse(ctx context.Context, query string) (*ai.ParsedQuery, error) {
	m.callCount.Add(1)

	if m.ParseFunc != nil {
		return m.ParseFunc(ctx, query)
	}

	words := strings.Fields(strings.ToLower(query))
	filters := make([]core.SearchFilter, 0, len(words))
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" {
			continue
		}
		if category, ok := keywordCategories[word]; ok {
			filters = append(filters, core.SearchFilter{Category: category, Value: word})
		}
	}
	if len(filters) == 0 && len(words) > 0 {
		filters = append(filters, core.SearchFilter{
			Category: core.FilterClothing,
			Value:    strings.Join(words, " "),
		})
	}

	return &ai.ParsedQuery{
		Filters:     filters,
		Response:    "Searching for: " + query,
		Suggestions: []string{},
	}, nil
}

// CallCount returns the number of times Parse was called.
func (m *MockQueryParser) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockQueryParser) Reset() {
	m.callCount.Store(0)
	m.ParseFunc = nil
}

var keywordCategories = map[string]core.FilterCategory{
	"hoodie":   core.FilterClothing,
	"jacket":   core.FilterClothing,
	"jeans":    core.FilterClothing,
	"tall":     core.FilterPhysical,
	"short":    core.FilterPhysical,
	"teenager": core.FilterAge,
	"elderly":  core.FilterAge,
	"station":  core.FilterLocation,
	"park":     core.FilterLocation,
	"morning":  core.FilterTime,
	"evening":  core.FilterTime,
	"walking":  core.FilterAction,
	"running":  core.FilterAction,
}
