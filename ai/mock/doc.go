// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.PersonLocalizer,
// ai.AttributeExtractor, ai.QueryParser, ai.MatchExplainer, and ai.Provider for
// use in unit tests. The mocks allow tests to run without external AI service
// dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embeddings, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockLocalizer := mock.NewMockPersonLocalizer()
//	mockLocalizer.LocateFunc = func(ctx context.Context, image []byte) ([]ai.LocatedPerson, error) {
//	    return nil, ai.ErrDetectionUnavailable
//	}
//
//	// Check call counts
//	count := mockLocalizer.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockPersonLocalizer: Returns a single centered bounding box
//   - MockAttributeExtractor: Derives simple attributes from the crop bytes
//   - MockQueryParser: Extracts naive filters from query words
//   - MockMatchExplainer: Produces a one-line summary per match
//   - MockProvider: Aggregates all five mock services
package mock
