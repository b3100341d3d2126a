package ai

import (
	"context"

	"github.com/vietnguyen2358/findandseek/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector has length EmbeddingDimensions and represents the
	// semantic meaning of the text. The mapping is stable but not guaranteed
	// byte-reproducible: the same text embedded twice yields vectors with
	// cosine similarity of effectively 1.
	// Returns an error wrapping ErrEmbeddingUnavailable if generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// PersonLocalizer locates people within a frame.
// Implementations must be thread-safe for concurrent use.
type PersonLocalizer interface {
	// Locate returns normalized bounding boxes for every person visible in
	// the frame, other object classes discarded. Zero boxes is a valid
	// result meaning an empty scene, not an error.
	// Returns an error wrapping ErrDetectionUnavailable if the underlying
	// model cannot be initialized or the localization deadline elapses.
	Locate(ctx context.Context, image []byte) ([]LocatedPerson, error)
}

// AttributeExtractor derives structured attributes for a single cropped person.
// Implementations must be thread-safe for concurrent use.
type AttributeExtractor interface {
	// Analyze submits one cropped person image to a structured vision query
	// and returns the extracted attributes. A response that fails schema
	// validation yields the fallback record rather than an error; only
	// transport-level failures surface as errors, and callers substitute
	// the fallback for those too.
	Analyze(ctx context.Context, crop []byte) (PersonAttributes, error)
}

// QueryParser decomposes a raw search query into typed filters plus a
// conversational response and follow-up suggestions.
// Implementations must be thread-safe for concurrent use.
type QueryParser interface {
	// Parse extracts structured filters from free text. Callers absorb
	// failures: a parse error degrades to an empty filter list with a
	// generic apology, never a propagated error.
	Parse(ctx context.Context, query string) (*ParsedQuery, error)
}

// MatchExplainer produces a natural-language rationale for ranked matches.
// Implementations must be thread-safe for concurrent use.
type MatchExplainer interface {
	// Explain describes why the top matches fit the query, referencing the
	// matching attributes (clothing, environment) of each. Callers absorb
	// failures into a generic message.
	Explain(ctx context.Context, query string, matches []*core.SearchResult) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages the embedding, localization,
// extraction, parsing, and explanation services, ensuring they share
// configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// PersonLocalizer returns the person localization service.
	// The returned PersonLocalizer is safe for concurrent use.
	PersonLocalizer() PersonLocalizer

	// AttributeExtractor returns the attribute extraction service.
	// The returned AttributeExtractor is safe for concurrent use.
	AttributeExtractor() AttributeExtractor

	// QueryParser returns the search query parsing service.
	// The returned QueryParser is safe for concurrent use.
	QueryParser() QueryParser

	// MatchExplainer returns the match explanation service.
	// The returned MatchExplainer is safe for concurrent use.
	MatchExplainer() MatchExplainer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
