package search

import (
	"context"
	"log/slog"

	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/storage"
)

const (
	// similarityThreshold is the strict lower bound for a candidate to count
	// as a match. A candidate at exactly this similarity is excluded.
	similarityThreshold = 0.7

	// maxSearchResults caps how many matches a search returns.
	maxSearchResults = 5

	// maxCandidateMatches caps how many matches a candidate-set scoring
	// pass returns.
	maxCandidateMatches = 3

	// topMatchesExplained is how many of the top matches are passed to the
	// explainer.
	topMatchesExplained = 3
)

// GenericExplanation is substituted when match explanation fails. Search
// results are never withheld because the narrative layer is down.
const GenericExplanation = "Match analysis is temporarily unavailable. The results above are ranked by similarity to your description."

// Searcher provides semantic similarity search over stored detections.
type Searcher struct {
	detectionRepository storage.DetectionRepository
	cameraRepository    storage.CameraRepository
	embedder            ai.Embedder
	parser              ai.QueryParser
	explainer           ai.MatchExplainer
	logger              *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	detectionRepository storage.DetectionRepository,
	cameraRepository storage.CameraRepository,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if detectionRepository == nil {
		return nil, ErrDetectionRepositoryRequired
	}
	if cameraRepository == nil {
		return nil, ErrCameraRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		detectionRepository: detectionRepository,
		cameraRepository:    cameraRepository,
		embedder:            provider.Embedder(),
		parser:              provider.QueryParser(),
		explainer:           provider.MatchExplainer(),
		logger:              slog.Default().With("component", "searcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ParseQuery decomposes a raw search query into typed filters. Parse failures
// are absorbed: the caller always receives a well-formed result, degraded to
// no filters plus an apology and rephrasing suggestions.
func (s *Searcher) ParseQuery(ctx context.Context, query string) *ai.ParsedQuery {
	parsed, err := s.parser.Parse(ctx, query)
	if err != nil {
		s.logger.Warn("query parse failed, degrading to fallback", "query", query, "err", err)
		return ai.FallbackParsedQuery()
	}
	return parsed
}

// Search finds stored detections matching the criteria.
// Returns up to maxSearchResults results, ranked by similarity descending.
func (s *Searcher) Search(ctx context.Context, criteria core.SearchCriteria) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, criteria, nil)
}

// SearchWithMonitor finds stored detections matching the criteria with monitoring.
// The monitor receives callbacks at each stage of the search process.
//
// The description is embedded and compared against stored detection vectors;
// candidates failing the time range or location filter are excluded before
// ranking. Only candidates with similarity strictly above the threshold
// qualify. Each returned detection carries its similarity as a transient
// MatchScore; the stored record is never modified.
func (s *Searcher) SearchWithMonitor(ctx context.Context, criteria core.SearchCriteria, monitor SearchMonitor) ([]*core.SearchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateSearchCriteria(&criteria); err != nil {
		return nil, err
	}

	monitor.Start(criteria)

	// Embed the description. Without a query vector there is nothing to
	// compare, so this failure is fatal to the search.
	embedding, err := s.embedder.EmbedText(ctx, criteria.Description)
	if err != nil {
		s.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}
	monitor.AfterEmbedding(len(embedding))

	filter := &storage.DetectionFilter{
		TimeRange: criteria.TimeRange,
		Location:  criteria.Location,
	}

	matches, err := s.detectionRepository.FindSimilar(ctx, embedding, filter, similarityThreshold, maxSearchResults)
	if err != nil {
		s.logger.Error("error querying for similar detections", "err", err)
		return nil, err
	}
	monitor.AfterSimilaritySearch(matches)

	// Stamp the transient per-search score and fill in any camera the
	// storage scan could not resolve
	for _, match := range matches {
		match.Detection.MatchScore = match.Similarity
		if match.Camera == nil && match.Detection.CameraId != 0 {
			camera, err := s.cameraRepository.GetCamera(ctx, match.Detection.CameraId)
			if err == nil {
				match.Camera = camera
			}
		}
	}

	monitor.Finish(matches)
	return matches, nil
}

// Explain produces a narrative assessment of the top matches against the
// query. At most topMatchesExplained matches are described. Explanation
// failures are absorbed: a generic message is returned so results are never
// withheld.
func (s *Searcher) Explain(ctx context.Context, query string, matches []*core.SearchResult) string {
	if len(matches) == 0 {
		return ""
	}

	top := matches
	if len(top) > topMatchesExplained {
		top = top[:topMatchesExplained]
	}

	analysis, err := s.explainer.Explain(ctx, query, top)
	if err != nil {
		s.logger.Warn("match explanation failed, degrading to generic message", "err", err)
		return GenericExplanation
	}
	return analysis
}
