package search

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/ai/mock"
	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/storage/badger"
)

func TestNewSearcher(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		cameraRepo.Close()
		detectionRepo.Close()
		backend.Close()
	}()

	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(detectionRepo, cameraRepo, provider)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		logger := slog.Default()
		searcher, err := NewSearcher(detectionRepo, cameraRepo, provider, WithLogger(logger))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(detectionRepo, cameraRepo, provider, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil detection repository", func(t *testing.T) {
		_, err := NewSearcher(nil, cameraRepo, provider)
		assert.Equal(t, ErrDetectionRepositoryRequired, err)
	})

	t.Run("nil camera repository", func(t *testing.T) {
		_, err := NewSearcher(detectionRepo, nil, provider)
		assert.Equal(t, ErrCameraRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewSearcher(detectionRepo, cameraRepo, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

// testSearcher builds a searcher over in-memory repositories.
func testSearcher(t *testing.T) (*Searcher, *mock.MockProvider, func() []*core.Detection) {
	t.Helper()

	detectionRepo, cameraRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		cameraRepo.Close()
		detectionRepo.Close()
		backend.Close()
	})

	provider := mock.NewMockProvider().(*mock.MockProvider)
	searcher, err := NewSearcher(detectionRepo, cameraRepo, provider)
	require.NoError(t, err)

	ctx := context.Background()
	camera, err := cameraRepo.GetOrCreateCamera(ctx, "Transit Center West", "fixed")
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	seeded := []*core.Detection{
		{
			CameraId:    camera.Id,
			Timestamp:   now,
			BBox:        core.BBox{X: 0.1, Y: 0.1, W: 0.2, H: 0.4},
			Confidence:  0.9,
			Description: "teenager in a red hoodie",
			Details:     core.FallbackDetails(),
		},
		{
			CameraId:    camera.Id,
			Timestamp:   now.Add(-1 * time.Hour),
			BBox:        core.BBox{X: 0.5, Y: 0.2, W: 0.2, H: 0.4},
			Confidence:  0.8,
			Description: "elderly man with a cane",
			Details:     core.FallbackDetails(),
		},
	}

	seed := func() []*core.Detection {
		// The mock embedder keys vectors on text, so embed each stored
		// description the same way a real ingest would
		for _, detection := range seeded {
			vector, err := provider.Embedder().EmbedText(ctx, detection.Description)
			require.NoError(t, err)
			detection.Embedding = vector
		}
		added, err := detectionRepo.AddDetections(ctx, seeded...)
		require.NoError(t, err)
		return added
	}

	return searcher, provider, seed
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("identical description is a top match", func(t *testing.T) {
		searcher, _, seed := testSearcher(t)
		seed()

		results, err := searcher.Search(ctx, core.SearchCriteria{
			Description: "teenager in a red hoodie",
		})
		require.NoError(t, err)
		require.NotEmpty(t, results)

		assert.Equal(t, "teenager in a red hoodie", results[0].Detection.Description)
		assert.InDelta(t, 1.0, float64(results[0].Similarity), 0.001)
		assert.Equal(t, results[0].Similarity, results[0].Detection.MatchScore)
		require.NotNil(t, results[0].Camera)
		assert.Equal(t, "Transit Center West", results[0].Camera.Location)
	})

	t.Run("empty description is rejected", func(t *testing.T) {
		searcher, _, _ := testSearcher(t)

		_, err := searcher.Search(ctx, core.SearchCriteria{})
		assert.Error(t, err)
	})

	t.Run("embedding failure is fatal", func(t *testing.T) {
		searcher, provider, _ := testSearcher(t)
		provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, ai.ErrEmbeddingUnavailable
		}

		_, err := searcher.Search(ctx, core.SearchCriteria{Description: "anyone"})
		assert.ErrorIs(t, err, ai.ErrEmbeddingUnavailable)
	})

	t.Run("location filter excludes other cameras", func(t *testing.T) {
		searcher, _, seed := testSearcher(t)
		seed()

		results, err := searcher.Search(ctx, core.SearchCriteria{
			Description: "teenager in a red hoodie",
			Location:    "harbor",
		})
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = searcher.Search(ctx, core.SearchCriteria{
			Description: "teenager in a red hoodie",
			Location:    "transit center",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, results)
	})

	t.Run("time range filter", func(t *testing.T) {
		searcher, _, seed := testSearcher(t)
		seed()

		outside := core.TimeRange{
			Start: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		}
		results, err := searcher.Search(ctx, core.SearchCriteria{
			Description: "teenager in a red hoodie",
			TimeRange:   &outside,
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestParseQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("filters extracted", func(t *testing.T) {
		searcher, _, _ := testSearcher(t)

		parsed := searcher.ParseQuery(ctx, "teenager in a hoodie near the station")
		require.NotNil(t, parsed)
		assert.NotEmpty(t, parsed.Filters)
		assert.NotNil(t, parsed.Suggestions)
	})

	t.Run("parse failure degrades to fallback", func(t *testing.T) {
		searcher, provider, _ := testSearcher(t)
		provider.GetMockParser().ParseFunc = func(ctx context.Context, query string) (*ai.ParsedQuery, error) {
			return nil, ai.ErrQueryParseFailed
		}

		parsed := searcher.ParseQuery(ctx, "anything")
		require.NotNil(t, parsed)
		assert.Empty(t, parsed.Filters)
		assert.NotEmpty(t, parsed.Response)
		assert.NotEmpty(t, parsed.Suggestions)
	})
}

func TestExplain(t *testing.T) {
	ctx := context.Background()

	match := func(description string) *core.SearchResult {
		return &core.SearchResult{
			Detection:  &core.Detection{Description: description, Details: core.FallbackDetails()},
			Similarity: 0.9,
		}
	}

	t.Run("no matches yields empty analysis", func(t *testing.T) {
		searcher, _, _ := testSearcher(t)
		assert.Empty(t, searcher.Explain(ctx, "query", nil))
	})

	t.Run("explainer output returned", func(t *testing.T) {
		searcher, _, _ := testSearcher(t)
		analysis := searcher.Explain(ctx, "red hoodie", []*core.SearchResult{match("person one")})
		assert.NotEmpty(t, analysis)
	})

	t.Run("only top matches are explained", func(t *testing.T) {
		searcher, provider, _ := testSearcher(t)

		var explained int
		provider.GetMockExplainer().ExplainFunc = func(ctx context.Context, query string, matches []*core.SearchResult) (string, error) {
			explained = len(matches)
			return "ok", nil
		}

		matches := []*core.SearchResult{
			match("one"), match("two"), match("three"), match("four"), match("five"),
		}
		searcher.Explain(ctx, "query", matches)
		assert.Equal(t, 3, explained)
	})

	t.Run("explanation failure degrades to generic message", func(t *testing.T) {
		searcher, provider, _ := testSearcher(t)
		provider.GetMockExplainer().ExplainFunc = func(ctx context.Context, query string, matches []*core.SearchResult) (string, error) {
			return "", ai.ErrExplanationFailed
		}

		analysis := searcher.Explain(ctx, "query", []*core.SearchResult{match("one")})
		assert.Equal(t, GenericExplanation, analysis)
	})
}

func TestScoreCandidates(t *testing.T) {
	ctx := context.Background()

	t.Run("empty candidate set", func(t *testing.T) {
		searcher, _, _ := testSearcher(t)
		results, err := searcher.ScoreCandidates(ctx, "query", nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("identical description scores highest", func(t *testing.T) {
		searcher, _, _ := testSearcher(t)

		now := time.Now().UTC()
		candidates := []*core.Detection{
			{Description: "man in a blue coat", Timestamp: now},
			{Description: "completely different scene", Timestamp: now},
		}

		results, err := searcher.ScoreCandidates(ctx, "man in a blue coat", candidates)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "man in a blue coat", results[0].Detection.Description)
		assert.InDelta(t, 1.0, float64(results[0].Similarity), 0.001)
		assert.Equal(t, results[0].Similarity, results[0].Detection.MatchScore)
	})

	t.Run("embedding failure surfaces", func(t *testing.T) {
		searcher, provider, _ := testSearcher(t)
		provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, ai.ErrEmbeddingUnavailable
		}

		_, err := searcher.ScoreCandidates(ctx, "query", []*core.Detection{{Description: "x", Timestamp: time.Now()}})
		assert.ErrorIs(t, err, ai.ErrEmbeddingUnavailable)
	})
}
