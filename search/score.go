package search

import (
	"context"
	"math"
	"slices"

	"github.com/vietnguyen2358/findandseek/core"
)

// ScoreCandidates ranks an ad hoc set of detections against the query
// without touching storage. This covers searches over detections the caller
// supplies directly, such as the current frame's results before they are
// persisted.
//
// The query and every candidate description are embedded in one batch, then
// compared pairwise. The same strict threshold applies as for stored
// searches; the result cap is tighter since the candidate set is small.
func (s *Searcher) ScoreCandidates(ctx context.Context, query string, detections []*core.Detection) ([]*core.SearchResult, error) {
	if len(detections) == 0 {
		return []*core.SearchResult{}, nil
	}

	texts := make([]string, 0, len(detections)+1)
	texts = append(texts, query)
	for _, detection := range detections {
		texts = append(texts, detection.Description)
	}

	embeddings, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		s.logger.Error("error embedding candidate descriptions", "err", err)
		return nil, err
	}

	queryVector := embeddings[0]
	results := make([]*core.SearchResult, 0, len(detections))
	for i, detection := range detections {
		similarity := cosineSimilarity(queryVector, embeddings[i+1])
		if similarity > similarityThreshold {
			detection.MatchScore = similarity
			results = append(results, &core.SearchResult{
				Detection:  detection,
				Similarity: similarity,
			})
		}
	}

	// Sort by similarity descending, most recent first among equals
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return b.Detection.Timestamp.Compare(a.Detection.Timestamp)
	})

	if len(results) > maxCandidateMatches {
		results = results[:maxCandidateMatches]
	}
	return results, nil
}

// cosineSimilarity calculates the cosine similarity of two vectors.
func cosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
