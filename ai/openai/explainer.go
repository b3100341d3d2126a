package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/core"
)

// MatchExplainer implements ai.MatchExplainer using OpenAI-compatible chat
// APIs. The explanation is free-form prose, so no JSON mode is requested.
type MatchExplainer struct {
	client llms.Model
	logger *slog.Logger
}

// newMatchExplainer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newMatchExplainer(config *ai.Config) (*MatchExplainer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &MatchExplainer{
		client: client,
		logger: slog.Default().With("component", "openai-explainer"),
	}, nil
}

// NewMatchExplainer creates a new match explainer using the provided
// configuration.
//
// Returns ai.MatchExplainer interface to enforce abstraction.
func NewMatchExplainer(config *ai.Config) (ai.MatchExplainer, error) {
	return newMatchExplainer(config)
}

// Explain produces a narrative assessment of the given matches against the
// original query. Failures wrap ai.ErrExplanationFailed; callers substitute
// a generic message rather than failing the search.
func (e *MatchExplainer) Explain(ctx context.Context, query string, matches []*core.SearchResult) (string, error) {
	lines := make([]string, 0, len(matches))
	for _, match := range matches {
		lines = append(lines, formatMatchLine(match))
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(explainSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildExplainPrompt(query, lines)),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		e.logger.Error("failed to generate explanation", "err", err)
		return "", fmt.Errorf("%w: %w", ai.ErrExplanationFailed, err)
	}

	if len(response.Choices) < 1 || response.Choices[0].Content == "" {
		return "", fmt.Errorf("%w: empty response", ai.ErrExplanationFailed)
	}

	return response.Choices[0].Content, nil
}

// formatMatchLine renders one match for the explanation prompt.
func formatMatchLine(match *core.SearchResult) string {
	location := "unknown location"
	if match.Camera != nil && match.Camera.Location != "" {
		location = match.Camera.Location
	}
	return fmt.Sprintf("- %s wearing %s at %s (similarity %.2f, seen %s)",
		match.Detection.Description,
		match.Detection.Details.Clothing,
		location,
		match.Similarity,
		match.Detection.Timestamp.Format("2006-01-02 15:04:05"))
}
