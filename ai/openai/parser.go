package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/core"
)

// QueryParser implements ai.QueryParser using OpenAI-compatible chat APIs.
type QueryParser struct {
	client llms.Model
	logger *slog.Logger
}

// parsedFilter is an internal type used for JSON unmarshaling.
type parsedFilter struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

// parseResult is the wrapper structure for the model's JSON response.
type parseResult struct {
	Filters     []parsedFilter `json:"filters"`
	Response    string         `json:"response"`
	Suggestions []string       `json:"suggestions"`
}

// newQueryParser is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryParser(config *ai.Config) (*QueryParser, error) {
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

	return &QueryParser{
		client: client,
		logger: slog.Default().With("component", "openai-parser"),
	}, nil
}

// NewQueryParser creates a new query parser using the provided configuration.
//
// Returns ai.QueryParser interface to enforce abstraction.
func NewQueryParser(config *ai.Config) (ai.QueryParser, error) {
	return newQueryParser(config)
}

// Parse decomposes a raw search query into typed filters. Filters whose
// category is not one of the known categories are dropped.
func (p *QueryParser) Parse(ctx context.Context, query string) (*ai.ParsedQuery, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildParsePrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result parseResult
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			p.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, fmt.Errorf("%w: %w", ai.ErrQueryParseFailed, err)
		}

		if len(response.Choices) < 1 {
			return nil, fmt.Errorf("%w: no choices in response", ai.ErrQueryParseFailed)
		}

		responseText := repairJSON(cleanJSONResponse(response.Choices[0].Content))

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			p.logger.Warn("error parsing query decomposition",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		p.logger.Error("failed to parse query decomposition after retries", "err", lastErr)
		return nil, fmt.Errorf("%w: %w", ai.ErrQueryParseFailed, lastErr)
	}

	filters := make([]core.SearchFilter, 0, len(result.Filters))
	for _, f := range result.Filters {
		category := core.FilterCategory(strings.ToLower(strings.TrimSpace(f.Category)))
		if !slices.Contains(core.FilterCategories, category) {
			p.logger.Debug("dropping filter with unknown category", "category", f.Category)
			continue
		}
		if f.Value == "" {
			continue
		}
		filters = append(filters, core.SearchFilter{Category: category, Value: f.Value})
	}

	parsed := &ai.ParsedQuery{
		Filters:     filters,
		Response:    result.Response,
		Suggestions: result.Suggestions,
	}
	if parsed.Suggestions == nil {
		parsed.Suggestions = []string{}
	}

	p.logger.Debug("parsed search query", "filters", len(parsed.Filters))
	return parsed, nil
}
