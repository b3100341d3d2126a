// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/core"
)

// AttributeExtractor implements ai.AttributeExtractor using OpenAI-compatible
// vision chat APIs.
type AttributeExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// personAnalysis is an internal type used for JSON unmarshaling.
// It matches the fixed schema the model is asked to produce.
type personAnalysis struct {
	Description         string   `json:"description"`
	Age                 string   `json:"age"`
	Clothing            string   `json:"clothing"`
	Environment         string   `json:"environment"`
	Movement            string   `json:"movement"`
	DistinctiveFeatures []string `json:"distinctive_features"`
}

// newAttributeExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAttributeExtractor(config *ai.Config) (*AttributeExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.VisionHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.VisionModel),
	)
	if err != nil {
		return nil, err
	}

	return &AttributeExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewAttributeExtractor creates a new attribute extractor using the provided
// configuration.
//
// Returns ai.AttributeExtractor interface to enforce abstraction.
func NewAttributeExtractor(config *ai.Config) (ai.AttributeExtractor, error) {
	return newAttributeExtractor(config)
}

// Analyze submits one cropped person image to the vision model and returns
// the structured attributes. A response that cannot be coerced to the fixed
// schema yields the fallback record; only the transport failure itself is
// returned as an error, and callers substitute the fallback for that too.
func (e *AttributeExtractor) Analyze(ctx context.Context, crop []byte) (ai.PersonAttributes, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildAnalysisPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart("Analyze this image for detailed person detection."),
				llms.ImageURLPart(imageDataURL(crop)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result personAnalysis
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return ai.FallbackAttributes(), fmt.Errorf("%w: %w", ai.ErrAttributeExtractionFailed, err)
		}

		if len(response.Choices) < 1 {
			e.logger.Warn("no choices returned from vision model")
			return ai.FallbackAttributes(), nil
		}

		responseText := repairJSON(cleanJSONResponse(response.Choices[0].Content))

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing analysis response",
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
		e.logger.Error("failed to parse analysis response after retries", "err", lastErr)
		return ai.FallbackAttributes(), nil
	}

	if result.Description == "" {
		e.logger.Warn("analysis response missing description, using fallback")
		return ai.FallbackAttributes(), nil
	}

	attrs := ai.PersonAttributes{
		Description: result.Description,
		Details: core.DetectionDetails{
			Age:                 valueOr(result.Age, "Unknown"),
			Clothing:            valueOr(result.Clothing, "Not visible"),
			Environment:         valueOr(result.Environment, "Not specified"),
			Movement:            valueOr(result.Movement, "Unknown"),
			DistinctiveFeatures: result.DistinctiveFeatures,
		},
	}
	if attrs.Details.DistinctiveFeatures == nil {
		attrs.Details.DistinctiveFeatures = []string{}
	}

	e.logger.Debug("extracted person attributes", "features", len(attrs.Details.DistinctiveFeatures))
	return attrs, nil
}

// valueOr substitutes the fallback value for a missing schema field.
func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
