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
	"log/slog"

	"github.com/vietnguyen2358/findandseek/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages embedder, localizer, extractor, parser, and explainer instances.
type Provider struct {
	config    *ai.Config
	embedder  *Embedder
	localizer *PersonLocalizer
	extractor *AttributeExtractor
	parser    *QueryParser
	explainer *MatchExplainer
	logger    *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create each service using the internal constructors for concrete types
	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	localizer, err := newPersonLocalizer(config)
	if err != nil {
		return nil, err
	}

	extractor, err := newAttributeExtractor(config)
	if err != nil {
		return nil, err
	}

	parser, err := newQueryParser(config)
	if err != nil {
		return nil, err
	}

	explainer, err := newMatchExplainer(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		embedder:  embedder,
		localizer: localizer,
		extractor: extractor,
		parser:    parser,
		explainer: explainer,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// PersonLocalizer returns the person localization service.
func (p *Provider) PersonLocalizer() ai.PersonLocalizer {
	return p.localizer
}

// AttributeExtractor returns the attribute extraction service.
func (p *Provider) AttributeExtractor() ai.AttributeExtractor {
	return p.extractor
}

// QueryParser returns the query parsing service.
func (p *Provider) QueryParser() ai.QueryParser {
	return p.parser
}

// MatchExplainer returns the match explanation service.
func (p *Provider) MatchExplainer() ai.MatchExplainer {
	return p.explainer
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
