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


package mock

import "github.com/vietnguyen2358/findandseek/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates the five mock AI service instances.
type MockProvider struct {
	embedder  *MockEmbedder
	localizer *MockPersonLocalizer
	extractor *MockAttributeExtractor
	parser    *MockQueryParser
	explainer *MockMatchExplainer
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use the GetMockX accessors to reach concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		localizer: NewMockPersonLocalizer(),
		extractor: NewMockAttributeExtractor(),
		parser:    NewMockQueryParser(),
		explainer: NewMockMatchExplainer(),
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// PersonLocalizer returns the mock localizer.
func (p *MockProvider) PersonLocalizer() ai.PersonLocalizer {
	return p.localizer
}

// AttributeExtractor returns the mock extractor.
func (p *MockProvider) AttributeExtractor() ai.AttributeExtractor {
	return p.extractor
}

// QueryParser returns the mock query parser.
func (p *MockProvider) QueryParser() ai.QueryParser {
	return p.parser
}

// MatchExplainer returns the mock explainer.
func (p *MockProvider) MatchExplainer() ai.MatchExplainer {
	return p.explainer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockLocalizer returns the underlying mock localizer for test assertions.
func (p *MockProvider) GetMockLocalizer() *MockPersonLocalizer {
	return p.localizer
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockAttributeExtractor {
	return p.extractor
}

// GetMockParser returns the underlying mock parser for test assertions.
func (p *MockProvider) GetMockParser() *MockQueryParser {
	return p.parser
}

// GetMockExplainer returns the underlying mock explainer for test assertions.
func (p *MockProvider) GetMockExplainer() *MockMatchExplainer {
	return p.explainer
}
