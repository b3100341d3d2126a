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


// Package ai provides abstractions for the AI services behind the
// detection-to-match pipeline.
//
// This package defines interfaces for text embeddings, person localization,
// attribute extraction, search query parsing, and match explanation. It
// follows the dependency inversion principle, allowing the pipeline and
// search logic to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around five service interfaces aggregated by a
// Provider:
//
//   - Embedder: maps free text to fixed-length vectors
//   - PersonLocalizer: finds normalized person bounding boxes in a frame
//   - AttributeExtractor: derives structured attributes for one cropped person
//   - QueryParser: decomposes a raw search query into typed filters
//   - MatchExplainer: writes a rationale for the top ranked matches
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Failure Semantics
//
// Services split into fatal and non-fatal failure modes, expressed through
// the sentinel errors in errors.go. ErrDetectionUnavailable and
// ErrEmbeddingUnavailable are fatal to their operation and propagate to the
// caller. Attribute extraction, query parsing, and explanation failures are
// absorbed locally: callers substitute FallbackAttributes,
// FallbackParsedQuery, or a generic explanation so downstream consumers
// never branch on partial failure.
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations. Test utility constructors (mock.NewEmbedder,
// mock.NewPersonLocalizer, ...) return CONCRETE types to enable test
// assertions and behavior injection via the mocks' public fields.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	boxes, err := provider.PersonLocalizer().Locate(ctx, frameBytes)
//	vector, err := provider.Embedder().EmbedText(ctx, "person in a red jacket")
package ai
