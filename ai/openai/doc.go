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


// Package openai implements the ai service interfaces against
// OpenAI-compatible APIs.
//
// Embeddings use the embeddings endpoint; localization and attribute
// extraction use chat completions with image parts and JSON mode; query
// parsing and match explanation use plain chat completions. All responses
// that must be structured are validated against the expected schema at this
// boundary, and schema mismatches degrade to the sentinel fallback values
// defined in the ai package rather than propagating untyped data into the
// pipeline.
package openai
