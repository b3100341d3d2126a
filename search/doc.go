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


// Package search provides semantic similarity search over detections.
//
// The Searcher type implements the query side of the system:
//   - Query decomposition into typed filters via the AI parser
//   - Semantic search using vector embeddings over stored detections,
//     narrowed by time range and camera location filters
//   - Ad hoc scoring of caller-supplied detections without storage
//   - Narrative explanation of the top-ranked matches
//
// Every AI-dependent stage except embedding degrades gracefully: parse
// failures yield an apologetic empty result and explanation failures yield
// a generic message, so the caller always receives a well-formed response.
package search
