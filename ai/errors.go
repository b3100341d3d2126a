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


package ai

import "errors"

var (
	// ErrDetectionUnavailable indicates the localization model could not be
	// initialized or did not answer within its deadline. Fatal to a frame:
	// no partial detections are possible without localization.
	ErrDetectionUnavailable = errors.New("person detection unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service failed. Fatal
	// to a search request: an unembeddable query cannot be searched.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrAttributeExtractionFailed indicates analysis of one crop failed.
	// Non-fatal: callers resolve it to the fallback record.
	ErrAttributeExtractionFailed = errors.New("attribute extraction failed")

	// ErrExplanationFailed indicates the match explainer failed. Non-fatal:
	// explanation text degrades to a generic message.
	ErrExplanationFailed = errors.New("match explanation failed")

	// ErrQueryParseFailed indicates the search query parser failed.
	// Non-fatal: callers degrade to an empty filter list plus an apology.
	ErrQueryParseFailed = errors.New("query parsing failed")
)
