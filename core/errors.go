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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDetection indicates a Detection failed validation.
	ErrInvalidDetection = errors.New("invalid detection")

	// ErrInvalidBBox indicates a bounding box component is outside [0,1].
	ErrInvalidBBox = errors.New("bounding box out of normalized range")

	// ErrInvalidConfidence indicates a confidence value outside [0,1].
	ErrInvalidConfidence = errors.New("confidence out of range")

	// ErrNilDistinctiveFeatures indicates DistinctiveFeatures is nil.
	// The list may be empty but never absent.
	ErrNilDistinctiveFeatures = errors.New("distinctive features must not be nil")

	// ErrInvalidEmbeddingLength indicates an embedding of unexpected length.
	ErrInvalidEmbeddingLength = errors.New("embedding length mismatch")

	// ErrInvalidCriteria indicates a SearchCriteria failed validation.
	ErrInvalidCriteria = errors.New("invalid search criteria")

	// ErrEmptyDescription indicates the criteria description is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrInvalidTimeRange indicates a time range with end before start.
	ErrInvalidTimeRange = errors.New("time range end precedes start")

	// ErrInvalidCamera indicates a Camera failed validation.
	ErrInvalidCamera = errors.New("invalid camera")

	// ErrEmptyCameraLocation indicates the camera Location field is empty.
	ErrEmptyCameraLocation = errors.New("camera location cannot be empty")
)
