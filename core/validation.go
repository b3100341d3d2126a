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

import "fmt"

// ValidateBBox validates that every component of the box lies in [0,1].
func ValidateBBox(b BBox) error {
	for _, v := range [4]float32{b.X, b.Y, b.W, b.H} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: component %v", ErrInvalidBBox, v)
		}
	}
	return nil
}

// ValidateDetection validates a Detection according to domain rules.
//
// Validation rules:
//   - All four bbox components must lie in [0,1]
//   - Confidence must lie in [0,1]
//   - Details.DistinctiveFeatures may be empty but never nil
//   - Embedding, when present, must have the expected length
//
// NOT validated:
//   - ID (0 is valid before the store assigns one)
//   - Description (the fallback record carries a fixed description)
func ValidateDetection(detection *Detection, embeddingDim int) error {
	if detection == nil {
		return fmt.Errorf("%w: detection is nil", ErrInvalidDetection)
	}

	if err := ValidateBBox(detection.BBox); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDetection, err)
	}

	if detection.Confidence < 0 || detection.Confidence > 1 {
		return fmt.Errorf("%w: %w: %v", ErrInvalidDetection, ErrInvalidConfidence, detection.Confidence)
	}

	if detection.Details.DistinctiveFeatures == nil {
		return fmt.Errorf("%w: %w", ErrInvalidDetection, ErrNilDistinctiveFeatures)
	}

	if len(detection.Embedding) != 0 && len(detection.Embedding) != embeddingDim {
		return fmt.Errorf("%w: %w: got %d, want %d",
			ErrInvalidDetection, ErrInvalidEmbeddingLength, len(detection.Embedding), embeddingDim)
	}

	return nil
}

// ValidateSearchCriteria validates a SearchCriteria according to domain rules.
//
// Validation rules:
//   - Description must not be empty
//   - TimeRange, when present, must have Start <= End
func ValidateSearchCriteria(criteria *SearchCriteria) error {
	if criteria == nil {
		return fmt.Errorf("%w: criteria is nil", ErrInvalidCriteria)
	}

	if criteria.Description == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCriteria, ErrEmptyDescription)
	}

	if criteria.TimeRange != nil && criteria.TimeRange.End.Before(criteria.TimeRange.Start) {
		return fmt.Errorf("%w: %w", ErrInvalidCriteria, ErrInvalidTimeRange)
	}

	return nil
}

// ValidateCamera validates a Camera according to domain rules.
func ValidateCamera(camera *Camera) error {
	if camera == nil {
		return fmt.Errorf("%w: camera is nil", ErrInvalidCamera)
	}

	if camera.Location == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCamera, ErrEmptyCameraLocation)
	}

	return nil
}
