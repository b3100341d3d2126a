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


package reembed

import (
	"context"
	"time"

	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/storage"
)

const (
	// DefaultBatchSize is the default number of detections to fetch in each batch
	DefaultBatchSize = 100
)

// DetectionIterator iterates over stored detections in batches.
type DetectionIterator struct {
	repo        storage.DetectionRepository
	batchSize   int
	onlyMissing bool
}

// NewDetectionIterator creates a new detection iterator.
// batchSize: number of detections to fetch in each batch (must be > 0)
// onlyMissing: when true, only detections without an embedding are visited
func NewDetectionIterator(repo storage.DetectionRepository, batchSize int, onlyMissing bool) *DetectionIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &DetectionIterator{
		repo:        repo,
		batchSize:   batchSize,
		onlyMissing: onlyMissing,
	}
}

// Count returns the number of detections the iterator will visit.
func (it *DetectionIterator) Count(ctx context.Context) (int, error) {
	detections, err := it.fetch(ctx)
	if err != nil {
		return 0, err
	}
	return len(detections), nil
}

// ForEach iterates over the selected detections, calling fn for each batch.
// Iteration stops on first error from fn or when all detections are processed.
// Context cancellation is checked between batches.
func (it *DetectionIterator) ForEach(ctx context.Context, fn func([]*core.Detection) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	detections, err := it.fetch(ctx)
	if err != nil {
		return err
	}

	if len(detections) == 0 {
		return nil
	}

	for i := 0; i < len(detections); i += it.batchSize {
		end := i + it.batchSize
		if end > len(detections) {
			end = len(detections)
		}

		if err := fn(detections[i:end]); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}

// fetch loads every detection via a very wide time range, then applies the
// missing-embedding filter.
func (it *DetectionIterator) fetch(ctx context.Context) ([]*core.Detection, error) {
	timeRange := core.TimeRange{
		Start: time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	detections, err := it.repo.GetDetectionsByTimeRange(ctx, timeRange)
	if err != nil {
		return nil, err
	}

	if !it.onlyMissing {
		return detections, nil
	}

	missing := make([]*core.Detection, 0, len(detections))
	for _, detection := range detections {
		if len(detection.Embedding) == 0 {
			missing = append(missing, detection)
		}
	}
	return missing, nil
}
