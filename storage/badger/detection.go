package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/storage"
)

// DetectionRepository implements storage.DetectionRepository for BadgerDB.
type DetectionRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.DetectionRepository = (*DetectionRepository)(nil)

// NewDetectionRepository creates a new DetectionRepository.
func NewDetectionRepository(backend *Backend) (*DetectionRepository, error) {
	idSeq, err := backend.GetSequence(detectionIDSeq)
	if err != nil {
		return nil, err
	}

	return &DetectionRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *DetectionRepository) Close() error {
	return r.idSeq.Release()
}

// FindSimilar delegates to the backend.
func (r *DetectionRepository) FindSimilar(ctx context.Context, vector []float32, filter *storage.DetectionFilter, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, filter, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *DetectionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddDetections adds one or more detections to storage.
func (r *DetectionRepository) AddDetections(ctx context.Context, detections ...*core.Detection) ([]*core.Detection, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Generate IDs and set timestamps
		for _, detection := range detections {
			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			detection.Id = core.ID(nextID)

			detection.InsertedAt = time.Now().UTC()
			detection.UpdatedAt = detection.InsertedAt

			// Store primary record
			key := makeDetectionKey(detection.Id)
			value := storage.MarshalDetection(detection)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index
			dateKey := makeDetectionDateKey(detection.Timestamp, detection.Id)
			if err := tx.Set(dateKey, storage.MarshalID(detection.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return detections, err
}

// UpdateDetections updates existing detections.
func (r *DetectionRepository) UpdateDetections(ctx context.Context, detections ...*core.Detection) ([]*core.Detection, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, detection := range detections {
			key := makeDetectionKey(detection.Id)

			// Read old detection to detect changes
			old, err := r.readDetection(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			detection.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalDetection(detection)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index if timestamp changed
			if !old.Timestamp.Equal(detection.Timestamp) {
				oldDateKey := makeDetectionDateKey(old.Timestamp, old.Id)
				if err := tx.Delete(oldDateKey); err != nil {
					return err
				}
				newDateKey := makeDetectionDateKey(detection.Timestamp, detection.Id)
				if err := tx.Set(newDateKey, storage.MarshalID(detection.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return detections, err
}

// DeleteDetections removes detections by their IDs.
func (r *DetectionRepository) DeleteDetections(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeDetectionKey(id)

			// Read record to get metadata for index cleanup
			detection, err := r.readDetection(tx, key)
			if err != nil {
				return err
			}
			if detection == nil {
				return storage.ErrNotFound
			}

			// Delete from date index
			dateKey := makeDetectionDateKey(detection.Timestamp, detection.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetDetection retrieves a single detection by ID.
func (r *DetectionRepository) GetDetection(ctx context.Context, id core.ID) (*core.Detection, error) {
	var result *core.Detection
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDetectionKey(id)
		var err error
		result, err = r.readDetection(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetDetections retrieves multiple detections by their IDs.
func (r *DetectionRepository) GetDetections(ctx context.Context, ids ...core.ID) ([]*core.Detection, error) {
	var result []*core.Detection
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeDetectionKey(id)
			detection, err := r.readDetection(tx, key)
			if err != nil {
				return err
			}
			if detection != nil {
				result = append(result, detection)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetDetectionsByTimeRange retrieves detections within a time range.
// Both bounds are inclusive.
func (r *DetectionRepository) GetDetectionsByTimeRange(ctx context.Context, timeRange core.TimeRange) ([]*core.Detection, error) {
	var results []*core.Detection
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialDetectionDateKey(timeRange.Start)
		// End bound is inclusive, so extend the partial key past the last
		// microsecond of the range
		endKey := makePartialDetectionDateKey(timeRange.End.Add(1 * time.Microsecond))
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			// Read the ID from the index
			var detectionID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				detectionID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			detectionKey := makeDetectionKey(detectionID)
			detection, err := r.readDetection(tx, detectionKey)
			if err != nil {
				return err
			}
			if detection != nil {
				results = append(results, detection)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentDetections retrieves the N most recent detections, ordered by
// timestamp descending.
func (r *DetectionRepository) GetRecentDetections(ctx context.Context, limit int) ([]*core.Detection, error) {
	var results []*core.Detection
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent records first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialDetectionDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		// Prefix for detection date index keys
		prefix := []byte(detectionDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the date index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the ID from the index
			var detectionID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				detectionID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			detectionKey := makeDetectionKey(detectionID)
			detection, err := r.readDetection(tx, detectionKey)
			if err != nil {
				return err
			}
			if detection != nil {
				results = append(results, detection)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// readDetection reads a detection from the transaction.
func (r *DetectionRepository) readDetection(tx *badger.Txn, key []byte) (*core.Detection, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var detection *core.Detection
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		detection, unmarshalErr = storage.UnmarshalDetection(val)
		return unmarshalErr
	})
	return detection, err
}
