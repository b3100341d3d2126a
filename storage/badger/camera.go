package badger

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/storage"
)

// CameraRepository implements storage.CameraRepository for BadgerDB.
type CameraRepository struct {
	backend *Backend
}

var _ storage.CameraRepository = (*CameraRepository)(nil)

// NewCameraRepository creates a new CameraRepository.
func NewCameraRepository(backend *Backend) (*CameraRepository, error) {
	return &CameraRepository{
		backend: backend,
	}, nil
}

// Close releases resources. CameraRepository has no resources to release.
func (r *CameraRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CameraRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// GetOrCreateCamera finds or creates a camera by its location.
// Camera identity is content-derived from the location, so two frames
// reporting the same location always resolve to the same camera.
func (r *CameraRepository) GetOrCreateCamera(ctx context.Context, location, cameraType string) (*core.Camera, error) {
	// Try to find existing camera
	camera, err := r.findCameraByLocation(location)
	if err == nil {
		return camera, nil
	}
	if err != storage.ErrNotFound {
		return nil, err
	}

	// Create new camera
	newCamera := &core.Camera{
		Id:       core.IDFromContent(location),
		Location: location,
		Type:     cameraType,
		Status:   core.CameraStatusActive,
	}

	// Try to add it (may fail due to race condition)
	if err := r.addCamera(newCamera); err != nil {
		// If add failed, try to find it again (someone else may have created it)
		camera, findErr := r.findCameraByLocation(location)
		if findErr == nil {
			return camera, nil
		}
		return nil, err
	}

	return newCamera, nil
}

// GetCamera retrieves a single camera by ID.
func (r *CameraRepository) GetCamera(ctx context.Context, id core.ID) (*core.Camera, error) {
	var result *core.Camera
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readCamera(tx, makeCameraKey(id))
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

// ListCameras retrieves every camera, ordered by location.
func (r *CameraRepository) ListCameras(ctx context.Context) ([]*core.Camera, error) {
	var results []*core.Camera
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(cameraPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var camera *core.Camera
			err := iter.Item().Value(func(val []byte) error {
				var err error
				camera, err = storage.UnmarshalCamera(val)
				return err
			})
			if err != nil {
				return err
			}
			if camera != nil {
				results = append(results, camera)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Camera) int {
		return strings.Compare(a.Location, b.Location)
	})
	return results, nil
}

// TouchCamera updates a camera's LastActive timestamp.
func (r *CameraRepository) TouchCamera(ctx context.Context, id core.ID, at time.Time) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		camera, err := readCamera(tx, makeCameraKey(id))
		if err != nil {
			return err
		}
		if camera == nil {
			return storage.ErrNotFound
		}

		if at.After(camera.LastActive) {
			camera.LastActive = at
		}
		camera.UpdatedAt = time.Now().UTC()

		if err := tx.Set(makeCameraKey(camera.Id), storage.MarshalCamera(camera)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// addCamera stores a new camera record along with its location index entry.
func (r *CameraRepository) addCamera(camera *core.Camera) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		camera.InsertedAt = time.Now().UTC()
		camera.UpdatedAt = camera.InsertedAt
		if camera.LastActive.IsZero() {
			camera.LastActive = camera.InsertedAt
		}

		if err := tx.Set(makeCameraKey(camera.Id), storage.MarshalCamera(camera)); err != nil {
			return err
		}
		if err := tx.Set(makeCameraLocationKey(camera.Location), storage.MarshalID(camera.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// findCameraByLocation resolves a camera through the location index.
func (r *CameraRepository) findCameraByLocation(location string) (*core.Camera, error) {
	var result *core.Camera
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCameraLocationKey(location))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var cameraID core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			cameraID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = readCamera(tx, makeCameraKey(cameraID))
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

// readCamera reads a camera from the transaction.
func readCamera(tx *badger.Txn, key []byte) (*core.Camera, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var camera *core.Camera
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		camera, unmarshalErr = storage.UnmarshalCamera(val)
		return unmarshalErr
	})
	return camera, err
}
