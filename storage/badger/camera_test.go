package badger

import (
	"context"
	"testing"
	"time"

	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/storage"
)

func TestCameraGetOrCreate(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()

	camera, err := cameraRepo.GetOrCreateCamera(ctx, "Main Street East", "fixed")
	if err != nil {
		t.Fatalf("Failed to create camera: %v", err)
	}
	if camera.Id == 0 {
		t.Fatal("Expected non-zero camera ID")
	}
	if camera.Status != core.CameraStatusActive {
		t.Fatalf("Expected active status, got '%s'", camera.Status)
	}

	// Same location resolves to the same camera
	again, err := cameraRepo.GetOrCreateCamera(ctx, "Main Street East", "fixed")
	if err != nil {
		t.Fatalf("Failed to get camera: %v", err)
	}
	if again.Id != camera.Id {
		t.Fatalf("Expected same camera ID, got %d and %d", camera.Id, again.Id)
	}

	// Identity is content-derived from the location
	if camera.Id != core.IDFromContent("Main Street East") {
		t.Fatal("Expected content-derived camera ID")
	}
}

func TestCameraGet(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()

	created, err := cameraRepo.GetOrCreateCamera(ctx, "Harbor View", "ptz")
	if err != nil {
		t.Fatalf("Failed to create camera: %v", err)
	}

	retrieved, err := cameraRepo.GetCamera(ctx, created.Id)
	if err != nil {
		t.Fatalf("Failed to get camera: %v", err)
	}
	if retrieved.Location != "Harbor View" {
		t.Fatalf("Expected 'Harbor View', got '%s'", retrieved.Location)
	}
	if retrieved.Type != "ptz" {
		t.Fatalf("Expected 'ptz', got '%s'", retrieved.Type)
	}

	if _, err := cameraRepo.GetCamera(ctx, core.ID(12345)); err != storage.ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestCameraList(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()

	locations := []string{"Transit Center", "Airport Terminal", "City Hall Plaza"}
	for _, location := range locations {
		if _, err := cameraRepo.GetOrCreateCamera(ctx, location, "fixed"); err != nil {
			t.Fatalf("Failed to create camera: %v", err)
		}
	}

	cameras, err := cameraRepo.ListCameras(ctx)
	if err != nil {
		t.Fatalf("Failed to list cameras: %v", err)
	}
	if len(cameras) != 3 {
		t.Fatalf("Expected 3 cameras, got %d", len(cameras))
	}

	// Ordered by location
	expected := []string{"Airport Terminal", "City Hall Plaza", "Transit Center"}
	for i, camera := range cameras {
		if camera.Location != expected[i] {
			t.Fatalf("Expected '%s' at position %d, got '%s'", expected[i], i, camera.Location)
		}
	}
}

func TestCameraTouch(t *testing.T) {
	detectionRepo, cameraRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { cameraRepo.Close(); detectionRepo.Close(); backend.Close() }()

	ctx := context.Background()

	camera, err := cameraRepo.GetOrCreateCamera(ctx, "Ferry Dock", "fixed")
	if err != nil {
		t.Fatalf("Failed to create camera: %v", err)
	}

	// Truncate to microseconds to match storage precision
	later := time.Now().UTC().Truncate(time.Microsecond).Add(1 * time.Hour)
	if err := cameraRepo.TouchCamera(ctx, camera.Id, later); err != nil {
		t.Fatalf("Failed to touch camera: %v", err)
	}

	retrieved, err := cameraRepo.GetCamera(ctx, camera.Id)
	if err != nil {
		t.Fatalf("Failed to get camera: %v", err)
	}
	if !retrieved.LastActive.Equal(later) {
		t.Fatalf("Expected LastActive %v, got %v", later, retrieved.LastActive)
	}

	// Touching with an earlier time never moves LastActive backwards
	earlier := later.Add(-2 * time.Hour)
	if err := cameraRepo.TouchCamera(ctx, camera.Id, earlier); err != nil {
		t.Fatalf("Failed to touch camera: %v", err)
	}
	retrieved, err = cameraRepo.GetCamera(ctx, camera.Id)
	if err != nil {
		t.Fatalf("Failed to get camera: %v", err)
	}
	if !retrieved.LastActive.Equal(later) {
		t.Fatalf("Expected LastActive unchanged at %v, got %v", later, retrieved.LastActive)
	}

	if err := cameraRepo.TouchCamera(ctx, core.ID(777), later); err != storage.ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
