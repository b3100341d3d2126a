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


package findandseek

import (
	"io"
	"log/slog"

	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/ai/openai"
	"github.com/vietnguyen2358/findandseek/ingest"
	"github.com/vietnguyen2358/findandseek/reembed"
	"github.com/vietnguyen2358/findandseek/search"
	"github.com/vietnguyen2358/findandseek/server"
	"github.com/vietnguyen2358/findandseek/storage"
	"github.com/vietnguyen2358/findandseek/storage/badger"
	"github.com/vietnguyen2358/findandseek/vision"
)

type Database struct {
	backend       *badger.Backend
	detectionRepo storage.DetectionRepository
	cameraRepo    storage.CameraRepository
	provider      ai.Provider
	logger        *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig sets the AI service configuration used for the provider.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}
	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create detection repository
	detectionRepo, err := badger.NewDetectionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create camera repository
	cameraRepo, err := badger.NewCameraRepository(backend)
	if err != nil {
		detectionRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		cameraRepo.Close()
		detectionRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:       backend,
		detectionRepo: detectionRepo,
		cameraRepo:    cameraRepo,
		provider:      provider,
		logger:        slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := db.cameraRepo.Close(); err != nil {
		db.logger.Error("error closing camera repository", "err", err)
		return err
	}
	if err := db.detectionRepo.Close(); err != nil {
		db.logger.Error("error closing detection repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) DetectionRepository() storage.DetectionRepository {
	return db.detectionRepo
}

func (db *Database) CameraRepository() storage.CameraRepository {
	return db.cameraRepo
}

func (db *Database) Provider() ai.Provider {
	return db.provider
}

func (db *Database) NewVisionPipeline(opts ...vision.Option) (*vision.Pipeline, error) {
	return vision.NewPipeline(db.provider, opts...)
}

func (db *Database) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(db.detectionRepo, db.cameraRepo, db.provider, opts...)
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.detectionRepo, db.cameraRepo, db.provider, opts...)
}

func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(db.detectionRepo, db.provider.Embedder(), config, progress)
}

// NewServer wires a complete HTTP server over a fresh vision pipeline,
// searcher, and ingestion pipeline. The returned ingestion pipeline must be
// running (via Run) for analyzed frames to be persisted.
func (db *Database) NewServer(opts ...server.Option) (*server.Server, *ingest.Pipeline, error) {
	pipeline, err := db.NewVisionPipeline()
	if err != nil {
		return nil, nil, err
	}
	searcher, err := db.NewSearcher()
	if err != nil {
		pipeline.Release()
		return nil, nil, err
	}
	ingestor, err := db.NewIngestionPipeline()
	if err != nil {
		pipeline.Release()
		return nil, nil, err
	}

	srv, err := server.NewServer(pipeline, searcher, ingestor, db.detectionRepo, db.cameraRepo, opts...)
	if err != nil {
		ingestor.Release()
		pipeline.Release()
		return nil, nil, err
	}
	return srv, ingestor, nil
}
