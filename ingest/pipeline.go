package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/storage"
)

const defaultQueueDepth = 64

// Frame is one analyzed frame queued for persistence.
type Frame struct {
	// Id identifies the frame for log correlation. Assigned automatically
	// when empty.
	Id string

	// CameraLocation and CameraType identify the camera the frame came
	// from. The camera record is created on first sight of a location.
	CameraLocation string
	CameraType     string

	// Analysis is the frame's detection result.
	Analysis *core.FrameAnalysis
}

// Pipeline persists analyzed frames: it resolves the camera, embeds each
// detection's description, and stores the detections. Frames are queued on a
// bounded channel and drained by a worker pool.
type Pipeline struct {
	detectionRepository storage.DetectionRepository
	cameraRepository    storage.CameraRepository
	embedder            ai.Embedder
	pool                *ants.Pool
	frames              chan *Frame
	queueDepth          int
	closeOnce           sync.Once
	closed              chan struct{}
	drained             sync.WaitGroup
	logger              *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent frame persistence.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithQueueDepth sets the frame queue capacity. Submissions beyond this
// depth fail with ErrQueueFull so producers feel backpressure instead of
// growing unbounded.
// Default is 64.
func WithQueueDepth(depth int) Option {
	return func(p *Pipeline) error {
		if depth < 1 {
			depth = 1
		}
		p.queueDepth = depth
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingest pipeline.
func NewPipeline(
	detectionRepository storage.DetectionRepository,
	cameraRepository storage.CameraRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if detectionRepository == nil {
		return nil, ErrDetectionRepositoryRequired
	}
	if cameraRepository == nil {
		return nil, ErrCameraRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		detectionRepository: detectionRepository,
		cameraRepository:    cameraRepository,
		embedder:            provider.Embedder(),
		pool:                pool,
		queueDepth:          defaultQueueDepth,
		closed:              make(chan struct{}),
		logger:              slog.Default().With("component", "ingest"),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	p.frames = make(chan *Frame, p.queueDepth)

	return p, nil
}

// Enqueue submits a frame for asynchronous persistence. It never blocks:
// when the queue is at capacity the frame is rejected with ErrQueueFull.
func (p *Pipeline) Enqueue(frame *Frame) error {
	if frame.Id == "" {
		frame.Id = uuid.NewString()
	}

	select {
	case <-p.closed:
		return ErrPipelineClosed
	default:
	}

	select {
	case p.frames <- frame:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run drains the frame queue until the context is canceled or the pipeline
// is released, dispatching each frame to the worker pool.
func (p *Pipeline) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.closed:
			return
		case frame := <-p.frames:
			p.drained.Add(1)
			task := func() {
				defer p.drained.Done()
				if err := p.Ingest(context.Background(), frame); err != nil {
					p.logger.Error("error ingesting frame", "frame", frame.Id, "err", err)
				}
			}
			if err := p.pool.Submit(task); err != nil {
				// Pool exhausted or released, run inline
				task()
			}
		}
	}
}

// Ingest persists one analyzed frame synchronously. The camera is resolved
// by location, every detection gets the camera's ID and an embedding of its
// description, and the camera's LastActive advances to the frame timestamp.
//
// Embedding failure is not fatal: detections are stored without vectors and
// picked up by a later re-embedding pass. Storage failure is fatal.
func (p *Pipeline) Ingest(ctx context.Context, frame *Frame) error {
	if frame.Id == "" {
		frame.Id = uuid.NewString()
	}
	if frame.Analysis == nil || len(frame.Analysis.Detections) == 0 {
		p.logger.Debug("frame has no detections, nothing to persist", "frame", frame.Id)
		return nil
	}

	camera, err := p.cameraRepository.GetOrCreateCamera(ctx, frame.CameraLocation, frame.CameraType)
	if err != nil {
		return err
	}

	detections := make([]*core.Detection, len(frame.Analysis.Detections))
	texts := make([]string, len(frame.Analysis.Detections))
	for i := range frame.Analysis.Detections {
		detection := frame.Analysis.Detections[i]
		detection.Id = 0 // storage assigns IDs
		detection.CameraId = camera.Id
		detections[i] = &detection
		texts[i] = detection.Description
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		p.logger.Warn("embedding failed, storing detections without vectors",
			"frame", frame.Id, "err", err)
	} else {
		for i := range detections {
			detections[i].Embedding = embeddings[i]
		}
	}

	if _, err := p.detectionRepository.AddDetections(ctx, detections...); err != nil {
		return err
	}

	if len(detections) > 0 {
		if err := p.cameraRepository.TouchCamera(ctx, camera.Id, detections[0].Timestamp); err != nil {
			p.logger.Warn("failed to update camera activity", "camera", camera.Id, "err", err)
		}
	}

	p.logger.Info("ingested frame",
		"frame", frame.Id,
		"camera", frame.CameraLocation,
		"detections", len(detections))
	return nil
}

// Release stops the pipeline and releases the worker pool after in-flight
// frames finish. The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.closeOnce.Do(func() {
		close(p.closed)
	})
	p.drained.Wait()
	if p.pool != nil {
		p.pool.Release()
	}
}
