package vision

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/core"
)

// Pipeline orchestrates per-frame person analysis.
// It manages concurrent attribute extraction over person crops.
type Pipeline struct {
	localizer ai.PersonLocalizer
	extractor ai.AttributeExtractor
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent crop analysis.
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

// NewPipeline creates a new frame analysis pipeline backed by the provider's
// localizer and extractor services.
func NewPipeline(provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if provider == nil {
		return nil, ErrProviderRequired
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
		localizer: provider.PersonLocalizer(),
		extractor: provider.AttributeExtractor(),
		pool:      pool,
		logger:    slog.Default().With("component", "vision-pipeline"),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// AnalyzeFrame localizes every person in the frame, then extracts attributes
// for each concurrently. Detections are returned in discovery order with
// sequential ids starting at 1 and carry the frame timestamp.
//
// One crop's failure never invalidates the rest: a failed extraction yields
// the fallback attribute record in place. Localization failure is fatal to
// the frame, but the returned FrameAnalysis is still well formed, carrying
// zero detections and a failure summary alongside the error.
func (p *Pipeline) AnalyzeFrame(ctx context.Context, frame []byte, timestamp time.Time) (*core.FrameAnalysis, error) {
	if len(frame) == 0 {
		return failedAnalysis(), ErrEmptyFrame
	}

	located, err := p.localizer.Locate(ctx, frame)
	if err != nil {
		p.logger.Error("person localization failed", "err", err)
		return failedAnalysis(), err
	}

	if len(located) == 0 {
		return &core.FrameAnalysis{
			Detections: []core.Detection{},
			Summary:    summaryFor(0),
		}, nil
	}

	// Decode once; crops share the decoded image.
	img, decodeErr := decodeFrame(frame)
	if decodeErr != nil {
		p.logger.Warn("frame decode failed, using fallback attributes for all detections", "err", decodeErr)
	}

	attrs := p.extractAll(ctx, img, located)

	detections := make([]core.Detection, len(located))
	for i, person := range located {
		detections[i] = core.Detection{
			Id:          core.ID(i + 1),
			Timestamp:   timestamp,
			BBox:        person.BBox,
			Confidence:  person.Confidence,
			Description: attrs[i].Description,
			Details:     attrs[i].Details,
		}
	}

	p.logger.Debug("analyzed frame", "detections", len(detections))
	return &core.FrameAnalysis{
		Detections: detections,
		Summary:    summaryFor(len(detections)),
	}, nil
}

// extractAll fans attribute extraction out over the worker pool and waits
// for every crop. Any per-crop error, cropping included, degrades that slot
// to the fallback record. A nil image degrades every slot.
func (p *Pipeline) extractAll(ctx context.Context, img image.Image, located []ai.LocatedPerson) []ai.PersonAttributes {
	attrs := make([]ai.PersonAttributes, len(located))
	for i := range attrs {
		attrs[i] = ai.FallbackAttributes()
	}
	if img == nil {
		return attrs
	}

	var wg sync.WaitGroup
	for i, person := range located {
		wg.Add(1)
		task := func() {
			defer wg.Done()

			crop, err := cropPerson(img, person.BBox)
			if err != nil {
				p.logger.Warn("failed to crop person", "index", i, "err", err)
				return
			}

			extracted, err := p.extractor.Analyze(ctx, crop)
			if err != nil {
				p.logger.Warn("attribute extraction failed", "index", i, "err", err)
				return
			}
			attrs[i] = extracted
		}

		if err := p.pool.Submit(task); err != nil {
			// Pool exhausted or released, run inline
			task()
		}
	}
	wg.Wait()

	return attrs
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// summaryFor renders the frame summary line.
func summaryFor(count int) string {
	return fmt.Sprintf("Detected %d people in the scene", count)
}

// failedAnalysis returns the well-formed result substituted when the frame
// cannot be analyzed at all.
func failedAnalysis() *core.FrameAnalysis {
	return &core.FrameAnalysis{
		Detections: []core.Detection{},
		Summary:    core.FallbackDescription,
	}
}
