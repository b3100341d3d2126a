package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/vietnguyen2358/findandseek/ai"
	"github.com/vietnguyen2358/findandseek/core"
)

// PersonLocalizer implements ai.PersonLocalizer using a vision-language
// model behind an OpenAI-compatible chat API.
//
// The underlying client is initialized lazily, at most once: the first call
// performs initialization behind a sync.Once and every other caller observes
// the same client or the same initialization error.
type PersonLocalizer struct {
	config *ai.Config
	logger *slog.Logger

	initOnce sync.Once
	client   llms.Model
	initErr  error
}

// locatedBox is an internal type used for JSON unmarshaling of the model
// response.
type locatedBox struct {
	BBox       [4]float32 `json:"bbox"`
	Confidence float32    `json:"confidence"`
}

// locationResult is the wrapper structure for the model's JSON response.
type locationResult struct {
	People []locatedBox `json:"people"`
}

// newPersonLocalizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newPersonLocalizer(config *ai.Config) (*PersonLocalizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &PersonLocalizer{
		config: config,
		logger: slog.Default().With("component", "openai-localizer"),
	}, nil
}

// NewPersonLocalizer creates a new person localizer using the provided
// configuration.
//
// Returns ai.PersonLocalizer interface to enforce abstraction.
func NewPersonLocalizer(config *ai.Config) (ai.PersonLocalizer, error) {
	return newPersonLocalizer(config)
}

// init creates the vision client on first use.
func (l *PersonLocalizer) init() (llms.Model, error) {
	l.initOnce.Do(func() {
		client, err := openai.New(
			openai.WithBaseURL(l.config.VisionHost),
			openai.WithToken(l.config.Token),
			openai.WithModel(l.config.VisionModel),
		)
		if err != nil {
			l.logger.Error("failed to initialize vision client", "err", err)
			l.initErr = err
			return
		}
		l.client = client
	})
	return l.client, l.initErr
}

// Locate returns normalized person bounding boxes for the frame. A scene
// with no people yields an empty slice, not an error. Initialization
// failure or an elapsed deadline yields an error wrapping
// ai.ErrDetectionUnavailable.
func (l *PersonLocalizer) Locate(ctx context.Context, image []byte) ([]ai.LocatedPerson, error) {
	client, err := l.init()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrDetectionUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, l.config.LocateTimeout)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildLocationPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart("Locate every person in this image."),
				llms.ImageURLPart(imageDataURL(image)),
			},
		},
	}

	response, err := client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.logger.Error("localization deadline elapsed", "timeout", l.config.LocateTimeout)
			return nil, fmt.Errorf("%w: deadline elapsed: %w", ai.ErrDetectionUnavailable, err)
		}
		l.logger.Error("localization call failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrDetectionUnavailable, err)
	}

	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("%w: no choices in response", ai.ErrDetectionUnavailable)
	}

	responseText := repairJSON(cleanJSONResponse(response.Choices[0].Content))

	var result locationResult
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		l.logger.Error("error parsing localization response", "response", responseText, "err", err)
		return nil, fmt.Errorf("%w: malformed response: %w", ai.ErrDetectionUnavailable, err)
	}

	people := make([]ai.LocatedPerson, 0, len(result.People))
	for _, box := range result.People {
		bbox := core.BBox{X: box.BBox[0], Y: box.BBox[1], W: box.BBox[2], H: box.BBox[3]}.Clamp()

		confidence := box.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}

		people = append(people, ai.LocatedPerson{BBox: bbox, Confidence: confidence})
	}

	l.logger.Debug("located people in frame", "count", len(people))
	return people, nil
}
