package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vietnguyen2358/findandseek/ingest"
	"github.com/vietnguyen2358/findandseek/search"
	"github.com/vietnguyen2358/findandseek/storage"
	"github.com/vietnguyen2358/findandseek/vision"
)

// Server exposes the analysis and search pipelines over HTTP.
type Server struct {
	pipeline            *vision.Pipeline
	searcher            *search.Searcher
	ingestor            *ingest.Pipeline
	detectionRepository storage.DetectionRepository
	cameraRepository    storage.CameraRepository
	logger              *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates a new HTTP server over the given pipelines.
func NewServer(
	pipeline *vision.Pipeline,
	searcher *search.Searcher,
	ingestor *ingest.Pipeline,
	detectionRepository storage.DetectionRepository,
	cameraRepository storage.CameraRepository,
	opts ...Option,
) (*Server, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if ingestor == nil {
		return nil, ErrIngestorRequired
	}
	if detectionRepository == nil {
		return nil, ErrDetectionRepositoryRequired
	}
	if cameraRepository == nil {
		return nil, ErrCameraRepositoryRequired
	}

	s := &Server{
		pipeline:            pipeline,
		searcher:            searcher,
		ingestor:            ingestor,
		detectionRepository: detectionRepository,
		cameraRepository:    cameraRepository,
		logger:              slog.Default().With("component", "server"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Handler returns the HTTP handler for all API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze-frame", s.handleAnalyzeFrame)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/detections/recent", s.handleRecentDetections)
	mux.HandleFunc("GET /api/cameras", s.handleCameras)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return s.withRequestID(mux)
}

// withRequestID assigns each request an ID for log correlation and logs
// completion with timing.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.Debug("handled request",
			"requestId", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}
