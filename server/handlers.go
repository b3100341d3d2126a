package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vietnguyen2358/findandseek/core"
	"github.com/vietnguyen2358/findandseek/ingest"
)

// handleAnalyzeFrame handles POST /api/analyze-frame.
//
// Analysis failure never produces an error status: the response is a well
// formed body with zero detections and a failure summary, so a camera feed
// sending frames in a loop keeps working through model outages.
func (s *Server) handleAnalyzeFrame(w http.ResponseWriter, r *http.Request) {
	var req analyzeFrameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.FrameData == "" {
		http.Error(w, "frameData is required", http.StatusBadRequest)
		return
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			http.Error(w, "timestamp must be RFC 3339", http.StatusBadRequest)
			return
		}
		timestamp = parsed.UTC()
	}

	frame, err := decodeFrameData(req.FrameData)
	if err != nil {
		http.Error(w, "frameData must be base64", http.StatusBadRequest)
		return
	}

	analysis, err := s.pipeline.AnalyzeFrame(r.Context(), frame, timestamp)
	if err != nil {
		s.logger.Error("frame analysis failed", "err", err)
	}

	// Persist successful analyses asynchronously. A full queue drops the
	// frame from storage, not from the response.
	if err == nil && len(analysis.Detections) > 0 && req.CameraLocation != "" {
		ingestErr := s.ingestor.Enqueue(&ingest.Frame{
			CameraLocation: req.CameraLocation,
			CameraType:     req.CameraType,
			Analysis:       analysis,
		})
		if ingestErr != nil {
			s.logger.Warn("failed to queue frame for persistence", "err", ingestErr)
		}
	}

	detections := make([]detectionDTO, 0, len(analysis.Detections))
	for i := range analysis.Detections {
		detections = append(detections, toDetectionDTO(&analysis.Detections[i]))
	}

	writeJSON(w, http.StatusOK, analyzeFrameResponse{
		DetectedPersons: detections,
		Summary:         analysis.Summary,
		Timestamp:       timestamp,
	})
}

// handleSearch handles POST /api/search.
//
// The query is decomposed into filters, then matched against either the
// caller-supplied detections or the stored corpus. Parse and explanation
// failures degrade inside the searcher; only an embedding outage surfaces
// as an error status.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	parsed := s.searcher.ParseQuery(ctx, req.Query)

	var (
		matches []*core.SearchResult
		err     error
	)
	if len(req.Detections) > 0 {
		candidates := make([]*core.Detection, 0, len(req.Detections))
		for _, dto := range req.Detections {
			candidates = append(candidates, fromDetectionDTO(dto))
		}
		matches, err = s.searcher.ScoreCandidates(ctx, req.Query, candidates)
	} else {
		timeRange, rangeErr := parseTimeRange(req.StartTime, req.EndTime)
		if rangeErr != nil {
			http.Error(w, "startTime and endTime must be RFC 3339", http.StatusBadRequest)
			return
		}
		matches, err = s.searcher.Search(ctx, core.SearchCriteria{
			Description: req.Query,
			Location:    req.Location,
			TimeRange:   timeRange,
		})
	}
	if err != nil {
		s.logger.Error("search failed", "err", err)
		http.Error(w, "search is temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Filters:       parsed.Filters,
		Response:      parsed.Response,
		Suggestions:   parsed.Suggestions,
		TopMatches:    toMatchDTOs(matches),
		MatchAnalysis: s.searcher.Explain(ctx, req.Query, matches),
	})
}

// handleRecentDetections handles GET /api/detections/recent. The limit query
// parameter caps the feed, defaulting to 20.
func (s *Server) handleRecentDetections(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	detections, err := s.detectionRepository.GetRecentDetections(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list recent detections", "err", err)
		http.Error(w, "failed to list recent detections", http.StatusInternalServerError)
		return
	}

	dtos := make([]detectionDTO, 0, len(detections))
	for _, detection := range detections {
		dtos = append(dtos, toDetectionDTO(detection))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// handleCameras handles GET /api/cameras.
func (s *Server) handleCameras(w http.ResponseWriter, r *http.Request) {
	cameras, err := s.cameraRepository.ListCameras(r.Context())
	if err != nil {
		s.logger.Error("failed to list cameras", "err", err)
		http.Error(w, "failed to list cameras", http.StatusInternalServerError)
		return
	}

	dtos := make([]cameraDTO, 0, len(cameras))
	for _, camera := range cameras {
		dtos = append(dtos, *toCameraDTO(camera))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// decodeFrameData decodes base64 frame bytes, accepting an optional data
// URL prefix.
func decodeFrameData(data string) ([]byte, error) {
	if idx := strings.Index(data, ";base64,"); idx >= 0 && strings.HasPrefix(data, "data:") {
		data = data[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(data)
}

// parseTimeRange builds an inclusive time range from optional RFC 3339
// bounds. Both bounds must be present for a range to apply.
func parseTimeRange(start, end string) (*core.TimeRange, error) {
	if start == "" || end == "" {
		return nil, nil
	}
	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return nil, err
	}
	endTime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return nil, err
	}
	return &core.TimeRange{Start: startTime.UTC(), End: endTime.UTC()}, nil
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
