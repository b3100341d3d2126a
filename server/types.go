package server

import (
	"time"

	"github.com/vietnguyen2358/findandseek/core"
)

// analyzeFrameRequest is the body of POST /api/analyze-frame.
// FrameData carries the frame as base64, with or without a data URL prefix.
type analyzeFrameRequest struct {
	FrameData      string `json:"frameData"`
	Timestamp      string `json:"timestamp,omitempty"`
	CameraLocation string `json:"cameraLocation,omitempty"`
	CameraType     string `json:"cameraType,omitempty"`
}

// analyzeFrameResponse is the body returned by POST /api/analyze-frame.
// It is well formed even when analysis fails.
type analyzeFrameResponse struct {
	DetectedPersons []detectionDTO `json:"detectedPersons"`
	Summary         string         `json:"summary"`
	Timestamp       time.Time      `json:"timestamp"`
}

// searchRequest is the body of POST /api/search. When Detections is present
// the search runs over those candidates instead of stored detections.
type searchRequest struct {
	Query      string         `json:"query"`
	Detections []detectionDTO `json:"detections,omitempty"`
	Location   string         `json:"location,omitempty"`
	StartTime  string         `json:"startTime,omitempty"`
	EndTime    string         `json:"endTime,omitempty"`
}

// searchResponse is the body returned by POST /api/search.
type searchResponse struct {
	Filters       []core.SearchFilter `json:"filters"`
	Response      string              `json:"response"`
	Suggestions   []string            `json:"suggestions"`
	TopMatches    []matchDTO          `json:"topMatches"`
	MatchAnalysis string              `json:"matchAnalysis,omitempty"`
}

// detectionDTO is the wire representation of a detection.
type detectionDTO struct {
	Id          uint64     `json:"id"`
	CameraId    uint64     `json:"cameraId,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	BBox        core.BBox  `json:"bbox"`
	Confidence  float32    `json:"confidence"`
	Description string     `json:"description"`
	Details     detailsDTO `json:"details"`
	MatchScore  float32    `json:"matchScore,omitempty"`
}

// detailsDTO is the wire representation of detection details.
type detailsDTO struct {
	Age                 string   `json:"age"`
	Clothing            string   `json:"clothing"`
	Environment         string   `json:"environment"`
	Movement            string   `json:"movement"`
	DistinctiveFeatures []string `json:"distinctive_features"`
}

// matchDTO pairs a detection with its similarity and camera.
type matchDTO struct {
	Detection  detectionDTO `json:"detection"`
	Similarity float32      `json:"similarity"`
	Camera     *cameraDTO   `json:"camera,omitempty"`
}

// cameraDTO is the wire representation of a camera.
type cameraDTO struct {
	Id         uint64    `json:"id"`
	Location   string    `json:"location"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	LastActive time.Time `json:"lastActive"`
}

// healthResponse is the body returned by GET /api/health.
type healthResponse struct {
	Status string `json:"status"`
}

func toDetectionDTO(detection *core.Detection) detectionDTO {
	return detectionDTO{
		Id:          uint64(detection.Id),
		CameraId:    uint64(detection.CameraId),
		Timestamp:   detection.Timestamp,
		BBox:        detection.BBox,
		Confidence:  detection.Confidence,
		Description: detection.Description,
		Details: detailsDTO{
			Age:                 detection.Details.Age,
			Clothing:            detection.Details.Clothing,
			Environment:         detection.Details.Environment,
			Movement:            detection.Details.Movement,
			DistinctiveFeatures: detection.Details.DistinctiveFeatures,
		},
		MatchScore: detection.MatchScore,
	}
}

func fromDetectionDTO(dto detectionDTO) *core.Detection {
	features := dto.Details.DistinctiveFeatures
	if features == nil {
		features = []string{}
	}
	return &core.Detection{
		Id:          core.ID(dto.Id),
		CameraId:    core.ID(dto.CameraId),
		Timestamp:   dto.Timestamp,
		BBox:        dto.BBox,
		Confidence:  dto.Confidence,
		Description: dto.Description,
		Details: core.DetectionDetails{
			Age:                 dto.Details.Age,
			Clothing:            dto.Details.Clothing,
			Environment:         dto.Details.Environment,
			Movement:            dto.Details.Movement,
			DistinctiveFeatures: features,
		},
	}
}

func toCameraDTO(camera *core.Camera) *cameraDTO {
	if camera == nil {
		return nil
	}
	return &cameraDTO{
		Id:         uint64(camera.Id),
		Location:   camera.Location,
		Type:       camera.Type,
		Status:     camera.Status,
		LastActive: camera.LastActive,
	}
}

func toMatchDTOs(matches []*core.SearchResult) []matchDTO {
	dtos := make([]matchDTO, 0, len(matches))
	for _, match := range matches {
		dtos = append(dtos, matchDTO{
			Detection:  toDetectionDTO(match.Detection),
			Similarity: match.Similarity,
			Camera:     toCameraDTO(match.Camera),
		})
	}
	return dtos
}
