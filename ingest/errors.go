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


package ingest

import "errors"

var (
	// ErrDetectionRepositoryRequired is returned when a detection repository is not provided.
	ErrDetectionRepositoryRequired = errors.New("detection repository required")

	// ErrCameraRepositoryRequired is returned when a camera repository is not provided.
	ErrCameraRepositoryRequired = errors.New("camera repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrQueueFull is returned when the frame queue is at capacity.
	// The caller should back off and retry rather than block.
	ErrQueueFull = errors.New("frame queue is full")

	// ErrPipelineClosed is returned when a frame is submitted after Release.
	ErrPipelineClosed = errors.New("ingest pipeline is closed")
)
