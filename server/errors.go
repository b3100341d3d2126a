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


package server

import "errors"

var (
	// ErrPipelineRequired is returned when a vision pipeline is not provided.
	ErrPipelineRequired = errors.New("vision pipeline required")

	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrIngestorRequired is returned when an ingest pipeline is not provided.
	ErrIngestorRequired = errors.New("ingest pipeline required")

	// ErrDetectionRepositoryRequired is returned when a detection repository is not provided.
	ErrDetectionRepositoryRequired = errors.New("detection repository required")

	// ErrCameraRepositoryRequired is returned when a camera repository is not provided.
	ErrCameraRepositoryRequired = errors.New("camera repository required")
)
