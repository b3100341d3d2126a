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


package vision

import "errors"

var (
	// ErrProviderRequired is returned when a nil AI provider is passed to NewPipeline.
	ErrProviderRequired = errors.New("AI provider is required")

	// ErrEmptyFrame is returned when an empty frame is submitted for analysis.
	ErrEmptyFrame = errors.New("frame data is empty")

	// ErrFrameDecode is returned when frame bytes cannot be decoded as an image.
	ErrFrameDecode = errors.New("failed to decode frame image")
)
