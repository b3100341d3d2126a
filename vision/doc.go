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


// Package vision orchestrates per-frame person analysis.
//
// A Pipeline runs a frame through two stages: person localization, which
// yields normalized bounding boxes, and per-person attribute extraction,
// which runs concurrently over padded crops of the frame. Individual crop
// failures degrade to a fallback attribute record rather than failing the
// frame; only localization failure fails the frame, and even then the
// returned FrameAnalysis is well formed.
package vision
