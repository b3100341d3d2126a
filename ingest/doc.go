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


// Package ingest persists analyzed frames into storage.
//
// A Pipeline accepts frames on a bounded queue and drains them with a
// worker pool. Persisting a frame resolves its camera by location, embeds
// every detection's description for later similarity search, and stores the
// detections. Producers that outpace the queue receive ErrQueueFull rather
// than blocking.
package ingest
