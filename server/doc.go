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


// Package server exposes the analysis and search pipelines over HTTP.
//
// Routes:
//
//	POST /api/analyze-frame        analyze one frame, persist the detections
//	POST /api/search               search stored or supplied detections
//	GET  /api/detections/recent    most recent detections, newest first
//	GET  /api/cameras              list known cameras
//	GET  /api/health               liveness probe
//
// The frame analysis route always answers 200 with a well-formed body:
// model outages yield zero detections and a failure summary rather than an
// error status, so camera feeds keep polling through them.
package server
