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


package storage

import (
	"github.com/vietnguyen2358/findandseek/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalDetection serializes a Detection to bytes.
func MarshalDetection(detection *core.Detection) []byte {
	buf := make([]byte, core.DetectionMUS.Size(*detection))
	core.DetectionMUS.Marshal(*detection, buf)
	return buf
}

// UnmarshalDetection deserializes a Detection from bytes.
func UnmarshalDetection(data []byte) (*core.Detection, error) {
	detection, _, err := core.DetectionMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &detection, nil
}

// MarshalCamera serializes a Camera to bytes.
func MarshalCamera(camera *core.Camera) []byte {
	buf := make([]byte, core.CameraMUS.Size(*camera))
	core.CameraMUS.Marshal(*camera, buf)
	return buf
}

// UnmarshalCamera deserializes a Camera from bytes.
func UnmarshalCamera(data []byte) (*core.Camera, error) {
	camera, _, err := core.CameraMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &camera, nil
}
