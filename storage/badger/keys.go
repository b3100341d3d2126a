package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/vietnguyen2358/findandseek/core"
)

// Key prefixes for different data types
const (
	detectionPrefix     = "detrec"
	detectionDatePrefix = "detrecd"
	detectionIDSeq      = "detrecseq"
	cameraPrefix        = "camrec"
	cameraLocPrefix     = "camloc"
)

// makeDetectionKey generates a key for a detection by ID.
func makeDetectionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", detectionPrefix, id))
}

// makeDetectionDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeDetectionDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := detectionDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialDetectionDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialDetectionDateKey(timestamp time.Time) []byte {
	prefix := detectionDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeCameraKey generates a key for a camera by ID.
func makeCameraKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", cameraPrefix, id))
}

// makeCameraLocationKey generates a key for camera lookup by location.
// Format: prefix:location
func makeCameraLocationKey(location string) []byte {
	return []byte(fmt.Sprintf("%s:%s", cameraLocPrefix, location))
}
