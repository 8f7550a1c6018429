package badgerstore

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/schoolbridge/core"
)

// Key prefixes for different data types
const (
	announcementPrefix     = "annrec"
	announcementDatePrefix = "annrecd"
)

// makeAnnouncementKey generates a key for an announcement by ID.
func makeAnnouncementKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", announcementPrefix, id))
}

// makeDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := announcementDatePrefix + ":"
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

// makePartialDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialDateKey(timestamp time.Time) []byte {
	prefix := announcementDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// marshalID encodes an ID for storage in index values.
func marshalID(id core.ID) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

// unmarshalID decodes an ID from an index value.
func unmarshalID(data []byte) (core.ID, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("invalid id encoding: %d bytes", len(data))
	}
	return core.ID(binary.BigEndian.Uint64(data)), nil
}
