package common

import (
	"github.com/google/uuid"
)

// NewID returns a unique record identifier of the form "<prefix>_<uuid>".
// An empty prefix yields the bare uuid.
func NewID(prefix string) string {
	id := uuid.NewString()
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

// WipeByteArray overwrites b with zeros so that passwords do not linger in
// memory after use. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
