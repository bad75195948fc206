// Package media defines the binary clip type shared by the capture and
// transcode layers.
package media

import (
	"bytes"

	"github.com/google/uuid"
)

// MIME types for the clips this system produces.
const (
	TypeMP4  = "video/mp4"
	TypeJPEG = "image/jpeg"
)

// Clip is an opaque binary media object with an associated media type.
// It is the unit of exchange between the capture pipeline, the transcoder
// and the HTTP layer.
type Clip struct {
	ID   string
	Type string
	Data []byte
}

// NewClip creates a clip with a fresh identifier.
func NewClip(mimeType string, data []byte) Clip {
	return Clip{
		ID:   uuid.NewString(),
		Type: mimeType,
		Data: data,
	}
}

// Size returns the clip length in bytes.
func (c Clip) Size() int {
	return len(c.Data)
}

// IsMP4 reports whether the data carries an ISO BMFF signature, i.e. an
// "ftyp" box at offset 4.
func IsMP4(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	return bytes.Equal(data[4:8], []byte("ftyp"))
}
