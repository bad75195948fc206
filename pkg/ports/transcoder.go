package ports

import (
	"context"

	"github.com/user/promoreel/pkg/media"
)

// Transcoder re-encodes a clip into a widely compatible container/codec.
// The input is treated as an opaque byte sequence; any failure of the
// underlying encoder is returned as a single error carrying its diagnostic
// output.
type Transcoder interface {
	Transcode(ctx context.Context, clip media.Clip) (media.Clip, error)
}
