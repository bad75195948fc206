package ports

import (
	"context"
	"image"
)

// ImageLoader fetches a remote image and returns a decoded bitmap.
// One outbound request per call, no retries; a failure is surfaced to the
// caller immediately.
type ImageLoader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}
