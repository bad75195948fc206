package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving sampled frames and assembled clips for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSampledFrame saves a frame captured by the recorder.
	SaveSampledFrame(index int, img image.Image) error

	// SaveClip saves an assembled clip under the given file name.
	SaveClip(name string, data []byte) error

	// SaveCaption saves the derived caption text for a product.
	SaveCaption(productID, caption string) error
}
