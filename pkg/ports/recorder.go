package ports

import (
	"context"

	"github.com/user/promoreel/pkg/media"
)

// Recorder observes a surface over time and assembles the sampled frames
// into a single clip. A recorder instance handles one recording at a time;
// its sampling cadence is independent of the renderer's draw calls.
type Recorder interface {
	// Start begins observing the surface. It fails if a recording is
	// already in progress.
	Start(surface Surface) error

	// Stop signals the recorder to finalize, waits for the last sample to
	// be processed and returns the assembled clip. Any error observed
	// during sampling or finalization is returned here; a failed recording
	// yields no usable clip.
	Stop(ctx context.Context) (media.Clip, error)
}
