package mocks

import (
	"context"

	"github.com/user/promoreel/pkg/media"
	"github.com/user/promoreel/pkg/ports"
)

// Transcoder is a mock implementation of ports.Transcoder.
type Transcoder struct {
	TranscodeFunc func(ctx context.Context, clip media.Clip) (media.Clip, error)

	TranscodeCalls []media.Clip
}

func (m *Transcoder) Transcode(ctx context.Context, clip media.Clip) (media.Clip, error) {
	m.TranscodeCalls = append(m.TranscodeCalls, clip)
	if m.TranscodeFunc != nil {
		return m.TranscodeFunc(ctx, clip)
	}
	return media.NewClip(media.TypeMP4, []byte{0x00, 0x00, 0x00, 0x14, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}), nil
}

var _ ports.Transcoder = (*Transcoder)(nil)
