package mjpegencoder

import (
	"bytes"
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"
)

// buildMP4 creates a fragmented MP4 container from the buffered JPEG
// samples. Every sample is intra-coded, so all samples are sync samples.
func (e *Encoder) buildMP4() ([]byte, error) {
	if len(e.frames) == 0 {
		return nil, fmt.Errorf("no frames to encode")
	}

	timescale := uint32(e.fps * 1000)
	trackID := uint32(1)

	// Create initialization segment
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")

	trak := init.Moov.Trak

	// Motion-JPEG sample entry; no codec configuration box is needed since
	// each sample is a self-contained JPEG.
	entry := mp4.CreateVisualSampleEntryBox("jpeg", uint16(e.width), uint16(e.height), nil)
	trak.Mdia.Minf.Stbl.Stsd.AddChild(entry)

	trak.Tkhd.Width = mp4.Fixed32(e.width << 16)
	trak.Tkhd.Height = mp4.Fixed32(e.height << 16)

	// Create fragment
	frag, err := mp4.CreateFragment(1, trackID)
	if err != nil {
		return nil, fmt.Errorf("create fragment: %w", err)
	}

	for i, frame := range e.frames {
		// Duration in timescale units, taken from the gap to the next
		// sample; the last sample gets one nominal frame interval.
		var dur uint32
		if i < len(e.frames)-1 {
			nextTs := e.frames[i+1].timestampUs
			dur = uint32((nextTs - frame.timestampUs) * int64(timescale) / 1000000)
		}
		if dur == 0 {
			dur = uint32(timescale) / uint32(e.fps)
		}

		decodeTime := uint64(frame.timestampUs) * uint64(timescale) / 1000000

		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: mp4.SyncSampleFlags,
				Size:  uint32(len(frame.data)),
				Dur:   dur,
			},
			DecodeTime: decodeTime,
			Data:       frame.data,
		})
	}

	var buf bytes.Buffer

	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode ftyp: %w", err)
	}

	if err := init.Moov.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode moov: %w", err)
	}

	if err := frag.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode fragment: %w", err)
	}

	return buf.Bytes(), nil
}
