/*
NAME
  sync.go

DESCRIPTION
  sync.go anchors the EFM pipeline's decoded PCM audio to the video TBC
  pipeline's frame clock, per spec.md §5: "alignment is maintained by
  disc-time metadata (MM:SS:FF) carried from the subcode layer
  downstream; the audio converter uses the disc-time field on each F1
  frame to pad gaps so audio runs at the same rate as video." Gaps
  within the EFM audio stream itself (corrupt/missing F1 frames) are
  already handled inside codec/efm.AudioConverter; this file handles
  the outer gap: gaps between the EFM decoder's audio output and the
  video frame clock it must stay locked to, caused by section sync
  loss or a capture that starts the two pipelines at different disc
  times.

  Builds directly on codec/tbc.AudioCursor (already grounded on
  original_source/app/tbc/tbc.cpp's processAudioState), extending its
  frame-number-to-sample-position math to key off disc time instead of
  assuming the audio buffer starts at video frame 0.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package pipeline

import (
	"github.com/ld-decode/ldcore/codec/tbc"
	containerefm "github.com/ld-decode/ldcore/container/efm"
)

// QChannelFrameRate is the CD Q-subcode's disc-time frame rate (75
// frames per second), used to convert a DiscTime into a fractional
// second offset.
const QChannelFrameRate = 75

// DiscTimeSeconds converts a Q-subcode disc time into a fractional
// second offset from the start of the disc.
func DiscTimeSeconds(t containerefm.DiscTime) float64 {
	return float64(t.Min*60+t.Sec) + float64(t.Frame)/QChannelFrameRate
}

// FieldAudioSync buffers EFM-decoded PCM audio keyed by disc time, so
// it can be read back aligned to a video TBC frame number regardless
// of where the two pipelines' capture windows happen to start.
type FieldAudioSync struct {
	cursor tbc.AudioCursor

	haveBase    bool
	baseSeconds float64

	left, right []float64
}

// NewFieldAudioSync returns a sync buffer reading back audio at the
// given PCM sample rate (codec/tbc.DefaultAudioSampleRate if 0).
func NewFieldAudioSync(sampleRate float64) *FieldAudioSync {
	return &FieldAudioSync{cursor: tbc.NewAudioCursor(sampleRate)}
}

// Feed appends one chunk of interleaved 16-bit stereo PCM (as produced
// by codec/efm.AudioConverter.Process) anchored to the disc time of
// its first frame. The first call establishes the buffer's disc-time
// origin; later calls pad the buffer with silence up to the disc-time
// gap before appending, keeping the buffer's sample index locked to
// disc time even across a section-sync dropout that skipped output
// entirely.
func (s *FieldAudioSync) Feed(t containerefm.DiscTime, pcm []byte) {
	if !s.haveBase {
		s.baseSeconds = DiscTimeSeconds(t)
		s.haveBase = true
	}

	wantIndex := int((DiscTimeSeconds(t) - s.baseSeconds) * s.cursor.SampleRate)
	for len(s.left) < wantIndex {
		s.left = append(s.left, 0)
		s.right = append(s.right, 0)
	}

	for i := 0; i+3 < len(pcm); i += 4 {
		l := int16(uint16(pcm[i]) | uint16(pcm[i+1])<<8)
		r := int16(uint16(pcm[i+2]) | uint16(pcm[i+3])<<8)
		s.left = append(s.left, float64(l))
		s.right = append(s.right, float64(r))
	}
}

// Samples returns nsamples phase-interpolated stereo samples for
// video frame, using the same interpolation the TBC core's own
// in-pipeline audio stage applies (spec.md §4.8 step 10).
func (s *FieldAudioSync) Samples(frame, nsamples int) []tbc.StereoSample {
	return s.cursor.Interpolate(s.left, s.right, frame, nsamples)
}
