/*
NAME
  audiosync.go

DESCRIPTION
  audiosync.go tracks the audio cursor across frames and produces
  phase-interpolated stereo samples for the frame currently being
  decoded, per spec.md §4.8 step 10.

  Grounded on original_source/app/tbc/tbc.cpp's processAudioState (afreq
  defaulting to 48000, a running nextAudioSample cursor tracked
  alongside video/audio read ratios); the original advances its cursor
  sample-by-sample against the video/audio buffer ratio, which this
  translates into an explicit per-frame cursor position (frame/29.97
  seconds) since this package consumes whole frames rather than a
  shared ring buffer.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package tbc

// DefaultAudioSampleRate is the PCM sample rate audio is interpolated
// against, matching processAudioState.afreq.
const DefaultAudioSampleRate = 48000

// NTSCFrameRate is the NTSC frame rate in frames per second.
const NTSCFrameRate = 30000.0 / 1001.0 // 29.97.

// StereoSample is one interpolated left/right audio sample pair.
type StereoSample struct {
	Left, Right float64
}

// AudioCursor tracks the fractional audio sample position corresponding
// to a given video frame number.
type AudioCursor struct {
	SampleRate float64
}

// NewAudioCursor returns a cursor at the given sample rate, defaulting
// to DefaultAudioSampleRate when rate is 0.
func NewAudioCursor(rate float64) AudioCursor {
	if rate == 0 {
		rate = DefaultAudioSampleRate
	}
	return AudioCursor{SampleRate: rate}
}

// Position returns the fractional audio sample index at the start of
// frame.
func (c AudioCursor) Position(frame int) float64 {
	return float64(frame) / NTSCFrameRate * c.SampleRate
}

// Interpolate reads nsamples phase-interpolated stereo samples for
// frame from separate left and right PCM buffers, linearly
// interpolating between the two samples straddling each fractional
// cursor position.
func (c AudioCursor) Interpolate(left, right []float64, frame int, nsamples int) []StereoSample {
	out := make([]StereoSample, nsamples)
	samplesPerFrame := c.SampleRate / NTSCFrameRate
	start := c.Position(frame)
	step := samplesPerFrame / float64(nsamples)

	for i := 0; i < nsamples; i++ {
		pos := start + float64(i)*step
		out[i] = StereoSample{
			Left:  interpLinear(left, pos),
			Right: interpLinear(right, pos),
		}
	}
	return out
}

// interpLinear linearly interpolates buf at fractional position pos,
// clamping to the buffer's bounds.
func interpLinear(buf []float64, pos float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	if pos < 0 {
		return buf[0]
	}
	i := int(pos)
	if i >= len(buf)-1 {
		return buf[len(buf)-1]
	}
	frac := pos - float64(i)
	return buf[i] + frac*(buf[i+1]-buf[i])
}
