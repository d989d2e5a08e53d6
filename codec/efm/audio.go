/*
NAME
  audio.go

DESCRIPTION
  audio.go converts a stream of F1 frames into 16-bit stereo PCM audio,
  applying one of three error treatments (silence, pass-through, conceal)
  and, for concealment, one of two interpolation strategies (linear,
  predictive), per spec.md §4.6 and SPEC_FULL.md's audio concealment
  section.

  The state machine and interpolation formulas are translated directly
  from
  original_source/tools/ld-process-efm/Decoders/f1toaudio.cpp's
  F1ToAudio::process/sm_state_processFrame/sm_state_findEndOfError/
  linearInterpolationConceal/predictiveInterpolationConceal. One
  simplification versus the original: error runs are resolved within the
  frame slice passed to Process rather than spanning multiple calls: a
  run still open at the end of the slice is concealed against the last
  known-good frame on both sides (documented below at the call site).

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package efm

import containerefm "github.com/ld-decode/ldcore/container/efm"

// ErrorTreatment selects how corrupt or missing F1 frames become PCM.
type ErrorTreatment int

const (
	Silence ErrorTreatment = iota
	PassThrough
	Conceal
)

// ConcealType selects the interpolation strategy used when ErrorTreatment
// is Conceal.
type ConcealType int

const (
	Linear ConcealType = iota
	Predictive
)

// errorThreshold is the predictive concealment's maximum accepted
// deviation (in 16-bit signed sample amplitude units) between the
// interpolated value and the frame's own (likely corrupt) sample before
// falling back to the interpolated value.
const errorThreshold = 1024

// AudioStats reports the running counters of an AudioConverter.
type AudioStats struct {
	AudioSamples     int64
	CorruptSamples   int64
	MissingSamples   int64
	ConcealedSamples int64
	TotalSamples     int64
}

// AudioConverter turns F1 frames into interleaved 16-bit stereo PCM.
type AudioConverter struct {
	ErrorTreatment  ErrorTreatment
	ConcealType     ConcealType
	PadInitialTime  bool
	gotFirstSample  bool
	lastGood        containerefm.F1Frame
	haveLastGood    bool
	stats           AudioStats
}

// NewAudioConverter returns a converter configured with the given
// treatment and concealment strategy.
func NewAudioConverter(treatment ErrorTreatment, conceal ConcealType, padInitialTime bool) *AudioConverter {
	return &AudioConverter{ErrorTreatment: treatment, ConcealType: conceal, PadInitialTime: padInitialTime}
}

// Statistics returns a snapshot of the converter's counters.
func (a *AudioConverter) Statistics() AudioStats { return a.stats }

// Reset clears the converter's statistics and carried-forward state.
func (a *AudioConverter) Reset() {
	*a = AudioConverter{ErrorTreatment: a.ErrorTreatment, ConcealType: a.ConcealType, PadInitialTime: a.PadInitialTime}
}

func decodeStereoFrame(data [24]byte) (left, right [6]int16) {
	for i := 0; i < 6; i++ {
		left[i] = int16(data[i*4]) | int16(data[i*4+1])<<8
		right[i] = int16(data[i*4+2]) | int16(data[i*4+3])<<8
	}
	return left, right
}

func encodeStereoFrame(left, right [6]int16) [24]byte {
	var out [24]byte
	for i := 0; i < 6; i++ {
		out[i*4] = byte(left[i])
		out[i*4+1] = byte(left[i] >> 8)
		out[i*4+2] = byte(right[i])
		out[i*4+3] = byte(right[i] >> 8)
	}
	return out
}

// Process converts frames into PCM, appending 24 bytes per frame (silence
// or pass-through) or more generally 24 bytes per frame consumed
// (concealment emits the same byte count, interpolated).
func (a *AudioConverter) Process(frames []containerefm.F1Frame) []byte {
	if len(frames) == 0 {
		return nil
	}
	if a.ErrorTreatment == Silence || a.ErrorTreatment == PassThrough {
		return a.processFast(frames)
	}
	return a.processConceal(frames)
}

func (a *AudioConverter) processFast(frames []containerefm.F1Frame) []byte {
	out := make([]byte, 0, 24*len(frames))
	for _, f := range frames {
		data := f.Data
		if f.Corrupt || f.Missing {
			data = [24]byte{}
			if f.Corrupt {
				a.stats.CorruptSamples += 6
			}
			if f.Missing && (a.PadInitialTime || a.gotFirstSample) {
				a.stats.MissingSamples += 6
			}
		} else {
			a.stats.AudioSamples += 6
			a.gotFirstSample = true
		}
		if a.PadInitialTime || a.gotFirstSample {
			out = append(out, data[:]...)
			a.stats.TotalSamples += 6
		}
	}
	return out
}

func (a *AudioConverter) processConceal(frames []containerefm.F1Frame) []byte {
	var out []byte
	i := 0
	for i < len(frames) {
		f := frames[i]
		if !f.Corrupt {
			var data [24]byte
			if f.Missing {
				if a.PadInitialTime || a.gotFirstSample {
					a.stats.MissingSamples += 6
					a.stats.TotalSamples += 6
					out = append(out, data[:]...)
				}
			} else {
				data = f.Data
				a.stats.AudioSamples += 6
				a.stats.TotalSamples += 6
				a.gotFirstSample = true
				out = append(out, data[:]...)
			}
			a.lastGood = f
			a.haveLastGood = true
			i++
			continue
		}

		// Corrupt run: find its end within this slice.
		start := i
		stop := start
		for stop < len(frames) && frames[stop].Corrupt {
			stop++
		}
		var next containerefm.F1Frame
		if stop < len(frames) {
			next = frames[stop]
		} else if a.haveLastGood {
			// Run extends past the end of this slice: conceal against the
			// last known-good frame on both sides rather than blocking for
			// more data, per the documented simplification above.
			next = a.lastGood
		}
		out = append(out, a.conceal(frames[start:stop], next)...)
		i = stop
	}
	return out
}

func (a *AudioConverter) conceal(run []containerefm.F1Frame, next containerefm.F1Frame) []byte {
	if len(run) == 0 {
		return nil
	}
	var last containerefm.F1Frame
	if a.haveLastGood {
		last = a.lastGood
	}
	lastLeft, lastRight := decodeStereoFrame(last.Data)
	nextLeft, nextRight := decodeStereoFrame(next.Data)

	n := len(run) * 6
	leftStart, leftEnd := float64(lastLeft[5]), float64(nextLeft[0])
	rightStart, rightEnd := float64(lastRight[5]), float64(nextRight[0])
	leftStep := (leftEnd - leftStart) / float64(n)
	rightStep := (rightEnd - rightStart) / float64(n)

	interpLeft := make([]int16, n)
	interpRight := make([]int16, n)
	lv, rv := leftStart, rightStart
	for i := 0; i < n; i++ {
		lv += leftStep
		rv += rightStep
		interpLeft[i] = int16(lv)
		interpRight[i] = int16(rv)
	}

	out := make([]byte, 0, 24*len(run))
	pos := 0
	for _, f := range run {
		var sampleLeft, sampleRight [6]int16
		if a.ConcealType == Predictive {
			sampleLeft, sampleRight = decodeStereoFrame(f.Data)
		}
		var outLeft, outRight [6]int16
		for x := 0; x < 6; x++ {
			if a.ConcealType == Predictive {
				if abs16(int32(interpLeft[pos])-int32(sampleLeft[x])) <= errorThreshold {
					outLeft[x] = sampleLeft[x]
				} else {
					outLeft[x] = interpLeft[pos]
				}
				if abs16(int32(interpRight[pos])-int32(sampleRight[x])) <= errorThreshold {
					outRight[x] = sampleRight[x]
				} else {
					outRight[x] = interpRight[pos]
				}
			} else {
				outLeft[x] = interpLeft[pos]
				outRight[x] = interpRight[pos]
			}
			pos++
		}
		data := encodeStereoFrame(outLeft, outRight)
		out = append(out, data[:]...)
		a.stats.ConcealedSamples += 6
		a.stats.TotalSamples += 6
	}
	a.lastGood = next
	a.haveLastGood = true
	return out
}

func abs16(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
