/*
NAME
  palcomb.go

DESCRIPTION
  palcomb.go separates luma and chroma from a PAL composite video field,
  combing each line against its vertical neighbours. PAL's Vswitch flips
  the chroma subcarrier's V-phase on every line, so the lines immediately
  above and below a given line carry chroma 180 degrees out of phase with
  it while luma stays in phase: averaging cancels chroma and keeps luma,
  differencing cancels luma and keeps chroma.

  Grounded on original_source/tools/ld-comb-pal/palcolour.cpp's
  performDecode, which builds its filters from the same current/previous/
  next-line relationship (the b0/b1/b2 line pointers at palcolour.cpp:176-
  182 and the Vswitch detection at line 229) before running a multi-tap
  quadrature bandpass filter across seven lines per pixel. That filter
  bank needs the field's full sample rate, colour-burst window and
  pixel-clock geometry, none of which this repo's codec/tbc carries past
  ProcessField's output; this is a single-tap, two-line version of the
  same comb, trading the original's notch sharpness for something that
  runs directly off a decoded video.Field.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package filter

import "github.com/ld-decode/ldcore/container/video"

// PALCombFilter separates PAL composite samples into luma and chroma,
// line by line, using the two-line comb described above. It holds no
// state and is safe for concurrent use across fields.
type PALCombFilter struct{}

// NewPALCombFilter returns a ready-to-use PALCombFilter.
func NewPALCombFilter() *PALCombFilter { return &PALCombFilter{} }

// clampSample keeps a combed sample within the int16 range a video.Field
// line stores its samples in.
func clampSample(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// SeparateLine splits one composite line into luma and chroma, using
// the lines immediately above (prev) and below (next) as the comb's
// opposite-Vswitch-phase reference. Either neighbour may be nil at a
// field's top or bottom edge, in which case the comb degrades to the
// single neighbour available, and if both are nil cur is returned
// unseparated as luma with zero chroma.
func (PALCombFilter) SeparateLine(prev, cur, next []int16) (luma, chroma []int16) {
	luma = make([]int16, len(cur))
	chroma = make([]int16, len(cur))

	var neighbour []int16
	switch {
	case prev != nil && next != nil:
		neighbour = make([]int16, len(cur))
		for x := range cur {
			neighbour[x] = clampSample((int32(prev[x]) + int32(next[x])) / 2)
		}
	case prev != nil:
		neighbour = prev
	case next != nil:
		neighbour = next
	default:
		copy(luma, cur)
		return luma, chroma
	}

	for x, c := range cur {
		n := int32(neighbour[x])
		luma[x] = clampSample((int32(c) + n) / 2)
		chroma[x] = clampSample((int32(c) - n) / 2)
	}
	return luma, chroma
}

// SeparateField runs SeparateLine over every line of a PAL field,
// returning a field whose Samples hold luma only, plus the chroma plane
// as its own set of rows in the same shape. Non-PAL fields are returned
// unchanged with a nil chroma plane.
func (f PALCombFilter) SeparateField(field video.Field) (luma video.Field, chroma [][]int16) {
	if field.Standard != video.PAL {
		return field, nil
	}

	luma = field
	luma.Samples = make([][]int16, len(field.Samples))
	chroma = make([][]int16, len(field.Samples))

	for i, cur := range field.Samples {
		var prev, next []int16
		if i > 0 {
			prev = field.Samples[i-1]
		}
		if i < len(field.Samples)-1 {
			next = field.Samples[i+1]
		}
		luma.Samples[i], chroma[i] = f.SeparateLine(prev, cur, next)
	}
	return luma, chroma
}
