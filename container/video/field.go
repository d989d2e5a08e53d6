/*
NAME
  field.go

DESCRIPTION
  field.go defines the video TBC core's output containers: the sample
  field itself (505 lines × N samples for NTSC, with a PAL variant), the
  three-code VBI payload per field, and the navigation info a disc-level
  scan over fields produces, per spec.md §3, §4.8-4.10.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

// Package video defines the TBC core's field, VBI-code and navigation
// container types.
package video

// Standard selects the broadcast line/field geometry a Field was decoded
// against.
type Standard int

const (
	NTSC Standard = iota
	PAL
)

// Lines returns the total line count for the standard (spec.md §3: 505
// for NTSC; the PAL variant per SPEC_FULL.md's supplemented-features
// section uses 625 lines split across two fields).
func (s Standard) Lines() int {
	if s == PAL {
		return 625
	}
	return 505
}

// SamplesPerLine is the fixed TBC output width (spec.md §4.8's
// resampling stage target).
const SamplesPerLine = 910

// Field is one time-base-corrected video field: a 2-D sample array plus
// the polarity and frame sequence it belongs to.
type Field struct {
	Standard Standard
	Samples  [][]int16 // Standard.Lines() rows × SamplesPerLine columns.
	IsOdd    bool
	FrameNum int
	VBI      VBICode
	Dropouts []DropoutRun
}

// DropoutRun is a contiguous run of samples flagged out-of-range
// (outside [-20, 140] IRE) and replaced by interpolation (spec.md §4.8
// step 9).
type DropoutRun struct {
	Line       int
	StartIndex int
	Length     int
}

// VBICode is the three 24-bit codes recovered from lines 16, 17 and 18
// of a field, plus an optional closed-caption byte pair (spec.md §3).
type VBICode struct {
	Line16, Line17, Line18 uint32
	CC                     [2]byte
	HasCC                  bool
}

// NavigationInfo is the disc-level scan result over all fields: the set
// of stop-code field indices and the ordered, gap-free chapter list
// (spec.md §3, §4.10).
type NavigationInfo struct {
	StopCodeFields map[int]bool
	Chapters       []Chapter
}

// Chapter is one navigation chapter: an inclusive-start, exclusive-end
// field range and its chapter number.
type Chapter struct {
	StartField int
	EndField   int
	Number     int
}
