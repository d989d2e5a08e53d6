/*
NAME
  field.go

DESCRIPTION
  field.go orchestrates the full per-field pipeline: auto-ranging,
  VSYNC/HSYNC detection and refinement, burst phase lock, resampling,
  VBI demodulation and dropout replacement, assembling the result into a
  container/video.Field, per spec.md §4.8.

  Grounded on original_source/app/tbc/tbc.cpp's
  Tbc::processVideoAndAudioBuffer, which runs these same stages in this
  order over one field's worth of samples at a time.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package tbc

import (
	"errors"

	"github.com/ld-decode/ldcore/container/video"
)

// ErrNoVsync is returned when ProcessField cannot locate a VSYNC pulse
// at or after offset.
var ErrNoVsync = errors.New("tbc: no vsync found")

// VBILines are the three field lines VBI data is demodulated from.
var VBILines = [3]int{16, 17, 18}

// ProcessField runs the full per-field decode pipeline over samples
// starting at offset and returns the resulting video.Field along with
// the sample offset of the next field's VSYNC (for the caller to
// continue scanning from).
func ProcessField(cfg Config, samples []uint16, offset int, frameNum int) (video.Field, int, error) {
	var r AutoRangeResult
	if cfg.PerformAutoRange {
		r = AutoRange(cfg, samples)
	} else {
		r = AutoRangeResult{Low: 1, Scale: 1}
	}

	vs := FindVsync(cfg, r, samples, offset)
	if vs == 0 {
		return video.Field{}, offset, ErrNoVsync
	}
	isOdd := vs > 0
	vsPos := absInt(vs)

	hsyncStart := vsPos + VsyncToFirstHsyncOdd
	if !isOdd {
		hsyncStart = vsPos + VsyncToFirstHsyncEven
	}

	lines := FindHsyncs(cfg, r, samples, hsyncStart)
	RefineSyncEnds(cfg, r, samples, lines)
	CorrectDamagedHSyncs(lines)
	LockBurstPhase(cfg, samples, lines)

	resampled := make([][]float64, len(lines))
	for i, ln := range lines {
		resampled[i] = ResampleLine(cfg, samples, ln.HSync)
	}

	if cfg.PerformDespackle {
		despackleField(r, resampled)
	}

	field := video.Field{
		Standard: video.Standard(cfg.Standard),
		IsOdd:    isOdd,
		FrameNum: frameNum,
		Samples:  make([][]int16, video.Standard(cfg.Standard).Lines()),
	}
	for i := range field.Samples {
		field.Samples[i] = make([]int16, video.SamplesPerLine)
	}

	for i, samplesOut := range resampled {
		row := 3 + 2*i
		if !isOdd {
			row++
		}
		if row >= len(field.Samples) {
			continue
		}
		for j, v := range samplesOut {
			if j >= len(field.Samples[row]) {
				break
			}
			field.Samples[row][j] = clampInt16(v)
		}
	}

	field.VBI = demodulateFieldVBI(cfg, r, samples, lines)
	field.Dropouts = collectDropouts(r, resampled)

	next := vsPos + cfg.fscCount(227.5*280)
	return field, next, nil
}

// despackleField replaces each resampled line's flagged dropout runs
// with the average of the corresponding samples two lines above and
// below, per spec.md §4.8 step 9.
func despackleField(r AutoRangeResult, lines [][]float64) {
	for i, line := range lines {
		runs := DetectDropouts(r, line)
		if len(runs) == 0 {
			continue
		}
		var prevPrev, nextNext []float64
		if i-2 >= 0 {
			prevPrev = lines[i-2]
		}
		if i+2 < len(lines) {
			nextNext = lines[i+2]
		}
		ReplaceDropouts(line, runs, prevPrev, nextNext)
	}
}

// collectDropouts gathers the dropout runs actually found across every
// resampled line, translated into container/video's Line/StartIndex/
// Length representation.
func collectDropouts(r AutoRangeResult, lines [][]float64) []video.DropoutRun {
	var out []video.DropoutRun
	for i, line := range lines {
		for _, run := range DetectDropouts(r, line) {
			out = append(out, video.DropoutRun{
				Line:       i,
				StartIndex: run.Start,
				Length:     run.End - run.Start,
			})
		}
	}
	return out
}

// demodulateFieldVBI demodulates the three VBI lines from raw samples
// (not the resampled output, since VBI timing is referenced to the
// original sample domain's HSYNC positions).
func demodulateFieldVBI(cfg Config, r AutoRangeResult, samples []uint16, lines []Line) video.VBICode {
	var vbi video.VBICode
	for _, ln := range VBILines {
		if ln >= len(lines) {
			continue
		}
		code, ok := DemodulateVBILine(cfg, r, samples, lines[ln].HSync)
		if !ok {
			continue
		}
		switch ln {
		case 16:
			vbi.Line16 = code
		case 17:
			vbi.Line17 = code
		case 18:
			vbi.Line18 = code
		}
	}
	return vbi
}

func clampInt16(v float64) int16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 32767
	}
	shifted := v - 32768
	if shifted > 32767 {
		return 32767
	}
	if shifted < -32768 {
		return -32768
	}
	return int16(shifted)
}

// lines reports the per-field line count (half of Standard.Lines, since
// a field is one of a frame's two interlaced halves).
func (s Standard) lines() int {
	if s == PAL {
		return 625 / 2
	}
	return 505 / 2
}
