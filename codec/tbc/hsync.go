/*
NAME
  hsync.go

DESCRIPTION
  hsync.go locates the 253 HSYNCs of a field, refines each one's end
  position via a short FIR filter and a -20 IRE crossing interpolation,
  validates sync width, and interpolates damaged lines from their
  nearest good neighbours, per spec.md §4.8 steps 3-5.

  Grounded on original_source/app/tbc/tbc.cpp's Tbc::findHsyncs (the
  253-line hunt starting 750/871 samples past VSYNC) and the inline
  sync-begin/sync-end refinement loop in Tbc::processVideoAndAudioBuffer
  (short FIR feed, -20 IRE crossing via linear interpolation between the
  two straddling filtered samples, 15.75..17.25 line-period width
  validation), plus Tbc::correctDamagedHSyncs.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package tbc

// LinesPerField is the number of HSYNC lines hunted per field (tbc.cpp's
// "why 253?" — 252 active lines plus one trailing reference for width
// computation on the last line).
const LinesPerField = 253

// VsyncToFirstHsyncOdd/Even are the sample offsets past a VSYNC pulse
// where the first HSYNC hunt begins, per spec.md §4.8 step 3.
const (
	VsyncToFirstHsyncOdd  = 750
	VsyncToFirstHsyncEven = 871
)

// shortFIRTaps is the width of the short boxcar FIR used to refine a
// sync edge's crossing point (tbc.cpp's f_endsync filter).
const shortFIRTaps = 4

// Line is one field line's detected HSYNC end position; Bad marks a
// line whose sync couldn't be located or whose width was out of range.
type Line struct {
	HSync float64
	Bad   bool
}

// FindHsyncs hunts LinesPerField HSYNCs starting at offset, one
// 227.5*3-sample-period search window apiece.
func FindHsyncs(cfg Config, r AutoRangeResult, samples []uint16, offset int) []Line {
	lines := make([]Line, LinesPerField)
	loc := offset
	window := cfg.fscCount(227.5 * 3)
	for line := 0; line < LinesPerField; line++ {
		if loc < 0 || loc >= len(samples) {
			lines[line].Bad = true
			continue
		}
		end := findSync(r, samples[loc:minInt(loc+window, len(samples))], cfg.fscCount(3))
		if end < 0 {
			lines[line].Bad = true
			loc += cfg.fscCount(227.5)
			continue
		}
		pos := loc + end
		lines[line].HSync = float64(pos)
		loc = pos + cfg.fscCount(227.5) - cfg.fscCount(3)
	}
	return lines
}

// shortFIRFeed runs a simple boxcar average over the last shortFIRTaps
// samples ending at i (inclusive), matching the original's short FIR
// filter used purely to smooth the -20 IRE crossing search.
func shortFIRFeed(samples []uint16, i int) float64 {
	start := i - shortFIRTaps + 1
	if start < 0 {
		start = 0
	}
	var sum float64
	n := 0
	for j := start; j <= i && j < len(samples); j++ {
		sum += float64(samples[j])
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// crossing finds the sample position where the short-FIR-filtered
// signal crosses threshold on a rising (or falling, if !rising) edge
// within [from,to), interpolating linearly between the two straddling
// filtered values. ok is false if no crossing is found.
func crossing(samples []uint16, from, to int, threshold float64, rising bool) (pos float64, ok bool) {
	if from < 0 {
		from = 0
	}
	if to > len(samples) {
		to = len(samples)
	}
	prev := shortFIRFeed(samples, from)
	for i := from + 1; i < to; i++ {
		cur := shortFIRFeed(samples, i)
		crossed := (rising && prev < threshold && cur >= threshold) ||
			(!rising && prev > threshold && cur <= threshold)
		if crossed {
			diff := cur - prev
			if diff == 0 {
				return float64(i), true
			}
			return float64(i-1) + (threshold-prev)/diff, true
		}
		prev = cur
	}
	return 0, false
}

// RefineSyncEnds refines each line's HSync position to the -20 IRE
// crossing at the end of its sync pulse, validates the sync width
// against the falling -20 IRE crossing that starts the same pulse, and
// marks out-of-range or unlocatable lines Bad.
func RefineSyncEnds(cfg Config, r AutoRangeResult, samples []uint16, lines []Line) {
	threshold := r.IRETo(-20)
	for line := 0; line < len(lines)-1; line++ {
		if lines[line].Bad {
			continue
		}
		base := int(lines[line].HSync)

		startPos, startOK := crossing(samples, base-cfg.fscCount(20), base-cfg.fscCount(8), float64(threshold), false)
		endPos, endOK := crossing(samples, base-cfg.fscCount(2), base+cfg.fscCount(4), float64(threshold), true)
		if !startOK || !endOK {
			lines[line].Bad = true
			continue
		}

		width := (endPos - startPos) / float64(cfg.SamplesPerFSC)
		if width < 15.75 || width > 17.25 {
			lines[line].Bad = true
			continue
		}
		lines[line].HSync = endPos
	}
}

// CorrectDamagedHSyncs replaces each Bad line's HSync with the linear
// interpolation of the nearest earlier and later good lines, per
// Tbc::correctDamagedHSyncs.
func CorrectDamagedHSyncs(lines []Line) {
	for line := 1; line < len(lines)-1; line++ {
		if !lines[line].Bad {
			continue
		}
		prev := -1
		for p := line - 1; p >= 0; p-- {
			if !lines[p].Bad {
				prev = p
				break
			}
		}
		next := -1
		for n := line + 1; n < len(lines); n++ {
			if !lines[n].Bad {
				next = n
				break
			}
		}
		switch {
		case prev >= 0 && next >= 0:
			frac := float64(line-prev) / float64(next-prev)
			lines[line].HSync = lines[prev].HSync + frac*(lines[next].HSync-lines[prev].HSync)
		case prev >= 0:
			lines[line].HSync = lines[prev].HSync
		case next >= 0:
			lines[line].HSync = lines[next].HSync
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
