/*
NAME
  vsync.go

DESCRIPTION
  vsync.go locates VSYNC pulses and determines field polarity, per
  spec.md §4.8 step 2.

  Grounded on original_source/app/tbc/tbc.cpp's Tbc::findSync,
  Tbc::countSlevel and Tbc::findVsync, translated directly: findSync
  scans for a windowed run of samples within the -45..-35 IRE sync band,
  findVsync calls it six times back to back, each hunt starting where
  the previous pulse ended, and compares the
  sync-level sample counts immediately before and after the run of six
  pulses to decide field polarity.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package tbc

// findSyncPad is the original's search padding (tbc.cpp's "pad = 96").
const findSyncPad = 96

// findSync scans samples for the end of a windowed run of length tgt*3
// where most samples fall within the -45..-35 IRE sync band (error bars
// at -55/30 IRE tolerate noise). It returns the run's end position, or
// -1 if no qualifying run is found.
func findSync(r AutoRangeResult, samples []uint16, tgt int) int {
	toMin, toMax := r.IRETo(-45), r.IRETo(-35)
	errMin, errMax := r.IRETo(-55), r.IRETo(30)
	clen := tgt * 3

	count, errCount, peak, peakLoc := 0, 0, 0, 0
	for i := 0; i < len(samples); i++ {
		v := int(samples[i])
		inBand := v >= toMin && v <= toMax
		inError := v >= errMin && v <= errMax

		if inBand {
			count++
			if count > peak {
				peak = count
				peakLoc = i
			}
		} else if !inError {
			errCount++
		}

		if i >= clen {
			tail := i - clen
			tv := int(samples[tail])
			if tv >= toMin && tv <= toMax {
				count--
			} else if !(tv >= errMin && tv <= errMax) {
				errCount--
			}
		}

		if peak >= tgt && errCount == 0 {
			return peakLoc + findSyncPad
		}
	}
	return -1
}

// countSlevel counts samples within [begin,end) that fall at or below
// the sync-tip IRE level (sync-level count used by findVsync's polarity
// test).
func countSlevel(r AutoRangeResult, samples []uint16, begin, end int) int {
	if begin < 0 {
		begin = 0
	}
	if end > len(samples) {
		end = len(samples)
	}
	syncTip := r.IRETo(-40)
	count := 0
	for i := begin; i < end; i++ {
		if int(samples[i]) <= syncTip {
			count++
		}
	}
	return count
}

// fscCount converts a count of colour-subcarrier cycles (227.5 per
// line) to a sample count at the configured oversampling rate.
func (c Config) fscCount(linePeriods float64) int {
	return int(linePeriods * float64(c.SamplesPerFSC))
}

// FindVsync locates the next VSYNC pulse starting at offset and reports
// field polarity: the returned position is negated for an even field.
// Grounded on Tbc::findVsync's six-pulse hunt and before/after sync-level
// comparison (spec.md §4.8 step 2).
func FindVsync(cfg Config, r AutoRangeResult, samples []uint16, offset int) int {
	loc := offset
	var pulseEnds [6]int
	for i := 0; i < 6; i++ {
		if loc >= len(samples) {
			return 0
		}
		end := findSync(r, samples[loc:], cfg.fscCount(32))
		if end < 0 {
			return 0
		}
		end = absInt(end)
		pulseEnds[i] = loc + end
		loc = pulseEnds[i]
	}

	rv := pulseEnds[5]

	beforeEnd := pulseEnds[0] - cfg.fscCount(127.5)
	beforeStart := beforeEnd - cfg.fscCount(227.5*4.5)
	pcBefore := countSlevel(r, samples, beforeStart, beforeEnd)

	afterStart := pulseEnds[5]
	afterEnd := afterStart + cfg.fscCount(227.5*4.5)
	pcAfter := countSlevel(r, samples, afterStart, afterEnd)

	if pcBefore > pcAfter {
		return -rv
	}
	return rv
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
