/*
NAME
  resample.go

DESCRIPTION
  resample.go resamples a phase-locked line to the fixed 910-sample NTSC
  output line length, applying the standard 33 degree colour-subcarrier
  phase shift, via the same bicubic interpolation burst.go uses, per
  spec.md §4.8 step 7.

  Grounded on original_source/app/tbc/tbc.cpp's Tbc::scale (the
  buf/outbuf/start/end/outlen/offset signature, reused here as
  scaleLine's offset parameter).

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package tbc

// OutputSamplesPerLine is the fixed NTSC output line length (910 =
// 227.5 samples/line * 4x oversampling).
const OutputSamplesPerLine = 910

// NTSCPhaseShiftDegrees is the colour-subcarrier phase shift applied
// during output resampling.
const NTSCPhaseShiftDegrees = 33.0

// ResampleLine scales samples[hsync:hsync+linePeriod] to
// OutputSamplesPerLine output samples, shifted by NTSCPhaseShiftDegrees
// of subcarrier phase, via bicubic interpolation.
func ResampleLine(cfg Config, samples []uint16, hsync float64) []float64 {
	lineLen := float64(cfg.fscCount(227.5))
	offsetSamples := (NTSCPhaseShiftDegrees / 360.0) * float64(cfg.SamplesPerFSC)
	return scaleLineOffset(samples, hsync, hsync+lineLen, OutputSamplesPerLine, offsetSamples)
}

// scaleLineOffset is scaleLine with an additional start-of-run sample
// offset, matching Tbc::scale's offset parameter.
func scaleLineOffset(buf []uint16, start, end float64, outlen int, offset float64) []float64 {
	perPel := (end - start) / float64(outlen)
	return scaleLine(buf, start+offset*perPel, end+offset*perPel, outlen)
}
