/*
LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package tbc

import "testing"

func TestCubicInterpolateReproducesConstant(t *testing.T) {
	y := [4]float64{500, 500, 500, 500}
	for _, x := range []float64{0, 0.25, 0.5, 0.75} {
		if v := cubicInterpolate(y, x); v < 499 || v > 501 {
			t.Errorf("cubicInterpolate(constant, %v) = %v, want ~500", x, v)
		}
	}
}

func TestScaleLineProducesRequestedLength(t *testing.T) {
	buf := make([]uint16, 1000)
	for i := range buf {
		buf[i] = uint16(i)
	}
	out := scaleLine(buf, 10, 900, 227)
	if len(out) != 227 {
		t.Fatalf("len(out) = %d, want 227", len(out))
	}
	for _, v := range out {
		if v < 0 || v > 65535 {
			t.Errorf("scaleLine produced out-of-range sample %v", v)
		}
	}
}

func TestMeasureBurstOnFlatSignalIsLowAmplitude(t *testing.T) {
	cfg := DefaultConfig()
	samples := make([]uint16, cfg.fscCount(227.5)+10)
	for i := range samples {
		samples[i] = 10000
	}
	m := MeasureBurst(cfg, samples, 0)
	if m.Amplitude > 100 {
		t.Errorf("Amplitude = %v on a flat line, want near 0", m.Amplitude)
	}
}

func TestLockBurstPhaseSkipsBadLines(t *testing.T) {
	cfg := DefaultConfig()
	samples := make([]uint16, cfg.fscCount(227.5)*70)
	for i := range samples {
		samples[i] = uint16(10000 + 5000*((i/4)%2))
	}
	lines := make([]Line, 70)
	for i := range lines {
		lines[i] = Line{HSync: float64(i * cfg.fscCount(227.5)), Bad: i%10 == 0}
	}
	// Must not panic or hang when some lines are Bad.
	LockBurstPhase(cfg, samples, lines)
}
