/*
LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package tbc

import "testing"

func syntheticLine(cfg Config, syncLevel, whiteLevel uint16, syncSamples, activeSamples int) []uint16 {
	out := make([]uint16, 0, syncSamples+activeSamples)
	for i := 0; i < syncSamples; i++ {
		out = append(out, syncLevel)
	}
	for i := 0; i < activeSamples; i++ {
		out = append(out, whiteLevel)
	}
	return out
}

func TestAutoRangeTracksSyncAndWhite(t *testing.T) {
	cfg := DefaultConfig()
	var samples []uint16
	for line := 0; line < 300; line++ {
		samples = append(samples, syntheticLine(cfg, 4000, 50000, 40, 870)...)
	}
	r := AutoRange(cfg, samples)
	if r.Scale <= 0 {
		t.Fatalf("Scale = %v, want > 0", r.Scale)
	}
	if r.Low <= 0 {
		t.Fatalf("Low = %v, want > 0", r.Low)
	}
}

func TestAutoRangeEmptyInput(t *testing.T) {
	r := AutoRange(DefaultConfig(), nil)
	if r.Scale != 1 || r.Low != 1 {
		t.Errorf("AutoRange(nil) = %+v, want {Low:1 Scale:1}", r)
	}
}

func TestIRERoundTrip(t *testing.T) {
	r := AutoRangeResult{Low: 1000, Scale: 300}
	for _, ire := range []float64{-40, 0, 100} {
		sample := r.IRETo(ire)
		got := r.ToIRE(float64(sample))
		if got < ire-1 || got > ire+1 {
			t.Errorf("ToIRE(IRETo(%v)) = %v, want ~%v", ire, got, ire)
		}
	}
}
