/*
LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package tbc

import "testing"

func TestAudioCursorPositionAdvancesWithFrame(t *testing.T) {
	c := NewAudioCursor(0)
	p0 := c.Position(0)
	p1 := c.Position(1)
	if p1 <= p0 {
		t.Errorf("Position(1) = %v, want > Position(0) = %v", p1, p0)
	}
	wantStep := c.SampleRate / NTSCFrameRate
	if d := p1 - p0; d < wantStep-1 || d > wantStep+1 {
		t.Errorf("Position delta = %v, want ~%v", d, wantStep)
	}
}

func TestAudioCursorInterpolateConstantSignal(t *testing.T) {
	c := NewAudioCursor(0)
	left := make([]float64, 10000)
	right := make([]float64, 10000)
	for i := range left {
		left[i] = 100
		right[i] = -100
	}
	samples := c.Interpolate(left, right, 5, 1600)
	for _, s := range samples {
		if s.Left != 100 || s.Right != -100 {
			t.Fatalf("sample = %+v, want {100 -100} for constant input", s)
		}
	}
}

func TestInterpLinearClampsOutOfBounds(t *testing.T) {
	buf := []float64{1, 2, 3}
	if v := interpLinear(buf, -5); v != 1 {
		t.Errorf("interpLinear(-5) = %v, want 1", v)
	}
	if v := interpLinear(buf, 50); v != 3 {
		t.Errorf("interpLinear(50) = %v, want 3", v)
	}
}
