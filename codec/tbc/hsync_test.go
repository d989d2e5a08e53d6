/*
LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package tbc

import "testing"

func TestCorrectDamagedHSyncsInterpolates(t *testing.T) {
	lines := []Line{
		{HSync: 100},
		{Bad: true},
		{Bad: true},
		{HSync: 400},
	}
	CorrectDamagedHSyncs(lines)
	if lines[1].HSync != 200 {
		t.Errorf("lines[1].HSync = %v, want 200", lines[1].HSync)
	}
	if lines[2].HSync != 300 {
		t.Errorf("lines[2].HSync = %v, want 300", lines[2].HSync)
	}
}

func TestCorrectDamagedHSyncsLeavesTrailingLine(t *testing.T) {
	lines := []Line{
		{HSync: 0},
		{Bad: true},
		{HSync: 200},
		{Bad: true},
	}
	CorrectDamagedHSyncs(lines)
	if lines[1].HSync != 100 {
		t.Errorf("lines[1].HSync = %v, want 100", lines[1].HSync)
	}
	// line 3 (last index) is left untouched: CorrectDamagedHSyncs only
	// revisits interior lines, matching the original's treatment of the
	// trailing reference line used solely for width computation.
	if !lines[3].Bad {
		t.Error("lines[3].Bad = false, want the trailing line left untouched")
	}
}

func TestCrossingFindsRisingEdge(t *testing.T) {
	samples := make([]uint16, 40)
	for i := range samples {
		if i < 20 {
			samples[i] = 1000
		} else {
			samples[i] = 9000
		}
	}
	pos, ok := crossing(samples, 0, 40, 5000, true)
	if !ok {
		t.Fatal("crossing: ok = false, want true")
	}
	if pos < 15 || pos > 25 {
		t.Errorf("crossing = %v, want near 20", pos)
	}
}

func TestCrossingNoEdgeReturnsFalse(t *testing.T) {
	samples := make([]uint16, 20)
	for i := range samples {
		samples[i] = 1000
	}
	if _, ok := crossing(samples, 0, 20, 5000, true); ok {
		t.Error("crossing: ok = true for a flat signal, want false")
	}
}

func TestFindHsyncsMarksOutOfRangeOffsetBad(t *testing.T) {
	lines := FindHsyncs(DefaultConfig(), testRange(), make([]uint16, 10), -5)
	if !lines[0].Bad {
		t.Error("lines[0].Bad = false for a negative starting offset, want true")
	}
}
