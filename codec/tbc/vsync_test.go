/*
LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package tbc

import "testing"

func testRange() AutoRangeResult {
	return AutoRangeResult{Low: 10000, Scale: 100}
}

func TestFindSyncLocatesRun(t *testing.T) {
	r := testRange()
	cfg := DefaultConfig()
	tgt := cfg.fscCount(3)

	samples := make([]uint16, 0, 500)
	for i := 0; i < 200; i++ {
		samples = append(samples, uint16(r.IRETo(0)))
	}
	runStart := len(samples)
	for i := 0; i < tgt*4; i++ {
		samples = append(samples, uint16(r.IRETo(-40)))
	}
	for i := 0; i < 200; i++ {
		samples = append(samples, uint16(r.IRETo(0)))
	}

	pos := findSync(r, samples, tgt)
	if pos < 0 {
		t.Fatal("findSync = -1, want a located run")
	}
	if pos < runStart || pos > runStart+tgt*4+findSyncPad {
		t.Errorf("findSync = %d, want within the sync run near %d", pos, runStart)
	}
}

func TestFindSyncNoRunFound(t *testing.T) {
	r := testRange()
	cfg := DefaultConfig()
	samples := make([]uint16, 400)
	for i := range samples {
		samples[i] = uint16(r.IRETo(0))
	}
	if pos := findSync(r, samples, cfg.fscCount(3)); pos != -1 {
		t.Errorf("findSync = %d, want -1 for blanking-only input", pos)
	}
}

func TestCountSlevelCountsSyncSamples(t *testing.T) {
	r := testRange()
	samples := []uint16{
		uint16(r.IRETo(-40)), uint16(r.IRETo(-40)), uint16(r.IRETo(0)), uint16(r.IRETo(100)),
	}
	if n := countSlevel(r, samples, 0, len(samples)); n != 2 {
		t.Errorf("countSlevel = %d, want 2", n)
	}
}

func TestCountSlevelClampsBounds(t *testing.T) {
	r := testRange()
	samples := []uint16{uint16(r.IRETo(-40))}
	if n := countSlevel(r, samples, -5, 100); n != 1 {
		t.Errorf("countSlevel with out-of-range bounds = %d, want 1", n)
	}
}
