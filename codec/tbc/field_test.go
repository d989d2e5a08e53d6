/*
LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package tbc

import "testing"

func TestClampInt16Bounds(t *testing.T) {
	if v := clampInt16(-100); v != 0 {
		t.Errorf("clampInt16(-100) = %d, want 0", v)
	}
	if v := clampInt16(70000); v != 32767 {
		t.Errorf("clampInt16(70000) = %d, want 32767", v)
	}
	if v := clampInt16(32768); v != 0 {
		t.Errorf("clampInt16(32768) = %d, want 0", v)
	}
}

func TestStandardLines(t *testing.T) {
	if n := NTSC.lines(); n != 252 {
		t.Errorf("NTSC.lines() = %d, want 252", n)
	}
	if n := PAL.lines(); n != 312 {
		t.Errorf("PAL.lines() = %d, want 312", n)
	}
}

func TestProcessFieldNoVsyncReturnsError(t *testing.T) {
	cfg := DefaultConfig()
	samples := make([]uint16, 2000)
	for i := range samples {
		samples[i] = 30000
	}
	if _, _, err := ProcessField(cfg, samples, 0, 0); err != ErrNoVsync {
		t.Errorf("err = %v, want ErrNoVsync for a flat capture", err)
	}
}
