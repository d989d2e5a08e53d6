package video

import "testing"

func TestStandardLines(t *testing.T) {
	if NTSC.Lines() != 505 {
		t.Errorf("NTSC.Lines() = %d, want 505", NTSC.Lines())
	}
	if PAL.Lines() != 625 {
		t.Errorf("PAL.Lines() = %d, want 625", PAL.Lines())
	}
}
