package pipeline

import (
	"testing"

	containerefm "github.com/ld-decode/ldcore/container/efm"
)

func pcmOf(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = append(out, byte(uint16(s)), byte(uint16(s)>>8))
	}
	return out
}

func TestDiscTimeSeconds(t *testing.T) {
	got := DiscTimeSeconds(containerefm.DiscTime{Min: 1, Sec: 2, Frame: 37})
	want := 62.0 + 37.0/75.0
	if got != want {
		t.Errorf("DiscTimeSeconds = %v, want %v", got, want)
	}
}

func TestFieldAudioSyncPadsGap(t *testing.T) {
	s := NewFieldAudioSync(75) // one sample per Q-channel frame, for an exact gap check.

	s.Feed(containerefm.DiscTime{Sec: 0, Frame: 0}, pcmOf(10, 20))    // left=10, right=20 at index 0.
	s.Feed(containerefm.DiscTime{Sec: 0, Frame: 2}, pcmOf(30, 40))    // 2-frame gap before index 2.

	if len(s.left) != 3 {
		t.Fatalf("len(left) = %d, want 3", len(s.left))
	}
	if s.left[0] != 10 || s.right[0] != 20 {
		t.Errorf("first sample = (%v, %v), want (10, 20)", s.left[0], s.right[0])
	}
	if s.left[1] != 0 || s.right[1] != 0 {
		t.Errorf("gap sample = (%v, %v), want (0, 0)", s.left[1], s.right[1])
	}
	if s.left[2] != 30 || s.right[2] != 40 {
		t.Errorf("third sample = (%v, %v), want (30, 40)", s.left[2], s.right[2])
	}
}
