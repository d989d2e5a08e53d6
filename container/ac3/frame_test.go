package ac3

import "testing"

func TestQPSKBlockBytesLength(t *testing.T) {
	var b QPSKBlock
	got := b.Bytes()
	want := BlockFrames * 37
	if len(got) != want {
		t.Errorf("len(Bytes()) = %d, want %d", len(got), want)
	}
}

func TestQPSKBlockBytesLayout(t *testing.T) {
	var b QPSKBlock
	b.Frames[1].Data[0] = 0xAB
	got := b.Bytes()
	if got[37] != 0xAB {
		t.Errorf("Bytes()[37] = %#x, want 0xab (first byte of frame 1)", got[37])
	}
}

func TestFrameSyncPatternLength(t *testing.T) {
	if len(FrameSyncPattern) != 12 {
		t.Errorf("len(FrameSyncPattern) = %d, want 12", len(FrameSyncPattern))
	}
}
