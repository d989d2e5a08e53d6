package efm

import "testing"

func TestF3AnyErasure(t *testing.T) {
	var f F3Frame
	if f.AnyErasure() {
		t.Error("AnyErasure true on zero-value frame")
	}
	f.Erasure[5] = true
	if !f.AnyErasure() {
		t.Error("AnyErasure false with a flagged symbol")
	}
}

func TestF2AnyErasure(t *testing.T) {
	var f F2Frame
	if f.AnyErasure() {
		t.Error("AnyErasure true on zero-value frame")
	}
	f.Erasure[0] = true
	if !f.AnyErasure() {
		t.Error("AnyErasure false with a flagged symbol")
	}
}

func TestSectionLength(t *testing.T) {
	var s Section
	if len(s.Frames) != SectionLength {
		t.Errorf("len(s.Frames) = %d, want %d", len(s.Frames), SectionLength)
	}
}
