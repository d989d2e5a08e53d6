package stream

import (
	"bytes"
	"testing"
)

func TestPeekDoesNotConsume(t *testing.T) {
	s := NewPagedByteStream(bytes.NewReader([]byte{1, 2, 3, 4, 5}), 4)
	b, ok := s.Peek(2)
	if !ok || b != 3 {
		t.Fatalf("Peek(2) = %d,%v, want 3,true", b, ok)
	}
	b, ok = s.Peek(0)
	if !ok || b != 1 {
		t.Fatalf("Peek(0) = %d,%v, want 1,true", b, ok)
	}
}

func TestAdvanceConsumes(t *testing.T) {
	s := NewPagedByteStream(bytes.NewReader([]byte{1, 2, 3, 4, 5}), 4)
	s.Advance(2)
	b, ok := s.Peek(0)
	if !ok || b != 3 {
		t.Fatalf("Peek(0) after Advance(2) = %d,%v, want 3,true", b, ok)
	}
}

func TestPeekPastEOF(t *testing.T) {
	s := NewPagedByteStream(bytes.NewReader([]byte{1, 2}), 4)
	if _, ok := s.Peek(5); ok {
		t.Error("Peek past EOF reported ok=true")
	}
}

func TestPeekNGrowsBuffer(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 100)
	s := NewPagedByteStream(bytes.NewReader(data), 4)
	got := s.PeekN(100)
	if len(got) != 100 {
		t.Fatalf("PeekN(100) returned %d bytes, want 100", len(got))
	}
	for _, b := range got {
		if b != 0xAB {
			t.Fatalf("unexpected byte %#x", b)
		}
	}
}

func TestCompactReclaimsSpace(t *testing.T) {
	data := bytes.Repeat([]byte{1}, 20)
	s := NewPagedByteStream(bytes.NewReader(data), 4)
	for i := 0; i < 20; i++ {
		b, ok := s.Peek(0)
		if !ok || b != 1 {
			t.Fatalf("Peek(0) at step %d = %d,%v", i, b, ok)
		}
		s.Advance(1)
	}
	if _, ok := s.Peek(0); ok {
		t.Error("Peek(0) after consuming entire stream reported ok=true")
	}
}
