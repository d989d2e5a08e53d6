package efm

import (
	"testing"

	"github.com/ld-decode/ldcore/rs"
)

func TestCIRCDecodeFrameValid(t *testing.T) {
	msg := make([]byte, 28)
	for i := range msg {
		msg[i] = byte(i * 2)
	}
	encoded, err := rs.C1.Encode(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var cw [32]byte
	copy(cw[:], encoded)
	c := NewCIRC()
	f2, ok := c.DecodeFrame(cw, nil)
	if !ok {
		t.Fatal("DecodeFrame failed on a clean codeword")
	}
	if f2.AnyErasure() {
		t.Error("AnyErasure true on a clean decode")
	}
	for i := 0; i < 28; i++ {
		if f2.Data[i] != msg[i] {
			t.Fatalf("Data[%d] = %#x, want %#x", i, f2.Data[i], msg[i])
		}
	}
}
