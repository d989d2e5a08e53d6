package efm

import (
	"testing"

	containerefm "github.com/ld-decode/ldcore/container/efm"
	"github.com/ld-decode/ldcore/rs"
)

// cleanF2 builds an F2 frame whose 28 symbols are already a valid C2
// codeword, so DecodeDeinterleaved succeeds without correction.
func cleanF2(seed byte) containerefm.F2Frame {
	msg := make([]byte, 24)
	for i := range msg {
		msg[i] = seed + byte(i)
	}
	cw, err := rs.C2.Encode(msg)
	if err != nil {
		panic(err)
	}
	var f2 containerefm.F2Frame
	copy(f2.Data[:], cw)
	return f2
}

func TestDeinterleaverFillsThenEmits(t *testing.T) {
	circ := NewCIRC()
	d := NewDeinterleaver(circ)

	maxDelay := 27 * circDelayUnit
	for i := 0; i < maxDelay; i++ {
		if _, ok := d.Process(cleanF2(byte(i))); ok {
			t.Fatalf("Process emitted a frame at fill step %d, want not ok", i)
		}
	}
	if _, ok := d.Process(cleanF2(200)); !ok {
		t.Fatal("Process did not emit once delay lines filled")
	}
}
