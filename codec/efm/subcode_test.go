package efm

import (
	"testing"

	containerefm "github.com/ld-decode/ldcore/container/efm"
	"github.com/ld-decode/ldcore/crc"
)

// buildQSection constructs a section whose 98 frames carry the Q-channel
// bits (bit 6 of each Subcode byte) for the given raw 12-byte Q payload,
// prefixed with 2 sync frames as the original subcode block layout expects.
func buildQSection(q [12]byte) containerefm.Section {
	var sec containerefm.Section
	// First 2 frames are sync markers; their subcode bit is irrelevant.
	sec.Frames[0].Marker = containerefm.SubcodeSync0
	sec.Frames[1].Marker = containerefm.SubcodeSync0
	for byteC := 0; byteC < 12; byteC++ {
		for bitC := 0; bitC < 8; bitC++ {
			idx := 2 + byteC*8 + bitC
			bit := (q[byteC] >> uint(7-bitC)) & 1
			if bit != 0 {
				sec.Frames[idx].Subcode = 0x40
			}
		}
	}
	return sec
}

func TestDecodeQRoundTrip(t *testing.T) {
	var q [12]byte
	q[0] = 0x04 // control=audio, mode=4
	q[1] = 0x12 // track 12 (BCD)
	q[2] = 0x03 // index 3
	q[3] = 0x01 // track min
	q[4] = 0x30 // track sec
	q[5] = 0x45 // track frame
	q[6] = 0x00
	q[7] = 0x10 // disc min
	q[8] = 0x20 // disc sec
	q[9] = 0x15 // disc frame
	checksum := ^crc.Update16XModem(q[:10])
	q[10] = byte(checksum >> 8)
	q[11] = byte(checksum)

	sec := buildQSection(q)
	got, ok := DecodeQ(sec)
	if !ok {
		t.Fatal("DecodeQ failed on a well-formed Q payload")
	}
	if got.TrackNo != 12 {
		t.Errorf("TrackNo = %d, want 12", got.TrackNo)
	}
	if got.Index != 3 {
		t.Errorf("Index = %d, want 3", got.Index)
	}
	if got.DiscTime.Min != 10 || got.DiscTime.Sec != 20 || got.DiscTime.Frame != 15 {
		t.Errorf("DiscTime = %+v, want {10 20 15}", got.DiscTime)
	}
}

func TestDecodeQBadCRCRejected(t *testing.T) {
	var q [12]byte
	q[0] = 0x04
	q[1] = 0x01
	q[10], q[11] = 0xFF, 0xFF // deliberately wrong checksum.
	sec := buildQSection(q)
	if _, ok := DecodeQ(sec); ok {
		t.Error("DecodeQ succeeded on a payload with a bad CRC")
	}
}
