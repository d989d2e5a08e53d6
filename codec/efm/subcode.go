/*
NAME
  subcode.go

DESCRIPTION
  subcode.go demultiplexes the 8 subcode channels carried in a 98-frame
  section's subcode bytes, validates and decodes the Q channel (disc time,
  track time, control flags, Q-Mode), and derives per-frame disc time for
  the F1 frames in that section, per spec.md §4.3/§4.6.

  The bit-deinterleave loop and Q-channel CRC/control/address/mode-4 field
  layout are grounded on
  original_source/tools/ld-process-efm/decodesubcode.cpp's
  DecodeSubcode::decodeBlock/verifyQ/decodeQControl/decodeQAddress/
  decodeQDataMode4.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package efm

import (
	"github.com/ld-decode/ldcore/bcd"
	containerefm "github.com/ld-decode/ldcore/container/efm"
	"github.com/ld-decode/ldcore/crc"
)

// QControl reports the 4 control-field flags carried by every Q-subcode.
type QControl struct {
	Stereo        bool
	Audio         bool
	CopyProtected bool
	PreEmphasis   bool
}

// QMode4 is the decoded Q-Mode-4 (CD-DA / LaserDisc PCM) subcode payload.
type QMode4 struct {
	Control    QControl
	TrackNo    int
	Index      int // "X", the index-within-track field; -1 when this is a lead-in point.
	Point      int // lead-in point number; -1 outside lead-in.
	TrackTime  containerefm.DiscTime
	DiscTime   containerefm.DiscTime
	LeadIn     bool
	LeadOut    bool
	Valid      bool
}

// deinterleaveQ extracts the 12-byte Q-channel payload from a 98-byte
// section subcode block (2 sync bytes followed by 96 data bytes, 8
// channels interleaved one bit per byte, MSB-first P through W).
func deinterleaveQ(subcode []byte) [12]byte {
	var q [12]byte
	for byteC := 0; byteC < 12; byteC++ {
		for bitC := 0; bitC < 8; bitC++ {
			src := subcode[2+byteC*8+bitC]
			if src&0x40 != 0 { // bit 6 carries the Q channel.
				q[byteC] |= 1 << uint(7-bitC)
			}
		}
	}
	return q
}

// verifyQ checks the Q-subcode's inverted, big-endian CRC-16/XMODEM over
// its first 10 bytes (control+mode+data, 80 bits).
func verifyQ(q [12]byte) bool {
	want := ^(uint16(q[10])<<8 | uint16(q[11]))
	return crc.Update16XModem(q[:10]) == want
}

func decodeQControl(q [12]byte) QControl {
	field := q[0] >> 4
	return QControl{
		Stereo:        field&0x08 == 0,
		Audio:         field&0x04 == 0,
		CopyProtected: field&0x02 == 0,
		PreEmphasis:   field&0x01 != 0,
	}
}

func decodeQMode(q [12]byte) int {
	mode := int(q[0] & 0x0F)
	if mode < 0 || mode > 4 {
		return -1
	}
	return mode
}

func bcdToInt(b byte) int {
	v, err := bcd.DecodeByte(b)
	if err != nil {
		return 0
	}
	return v
}

func decodeQMode4(q [12]byte) QMode4 {
	f := QMode4{TrackNo: bcdToInt(q[1]), Point: -1, Index: -1, Valid: true}
	switch {
	case q[1] == 0xAA:
		f.LeadOut = true
		f.TrackNo = 170
		f.Index = bcdToInt(q[2])
		f.Point = -1
	case f.TrackNo == 0:
		f.LeadIn = true
		f.Point = bcdToInt(q[2])
		f.Index = -1
	default:
		f.Index = bcdToInt(q[2])
	}
	f.TrackTime = containerefm.DiscTime{Min: bcdToInt(q[3]), Sec: bcdToInt(q[4]), Frame: bcdToInt(q[5])}
	f.DiscTime = containerefm.DiscTime{Min: bcdToInt(q[7]), Sec: bcdToInt(q[8]), Frame: bcdToInt(q[9])}
	return f
}

// DecodeQ demultiplexes and decodes the Q channel from one section's
// subcode bytes (subcode[i] holds bit 6 of frame i's subcode byte, P
// through W packed MSB-first; see Section.Frames[i].Subcode). It returns
// the decoded Q-Mode-4 payload and whether the CRC and mode checked out.
func DecodeQ(sec containerefm.Section) (QMode4, bool) {
	var raw [98]byte
	for i, f := range sec.Frames {
		raw[i] = f.Subcode
	}
	// Reconstruct the 2-sync-byte + 96-data-byte layout decodeBlock expects;
	// the first two section frames never carry data bits in the original
	// channel, so treat them as the leading sync pair.
	q := deinterleaveQ(raw[:])
	if !verifyQ(q) {
		return QMode4{}, false
	}
	if decodeQMode(q) != 4 {
		return QMode4{}, false
	}
	return decodeQMode4(q), true
}
