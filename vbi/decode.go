/*
NAME
  decode.go

DESCRIPTION
  decode.go turns the three 24-bit VBI codes a field carries (lines 16,
  17 and 18) into a structured Record: disc type, picture/chapter
  numbers, CLV time code, sound mode, lead-in/lead-out/stop flags and
  the programme-status word's parity check, per spec.md §4.9.

  Grounded on
  original_source/tools/library/tbc/vbidecoder.{h,cpp}'s VbiDecoder::decode
  and VbiDecoder::decodeFrame, translated tag-for-tag (the IEC 60857-1986
  §10.1.1-10.1.10 bit patterns this switches on are reproduced exactly).

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

// Package vbi interprets the raw 24-bit codes codec/tbc recovers from a
// field's vertical blanking interval into structured LaserDisc metadata,
// and scans a disc's fields into a navigation chapter list.
package vbi

// DiscType is the disc encoding mode a VBI record implies.
type DiscType int

const (
	DiscUnknown DiscType = iota
	DiscCLV
	DiscCAV
)

// SoundMode is the VBI programme-status audio configuration.
type SoundMode int

const (
	SoundStereo SoundMode = iota
	SoundMono
	SoundSubcarriersOff
	SoundBilingual
	SoundStereoStereo
	SoundStereoBilingual
	SoundCrossChannelStereo
	SoundBilingualBilingual
	SoundMonoDump
	SoundStereoDump
	SoundBilingualDump
	SoundFutureUse
)

// Record is the structured VBI metadata decoded from one field (or, via
// MergeFrame, a frame pair).
type Record struct {
	Type DiscType

	UserCode string
	PicNo    int // -1 if absent.
	ChNo     int // -1 if absent.

	ClvHr, ClvMin, ClvSec, ClvPicNo int // -1 if absent.

	SoundMode    SoundMode
	SoundModeAm2 SoundMode

	LeadIn, LeadOut, PicStop bool
	CX, Size, Side           bool
	Teletext, Dump, FM       bool
	Digital, Parity          bool
	CopyAm2, StandardAm2     bool
}

// NewRecord returns a Record with every numeric field defaulted to -1
// (absent) and SoundMode/SoundModeAm2 defaulted to SoundFutureUse,
// matching VbiDecoder::Vbi's default member initialisers.
func NewRecord() Record {
	return Record{
		PicNo: -1, ChNo: -1,
		ClvHr: -1, ClvMin: -1, ClvSec: -1, ClvPicNo: -1,
		SoundMode: SoundFutureUse, SoundModeAm2: SoundFutureUse,
	}
}

// DecodeField decodes a single field's three VBI codes into a Record.
func DecodeField(vbi16, vbi17, vbi18 uint32) Record {
	r := NewRecord()
	if vbi16 == 0xFFFFFFFF && vbi17 == 0xFFFFFFFF && vbi18 == 0xFFFFFFFF {
		return r
	}

	// 10.1.1 Lead-in.
	if vbi17 == 0x88FFFF || vbi18 == 0x88FFFF {
		r.LeadIn = true
	}

	// 10.1.2 Lead-out.
	if vbi17 == 0x80EEEE || vbi18 == 0x80EEEE {
		r.LeadOut = true
	}

	// 10.1.3 Picture numbers (CAV). First digit masked to 0-7.
	if vbi17&0xF00000 == 0xF00000 {
		if n, ok := decodeBCD(vbi17 & 0x07FFFF); ok {
			r.PicNo = n
			r.Type = DiscCAV
		}
	}
	if vbi18&0xF00000 == 0xF00000 {
		if n, ok := decodeBCD(vbi18 & 0x07FFFF); ok {
			r.PicNo = n
			r.Type = DiscCAV
		}
	}

	// 10.1.4 Picture stop code.
	if vbi16 == 0x82CFFF || vbi17 == 0x82CFFF {
		r.Type = DiscCAV
		r.PicStop = true
	}

	// 10.1.5 Chapter numbers. First digit masked to 0-7.
	if vbi17&0xF00FFF == 0x800DDD {
		if n, ok := decodeBCD((vbi17 & 0x07F000) >> 12); ok {
			r.ChNo = n
		}
	}
	if vbi18&0xF00FFF == 0x800DDD {
		if n, ok := decodeBCD((vbi18 & 0x07F000) >> 12); ok {
			r.ChNo = n
		}
	}

	// 10.1.6 CLV programme time code. Hour and minute must both decode.
	if vbi17&0xF0FF00 == 0xF0DD00 {
		if hour, ok := decodeBCD((vbi17 & 0x0F0000) >> 16); ok {
			if min, ok := decodeBCD(vbi17 & 0x0000FF); ok {
				r.ClvHr, r.ClvMin = hour, min
			}
		}
	}
	if vbi18&0xF0FF00 == 0xF0DD00 {
		if hour, ok := decodeBCD((vbi18 & 0x0F0000) >> 16); ok {
			if min, ok := decodeBCD(vbi18 & 0x0000FF); ok {
				r.ClvHr, r.ClvMin = hour, min
			}
		}
	}
	if r.ClvHr != -1 {
		r.Type = DiscCLV
	}

	// 10.1.7 CLV marker.
	if vbi17 == 0x87FFFF {
		r.Type = DiscCLV
	}

	// 10.1.8 Programme status code (and IEC Amendment 2 fields alongside it).
	if vbi16&0xFFF000 == 0x8DC000 || vbi16&0xFFF000 == 0x8BA000 {
		decodeStatusCode(vbi16, &r)
	}

	// 10.1.9 Users code.
	if vbi16&0xF0F000 == 0x80D000 {
		x1 := (vbi16 & 0x0F0000) >> 16
		x3x4x5 := vbi16 & 0x000FFF
		r.UserCode = hexDigit(x1) + hexTriplet(x3x4x5)
	}

	// 10.1.10 CLV picture number. Second and picture number must both decode.
	if vbi16&0xF0F000 == 0x80E000 {
		x1 := (vbi16 & 0x0F0000) >> 16
		if sec, ok := decodeBCD((vbi16 & 0x000F00) >> 8); ok && x1 >= 0xA {
			if picNo, ok := decodeBCD(vbi16 & 0x0000FF); ok {
				r.ClvSec = 10*int(x1-0xA) + sec
				r.ClvPicNo = picNo
				r.Type = DiscCLV
				r.PicNo = -1
			}
		}
	}

	return r
}

// decodeStatusCode decodes the CX/size/side/teletext/digital/sound-mode
// bits of a programme status word plus its Amendment 2 fields, per
// IEC 60857-1986 §10.1.8.
func decodeStatusCode(status uint32, r *Record) {
	r.CX = status&0x0FF000 == 0x0DC000

	x3 := (status & 0x000F00) >> 8
	x4 := (status & 0x0000F0) >> 4
	x5 := status & 0x00000F

	r.Parity = checkParity(x4, x5)
	r.Size = x3&0x08 != 0x08
	r.Side = x3&0x04 != 0x04
	r.Teletext = x3&0x02 == 0x02
	r.Digital = x4&0x04 == 0x04

	var audioStatus uint32
	if x4&0x08 == 0x08 {
		audioStatus += 8
	}
	if x3&0x01 == 0x01 {
		audioStatus += 4
	}
	if x4&0x02 == 0x02 {
		audioStatus += 2
	}
	if x4&0x01 == 0x01 {
		audioStatus += 1
	}
	r.Dump, r.FM, r.SoundMode = soundModeFor(audioStatus)

	if x3&0x01 == 0x01 {
		r.CopyAm2 = true
	}

	var audioStatusAm2 uint32
	if x4&0x08 == 0x08 {
		audioStatusAm2 += 8
	}
	if x4&0x04 == 0x04 {
		audioStatusAm2 += 4
	}
	if x4&0x02 == 0x02 {
		audioStatusAm2 += 2
	}
	if x4&0x01 == 0x01 {
		audioStatusAm2 += 1
	}
	r.StandardAm2, r.SoundModeAm2 = soundModeForAm2(audioStatusAm2)
}

// soundModeFor maps the primary programme-status audio status code (0-15)
// to dump/FM-multiplex flags and a sound mode.
func soundModeFor(status uint32) (dump, fm bool, mode SoundMode) {
	switch status {
	case 0:
		return false, false, SoundStereo
	case 1:
		return false, false, SoundMono
	case 2:
		return false, false, SoundFutureUse
	case 3:
		return false, false, SoundBilingual
	case 4:
		return false, true, SoundStereoStereo
	case 5:
		return false, true, SoundStereoBilingual
	case 6:
		return false, true, SoundCrossChannelStereo
	case 7:
		return false, true, SoundBilingualBilingual
	case 8, 9, 11:
		return true, false, SoundMonoDump
	case 10:
		return true, false, SoundFutureUse
	case 12, 13:
		return true, true, SoundStereoDump
	case 14, 15:
		return true, true, SoundBilingualDump
	default:
		return false, false, SoundStereo
	}
}

// soundModeForAm2 maps the Amendment 2 audio status code to the
// standard-video flag and sound mode.
func soundModeForAm2(status uint32) (standard bool, mode SoundMode) {
	switch status {
	case 0:
		return true, SoundStereo
	case 1:
		return true, SoundMono
	case 3:
		return true, SoundBilingual
	case 8:
		return true, SoundMonoDump
	default:
		return false, SoundFutureUse
	}
}

// checkParity verifies the three parity bits X51-X53 against the data
// bits X41-X44, per VbiDecoder::parity.
func checkParity(x4, x5 uint32) bool {
	x51 := x5&0x8 != 0
	x52 := x5&0x4 != 0
	x53 := x5&0x2 != 0

	x41 := x4&0x8 != 0
	x42 := x4&0x4 != 0
	x43 := x4&0x2 != 0
	x44 := x4&0x1 != 0

	count := func(bits ...bool) int {
		n := 0
		for _, b := range bits {
			if b {
				n++
			}
		}
		return n
	}

	ok := func(count int, bit bool) bool {
		even := count%2 == 0
		return even == !bit
	}

	return ok(count(x41, x42, x44), x51) &&
		ok(count(x41, x43, x44), x52) &&
		ok(count(x42, x43, x44), x53)
}

// decodeBCD decodes a packed BCD value digit-by-digit; any nibble above
// 9 rejects the whole value.
func decodeBCD(bcd uint32) (int, bool) {
	value := 0
	place := 1
	for bcd != 0 {
		digit := bcd & 0xF
		if digit > 9 {
			return 0, false
		}
		value += int(digit) * place
		place *= 10
		bcd >>= 4
	}
	return value, true
}

const hexDigits = "0123456789ABCDEF"

func hexDigit(v uint32) string {
	return string(hexDigits[v&0xF])
}

// hexTriplet renders a 12-bit value as unpadded uppercase hex, matching
// QString::number(x, 16)'s lack of leading-zero padding.
func hexTriplet(v uint32) string {
	if v == 0 {
		return "0"
	}
	var b []byte
	for v > 0 {
		b = append([]byte{hexDigits[v&0xF]}, b...)
		v >>= 4
	}
	return string(b)
}

// MergeFrame combines a field pair's Records into one frame-level
// Record: any field set on first is kept, otherwise second's value is
// used; boolean flags are ORed. Grounded on VbiDecoder::decodeFrame.
func MergeFrame(first, second Record) Record {
	r := NewRecord()

	r.Type = first.Type
	if r.Type == DiscUnknown {
		r.Type = second.Type
	}

	r.UserCode = first.UserCode
	if r.UserCode == "" {
		r.UserCode = second.UserCode
	}

	r.PicNo = pickPositive(first.PicNo, second.PicNo)
	r.ChNo = pickPositive(first.ChNo, second.ChNo)
	r.ClvHr = pickPositive(first.ClvHr, second.ClvHr)
	r.ClvMin = pickPositive(first.ClvMin, second.ClvMin)
	r.ClvSec = pickPositive(first.ClvSec, second.ClvSec)
	r.ClvPicNo = pickPositive(first.ClvPicNo, second.ClvPicNo)

	r.SoundMode = first.SoundMode
	if r.SoundMode == SoundFutureUse {
		r.SoundMode = second.SoundMode
	}
	r.SoundModeAm2 = first.SoundModeAm2
	if r.SoundModeAm2 == SoundFutureUse {
		r.SoundModeAm2 = second.SoundModeAm2
	}

	r.LeadIn = first.LeadIn || second.LeadIn
	r.LeadOut = first.LeadOut || second.LeadOut
	r.PicStop = first.PicStop || second.PicStop
	r.CX = first.CX || second.CX
	r.Size = first.Size || second.Size
	r.Side = first.Side || second.Side
	r.Teletext = first.Teletext || second.Teletext
	r.Dump = first.Dump || second.Dump
	r.FM = first.FM || second.FM
	r.Digital = first.Digital || second.Digital
	r.Parity = first.Parity || second.Parity
	r.CopyAm2 = first.CopyAm2 || second.CopyAm2
	r.StandardAm2 = first.StandardAm2 || second.StandardAm2

	return r
}

func pickPositive(a, b int) int {
	if a != -1 {
		return a
	}
	return b
}
