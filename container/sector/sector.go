/*
NAME
  sector.go

DESCRIPTION
  sector.go defines the CD sector container: 2352 bytes, a 12-byte sync
  pattern, a 3-byte BCD address, a 1-byte mode, and a 2336-byte payload
  whose interpretation depends on mode, per spec.md §3 and §4.5.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

// Package sector defines the CD sector container assembled by
// codec/efm's F1-to-sector dispatcher.
package sector

import (
	"github.com/ld-decode/ldcore/bcd"
	"github.com/ld-decode/ldcore/crc"
)

// Size is the fixed size in bytes of a CD sector.
const Size = 2352

// syncPattern is the 12-byte sector sync: 00 FF×10 00.
var syncPattern = [12]byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// SyncPattern returns a copy of the 12-byte sector sync pattern.
func SyncPattern() [12]byte { return syncPattern }

// Mode identifies a sector's payload interpretation.
type Mode byte

const (
	Mode0 Mode = 0 // all-zero user data (silence/padding placeholder).
	Mode1 Mode = 1 // 2048-byte user data + EDC + ECC.
	Mode2 Mode = 2 // 2336-byte user data, no EDC/ECC.
)

// Sector is one 2352-byte CD sector: sync, BCD address, mode and payload.
type Sector struct {
	Address bcd.DiscTime
	Mode    Mode
	Payload [2336]byte // interpretation depends on Mode; Mode-1 uses the first 2048 bytes.
	Valid   bool        // false if EDC validation failed; still emitted per spec.md §4.5.
}

// UserData returns the sector's user-visible payload: the first 2048
// bytes for Mode-1, the full 2336 bytes otherwise.
func (s *Sector) UserData() []byte {
	if s.Mode == Mode1 {
		return s.Payload[:2048]
	}
	return s.Payload[:]
}

// Decode parses a raw 2352-byte sector, validating sync and (for Mode-1)
// the CRC-32 EDC over bytes 0..2063. The sector is returned regardless of
// EDC outcome; Valid reports whether it passed.
func Decode(raw []byte) (Sector, bool) {
	if len(raw) != Size {
		return Sector{}, false
	}
	for i, b := range syncPattern {
		if raw[i] != b {
			return Sector{}, false
		}
	}
	addr, err := bcd.DecodeDiscTime([3]byte{raw[12], raw[13], raw[14]})
	if err != nil {
		return Sector{}, false
	}
	s := Sector{Address: addr, Mode: Mode(raw[15])}
	copy(s.Payload[:], raw[16:16+2336])
	s.Valid = true
	if s.Mode == Mode1 {
		edcBytes := raw[16 : 16+2064]
		edc := raw[16+2064 : 16+2064+4]
		got := crc.Update32(edcBytes)
		want := uint32(edc[0]) | uint32(edc[1])<<8 | uint32(edc[2])<<16 | uint32(edc[3])<<24
		s.Valid = got == want
	}
	return s, true
}

// Encode serializes s into a 2352-byte raw sector, computing the Mode-1
// EDC from the payload.
func Encode(s Sector) []byte {
	out := make([]byte, Size)
	copy(out, syncPattern[:])
	addr := s.Address.Encode()
	copy(out[12:15], addr[:])
	out[15] = byte(s.Mode)
	copy(out[16:16+2336], s.Payload[:])
	if s.Mode == Mode1 {
		edc := crc.Update32(out[16 : 16+2064])
		out[16+2064] = byte(edc)
		out[16+2065] = byte(edc >> 8)
		out[16+2066] = byte(edc >> 16)
		out[16+2067] = byte(edc >> 24)
	}
	return out
}
