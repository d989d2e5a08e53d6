/*
NAME
  crc.go

DESCRIPTION
  crc.go provides the two CRC variants the core needs: the CD/AC-3 CRC-16
  (poly 0x18005, MSB-first, no reflection, no xor-out) used for AC-3
  sync-frame validation and EFM Q-subcode, and the CD sector EDC CRC-32.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

// Package crc provides the CRC-16 and CRC-32 variants used by the EFM,
// AC-3 and sector formats.
package crc

import (
	"encoding/binary"
)

// Poly16 is the CRC-16 polynomial shared by the CD and AC-3 standards.
const Poly16 = 0x18005

// The x^16 term of Poly16 is implicit in the MSB-first shift, so the table
// is built from its low 16 bits.
var table16 = makeTable16(Poly16 & 0xFFFF)

// makeTable16 builds an MSB-first CRC-16 table for the given polynomial.
func makeTable16(poly uint16) *[256]uint16 {
	var t [256]uint16
	for i := range t {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return &t
}

// Update16 runs the CD/AC-3 CRC-16 (init 0, no reflection, no xor-out) over
// p and returns the resulting checksum.
func Update16(p []byte) uint16 {
	return update16(table16, p)
}

func update16(table *[256]uint16, p []byte) uint16 {
	var crc uint16
	for _, b := range p {
		crc = table[byte(crc>>8)^b] ^ (crc << 8)
	}
	return crc
}

// Poly16XModem is the CRC-16/XMODEM polynomial used by the EFM Q-subcode
// payload CRC, distinct from the CRC-16 used by AC-3 sync frames.
const Poly16XModem = 0x1021

var table16XModem = makeTable16(Poly16XModem)

// Update16XModem runs the CRC-16/XMODEM (init 0, no reflection, no xor-out)
// used by the CD Q-subcode payload over p.
func Update16XModem(p []byte) uint16 {
	return update16(table16XModem, p)
}

// Check16 validates that the 16-bit CRC stored big-endian at the end of p
// (the CRC having been computed over p[:len(p)-2]) matches. Running the
// CRC over the whole of p, CRC included, yields zero when valid (R3).
func Check16(p []byte) bool {
	return Update16(p) == 0
}

// Append16 computes the CRC-16 over p and appends it, big-endian.
func Append16(p []byte) []byte {
	crc := Update16(p)
	out := make([]byte, len(p)+2)
	copy(out, p)
	binary.BigEndian.PutUint16(out[len(p):], crc)
	return out
}

// Poly32 is the CD-ROM sector EDC generator polynomial (ECMA-130), used
// LSB-first (reflected), init 0, no xor-out.
const Poly32 = 0x8001801B

var table32 = makeTable32(Poly32)

// makeTable32 builds a reflected CRC-32 table for the given (non-reflected)
// polynomial, following the same table-builder shape as
// container/mts/psi/crc.go's crc32_MakeTable in the teacher repo, adapted
// to the CD EDC's bit-reflected convention rather than the MPEG-TS one.
func makeTable32(poly uint32) *[256]uint32 {
	rpoly := reverse32(poly)
	var t [256]uint32
	for i := range t {
		crc := uint32(i)
		for j := 0; j < 8; j++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ rpoly
			} else {
				crc >>= 1
			}
		}
		t[i] = crc
	}
	return &t
}

func reverse32(v uint32) uint32 {
	var r uint32
	for i := 0; i < 32; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}

// Update32 computes the CD sector EDC over p: a reflected CRC-32 using the
// ECMA-130 generator polynomial, init 0, no xor-out.
func Update32(p []byte) uint32 {
	var crc uint32
	for _, b := range p {
		crc = table32[byte(crc)^b] ^ (crc >> 8)
	}
	return crc
}

// CheckEDC validates data against edc, the 32-bit EDC value stored
// little-endian at the end of the sector.
func CheckEDC(data []byte, edc uint32) bool {
	return Update32(data) == edc
}
