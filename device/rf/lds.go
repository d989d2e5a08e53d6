/*
NAME
  lds.go

DESCRIPTION
  lds.go decodes the 10-bit packed LDS RF capture format: 5 input bytes
  pack 4 10-bit samples MSB-first across byte boundaries.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rf

// ldsGroupBytes and ldsGroupSamples describe the packing ratio: every
// 5 raw bytes hold 4 10-bit samples.
const (
	ldsGroupBytes   = 5
	ldsGroupSamples = 4
)

// decodeLDS10 unpacks a whole number of 5-byte LDS groups from raw into
// out as rescaled signed 16-bit samples. Trailing bytes that don't form
// a complete group are ignored. Returns the number of samples decoded.
func decodeLDS10(raw []byte, out []int16) int {
	groups := len(raw) / ldsGroupBytes
	if groups*ldsGroupSamples > len(out) {
		groups = len(out) / ldsGroupSamples
	}
	for g := 0; g < groups; g++ {
		b := raw[g*ldsGroupBytes:]
		v0 := uint16(b[0])<<2 | uint16(b[1])>>6
		v1 := uint16(b[1]&0x3F)<<4 | uint16(b[2])>>4
		v2 := uint16(b[2]&0x0F)<<6 | uint16(b[3])>>2
		v3 := uint16(b[3]&0x03)<<8 | uint16(b[4])

		o := out[g*ldsGroupSamples:]
		o[0] = rescaleLDS(v0)
		o[1] = rescaleLDS(v1)
		o[2] = rescaleLDS(v2)
		o[3] = rescaleLDS(v3)
	}
	return groups * ldsGroupSamples
}

// rescaleLDS maps a 10-bit unsigned LDS value in [0, 1024) to a signed
// 16-bit sample via (value-512)*64.
func rescaleLDS(v uint16) int16 {
	return int16((int32(v) - 512) * 64)
}

// encodeLDS10 packs 4 10-bit values (each in [0, 1024)) into 5 bytes,
// the inverse of decodeLDS10's unpacking. It exists for testing the
// packed format's round-trip property against synthetic input.
func encodeLDS10(v [4]uint16) [5]byte {
	var b [5]byte
	b[0] = byte(v[0] >> 2)
	b[1] = byte(v[0]<<6) | byte(v[1]>>4)
	b[2] = byte(v[1]<<4) | byte(v[2]>>6)
	b[3] = byte(v[2]<<2) | byte(v[3]>>8)
	b[4] = byte(v[3])
	return b
}
