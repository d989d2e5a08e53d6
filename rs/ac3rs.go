/*
NAME
  ac3rs.go

DESCRIPTION
  ac3rs.go composes the AC-3 RF layer's two Reed-Solomon passes: C1 is
  RS(37,33) applied column-wise across a 72-frame QPSK block, C2 is
  RS(36,32) applied row-wise after C1's output has been de-interleaved,
  per spec.md §4.7.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package rs

// AC3C1 corrects the 37-symbol column codeword (33 data + 4 parity).
var AC3C1 = NewCodec(37, 33, 0)

// AC3C2 corrects the 36-symbol row codeword (32 data + 4 parity) after
// C1's columns have been de-interleaved into rows.
var AC3C2 = NewCodec(36, 32, 0)

// DecodeAC3C1 runs the AC-3 C1 pass over a 37-symbol column.
func DecodeAC3C1(col [37]byte, erasures []int, stats *CIRCStats) (data [33]byte, ok bool) {
	res, decOK := AC3C1.Decode(col[:], erasures)
	if !decOK {
		stats.Uncorrectable++
		return data, false
	}
	switch res.Errors + res.Erasures {
	case 0:
		stats.Valid++
	case 1:
		stats.OneSymbol++
	default:
		stats.TwoSymbol++
	}
	copy(data[:], res.Corrected[:33])
	return data, true
}

// DecodeAC3C2 runs the AC-3 C2 pass over a 36-symbol row.
func DecodeAC3C2(row [36]byte, erasures []int, stats *CIRCStats) (data [32]byte, ok bool) {
	res, decOK := AC3C2.Decode(row[:], erasures)
	if !decOK {
		stats.Uncorrectable++
		return data, false
	}
	switch res.Errors + res.Erasures {
	case 0:
		stats.Valid++
	case 1:
		stats.OneSymbol++
	default:
		stats.TwoSymbol++
	}
	copy(data[:], res.Corrected[:32])
	return data, true
}
