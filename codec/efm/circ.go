/*
NAME
  circ.go

DESCRIPTION
  circ.go applies the two-stage CIRC Reed-Solomon correction (C1 row-
  wise, C2 after de-interleave) to a subcode section's F3 data symbols,
  producing F2 frames with erasure flags, per spec.md §4.4.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package efm

import (
	containerefm "github.com/ld-decode/ldcore/container/efm"
	"github.com/ld-decode/ldcore/rs"
)

// CIRC applies the C1/C2 Reed-Solomon passes to a stream of F3 frames.
type CIRC struct {
	stats rs.CIRCStats
}

// NewCIRC returns a CIRC decoder with zeroed statistics.
func NewCIRC() *CIRC { return &CIRC{} }

// Statistics returns a snapshot of the combined C1+C2 correction counts.
func (c *CIRC) Statistics() rs.CIRCStats { return c.stats }

// Reset clears the decoder's statistics.
func (c *CIRC) Reset() { c.stats = rs.CIRCStats{} }

// DecodeFrame runs the C1 pass over one F3 frame's 32 channel symbols,
// producing an F2 frame. Symbols the F3 demap already flagged as erased
// are passed through as erasure side-information to C1.
func (c *CIRC) DecodeFrame(row [32]byte, priorErasures []int) (containerefm.F2Frame, bool) {
	data, ok := rs.DecodeC1(row, priorErasures, &c.stats)
	var f2 containerefm.F2Frame
	if !ok {
		for i := range f2.Erasure {
			f2.Erasure[i] = true
		}
		return f2, false
	}
	copy(f2.Data[:], data[:])
	return f2, true
}

// DecodeDeinterleaved runs the C2 pass over a 28-symbol codeword already
// de-interleaved from a run of C1 outputs, propagating C1 erasures as
// side information.
func (c *CIRC) DecodeDeinterleaved(word [28]byte, erasures []int) ([24]byte, bool) {
	return rs.DecodeC2(word, erasures, &c.stats)
}
