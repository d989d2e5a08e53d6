/*
NAME
  frame.go

DESCRIPTION
  frame.go defines the AC-3 RF layer's container types: the QPSK symbol/
  frame/block hierarchy produced by codec/ac3's demodulator, and the
  AC-3 sync frame itself (ATSC A/52 BSI header plus dual CRC), per
  spec.md §3 and §4.7.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

// Package ac3 defines the QPSK and AC-3 sync-frame container types shared
// by codec/ac3's demodulation and RS-correction stages.
package ac3

// QPSKSymbol is one of the four QPSK constellation points.
type QPSKSymbol byte

const (
	Sym0 QPSKSymbol = 0
	Sym1 QPSKSymbol = 1
	Sym2 QPSKSymbol = 2
	Sym3 QPSKSymbol = 3
)

// FrameSyncPattern is the 12-symbol QPSK frame sync: the four middle
// symbols encode the 6-bit frame number (spec.md §4.7 uses the all-zero
// frame-number-0 case as its worked example).
var FrameSyncPattern = [12]QPSKSymbol{Sym0, Sym1, Sym1, Sym3, 0, 0, 0, 0, Sym0, Sym0, Sym0, Sym0}

// QPSKFrame is a 6-bit frame number (0..71) plus 37 payload bytes.
type QPSKFrame struct {
	Number byte
	Data   [37]byte
}

// BlockFrames is the number of QPSK frames per block.
const BlockFrames = 72

// QPSKBlock is 72 QPSK frames (72×37 bytes), numbered 0..71 in sequence.
type QPSKBlock struct {
	Frames [BlockFrames]QPSKFrame
}

// Bytes flattens the block into a 72×37-byte slice, frame-sequential
// (frame 0's 37 bytes, then frame 1's, ...), matching the byte layout
// codec/ac3's RS corrector addresses with rowI*74+i*2+odd-style striding.
func (b *QPSKBlock) Bytes() []byte {
	out := make([]byte, BlockFrames*37)
	for i, f := range b.Frames {
		copy(out[i*37:(i+1)*37], f.Data[:])
	}
	return out
}

// SyncWord is the 16-bit AC-3 sync frame marker.
const SyncWord = 0x0B77

// FrameWordsFrmsizecod28 is the AC-3 frame length in 16-bit words for the
// one frmsizecod/fscod combination this core supports (frmsizecod=28,
// fscod=0: 48kHz, 768 words). spec.md §9's Open Questions restricts
// support to exactly this case.
const FrameWordsFrmsizecod28 = 768

// SyncFrame is one validated AC-3 sync frame: syncword, dual CRC, basic
// stream info fields and payload.
type SyncFrame struct {
	CRC1       uint16
	Fscod      byte
	Frmsizecod byte
	Bsid       byte
	Payload    []byte // full frame bytes including syncword, for CRC/emit purposes.
	CRC1OK     bool
	CRC2OK     bool
}
