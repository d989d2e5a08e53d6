/*
LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package ac3

import (
	"testing"

	containerac3 "github.com/ld-decode/ldcore/container/ac3"
	"github.com/ld-decode/ldcore/rs"
)

// buildBlock RS-encodes a full 66-column C2 pass then a 36-row C1 pass over
// it, producing a QPSKBlock whose Bytes() is exactly what a real C1/C2
// encoder would have interleaved: clean, round-trippable through Corrector.
// header0/header1 are the first two message bytes of the k=0 C2 codeword,
// which Correct reports via headerOK.
func buildBlock(t *testing.T, header0, header1 byte) containerac3.QPSKBlock {
	t.Helper()
	var matrix [correctorRows][correctorCols]byte
	for k := 0; k < correctorCols; k++ {
		msg := make([]byte, 32)
		for i := range msg {
			msg[i] = byte(k*5 + i*3)
		}
		if k == 0 {
			msg[0], msg[1] = header0, header1
		}
		cw, err := rs.AC3C2.Encode(msg)
		if err != nil {
			t.Fatalf("AC3C2.Encode: %v", err)
		}
		for row := 0; row < correctorRows; row++ {
			matrix[row][k] = cw[row]
		}
	}

	flat := make([]byte, correctorRows*correctorStride)
	for row := 0; row < correctorRows; row++ {
		var ch [2][33]byte
		for k := 0; k < correctorCols; k++ {
			ch[k%2][k/2] = matrix[row][k]
		}
		for odd := 0; odd < 2; odd++ {
			cw, err := rs.AC3C1.Encode(ch[odd][:])
			if err != nil {
				t.Fatalf("AC3C1.Encode: %v", err)
			}
			for i := 0; i < 37; i++ {
				flat[row*correctorStride+i*2+odd] = cw[i]
			}
		}
	}

	var block containerac3.QPSKBlock
	for frameIdx := 0; frameIdx < containerac3.BlockFrames; frameIdx++ {
		copy(block.Frames[frameIdx].Data[:], flat[frameIdx*37:(frameIdx+1)*37])
	}
	return block
}

func TestCorrectorDecodesCleanBlock(t *testing.T) {
	block := buildBlock(t, 0x10, 0x00)
	c := NewCorrector()
	data, headerOK := c.Correct(block)
	if !headerOK {
		t.Error("headerOK = false, want true for a block built with a 0x10 0x00 header")
	}
	wantLen := correctorCols*32 - 2
	if len(data) != wantLen {
		t.Fatalf("len(data) = %d, want %d", len(data), wantLen)
	}
	if c.C1Stats.Valid == 0 {
		t.Error("C1Stats.Valid = 0, want at least one clean C1 codeword")
	}
	if c.C2Stats.Valid == 0 {
		t.Error("C2Stats.Valid = 0, want at least one clean C2 codeword")
	}
}

func TestCorrectorFlagsMismatchedHeader(t *testing.T) {
	block := buildBlock(t, 0x42, 0x99)
	c := NewCorrector()
	_, headerOK := c.Correct(block)
	if headerOK {
		t.Error("headerOK = true, want false for a block not beginning 0x10 0x00")
	}
}

func TestCorrectorToleratesSingleByteError(t *testing.T) {
	block := buildBlock(t, 0x10, 0x00)
	// Flip one byte inside the first C1 codeword; RS(37,33) corrects up to
	// floor(4/2)=2 errors blind, so this alone must not break the decode.
	block.Frames[0].Data[3] ^= 0xFF

	c := NewCorrector()
	data, headerOK := c.Correct(block)
	if !headerOK {
		t.Error("headerOK = false after a single correctable byte error")
	}
	if len(data) != correctorCols*32-2 {
		t.Errorf("len(data) = %d, want %d despite the corrected error", len(data), correctorCols*32-2)
	}
	if c.C1Stats.Uncorrectable != 0 {
		t.Errorf("C1Stats.Uncorrectable = %d, want 0", c.C1Stats.Uncorrectable)
	}
}
