/*
LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package ac3

import (
	"testing"

	containerac3 "github.com/ld-decode/ldcore/container/ac3"
)

func sequentialFrames(n int) []containerac3.QPSKFrame {
	frames := make([]containerac3.QPSKFrame, n)
	for i := range frames {
		frames[i].Number = byte(i % containerac3.BlockFrames)
		frames[i].Data[0] = byte(i)
	}
	return frames
}

func TestBlockAssemblerDiscardsUntilFrameZero(t *testing.T) {
	b := NewBlockAssembler()
	frames := append([]containerac3.QPSKFrame{{Number: 5}, {Number: 6}}, sequentialFrames(containerac3.BlockFrames)...)
	out := b.Process(frames)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Frames[0].Number != 0 {
		t.Errorf("Frames[0].Number = %d, want 0", out[0].Frames[0].Number)
	}
}

func TestBlockAssemblerToleratesMislabeledFrameNumber(t *testing.T) {
	frames := sequentialFrames(containerac3.BlockFrames)
	frames[10].Number = 99 // mislabeled; the assembler should substitute the expected sequence number.

	b := NewBlockAssembler()
	out := b.Process(frames)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 despite the mislabeled frame", len(out))
	}
	if out[0].Frames[10].Data[0] != byte(10) {
		t.Errorf("Frames[10].Data[0] = %d, want 10 (payload survives a relabeled frame number)", out[0].Frames[10].Data[0])
	}
}

func TestBlockAssemblerAcrossTwoBlocks(t *testing.T) {
	frames := append(sequentialFrames(containerac3.BlockFrames), sequentialFrames(containerac3.BlockFrames)...)
	b := NewBlockAssembler()
	out := b.Process(frames)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
}
