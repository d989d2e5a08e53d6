/*
NAME
  block.go

DESCRIPTION
  block.go assembles 72 sequentially-numbered QPSK frames into one block,
  tolerating out-of-order or mislabeled frame numbers by substituting the
  expected sequence number, per spec.md §4.7.

  Translated directly from
  original_source/prototypes/ld-process-ac3/decode/Blocker.hpp.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package ac3

import containerac3 "github.com/ld-decode/ldcore/container/ac3"

// BlockAssembler collects QPSK frames numbered 0..71 into blocks.
type BlockAssembler struct {
	initialized          bool
	current              containerac3.QPSKBlock
	framesConsumed        int
	expectedSeq           int
	consecutiveInSequence int
}

// NewBlockAssembler returns an assembler that discards frames until the
// stream's frame-number-0 frame arrives.
func NewBlockAssembler() *BlockAssembler { return &BlockAssembler{} }

// Process consumes a run of QPSK frames and returns every complete block
// assembled.
func (b *BlockAssembler) Process(frames []containerac3.QPSKFrame) []containerac3.QPSKBlock {
	var out []containerac3.QPSKBlock
	for _, frame := range frames {
		if !b.initialized {
			if frame.Number != 0 {
				continue
			}
			b.initialized = true
		}

		var usedFrameNo int
		if int(frame.Number) != b.expectedSeq {
			b.consecutiveInSequence = 0
			usedFrameNo = b.expectedSeq
		} else {
			b.consecutiveInSequence++
			usedFrameNo = int(frame.Number)
		}

		if b.framesConsumed < containerac3.BlockFrames {
			b.current.Frames[b.framesConsumed] = frame
		}
		b.framesConsumed++

		if usedFrameNo == containerac3.BlockFrames-1 && b.framesConsumed == containerac3.BlockFrames {
			b.expectedSeq = 0
			b.framesConsumed = 0
			out = append(out, b.current)
			b.current = containerac3.QPSKBlock{}
		} else {
			b.expectedSeq = usedFrameNo + 1
		}
	}
	return out
}
