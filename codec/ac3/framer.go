/*
NAME
  framer.go

DESCRIPTION
  framer.go groups reclocked QPSK symbols into 37-byte frames, hunting for
  the 12-symbol frame sync pattern (track number 0..71 encoded in the
  middle 4 symbols) and tolerating up to 3 consecutive missed re-syncs by
  auto-inserting the expected frame number before dropping back to a full
  sync hunt, per spec.md §4.7.

  Translated directly from
  original_source/tools/ld-process-ac3/decode/QPSKFramer.hpp. One
  adaptation: the original reads ASCII '0'..'3' characters and subtracts
  48; this module's upstream Demodulator already emits raw 0..3 symbols,
  so that offset is dropped.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package ac3

import containerac3 "github.com/ld-decode/ldcore/container/ac3"

// Framer assembles QPSK symbols into 37-byte frames.
type Framer struct {
	syncFrameSymbolsSeen int
	syncFrameNo          [4]byte
	symbolInFrameCounter int
	symbolsInFrame       [37 * 4]byte
	consecutiveSynced    int
	autoSyncAt           int
	prevFrameNo          int
	index                int

	MissedSyncs int64
	FramesSeen  int64
}

// NewFramer returns a framer hunting for its first sync.
func NewFramer() *Framer {
	return &Framer{autoSyncAt: -1}
}

// Process consumes a run of QPSK symbols (each 0..3) and returns every
// complete frame assembled.
func (f *Framer) Process(symbols []byte) []containerac3.QPSKFrame {
	var out []containerac3.QPSKFrame
	for _, symbol := range symbols {
		f.index++

		if f.syncFrameSymbolsSeen < 12 && f.autoSyncAt < f.index {
			var isNextSyncSymbol bool
			switch {
			case f.syncFrameSymbolsSeen < 1:
				isNextSyncSymbol = symbol == 0
			case f.syncFrameSymbolsSeen < 3:
				isNextSyncSymbol = symbol == 1
			case f.syncFrameSymbolsSeen < 4:
				isNextSyncSymbol = symbol == 3
			case f.syncFrameSymbolsSeen < 8:
				f.syncFrameNo[f.syncFrameSymbolsSeen-4] = symbol
				isNextSyncSymbol = true
			default:
				isNextSyncSymbol = symbol == 0
			}

			if isNextSyncSymbol {
				f.syncFrameSymbolsSeen++
			} else {
				f.MissedSyncs++
				if f.consecutiveSynced > 0 {
					f.consecutiveSynced--
					for j := 0; j < 4; j++ {
						f.syncFrameNo[j] = byte(((f.prevFrameNo + 1) % 72) >> uint(6-2*j) & 3)
					}
					f.autoSyncAt = f.index + 12 - f.syncFrameSymbolsSeen
				} else {
					f.syncFrameSymbolsSeen = 0
				}
			}
		} else if f.index >= f.autoSyncAt {
			switch {
			case f.syncFrameSymbolsSeen == 12 && f.symbolInFrameCounter == 0:
				f.consecutiveSynced = minInt(f.consecutiveSynced+1, 3)
			case f.index == f.autoSyncAt:
				f.syncFrameSymbolsSeen = 12
			}

			f.symbolsInFrame[f.symbolInFrameCounter] = symbol
			f.symbolInFrameCounter++
			if f.symbolInFrameCounter == 37*4 {
				f.prevFrameNo = int(f.syncFrameNo[0])<<6 | int(f.syncFrameNo[1])<<4 | int(f.syncFrameNo[2])<<2 | int(f.syncFrameNo[3])

				var frame containerac3.QPSKFrame
				frame.Number = byte(f.prevFrameNo)
				for i := 0; i < 37; i++ {
					frame.Data[i] = f.symbolsInFrame[4*i]<<6 | f.symbolsInFrame[4*i+1]<<4 |
						f.symbolsInFrame[4*i+2]<<2 | f.symbolsInFrame[4*i+3]
				}

				f.symbolInFrameCounter = 0
				f.syncFrameSymbolsSeen = 0
				f.FramesSeen++
				out = append(out, frame)
			}
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
