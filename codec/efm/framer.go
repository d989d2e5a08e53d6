/*
NAME
  framer.go

DESCRIPTION
  framer.go implements the F3 frame assembler: locating the 24-channel-
  bit EFM frame sync pattern in the T-value stream the PLL recovers, and
  grouping the 588 channel bits between consecutive sync patterns into
  one subcode symbol and 32 data symbols, per spec.md §4.2.

  Grounded on spec.md §4.2's prose state machine (hunting/locked, a
  bounded channel-bit skip to re-align on a missed sync); the EFM frame
  layout (24-bit sync + 3 merge bits + 14-bit subcode symbol + 3 merge
  bits + 32×(14-bit data symbol + 3 merge bits) = 588 channel bits) is
  spec.md §3/§6's data model, since no F3-assembler source survived in
  original_source's retrieval window (the PLL and CIRC stages did; the
  bit-grouping glue between them did not).

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package efm

import containerefm "github.com/ld-decode/ldcore/container/efm"

const (
	syncBits      = 24 // len(containerefm.SyncPattern).
	mergeBits     = 3
	symbolBits    = 14
	symbolsPerF3  = 33 // 1 subcode symbol + 32 data symbols.
	framePeriod   = syncBits + mergeBits + symbolsPerF3*(symbolBits+mergeBits)
	maxSkipBits   = 8 // bounded re-align skip on a missed sync, per spec.md §4.2.
)

type framerState int

const (
	framerHunting framerState = iota
	framerLocked
)

// FramerStats reports the F3 assembler's running counters.
type FramerStats struct {
	TotalFrames     int64
	ResyncCount     int64
	ErasedSymbols   int64
}

// Framer assembles T-value bytes (bit-cell run lengths) into F3 frames.
type Framer struct {
	state framerState
	bits  []byte // accumulated channel bits, MSB-first, 0/1 per element.
	stats FramerStats
}

// NewFramer returns a framer in its initial hunting state.
func NewFramer() *Framer { return &Framer{state: framerHunting} }

// Statistics returns a snapshot of the framer's counters.
func (f *Framer) Statistics() FramerStats { return f.stats }

// Reset returns the framer to its just-constructed state.
func (f *Framer) Reset() {
	f.state = framerHunting
	f.bits = nil
	f.stats = FramerStats{}
}

// Process appends the channel bits implied by a run of T-values (each
// byte is a bit-cell run length: (T-1) zero bits followed by a 1 bit)
// and returns every F3 frame completed as a result.
func (f *Framer) Process(tValues []byte) []containerefm.F3Frame {
	for _, t := range tValues {
		for i := byte(0); i+1 < t; i++ {
			f.bits = append(f.bits, 0)
		}
		f.bits = append(f.bits, 1)
	}

	var out []containerefm.F3Frame
	for {
		fr, ok := f.tryEmit()
		if !ok {
			break
		}
		out = append(out, fr)
	}
	return out
}

// tryEmit attempts to locate a sync pattern and, in the locked state,
// slice out one complete F3 frame's worth of channel bits.
func (f *Framer) tryEmit() (containerefm.F3Frame, bool) {
	switch f.state {
	case framerHunting:
		idx := f.findSync(0)
		if idx < 0 {
			// Keep only enough trailing bits to still catch a sync
			// pattern straddling the next Process call.
			if len(f.bits) > syncBits {
				f.bits = f.bits[len(f.bits)-syncBits+1:]
			}
			return containerefm.F3Frame{}, false
		}
		f.bits = f.bits[idx:]
		f.state = framerLocked
		return f.emitLocked()
	default:
		return f.emitLocked()
	}
}

// emitLocked expects the buffer to start with a sync pattern and, once
// a full frame period of bits is available, decodes it; if the next
// sync pattern isn't found where expected, it searches a bounded window
// around the expected position before dropping back to hunting.
func (f *Framer) emitLocked() (containerefm.F3Frame, bool) {
	if len(f.bits) < framePeriod+syncBits {
		return containerefm.F3Frame{}, false
	}
	if !matchesSync(f.bits) {
		f.state = framerHunting
		f.stats.ResyncCount++
		return containerefm.F3Frame{}, false
	}

	frame := f.decodeFrame(f.bits[syncBits:])
	f.stats.TotalFrames++
	for _, e := range frame.Erasure {
		if e {
			f.stats.ErasedSymbols++
		}
	}

	if matchesSyncAt(f.bits, framePeriod) {
		f.bits = f.bits[framePeriod:]
		return frame, true
	}

	// Next sync isn't exactly where expected; search a bounded window
	// to re-align without losing lock entirely.
	for skip := -maxSkipBits; skip <= maxSkipBits; skip++ {
		pos := framePeriod + skip
		if pos < 0 || pos+syncBits > len(f.bits) {
			continue
		}
		if matchesSyncAt(f.bits, pos) {
			f.bits = f.bits[pos:]
			return frame, true
		}
	}

	f.state = framerHunting
	f.stats.ResyncCount++
	f.bits = f.bits[framePeriod:]
	return frame, true
}

// findSync returns the bit offset of the first sync pattern occurrence
// at or after from, or -1 if none is present yet.
func (f *Framer) findSync(from int) int {
	for i := from; i+syncBits <= len(f.bits); i++ {
		if matchesSyncAt(f.bits, i) {
			return i
		}
	}
	return -1
}

func matchesSync(bits []byte) bool { return matchesSyncAt(bits, 0) }

func matchesSyncAt(bits []byte, at int) bool {
	if at+syncBits > len(bits) {
		return false
	}
	for i := 0; i < syncBits; i++ {
		want := containerefm.SyncPattern[i] - '0'
		if bits[at+i] != want {
			return false
		}
	}
	return true
}

// decodeFrame converts the 564 post-sync channel bits (3 merge + 33 ×
// (14 symbol + 3 merge)) into an F3Frame, demapping each 14-bit symbol
// and marking erasures where demapping fails.
func (f *Framer) decodeFrame(bits []byte) containerefm.F3Frame {
	var frame containerefm.F3Frame
	pos := mergeBits // skip the merge bits following the sync pattern.

	subcode := bitsToUint16(bits[pos : pos+symbolBits])
	pos += symbolBits + mergeBits
	frame.Marker, frame.Subcode = classifySubcode(subcode)

	for i := 0; i < 32; i++ {
		sym := bitsToUint16(bits[pos : pos+symbolBits])
		pos += symbolBits + mergeBits
		b, ok := Demap(sym)
		frame.Data[i] = b
		frame.Erasure[i] = !ok
	}
	return frame
}

// classifySubcode recognises the two reserved section-sync channel
// patterns before falling back to ordinary EFM demapping for the
// subcode byte.
func classifySubcode(pattern uint16) (containerefm.SubcodeMarker, byte) {
	switch pattern {
	case subcodeSync0Pattern:
		return containerefm.SubcodeSync0, 0
	case subcodeSync1Pattern:
		return containerefm.SubcodeSync1, 0
	}
	b, _ := Demap(pattern)
	return containerefm.SubcodeNone, b
}

// bitsToUint16 packs bits (each 0 or 1), MSB-first, into an integer.
func bitsToUint16(bits []byte) uint16 {
	var v uint16
	for _, b := range bits {
		v = v<<1 | uint16(b)
	}
	return v
}
