/*
NAME
  sector.go

DESCRIPTION
  sector.go implements the F1-to-sector/audio dispatcher: locating the
  sector sync pattern in the F1 byte stream, assembling 2352-byte
  sectors, validating the EDC, and padding address gaps so downstream A/V
  sync stays intact, per spec.md §4.5.

  The byte-buffer-plus-flag-arrays accumulation and waitingForData inner
  dispatch loop is grounded on
  original_source/tools/ld-process-efm/Decoders/f1todata.cpp's
  F1ToData::process state machine.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package efm

import (
	"bytes"

	"github.com/ld-decode/ldcore/bcd"
	containerefm "github.com/ld-decode/ldcore/container/efm"
	"github.com/ld-decode/ldcore/container/sector"
)

type dispatchState int

const (
	dispatchInitial dispatchState = iota
	dispatchGetInitialSync
	dispatchGetNextSync
	dispatchProcessFrame
	dispatchNoSync
)

// SectorDispatchStats reports the dispatcher's running counters.
type SectorDispatchStats struct {
	ValidSectors    int64
	InvalidSectors  int64
	TotalSectors    int64
	MissingSync     int64
	HaveLastAddress bool
	LastAddress     bcd.DiscTime
}

// SectorDispatcher turns a stream of F1 frames into CD sectors.
type SectorDispatcher struct {
	state   dispatchState
	buf     []byte
	corrupt []bool
	missing []bool
	stats   SectorDispatchStats
}

// NewSectorDispatcher returns a dispatcher in its initial hunting state.
func NewSectorDispatcher() *SectorDispatcher { return &SectorDispatcher{state: dispatchInitial} }

// Statistics returns a snapshot of the dispatcher's counters.
func (d *SectorDispatcher) Statistics() SectorDispatchStats { return d.stats }

// Reset returns the dispatcher to its just-constructed state.
func (d *SectorDispatcher) Reset() {
	*d = SectorDispatcher{state: dispatchInitial}
}

// Feed appends one F1 frame's 24 data bytes (with per-byte corrupt/
// missing flags inherited from the frame) to the dispatcher's buffer.
func (d *SectorDispatcher) Feed(f containerefm.F1Frame) {
	d.buf = append(d.buf, f.Data[:]...)
	for i := 0; i < len(f.Data); i++ {
		d.corrupt = append(d.corrupt, f.Corrupt)
		d.missing = append(d.missing, f.Missing)
	}
}

var sectorSync = sector.SyncPattern()

func hasSyncAt(buf []byte, offset int) bool {
	if offset+len(sectorSync) > len(buf) {
		return false
	}
	return bytes.Equal(buf[offset:offset+len(sectorSync)], sectorSync[:])
}

// looksLikeData applies a crude distribution heuristic (spec.md §4.5's
// noSync test) to decide whether to keep hunting byte-by-byte or give up
// and restart from scratch.
func looksLikeData(buf []byte) bool {
	if len(buf) < sector.Size {
		return false
	}
	var zero, ff int
	for _, b := range buf[:sector.Size] {
		switch b {
		case 0x00:
			zero++
		case 0xFF:
			ff++
		}
	}
	// A real sector's sync/address/mode header is a small fraction of
	// 2352 bytes; if almost everything is 0x00/0xFF this is probably
	// padding or silence, not sector data.
	return zero+ff < sector.Size*9/10
}

// Process runs the dispatch state machine over whatever has been fed so
// far, returning any sectors (including gap-padding sectors) that became
// available.
func (d *SectorDispatcher) Process() []sector.Sector {
	var out []sector.Sector
	waiting := false
	for !waiting {
		waiting = true
		switch d.state {
		case dispatchInitial:
			d.state = dispatchGetInitialSync
			waiting = false

		case dispatchGetInitialSync:
			if len(d.buf) < sector.Size {
				break
			}
			if hasSyncAt(d.buf, 0) {
				d.state = dispatchProcessFrame
				waiting = false
				break
			}
			d.advance(1)
			waiting = false

		case dispatchGetNextSync:
			if len(d.buf) < sector.Size {
				break
			}
			if hasSyncAt(d.buf, 0) {
				d.state = dispatchProcessFrame
			} else {
				d.state = dispatchNoSync
			}
			waiting = false

		case dispatchProcessFrame:
			if len(d.buf) < sector.Size {
				break
			}
			raw := d.buf[:sector.Size]
			sec, ok := sector.Decode(raw)
			d.stats.TotalSectors++
			if ok && sec.Valid {
				d.stats.ValidSectors++
			} else {
				d.stats.InvalidSectors++
				if !ok {
					sec.Address = bcd.FromFrames(d.lastFrames() + 1)
				}
			}
			out = append(out, d.padGap(sec)...)
			d.advance(sector.Size)
			d.state = dispatchGetNextSync
			waiting = false

		case dispatchNoSync:
			d.stats.MissingSync++
			if !looksLikeData(d.buf) {
				d.state = dispatchGetInitialSync
				waiting = false
				break
			}
			d.advance(1)
			d.state = dispatchGetInitialSync
			waiting = false
		}
	}
	return out
}

func (d *SectorDispatcher) lastFrames() int {
	if !d.stats.HaveLastAddress {
		return -1
	}
	return d.stats.LastAddress.Frames()
}

// padGap inserts silent Mode-0 sectors to fill any gap between the
// previous emitted address and sec's, preserving the audio-to-disc-time
// correspondence spec.md §4.5 requires (P5).
func (d *SectorDispatcher) padGap(sec sector.Sector) []sector.Sector {
	var out []sector.Sector
	if d.stats.HaveLastAddress {
		gap := sec.Address.Frames() - d.stats.LastAddress.Frames() - 1
		for i := 0; i < gap; i++ {
			out = append(out, sector.Sector{
				Address: bcd.FromFrames(d.stats.LastAddress.Frames() + 1 + i),
				Mode:    sector.Mode0,
				Valid:   true,
			})
		}
	}
	out = append(out, sec)
	d.stats.LastAddress = sec.Address
	d.stats.HaveLastAddress = true
	return out
}

func (d *SectorDispatcher) advance(n int) {
	d.buf = d.buf[n:]
	d.corrupt = d.corrupt[n:]
	d.missing = d.missing[n:]
}
