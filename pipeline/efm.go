/*
NAME
  efm.go

DESCRIPTION
  efm.go wires device/rf.Source into the full EFM channel decode cascade
  (PLL -> F3 assembler -> section synchronizer -> CIRC -> F2->F1
  deinterleave -> sector/audio dispatch), mirroring the way
  codec/ac3/stream.go's Decoder composes the AC-3 RF stack end to end.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/ausocean/utils/logging"
	codecefm "github.com/ld-decode/ldcore/codec/efm"
	containerefm "github.com/ld-decode/ldcore/container/efm"
	"github.com/ld-decode/ldcore/container/sector"
	"github.com/ld-decode/ldcore/device/rf"
	"github.com/ld-decode/ldcore/filter"
	"github.com/ld-decode/ldcore/pipeline/config"
	"github.com/ld-decode/ldcore/rs"
	"github.com/ld-decode/ldcore/stream"
)

// efmChannelBitRate is the Red Book/IEC 60908 nominal EFM channel bit
// rate in Hz, used to size the PLL's nominal bit-cell period against the
// capture's sample rate, and as the ISI filter's lowpass cutoff.
const efmChannelBitRate = 4_321_800.0

// isiFilterTaps is the ISI pulse-shaping filter's FIR tap count.
const isiFilterTaps = 64

// EFMStats aggregates the running counters of every stage in the EFM
// cascade, for logging and diagnostics.
type EFMStats struct {
	PLL     stream.Statistics
	Framer  codecefm.FramerStats
	Section codecefm.SectionStats
	CIRC    rs.CIRCStats
	Sector  codecefm.SectorDispatchStats
	Audio   codecefm.AudioStats
}

// EFMResult carries whatever output became available from one call to
// Decoder.Process. A single capture is either a data disc or a CD-DA
// disc, never both; both Sectors and Audio are populated regardless,
// since the dispatcher and the audio converter both run against every
// F1 frame, and the caller selects whichever output matches the disc
// being decoded.
type EFMResult struct {
	Sectors []sector.Sector
	Audio   []byte
}

// Decoder runs the complete EFM channel decode cascade over a stream of
// RF samples.
type Decoder struct {
	l logging.Logger

	isi          *filter.ISIFilter
	pll          *codecefm.PLL
	framer       *codecefm.Framer
	section      *codecefm.SectionSync
	circ         *codecefm.CIRC
	deinterleave *codecefm.Deinterleaver
	dispatch     *codecefm.SectorDispatcher
	audio        *codecefm.AudioConverter

	haveDiscTime bool
	discTime     containerefm.DiscTime
}

// NewDecoder returns a Decoder configured from cfg's sample rate and the
// given audio error-concealment policy (only exercised if the capture
// turns out to carry CD-DA audio rather than data sectors).
func NewDecoder(cfg config.Config, l logging.Logger, treatment codecefm.ErrorTreatment, conceal codecefm.ConcealType, padInitialTime bool) *Decoder {
	circ := codecefm.NewCIRC()
	return &Decoder{
		l:            l,
		isi:          filter.NewISIFilter(float64(cfg.SampleRate), efmChannelBitRate, isiFilterTaps),
		pll:          codecefm.NewPLL(float64(cfg.SampleRate), efmChannelBitRate),
		framer:       codecefm.NewFramer(),
		section:      codecefm.NewSectionSync(),
		circ:         circ,
		deinterleave: codecefm.NewDeinterleaver(circ),
		dispatch:     codecefm.NewSectorDispatcher(),
		audio:        codecefm.NewAudioConverter(treatment, conceal, padInitialTime),
	}
}

// Statistics returns a snapshot of every stage's running counters.
func (d *Decoder) Statistics() EFMStats {
	return EFMStats{
		PLL:     d.pll.Statistics(),
		Framer:  d.framer.Statistics(),
		Section: d.section.Statistics(),
		CIRC:    d.circ.Statistics(),
		Sector:  d.dispatch.Statistics(),
		Audio:   d.audio.Statistics(),
	}
}

// Process runs one buffer of RF samples through the full cascade,
// returning any sectors and/or audio bytes that became available.
func (d *Decoder) Process(samples []int16) EFMResult {
	shaped := d.isi.Apply(samples)
	tValues := d.pll.Process(shaped)
	f3Frames := d.framer.Process(tValues)

	var f1Frames []containerefm.F1Frame
	for _, f3 := range f3Frames {
		sec, ok := d.section.Process(f3)
		if !ok {
			continue
		}
		f1Frames = append(f1Frames, d.decodeSection(sec)...)
	}

	var res EFMResult
	if len(f1Frames) > 0 {
		for _, f1 := range f1Frames {
			d.dispatch.Feed(f1)
		}
		res.Sectors = d.dispatch.Process()
		res.Audio = d.audio.Process(f1Frames)
	}
	return res
}

// decodeSection runs CIRC C1 over every F3 frame in sec, de-interleaves
// and runs C2, and stamps each resulting F1 frame with the section's
// decoded Q-channel disc time (falling back to the last known disc time
// when this section's Q-subcode doesn't check out, per spec.md §4.5's
// requirement that disc time stay monotonic across brief Q-subcode
// dropouts).
func (d *Decoder) decodeSection(sec containerefm.Section) []containerefm.F1Frame {
	if q, ok := codecefm.DecodeQ(sec); ok {
		d.discTime = q.DiscTime
		d.haveDiscTime = true
	}

	var out []containerefm.F1Frame
	for _, f3 := range sec.Frames {
		f2, _ := d.circ.DecodeFrame(f3.Data, erasedIndices(f3.Erasure[:]))
		f1, ok := d.deinterleave.Process(f2)
		if !ok {
			continue
		}
		f1.Missing = f3.AnyErasure()
		if d.haveDiscTime {
			f1.DiscTime = d.discTime
		}
		out = append(out, f1)
	}
	return out
}

func erasedIndices(flags []bool) []int {
	var out []int
	for i, e := range flags {
		if e {
			out = append(out, i)
		}
	}
	return out
}

// Reset returns every stage to its just-constructed state, for reuse
// across a new capture.
func (d *Decoder) Reset() {
	d.pll.Reset()
	d.framer.Reset()
	d.section.Reset()
	d.circ.Reset()
	d.deinterleave.Reset()
	d.dispatch.Reset()
	d.audio.Reset()
	d.haveDiscTime = false
}

// Run reads samples from src until it reports io.EOF (or ctx-free
// exhaustion for a non-looping file source), calling emit with each
// buffer's result.
func (d *Decoder) Run(src rf.Source, bufSamples int, emit func(EFMResult)) error {
	buf := make([]int16, bufSamples)
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			emit(d.Process(buf[:n]))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.l.Info("efm decoder reached end of capture", "stats", d.Statistics())
				return nil
			}
			return fmt.Errorf("pipeline: efm: reading samples: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}
