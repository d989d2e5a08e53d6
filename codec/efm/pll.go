/*
NAME
  pll.go

DESCRIPTION
  pll.go implements the zero-crossing detector and software PLL that
  converts an oversampled RF waveform into a T-value stream (bit-cell run
  lengths, legal range 3..11), per spec.md §4.1.

  Translated directly from
  original_source/tools/ld-ldstoefm/pll.cpp's Pll::process/pushEdge
  (itself credited there to Olivier Galibert), which is the algorithm
  spec.md §4.1 describes in prose; the original is the ground truth for
  the exact constants (phase-adjust gain 0.005, hysteresis threshold) and
  the edge-push/edge-pull behaviour at illegal run lengths.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

// Package efm implements the CD/LaserDisc EFM channel decode cascade:
// PLL bit-cell recovery, F3 frame assembly, subcode-section
// synchronization, CIRC correction, and the F1-to-sector/audio
// dispatch.
package efm

import "github.com/ld-decode/ldcore/stream"

// PLL recovers T-values from an oversampled RF sample stream.
type PLL struct {
	prevSample    int16
	prevDirection bool // true = last crossing was upward.
	delta         float64

	basePeriod       float64
	minPeriod        float64
	maxPeriod        float64
	periodAdjustBase float64

	currentPeriod        float64
	phaseAdjust          float64
	refClockTime         float64
	frequencyHysteresis  int32
	tCounter             int8

	stats stream.Statistics
}

// NewPLL returns a PLL tuned for the given input sample rate and nominal
// channel bit rate (both in Hz).
func NewPLL(sampleRate, bitRate float64) *PLL {
	base := sampleRate / bitRate
	return &PLL{
		basePeriod:       base,
		minPeriod:        base * 0.90,
		maxPeriod:        base * 1.10,
		periodAdjustBase: base * 0.0001,
		currentPeriod:    base,
		tCounter:         1,
	}
}

// Process converts a buffer of RF samples into T-values, preserving
// zero-crossing and PLL state across calls.
func (p *PLL) Process(samples []int16) []byte {
	var out []byte
	p.stats.Consumed += int64(len(samples))
	for _, curr := range samples {
		prev := p.prevSample

		xup := prev < 0 && curr >= 0
		xdn := prev > 0 && curr <= 0
		if p.prevDirection && xup {
			xup = false
		}
		if !p.prevDirection && xdn {
			xdn = false
		}
		if xup {
			p.prevDirection = true
		}
		if xdn {
			p.prevDirection = false
		}

		if xup || xdn {
			fraction := -float64(prev) / float64(curr-prev)
			out = p.pushEdge(p.delta+fraction, out)
			p.delta = 1.0 - fraction
		} else {
			p.delta++
		}
		p.prevSample = curr
	}
	return out
}

// pushEdge advances the reference clock across a detected zero-crossing
// at sampleDelta, emitting zero or more T-value bits.
func (p *PLL) pushEdge(sampleDelta float64, out []byte) []byte {
	for sampleDelta >= p.refClockTime {
		next := p.refClockTime + p.currentPeriod + p.phaseAdjust
		p.refClockTime = next

		if (sampleDelta > next || p.tCounter < 3) && p.tCounter <= 10 {
			p.phaseAdjust = 0
			out = p.pushTValue(false, out)
			continue
		}

		delta := sampleDelta - (next - p.currentPeriod/2.0)
		p.phaseAdjust = delta * 0.005

		switch {
		case delta < 0:
			if p.frequencyHysteresis < 0 {
				p.frequencyHysteresis--
			} else {
				p.frequencyHysteresis = -1
			}
		case delta > 0:
			if p.frequencyHysteresis > 0 {
				p.frequencyHysteresis++
			} else {
				p.frequencyHysteresis = 1
			}
		default:
			p.frequencyHysteresis = 0
		}

		if p.frequencyHysteresis != 0 {
			afh := p.frequencyHysteresis
			if afh < 0 {
				afh = -afh
			}
			if afh > 1 {
				adjust := p.periodAdjustBase * delta / p.currentPeriod
				p.currentPeriod += adjust
				if p.currentPeriod < p.minPeriod {
					p.currentPeriod = p.minPeriod
				} else if p.currentPeriod > p.maxPeriod {
					p.currentPeriod = p.maxPeriod
				}
			}
		}
		out = p.pushTValue(true, out)
	}
	p.refClockTime -= sampleDelta
	return out
}

// pushTValue flushes the run-length counter as a T-value on a detected
// transition, or extends it otherwise.
func (p *PLL) pushTValue(transition bool, out []byte) []byte {
	if transition {
		out = append(out, byte(p.tCounter))
		if p.tCounter < 3 || p.tCounter > 11 {
			p.stats.Errors++
		}
		p.tCounter = 1
		p.stats.Produced++
	} else {
		p.tCounter++
	}
	return out
}

// Reset returns the PLL to its just-constructed state, keeping its tuned
// period parameters.
func (p *PLL) Reset() {
	p.prevSample = 0
	p.prevDirection = false
	p.delta = 0
	p.currentPeriod = p.basePeriod
	p.phaseAdjust = 0
	p.refClockTime = 0
	p.frequencyHysteresis = 0
	p.tCounter = 1
	p.stats = stream.Statistics{}
}

// Statistics returns a snapshot of the PLL's running counters.
func (p *PLL) Statistics() stream.Statistics { return p.stats }
