/*
NAME
  ac3.go

DESCRIPTION
  ac3.go wires device/rf.Source into codec/ac3.Decoder, the already
  self-contained AC-3 RF demodulation chain (1-bit ADC -> QPSK demod ->
  reclock -> framer -> block assembler -> RS corrector), per spec.md's
  AC-3 pipeline diagram.

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
	"github.com/ld-decode/ldcore/codec/ac3"
	"github.com/ld-decode/ldcore/device/rf"
	"github.com/ld-decode/ldcore/stream"
)

// AC3Decoder runs an RF sample stream through the AC-3 demodulation
// chain.
type AC3Decoder struct {
	l       logging.Logger
	decoder *ac3.Decoder
}

// NewAC3Decoder returns an AC3Decoder with a rolling ADC window of
// windowSize samples (codec/ac3.DefaultADCWindow if 0).
func NewAC3Decoder(l logging.Logger, windowSize int) *AC3Decoder {
	return &AC3Decoder{l: l, decoder: ac3.NewDecoder(windowSize)}
}

// Statistics returns a snapshot of the chain's running counters.
func (d *AC3Decoder) Statistics() stream.Statistics { return d.decoder.Statistics() }

// Reset returns every stage to its just-constructed state.
func (d *AC3Decoder) Reset() { d.decoder.Reset() }

// Process converts one buffer of signed 16-bit RF samples back to the
// unsigned 8-bit amplitude the AC-3 ADC stage expects (the inverse of
// device/rf's FormatRaw8 decode: samples arrive rescaled to int16 for
// every rf.Source regardless of wire format, but the 1-bit ADC's
// rolling-average threshold only makes sense against the original
// unsigned 8-bit capture range) and runs it through the full chain.
func (d *AC3Decoder) Process(samples []int16) [][]byte {
	raw := make([]byte, len(samples))
	for i, s := range samples {
		raw[i] = byte(int32(s)/256 + 128)
	}
	return d.decoder.Process(raw)
}

// Run reads samples from src until it reports io.EOF, calling emit with
// every corrected AC-3 byte run produced along the way.
func (d *AC3Decoder) Run(src rf.Source, bufSamples int, emit func([]byte)) error {
	buf := make([]int16, bufSamples)
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			for _, block := range d.Process(buf[:n]) {
				emit(block)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.l.Info("ac3 decoder reached end of capture", "stats", d.Statistics())
				return nil
			}
			return fmt.Errorf("pipeline: ac3: reading samples: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}
