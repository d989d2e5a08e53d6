/*
NAME
  tbc.go

DESCRIPTION
  tbc.go wires device/rf.Source into codec/tbc.ProcessField, the video
  time-base-correction core, buffering RF samples across Process calls
  until each field's VSYNC is found, per spec.md §4.8.

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
	"github.com/ld-decode/ldcore/codec/tbc"
	"github.com/ld-decode/ldcore/container/video"
	"github.com/ld-decode/ldcore/device/rf"
	"github.com/ld-decode/ldcore/pipeline/config"
)

// tbcStandard converts the pipeline's capture-wide Standard selection
// to codec/tbc's own enum.
func tbcStandard(s config.Standard) tbc.Standard {
	if s == config.PAL {
		return tbc.PAL
	}
	return tbc.NTSC
}

// TBCDecoder accumulates RF samples and emits decoded video fields as
// each one's VSYNC is located.
type TBCDecoder struct {
	l   logging.Logger
	cfg tbc.Config

	buf      []uint16
	offset   int
	frameNum int
}

// NewTBCDecoder returns a TBCDecoder configured from cfg's standard and
// auto-range/despackle switches.
func NewTBCDecoder(cfg config.Config, l logging.Logger) *TBCDecoder {
	return &TBCDecoder{
		l: l,
		cfg: tbc.Config{
			Standard:         tbcStandard(cfg.Standard),
			SamplesPerFSC:    4,
			PerformAutoRange: cfg.PerformAutoRange,
			PerformDespackle: cfg.PerformDespackle,
		},
	}
}

// trimConsumed discards the already-consumed prefix of buf, rebasing
// offset, so the backlog doesn't grow for the life of a long capture.
func (d *TBCDecoder) trimConsumed() {
	if d.offset == 0 {
		return
	}
	d.buf = append(d.buf[:0], d.buf[d.offset:]...)
	d.offset = 0
}

// rfToVideo converts one buffer of rf.Source's signed 16-bit samples to
// the unsigned 16-bit range codec/tbc operates on.
func rfToVideo(samples []int16, out []uint16) {
	for i, s := range samples {
		out[i] = uint16(int32(s) + 32768)
	}
}

// Process appends one buffer of RF samples to the backlog and returns
// every video field that could be fully decoded from it.
func (d *TBCDecoder) Process(samples []int16) []video.Field {
	start := len(d.buf)
	d.buf = append(d.buf, make([]uint16, len(samples))...)
	rfToVideo(samples, d.buf[start:])

	var fields []video.Field
	for {
		field, next, err := tbc.ProcessField(d.cfg, d.buf, d.offset, d.frameNum)
		if err != nil {
			// Not enough trailing samples for a full field yet; wait for
			// the next Process call to supply more.
			break
		}
		fields = append(fields, field)
		d.offset = next
		d.frameNum++
	}
	d.trimConsumed()
	return fields
}

// Run reads samples from src until it reports io.EOF, calling emit with
// each decoded field.
func (d *TBCDecoder) Run(src rf.Source, bufSamples int, emit func(video.Field)) error {
	buf := make([]int16, bufSamples)
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			for _, field := range d.Process(buf[:n]) {
				emit(field)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.l.Info("tbc decoder reached end of capture", "frames", d.frameNum)
				return nil
			}
			return fmt.Errorf("pipeline: tbc: reading samples: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}
