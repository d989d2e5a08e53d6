//go:build linux

/*
NAME
  alsa.go

DESCRIPTION
  alsa.go provides AlsaSource, a Source that captures live RF samples
  off a sound-card-attached ADC (e.g. a cxADC board) via ALSA. This
  exists for capturing straight to a batch file that the decode core
  processes afterwards; there is no real-time decode path.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rf

import (
	"github.com/ausocean/utils/logging"
	"github.com/ld-decode/ldcore/device/alsa"
	"github.com/ld-decode/ldcore/pipeline/config"
)

// AlsaSource adapts alsa.ALSA's byte-oriented capture to the Source
// interface's sample-oriented ReadSamples.
type AlsaSource struct {
	dev    *alsa.ALSA
	format int
	raw    []byte
}

// NewAlsaSource returns a new AlsaSource logging to l.
func NewAlsaSource(l logging.Logger) *AlsaSource {
	return &AlsaSource{dev: alsa.New(l)}
}

func (s *AlsaSource) Name() string { return s.dev.Name() }

func (s *AlsaSource) Set(c config.Config) error {
	s.format = c.Format
	return s.dev.Set(c)
}

func (s *AlsaSource) Start() error    { return s.dev.Start() }
func (s *AlsaSource) Stop() error     { return s.dev.Stop() }
func (s *AlsaSource) IsRunning() bool { return s.dev.IsRunning() }

// ReadSamples reads raw bytes from the underlying ALSA device and
// decodes them to signed 16-bit samples per the configured format.
// LDS packing is not applicable to live ALSA capture (the format only
// exists in batch capture files), so FormatLDS10 is treated as
// FormatRaw16.
func (s *AlsaSource) ReadSamples(buf []int16) (int, error) {
	sb := 2
	if s.format == config.FormatRaw8 {
		sb = 1
	}
	want := len(buf) * sb
	if cap(s.raw) < want {
		s.raw = make([]byte, want)
	}
	n, err := s.dev.Read(s.raw[:want])
	if n == 0 {
		return 0, err
	}
	if s.format == config.FormatRaw8 {
		return decodeRaw8(s.raw[:n], buf), err
	}
	return decodeRaw16(s.raw[:n], buf), err
}
