/*
NAME
  flac.go

DESCRIPTION
  flac.go decodes a FLAC-compressed reference recording into WAV, for
  comparing a freshly decoded CD-DA capture against a known-good
  archival rip of the same disc stored in FLAC to save space. Adapted
  directly from the teacher's exp/flac/decode.go, unchanged in its
  FLAC-parsing and WAV-encoding logic.

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package audio provides conversions between this repo's decoded PCM
// output and archival audio container formats.
package audio

import (
	"bytes"
	"errors"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
)

const wavFormat = 1

// writeSeeker is a memory-backed io.WriteSeeker.
type writeSeeker struct {
	buf []byte
	pos int
}

func (ws *writeSeeker) Bytes() []byte { return ws.buf }

func (ws *writeSeeker) Write(p []byte) (n int, err error) {
	minCap := ws.pos + len(p)
	if minCap > cap(ws.buf) {
		buf2 := make([]byte, len(ws.buf), minCap+len(p))
		copy(buf2, ws.buf)
		ws.buf = buf2
	}
	if minCap > len(ws.buf) {
		ws.buf = ws.buf[:minCap]
	}
	copy(ws.buf[ws.pos:], p)
	ws.pos += len(p)
	return len(p), nil
}

func (ws *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	newPos, offs := 0, int(offset)
	switch whence {
	case io.SeekStart:
		newPos = offs
	case io.SeekCurrent:
		newPos = ws.pos + offs
	case io.SeekEnd:
		newPos = len(ws.buf) + offs
	}
	if newPos < 0 {
		return 0, errors.New("negative result pos")
	}
	ws.pos = newPos
	return int64(newPos), nil
}

// DecodeReferenceToWAV decodes a FLAC-compressed reference recording
// into WAV bytes suitable for byte- or sample-level comparison against
// this repo's own decoded PCM output.
func DecodeReferenceToWAV(buf []byte) ([]byte, error) {
	r := bytes.NewReader(buf)
	stream, err := flac.Parse(r)
	if err != nil {
		return nil, errors.New("could not parse FLAC reference")
	}

	ws := &writeSeeker{}
	sr := int(stream.Info.SampleRate)
	bps := int(stream.Info.BitsPerSample)
	nc := int(stream.Info.NChannels)
	enc := wav.NewEncoder(ws, sr, bps, nc, wavFormat)
	defer enc.Close()

	intBuf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: nc, SampleRate: sr},
		SourceBitDepth: bps,
	}
	return decodeFrames(stream, intBuf, enc, ws)
}

func decodeFrames(s *flac.Stream, intBuf *audio.IntBuffer, e *wav.Encoder, ws *writeSeeker) ([]byte, error) {
	var data []int
	for {
		frame, err := s.ParseNext()
		if err == io.EOF {
			return ws.Bytes(), nil
		} else if err != nil {
			return nil, err
		}

		data = data[:0]
		for i := 0; i < frame.Subframes[0].NSamples; i++ {
			for _, subframe := range frame.Subframes {
				data = append(data, int(subframe.Samples[i]))
			}
		}
		intBuf.Data = data
		if err := e.Write(intBuf); err != nil {
			return nil, err
		}
	}
}
