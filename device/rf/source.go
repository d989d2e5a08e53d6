/*
NAME
  source.go

DESCRIPTION
  source.go provides Source, an interface describing a readable raw RF
  capture from which signed 16-bit samples may be obtained, regardless
  of the capture's underlying wire format (8-bit, 16-bit, or 10-bit
  packed LDS).

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package rf provides access to raw RF captures, the input to the decode
// pipelines. A Source is a device.AVDevice specialised to always yield
// signed 16-bit samples: callers never need to know whether the
// underlying capture was 8-bit (AC-3), 16-bit (video), or 10-bit packed
// LDS, since each format's Source implementation rescales on read.
package rf

import (
	"encoding/binary"
	"io"

	"github.com/ld-decode/ldcore/pipeline/config"
)

// Source describes a raw RF capture that yields signed 16-bit samples.
// It embeds device.AVDevice's lifecycle (Name/Set/Start/Stop/IsRunning)
// but replaces Read's byte-oriented contract with ReadSamples, since
// every RF format this package supports is ultimately consumed as a
// []int16 slice by the decode pipelines.
type Source interface {
	Name() string
	Set(c config.Config) error
	Start() error
	Stop() error
	IsRunning() bool

	// ReadSamples reads up to len(buf) samples into buf, returning the
	// number of samples read. Behaves like io.Reader.Read with respect
	// to io.EOF and short reads.
	ReadSamples(buf []int16) (int, error)
}

// decodeRaw16 unpacks raw into out as little-endian signed 16-bit
// samples, the native cxADC/DomDup video capture format.
func decodeRaw16(raw []byte, out []int16) int {
	n := len(raw) / 2
	if n > len(out) {
		n = len(out)
	}
	for i := 0; i < n; i++ {
		out[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	return n
}

// decodeRaw8 unpacks raw into out as unsigned 8-bit samples centred on
// zero, the format cxADC captures use for AC-3 digital audio RF.
func decodeRaw8(raw []byte, out []int16) int {
	n := len(raw)
	if n > len(out) {
		n = len(out)
	}
	for i := 0; i < n; i++ {
		out[i] = (int16(raw[i]) - 128) * 256
	}
	return n
}

// readFull reads from r until buf is full, io.EOF, or a non-EOF error
// occurs, mirroring io.ReadFull but tolerating a final short read as a
// partial result rather than an error, so the last partial block of a
// capture file is still usable.
func readFull(r io.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			if err == io.EOF && total > 0 {
				return total, nil
			}
			return total, err
		}
	}
	return total, nil
}
