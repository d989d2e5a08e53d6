/*
NAME
  frame.go

DESCRIPTION
  frame.go validates AC-3 sync frames carved out of the corrected RS
  byte stream: syncword, fscod/frmsizecod (restricted to the 48kHz/768-
  word case this core supports), and the dual CRC-16 split at 5/8 and
  3/8 of the frame, per spec.md §4.7.

  Grounded on
  original_source/tools/ld-process-ac3/decode/ac3_parsing.hpp's
  SyncInfo/SyncFrame::check_crc (frmsizecod==28 / fscod==0 restriction,
  the 5/8 and 3/8 CRC split) translated to this core's supported-case-only
  scope; of BitStreamInformation's many conditional BSI fields only bsid
  is read, and the rest are not parsed anywhere in this repository.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package ac3

import (
	"errors"

	containerac3 "github.com/ld-decode/ldcore/container/ac3"
	"github.com/ld-decode/ldcore/crc"
)

// ErrUnsupportedFrameSize is returned when a sync frame's fscod/
// frmsizecod combination isn't the single 48kHz/768-word case this core
// decodes.
var ErrUnsupportedFrameSize = errors.New("ac3: unsupported fscod/frmsizecod combination")

// ErrBadSyncWord is returned when a frame doesn't begin with 0x0B77.
var ErrBadSyncWord = errors.New("ac3: bad sync word")

// frameSize58Bytes returns the byte offset splitting an AC-3 sync frame into its
// CRC1-covered first 5/8 and CRC2-covered last 3/8.
func frameSize58Bytes() int {
	words58 := (containerac3.FrameWordsFrmsizecod28 >> 1) + (containerac3.FrameWordsFrmsizecod28 >> 3)
	return words58 * 2
}

// ParseSyncFrame validates and parses one AC-3 sync frame from raw
// (frame starts at byte 0 with the sync word).
func ParseSyncFrame(raw []byte) (containerac3.SyncFrame, error) {
	var f containerac3.SyncFrame
	if len(raw) < 6 {
		return f, ErrBadSyncWord
	}
	syncword := uint16(raw[0])<<8 | uint16(raw[1])
	if syncword != containerac3.SyncWord {
		return f, ErrBadSyncWord
	}
	f.CRC1 = uint16(raw[2])<<8 | uint16(raw[3])
	f.Fscod = raw[4] >> 6
	f.Frmsizecod = raw[4] & 0x3F
	if f.Fscod != 0 || f.Frmsizecod != 28 {
		return f, ErrUnsupportedFrameSize
	}
	f.Bsid = raw[5] >> 3
	f.Payload = raw

	split := frameSize58Bytes()
	if len(raw) >= split {
		f.CRC1OK = crc.Check16(raw[2:split])
	}
	if len(raw) >= containerac3.FrameWordsFrmsizecod28*2 {
		f.CRC2OK = crc.Check16(raw[split : containerac3.FrameWordsFrmsizecod28*2])
	}
	return f, nil
}
