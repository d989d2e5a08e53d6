/*
NAME
  bcd.go

DESCRIPTION
  bcd.go provides encoding and decoding between integers and binary-coded
  decimal, used for disc time codes (MM:SS:FF) and sector addresses.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

// Package bcd provides binary-coded decimal conversion.
package bcd

import "fmt"

// ErrInvalid is returned when a BCD byte or digit contains a nibble greater
// than 9.
var ErrInvalid = fmt.Errorf("invalid BCD digit")

// Encode converts v (0..9999) into its two-byte BCD representation, most
// significant decimal digit first. v must be in range or Encode panics,
// since callers always have a bounded, known-good disc time or address.
func Encode(v int) [2]byte {
	if v < 0 || v > 9999 {
		panic(fmt.Sprintf("bcd: value %d out of range", v))
	}
	return [2]byte{
		byte((v/1000)<<4 | (v / 100 % 10)),
		byte((v/10%10)<<4 | (v % 10)),
	}
}

// EncodeByte converts v (0..99) into a single BCD byte.
func EncodeByte(v int) byte {
	if v < 0 || v > 99 {
		panic(fmt.Sprintf("bcd: value %d out of range", v))
	}
	return byte((v/10)<<4 | (v % 10))
}

// Decode converts a two-byte BCD value back into an integer 0..9999. If any
// nibble is greater than 9, Decode returns ErrInvalid and the zero value.
func Decode(b [2]byte) (int, error) {
	d0, err := decodeNibble(b[0] >> 4)
	if err != nil {
		return 0, err
	}
	d1, err := decodeNibble(b[0] & 0xf)
	if err != nil {
		return 0, err
	}
	d2, err := decodeNibble(b[1] >> 4)
	if err != nil {
		return 0, err
	}
	d3, err := decodeNibble(b[1] & 0xf)
	if err != nil {
		return 0, err
	}
	return d0*1000 + d1*100 + d2*10 + d3, nil
}

// DecodeByte converts a single BCD byte back into an integer 0..99.
func DecodeByte(b byte) (int, error) {
	hi, err := decodeNibble(b >> 4)
	if err != nil {
		return 0, err
	}
	lo, err := decodeNibble(b & 0xf)
	if err != nil {
		return 0, err
	}
	return hi*10 + lo, nil
}

func decodeNibble(n byte) (int, error) {
	if n > 9 {
		return 0, ErrInvalid
	}
	return int(n), nil
}

// DiscTime is a disc-relative timecode expressed as minutes, seconds and
// frames (1/75s CD frames, or field numbers for LaserDisc VBI use).
type DiscTime struct {
	Min, Sec, Frame byte
}

// Encode packs t into the three BCD bytes used by CD sector addresses and
// EFM Q-subcode.
func (t DiscTime) Encode() [3]byte {
	return [3]byte{EncodeByte(int(t.Min)), EncodeByte(int(t.Sec)), EncodeByte(int(t.Frame))}
}

// DecodeDiscTime decodes three BCD bytes into a DiscTime. On any invalid
// digit, the zero DiscTime and ErrInvalid are returned.
func DecodeDiscTime(b [3]byte) (DiscTime, error) {
	m, err := DecodeByte(b[0])
	if err != nil {
		return DiscTime{}, err
	}
	s, err := DecodeByte(b[1])
	if err != nil {
		return DiscTime{}, err
	}
	f, err := DecodeByte(b[2])
	if err != nil {
		return DiscTime{}, err
	}
	return DiscTime{Min: byte(m), Sec: byte(s), Frame: byte(f)}, nil
}

// Frames returns t expressed as a total CD-frame count at 75 frames/second.
func (t DiscTime) Frames() int {
	return (int(t.Min)*60+int(t.Sec))*75 + int(t.Frame)
}

// FromFrames constructs a DiscTime from a total 75Hz frame count.
func FromFrames(n int) DiscTime {
	f := n % 75
	n /= 75
	s := n % 60
	n /= 60
	return DiscTime{Min: byte(n), Sec: byte(s), Frame: byte(f)}
}
