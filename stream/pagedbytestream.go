/*
NAME
  pagedbytestream.go

DESCRIPTION
  pagedbytestream.go implements PagedByteStream, a double-buffered byte
  window over an io.Reader supporting lookahead (Peek) without consuming,
  and explicit consumption (Advance). codec/ac3's byte-stream buffer
  (spec.md §4.7) uses this to let the AC-3 sync-frame scanner look ahead
  across a frame boundary before deciding whether to consume it.

  Grounded on codec/codecutil/bytescanner.go's owned-buffer, no-raw-
  pointers design, extended with a peek/advance split so callers can
  inspect bytes before committing to consuming them (bytescanner only
  supports consuming reads).

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package stream

import "io"

// PagedByteStream is a growable, owned byte buffer fed from an io.Reader.
// Callers look ahead with Peek and PeekN, then commit to what they used
// with Advance; nothing is consumed until Advance is called.
type PagedByteStream struct {
	r    io.Reader
	buf  []byte // owned backing buffer.
	off  int    // index of the first unconsumed byte.
	fill int    // index one past the last valid byte.
	eof  bool   // the underlying reader has returned io.EOF.
}

// NewPagedByteStream returns a PagedByteStream reading from r, with an
// initial buffer sized for at least pageSize bytes of lookahead.
func NewPagedByteStream(r io.Reader, pageSize int) *PagedByteStream {
	if pageSize < 1 {
		pageSize = 1
	}
	return &PagedByteStream{r: r, buf: make([]byte, pageSize*2)}
}

// Peek returns the byte offset bytes ahead of the current position
// without consuming it. ok is false if the stream ends before reaching
// that offset.
func (s *PagedByteStream) Peek(offset int) (b byte, ok bool) {
	if !s.ensure(offset + 1) {
		return 0, false
	}
	return s.buf[s.off+offset], true
}

// PeekN returns up to n bytes starting at the current position without
// consuming them. The returned slice may be shorter than n if the stream
// ends first.
func (s *PagedByteStream) PeekN(n int) []byte {
	s.ensure(n)
	avail := s.fill - s.off
	if avail > n {
		avail = n
	}
	if avail < 0 {
		avail = 0
	}
	return s.buf[s.off : s.off+avail]
}

// Advance consumes n bytes, first reading from the underlying reader if
// fewer than n bytes are buffered; it stops at the end of the stream.
func (s *PagedByteStream) Advance(n int) {
	s.ensure(n)
	s.off += n
	if s.off > s.fill {
		s.off = s.fill
	}
}

// ensure grows/refills the buffer until at least n unconsumed bytes are
// available, or the underlying reader is exhausted. It reports whether n
// bytes became available.
func (s *PagedByteStream) ensure(n int) bool {
	for s.fill-s.off < n && !s.eof {
		s.compact()
		if s.fill == len(s.buf) {
			grown := make([]byte, len(s.buf)*2)
			copy(grown, s.buf[:s.fill])
			s.buf = grown
		}
		read, err := s.r.Read(s.buf[s.fill:])
		s.fill += read
		if err != nil {
			s.eof = true
		}
	}
	return s.fill-s.off >= n
}

// compact slides unconsumed bytes to the front of the buffer, reclaiming
// the space already-consumed bytes occupied.
func (s *PagedByteStream) compact() {
	if s.off == 0 {
		return
	}
	n := copy(s.buf, s.buf[s.off:s.fill])
	s.off = 0
	s.fill = n
}
