/*
NAME
  stage.go

DESCRIPTION
  stage.go defines the Stage lifecycle shared by every demodulation/FEC/
  container stage in the pipeline (codec/efm's PLL and F3 assembler,
  codec/ac3's QPSK framer and block assembler, codec/tbc's line finders).

  This replaces three patterns the original C++ pipeline used that don't
  translate well to Go (spec.md §9, REDESIGN FLAGS): raw pointers between
  stages become owned buffers with index windows (PagedByteStream and
  codec/codecutil's ByteScanner), an inheritance hierarchy of stage base
  classes becomes the Stage interface plus per-stage state structs, and
  exception-driven end-of-stream becomes the Result type below.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

// Package stream provides the Stage lifecycle and the PagedByteStream
// buffer shared across the EFM, AC-3 and TBC decoding pipelines.
package stream

// Stage is the lifecycle every pipeline stage implements: Reset returns
// the stage to its just-constructed state, and Statistics reports a
// snapshot of its running counters. Consume/produce signatures are
// necessarily stage-specific (a PLL consumes samples and produces bits; a
// block assembler consumes frames and produces blocks), so those methods
// live on the concrete stage type rather than this interface; Stage is
// the part every stage has in common.
type Stage interface {
	Reset()
	Statistics() Statistics
}

// Statistics is the counter snapshot every stage exposes. Concrete stages
// embed it and add domain-specific fields (codec/efm's section stats,
// rs.CIRCStats, codec/ac3's QPSK voter score).
type Statistics struct {
	Consumed int64
	Produced int64
	Errors   int64
}

// Result is the outcome of a single stage step. It replaces the
// original's exception-driven end-of-stream signalling: a stage that has
// run out of input sets Done rather than panicking or returning a
// sentinel error a caller must know to compare against.
type Result struct {
	// Done reports that the stage has no more output because its input
	// is exhausted — not a failure.
	Done bool
	// Err is set if the step failed for a reason other than exhaustion.
	// Done and Err are never both set.
	Err error
}

// Ok reports whether the step produced output (neither done nor errored).
func (r Result) Ok() bool { return !r.Done && r.Err == nil }
