/*
NAME
  file.go

DESCRIPTION
  file.go provides FileSource, a Source that reads a raw RF capture
  from a file in one of the 16-bit, 8-bit, or 10-bit packed LDS wire
  formats.

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
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ausocean/utils/logging"
	"github.com/ld-decode/ldcore/pipeline/config"
)

// rawBufBytes sizes the raw byte buffer FileSource reads into before
// decoding to samples. It is a multiple of the LDS group size (5) so a
// read is never left straddling a partial group across calls.
const rawBufBytes = 1<<20 - 1 // 1 MiB less one byte, divisible by 5.

// FileSource is a Source that reads raw RF samples from a capture file.
type FileSource struct {
	l         logging.Logger
	f         *os.File
	path      string
	loop      bool
	format    int
	isRunning bool
	raw       []byte
	rawLen    int // valid bytes currently in raw, left over from a short decode.
	mu        sync.Mutex
}

// NewFileSource returns a new FileSource logging to l.
func NewFileSource(l logging.Logger) *FileSource { return &FileSource{l: l} }

// Name returns the name of the device.
func (s *FileSource) Name() string { return "rf.FileSource" }

// Set configures the FileSource from c. InputPath and Format are
// required; Loop is optional.
func (s *FileSource) Set(c config.Config) error {
	if c.InputPath == "" {
		return errors.New("rf: InputPath is required")
	}
	s.path = c.InputPath
	s.loop = c.Loop
	s.format = c.Format
	return nil
}

// Start opens the capture file for reading.
func (s *FileSource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	s.f, err = os.Open(s.path)
	if err != nil {
		return fmt.Errorf("rf: could not open capture file: %w", err)
	}
	s.raw = make([]byte, rawBufBytes)
	s.isRunning = true
	return nil
}

// Stop closes the capture file.
func (s *FileSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.isRunning = false
	return err
}

// IsRunning reports whether the FileSource has been started and not
// since stopped.
func (s *FileSource) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// sampleBytes returns how many raw bytes encode one sample for the
// FileSource's configured raw8 or raw16 format. FormatLDS10, whose ratio
// is fractional (5 bytes : 4 samples), is decoded by readLDS and does not
// use this.
func (s *FileSource) sampleBytes() int {
	switch s.format {
	case config.FormatRaw8:
		return 1
	default:
		return 2
	}
}

// ReadSamples reads and decodes up to len(buf) samples from the
// capture file, rescaling to signed 16-bit per the configured format.
func (s *FileSource) ReadSamples(buf []int16) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return 0, errors.New("rf: FileSource not started")
	}

	if s.format == config.FormatLDS10 {
		return s.readLDS(buf)
	}

	sb := s.sampleBytes()
	want := len(buf) * sb
	if want > len(s.raw) {
		want = len(s.raw)
	}
	n, err := readFull(s.f, s.raw[:want])
	if n == 0 && err == nil {
		err = io.EOF
	}
	if err == io.EOF && s.loop {
		s.l.Info("looping rf capture file")
		if _, serr := s.f.Seek(0, io.SeekStart); serr != nil {
			return 0, fmt.Errorf("rf: could not seek to start for loop: %w", serr)
		}
		n, err = readFull(s.f, s.raw[:want])
	}
	if n == 0 {
		return 0, err
	}

	switch s.format {
	case config.FormatRaw8:
		return decodeRaw8(s.raw[:n], buf), nil
	default:
		return decodeRaw16(s.raw[:n], buf), nil
	}
}

// readLDS reads whole 5-byte LDS groups and decodes them into buf,
// carrying any leftover partial group over to the next call.
func (s *FileSource) readLDS(buf []int16) (int, error) {
	wantGroups := len(buf) / ldsGroupSamples
	if wantGroups == 0 {
		return 0, nil
	}
	wantBytes := wantGroups * ldsGroupBytes
	if wantBytes > len(s.raw) {
		wantBytes = len(s.raw) - len(s.raw)%ldsGroupBytes
	}

	// Carry-over bytes from a previous partial group already sit at the
	// front of raw; read the new bytes in after them.
	start := s.rawLen
	n, err := readFull(s.f, s.raw[start:wantBytes])
	total := start + n
	if total == 0 && err == nil {
		err = io.EOF
	}
	if err == io.EOF && s.loop && total < ldsGroupBytes {
		s.l.Info("looping rf capture file")
		if _, serr := s.f.Seek(0, io.SeekStart); serr != nil {
			return 0, fmt.Errorf("rf: could not seek to start for loop: %w", serr)
		}
		n, err = readFull(s.f, s.raw[total:wantBytes])
		total += n
	}
	if total < ldsGroupBytes {
		s.rawLen = total
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	complete := total - total%ldsGroupBytes
	decoded := decodeLDS10(s.raw[:complete], buf)

	// Carry any remaining partial group to the next call.
	s.rawLen = total - complete
	if s.rawLen > 0 {
		copy(s.raw[:s.rawLen], s.raw[complete:total])
	}
	return decoded, nil
}
