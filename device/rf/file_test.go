/*
LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rf

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/utils/logging"
	"github.com/ld-decode/ldcore/pipeline/config"
)

func writeRaw16Capture(t *testing.T, samples []int16) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.raw16")
	buf := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFileSourceReadsRaw16(t *testing.T) {
	path := writeRaw16Capture(t, []int16{10, -10, 32767, -32768})

	s := NewFileSource((*logging.TestLogger)(t))
	if err := s.Set(config.Config{InputPath: path, Format: config.FormatRaw16}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	buf := make([]int16, 4)
	n, err := s.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples: %v", err)
	}
	if n != 4 {
		t.Fatalf("n = %d, want 4", n)
	}
	want := []int16{10, -10, 32767, -32768}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %d, want %d", i, buf[i], want[i])
		}
	}
}

func TestFileSourceLoopsOnEOF(t *testing.T) {
	path := writeRaw16Capture(t, []int16{1, 2})

	s := NewFileSource((*logging.TestLogger)(t))
	if err := s.Set(config.Config{InputPath: path, Format: config.FormatRaw16, Loop: true}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	buf := make([]int16, 2)
	for i := 0; i < 3; i++ {
		n, err := s.ReadSamples(buf)
		if err != nil {
			t.Fatalf("iteration %d: ReadSamples: %v", i, err)
		}
		if n != 2 || buf[0] != 1 || buf[1] != 2 {
			t.Fatalf("iteration %d: got %v (n=%d), want [1 2]", i, buf, n)
		}
	}
}

func TestFileSourceReadsLDS10AcrossCalls(t *testing.T) {
	b1 := encodeLDS10([4]uint16{100, 200, 300, 400})
	b2 := encodeLDS10([4]uint16{500, 600, 700, 800})
	path := filepath.Join(t.TempDir(), "capture.lds")
	if err := os.WriteFile(path, append(b1[:], b2[:]...), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := NewFileSource((*logging.TestLogger)(t))
	if err := s.Set(config.Config{InputPath: path, Format: config.FormatLDS10}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	// Requesting fewer samples than a whole group returns 0 without reading.
	buf := make([]int16, 2)
	n, err := s.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples: %v", err)
	}
	if n != 0 {
		t.Fatalf("n = %d, want 0 (less than one LDS group requested)", n)
	}

	bigBuf := make([]int16, 8)
	n, err = s.ReadSamples(bigBuf)
	if err != nil {
		t.Fatalf("ReadSamples: %v", err)
	}
	if n != 8 {
		t.Fatalf("n = %d, want 8", n)
	}
}
