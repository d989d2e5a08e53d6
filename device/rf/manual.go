/*
NAME
  manual.go

DESCRIPTION
  manual.go provides ManualSource, a Source fed synthetic RF samples
  directly from software rather than a file or ALSA device. Adapted
  from device.ManualInput's io.Pipe-based manual AVDevice (every write
  must be matched by a read, or the caller blocks) to the sample-
  oriented Source interface this package's pipelines consume, so a
  pipeline.Decoder/TBCDecoder/AC3Decoder's Run loop can be exercised
  against synthetic data without a capture file on disk.

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
	"io"
	"sync"

	"github.com/ld-decode/ldcore/pipeline/config"
)

// ManualSource is a Source whose samples are supplied programmatically
// via Feed, useful for driving a pipeline's Run loop in tests without a
// capture file. Feed blocks until ReadSamples has drained the prior
// feed, matching ManualInput's one-write-per-read discipline.
type ManualSource struct {
	mu        sync.Mutex
	cond      *sync.Cond
	isRunning bool
	closed    bool
	pending   []int16
}

// NewManualSource returns a ManualSource ready to Start.
func NewManualSource() *ManualSource {
	m := &ManualSource{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Name returns the source's name.
func (m *ManualSource) Name() string { return "ManualSource" }

// Set is a no-op; ManualSource takes no file or device configuration.
func (m *ManualSource) Set(c config.Config) error { return nil }

// Start marks the source running and ready to accept Feed calls.
func (m *ManualSource) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isRunning = true
	m.closed = false
	return nil
}

// Stop marks the source stopped, waking any blocked ReadSamples with io.EOF.
func (m *ManualSource) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isRunning = false
	m.closed = true
	m.cond.Broadcast()
	return nil
}

// IsRunning reports whether Start has been called without a following Stop.
func (m *ManualSource) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isRunning
}

// Feed supplies samples to the next ReadSamples call(s), blocking until
// they have been fully consumed.
func (m *ManualSource) Feed(samples []int16) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.isRunning {
		return errors.New("rf: manual source has not been started, can't feed")
	}
	m.pending = append(m.pending, samples...)
	m.cond.Broadcast()
	for len(m.pending) > 0 && !m.closed {
		m.cond.Wait()
	}
	return nil
}

// ReadSamples reads up to len(buf) pending samples into buf, blocking
// until at least one is available or the source is stopped.
func (m *ManualSource) ReadSamples(buf []int16) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.pending) == 0 && !m.closed {
		m.cond.Wait()
	}
	if len(m.pending) == 0 && m.closed {
		return 0, io.EOF
	}
	n := copy(buf, m.pending)
	m.pending = m.pending[n:]
	m.cond.Broadcast()
	return n, nil
}
