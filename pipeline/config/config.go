/*
NAME
  config.go

DESCRIPTION
  config.go defines Config, the set of parameters a decode pipeline is
  run with: which RF source to read from, its sample format and rate,
  which standard (NTSC/PAL) to assume, and the worker pool size used
  for parallel per-frame stages.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config contains the configuration settings for the decode
// pipelines (codec/ac3, codec/tbc, codec/efm).
package config

import (
	"errors"

	"github.com/ausocean/utils/logging"
)

var errInputPathRequired = errors.New("config: InputPath is required when Input is InputFile")

// Enums to define RF input sources and sample formats.
const (
	// Indicates no option has been set.
	NothingDefined = iota

	// Input sources.
	InputFile
	InputALSA
)

const (
	// Sample formats.
	FormatRaw16 = iota // signed 16-bit little-endian samples.
	FormatRaw8         // unsigned 8-bit samples (AC-3, cxADC captures).
	FormatLDS10        // 10-bit packed LDS, 5 input bytes -> 4 samples.
)

// Standard selects NTSC or PAL field geometry for the TBC pipeline.
type Standard int

const (
	NTSC Standard = iota
	PAL
)

// Config provides the parameters a pipeline run needs. A new Config
// must be passed to each pipeline constructor; Validate fills in
// defaults for SampleRate and Channels.
type Config struct {
	// Input selects the RF source. See the Input* enums.
	Input uint8

	// InputPath is the RF capture file location, required when Input is
	// InputFile.
	InputPath string

	// Format is the RF sample format. See the Format* enums.
	Format int

	// SampleRate is the capture's fixed sample rate in Hz (e.g.
	// 28_800_000 for cxADC, 40_000_000 for DomDup, 46_080_000 for AC-3).
	SampleRate uint

	// Channels is the number of interleaved RF channels in the capture.
	Channels uint

	Standard Standard

	// PerformAutoRange enables the TBC core's AGC stage.
	PerformAutoRange bool

	// PerformDespackle enables the TBC core's dropout replacement stage.
	PerformDespackle bool

	// Loop restarts reading of input after io.EOF.
	Loop bool

	// OutputPath is the destination for decoded output; required by the
	// tools wrapping the pipelines.
	OutputPath string

	// WorkerPoolSize is the number of concurrent workers the per-field
	// worker pool (PAL colour filter, VBI line decode) dispatches to. The
	// pool entry points (pipeline.SeparatePALFields,
	// vbi.ExtractNavigationParallel) run a single worker for a count below 1.
	WorkerPoolSize uint

	// Logger holds an implementation of the Logger interface used
	// throughout the pipelines. This must be set.
	Logger logging.Logger

	// LogLevel is the pipeline logging verbosity level. Valid values are
	// defined by enums from the logging package: logging.Debug,
	// logging.Info, logging.Warning, logging.Error, logging.Fatal.
	LogLevel int8
}

const (
	defaultSampleRate     = 28_800_000
	defaultWorkerPoolSize = 0
)

// Validate checks Config's fields and defaults settings where
// unset or invalid.
func (c *Config) Validate() error {
	if c.SampleRate == 0 {
		c.LogInvalidField("SampleRate", defaultSampleRate)
		c.SampleRate = defaultSampleRate
	}
	if c.Channels == 0 {
		c.Channels = 1
	}
	if c.Input == InputFile && c.InputPath == "" {
		return errInputPathRequired
	}
	return nil
}

func (c *Config) LogInvalidField(name string, def interface{}) {
	if c.Logger == nil {
		return
	}
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
