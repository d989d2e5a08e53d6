/*
NAME
  main.go

DESCRIPTION
  ld-decode-ac3 is the minimal command-line wrapper around
  pipeline.AC3Decoder: it reads a raw RF capture of a LaserDisc's AC-3
  digital audio track and writes the corrected AC-3 byte stream to the
  output path, per spec.md §1's note that CLI parsing is plumbing
  around the core.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ausocean/utils/logging"
	"github.com/ld-decode/ldcore/device/rf"
	"github.com/ld-decode/ldcore/pipeline"
	"github.com/ld-decode/ldcore/pipeline/config"
)

const bufSamples = 1 << 16

func main() {
	inputPath := flag.String("input", "", "raw RF capture file to decode")
	outputPath := flag.String("output", "", "output file for the corrected AC-3 byte stream")
	sampleRate := flag.Uint("rate", 46_080_000, "capture sample rate in Hz")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "ld-decode-ac3: -input and -output are required")
		os.Exit(1)
	}

	level := logging.Info
	if *debug {
		level = logging.Debug
	}
	l := logging.New(level, os.Stderr, true)

	cfg := config.Config{
		Input:      config.InputFile,
		InputPath:  *inputPath,
		Format:     config.FormatRaw8,
		SampleRate: *sampleRate,
		Logger:     l,
	}
	if err := cfg.Validate(); err != nil {
		l.Fatal("invalid configuration", "error", err)
	}

	src, err := rf.NewSource(cfg, l)
	if err != nil {
		l.Fatal("could not create RF source", "error", err)
	}
	if err := src.Set(cfg); err != nil {
		l.Fatal("could not configure RF source", "error", err)
	}
	if err := src.Start(); err != nil {
		l.Fatal("could not start RF source", "error", err)
	}
	defer src.Stop()

	out, err := os.Create(*outputPath)
	if err != nil {
		l.Fatal("could not create output file", "error", err)
	}
	defer out.Close()

	dec := pipeline.NewAC3Decoder(l, 0)
	err = dec.Run(src, bufSamples, func(block []byte) {
		if _, err := out.Write(block); err != nil {
			l.Error("failed writing AC-3 bytes", "error", err)
		}
	})
	if err != nil {
		l.Fatal("decode failed", "error", err)
	}

	l.Info("decode complete", "stats", dec.Statistics())
}
