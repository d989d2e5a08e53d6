/*
NAME
  main.go

DESCRIPTION
  ld-decode-tbc is the minimal command-line wrapper around
  pipeline.TBCDecoder: it reads a raw RF capture of a LaserDisc's
  composite video track, runs the full VSYNC/HSYNC/burst-phase/bicubic
  TBC cascade, and writes each decoded field's samples (signed 16-bit,
  row-major) to the output path, per spec.md §1's note that CLI parsing
  is plumbing around the core.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/ausocean/utils/logging"
	"github.com/ld-decode/ldcore/container/video"
	"github.com/ld-decode/ldcore/device/rf"
	"github.com/ld-decode/ldcore/pipeline"
	"github.com/ld-decode/ldcore/pipeline/config"
)

const bufSamples = 1 << 16

func main() {
	inputPath := flag.String("input", "", "raw RF capture file to decode")
	outputPath := flag.String("output", "", "output file for decoded video field samples")
	sampleRate := flag.Uint("rate", 40_000_000, "capture sample rate in Hz")
	pal := flag.Bool("pal", false, "decode as PAL instead of NTSC")
	autoRange := flag.Bool("autorange", false, "enable AGC auto-ranging")
	despackle := flag.Bool("despackle", true, "enable dropout replacement")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "ld-decode-tbc: -input and -output are required")
		os.Exit(1)
	}

	level := logging.Info
	if *debug {
		level = logging.Debug
	}
	l := logging.New(level, os.Stderr, true)

	standard := config.NTSC
	if *pal {
		standard = config.PAL
	}

	cfg := config.Config{
		Input:            config.InputFile,
		InputPath:        *inputPath,
		Format:           config.FormatRaw16,
		SampleRate:       *sampleRate,
		Standard:         standard,
		PerformAutoRange: *autoRange,
		PerformDespackle: *despackle,
		Logger:           l,
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
	w := bufio.NewWriter(out)
	defer w.Flush()

	dec := pipeline.NewTBCDecoder(cfg, l)
	fields := 0
	err = dec.Run(src, bufSamples, func(f video.Field) {
		fields++
		if writeErr := writeField(w, f); writeErr != nil {
			l.Error("failed writing field", "error", writeErr)
		}
	})
	if err != nil {
		l.Fatal("decode failed", "error", err)
	}

	l.Info("decode complete", "fields", fields)
}

func writeField(w *bufio.Writer, f video.Field) error {
	for _, row := range f.Samples {
		for _, sample := range row {
			if err := binary.Write(w, binary.LittleEndian, sample); err != nil {
				return err
			}
		}
	}
	return nil
}
