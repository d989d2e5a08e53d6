/*
NAME
  main.go

DESCRIPTION
  ld-decode-efm is the minimal command-line wrapper around
  pipeline.Decoder: it reads a raw RF capture of a CD's EFM channel,
  runs it through the full EFM decode cascade, and writes recovered
  sector payloads (or, for a CD-DA capture, PCM audio) to the output
  path. Argument parsing is this file's only job; all decode logic
  lives in package pipeline, per spec.md §1 ("out of scope... command-
  line parsers... these appear in the repo but are plumbing around the
  core").

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
	codecefm "github.com/ld-decode/ldcore/codec/efm"
	"github.com/ld-decode/ldcore/container/audio"
	"github.com/ld-decode/ldcore/device/rf"
	"github.com/ld-decode/ldcore/pipeline"
	"github.com/ld-decode/ldcore/pipeline/config"
)

const bufSamples = 1 << 16

func main() {
	inputPath := flag.String("input", "", "raw RF capture file to decode")
	outputPath := flag.String("output", "", "output file for decoded sectors or audio")
	sampleRate := flag.Uint("rate", 28_800_000, "capture sample rate in Hz")
	format := flag.Int("format", config.FormatRaw16, "sample format: 0=raw16, 1=raw8, 2=lds10")
	asAudio := flag.Bool("audio", false, "write decoded CD-DA audio instead of data sectors")
	flacRef := flag.String("flac-reference", "", "optional FLAC archival rip of the same disc, decoded to WAV alongside the output for comparison")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "ld-decode-efm: -input and -output are required")
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
		Format:     *format,
		SampleRate: *sampleRate,
		Logger:     l,
	}
	if err := cfg.Validate(); err != nil {
		l.Fatal("invalid configuration", "error", err)
	}

	if *flacRef != "" {
		ref, err := os.ReadFile(*flacRef)
		if err != nil {
			l.Fatal("could not read FLAC reference", "error", err)
		}
		wavBytes, err := audio.DecodeReferenceToWAV(ref)
		if err != nil {
			l.Fatal("could not decode FLAC reference", "error", err)
		}
		if err := os.WriteFile(*outputPath+".reference.wav", wavBytes, 0o644); err != nil {
			l.Fatal("could not write decoded reference", "error", err)
		}
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

	dec := pipeline.NewDecoder(cfg, l, codecefm.Conceal, codecefm.Linear, false)
	err = dec.Run(src, bufSamples, func(res pipeline.EFMResult) {
		if *asAudio {
			if _, err := out.Write(res.Audio); err != nil {
				l.Error("failed writing audio", "error", err)
			}
			return
		}
		for _, sec := range res.Sectors {
			if _, err := out.Write(sec.UserData()); err != nil {
				l.Error("failed writing sector", "error", err)
			}
		}
	})
	if err != nil {
		l.Fatal("decode failed", "error", err)
	}

	l.Info("decode complete", "stats", dec.Statistics())
}
