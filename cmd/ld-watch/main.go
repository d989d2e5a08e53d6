/*
NAME
  main.go

DESCRIPTION
  ld-watch watches a hot folder for newly written raw RF capture files
  and runs each one through the EFM decode pipeline as it arrives,
  writing decoded sector payloads alongside the capture. Intended to
  run under systemd as a long-lived batch-ingestion daemon: it pings
  the systemd watchdog between captures so a wedged decode (rather than
  a crashed process) still gets noticed and restarted.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ausocean/utils/logging"
	"github.com/coreos/go-systemd/daemon"
	"github.com/fsnotify/fsnotify"
	codecefm "github.com/ld-decode/ldcore/codec/efm"
	"github.com/ld-decode/ldcore/device/rf"
	"github.com/ld-decode/ldcore/pipeline"
	"github.com/ld-decode/ldcore/pipeline/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

const bufSamples = 1 << 16

// Log rotation settings for the daemon's unattended, long-lived run.
const (
	logMaxSize    = 500 // MB
	logMaxBackups = 10
	logMaxAge     = 28 // days
)

func main() {
	watchDir := flag.String("watch", "", "directory to watch for new RF capture files")
	ext := flag.String("ext", ".raw", "capture file extension to watch for")
	sampleRate := flag.Uint("rate", 28_800_000, "capture sample rate in Hz")
	logPath := flag.String("log", "", "rotate logs to this file in addition to stderr (disabled if empty)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *watchDir == "" {
		fmt.Fprintln(os.Stderr, "ld-watch: -watch is required")
		os.Exit(1)
	}

	level := logging.Info
	if *debug {
		level = logging.Debug
	}

	var sink io.Writer = os.Stderr
	if *logPath != "" {
		sink = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   *logPath,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
		})
	}
	l := logging.New(level, sink, true)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		l.Fatal("could not create filesystem watcher", "error", err)
	}
	defer w.Close()

	if err := w.Add(*watchDir); err != nil {
		l.Fatal("could not watch directory", "error", err, "dir", *watchDir)
	}

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		l.Warning("systemd notify failed", "error", err)
	} else if ok {
		l.Debug("notified systemd: ready")
	}

	l.Info("watching for captures", "dir", *watchDir, "ext", *ext)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(ev.Name, *ext) {
				continue
			}
			l.Info("new capture detected", "path", ev.Name)
			if err := decodeCapture(ev.Name, *sampleRate, l); err != nil {
				l.Error("decode failed", "path", ev.Name, "error", err)
				continue
			}
			if ok, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog); err != nil {
				l.Warning("systemd watchdog notify failed", "error", err)
			} else if ok {
				l.Debug("notified systemd: watchdog")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			l.Error("filesystem watcher error", "error", err)
		}
	}
}

// decodeCapture runs one newly arrived capture file through the EFM
// pipeline, writing recovered sector payloads to a ".sectors" sibling
// file next to the capture.
func decodeCapture(path string, sampleRate uint, l logging.Logger) error {
	cfg := config.Config{
		Input:      config.InputFile,
		InputPath:  path,
		Format:     config.FormatRaw16,
		SampleRate: sampleRate,
		Logger:     l,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("ld-watch: invalid configuration: %w", err)
	}

	src, err := rf.NewSource(cfg, l)
	if err != nil {
		return fmt.Errorf("ld-watch: could not create RF source: %w", err)
	}
	if err := src.Set(cfg); err != nil {
		return fmt.Errorf("ld-watch: could not configure RF source: %w", err)
	}
	if err := src.Start(); err != nil {
		return fmt.Errorf("ld-watch: could not start RF source: %w", err)
	}
	defer src.Stop()

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".sectors"
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("ld-watch: could not create output file: %w", err)
	}
	defer out.Close()

	dec := pipeline.NewDecoder(cfg, l, codecefm.Conceal, codecefm.Linear, false)
	err = dec.Run(src, bufSamples, func(res pipeline.EFMResult) {
		for _, sec := range res.Sectors {
			if _, err := out.Write(sec.UserData()); err != nil {
				l.Error("failed writing sector", "error", err)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("ld-watch: decode failed: %w", err)
	}

	l.Info("decode complete", "path", path, "stats", dec.Statistics())
	return nil
}
