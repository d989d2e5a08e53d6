//go:build !linux

/*
NAME
  new_other.go

DESCRIPTION
  new_other.go provides NewSource on platforms without ALSA: only
  file-backed captures are available off this module's dependency set.

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
	"fmt"

	"github.com/ausocean/utils/logging"
	"github.com/ld-decode/ldcore/pipeline/config"
)

// NewSource returns the Source implementation matching c.Input.
func NewSource(c config.Config, l logging.Logger) (Source, error) {
	switch c.Input {
	case config.InputFile:
		return NewFileSource(l), nil
	case config.InputALSA:
		return nil, fmt.Errorf("rf: ALSA input unavailable on this platform")
	default:
		return nil, fmt.Errorf("rf: unsupported input source %d", c.Input)
	}
}
