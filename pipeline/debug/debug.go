//go:build debug && withcv
// +build debug,withcv

/*
NAME
  debug.go

DESCRIPTION
  debug.go previews decoded TBC video.Field samples in a window as the
  pipeline runs, for interactively checking sync/AGC/despackle behavior
  against a capture without writing a file and reopening it elsewhere.
  Uses the teacher's gocv window pattern (a single named gocv.Window,
  ImageToMatRGB/IMShow/WaitKey) for a single grayscale field image
  instead of a motion-filter overlay.

  field.Samples stores each sample as the original unsigned 16-bit
  capture value shifted by -32768 into a signed int16 (see
  codec/tbc/field.go's clampInt16), so scaleIRE reverses that shift
  before scaling down to 8-bit grayscale.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package debug

import (
	"image"
	"image/color"

	"github.com/ld-decode/ldcore/container/video"
	"gocv.io/x/gocv"
)

// FieldWindow previews decoded fields in a named gocv window.
type FieldWindow struct {
	window *gocv.Window
}

// NewFieldWindow opens a preview window titled name.
func NewFieldWindow(name string) *FieldWindow {
	return &FieldWindow{window: gocv.NewWindow(name)}
}

// Close releases the window.
func (w *FieldWindow) Close() error {
	return w.window.Close()
}

// Show renders one field's samples as a grayscale image and displays it.
func (w *FieldWindow) Show(f video.Field) {
	if len(f.Samples) == 0 {
		return
	}
	img := image.NewGray(image.Rect(0, 0, video.SamplesPerLine, len(f.Samples)))
	for y, row := range f.Samples {
		for x, sample := range row {
			img.SetGray(x, y, color.Gray{Y: scaleIRE(sample)})
		}
	}
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return
	}
	defer mat.Close()
	w.window.IMShow(mat)
	w.window.WaitKey(1)
}

// scaleIRE maps a field sample back to its original unsigned 16-bit
// level and down to 8-bit grayscale.
func scaleIRE(sample int16) uint8 {
	v := (int32(sample) + 32768) / 256
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
