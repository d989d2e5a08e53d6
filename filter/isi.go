/*
NAME
  isi.go

DESCRIPTION
  isi.go implements the inter-symbol-interference (ISI) pulse-shaping
  filter spec.md §2 names as the first stage of the EFM pipeline
  ("Samples → ISI filter → PLL/ZC detector → ..."), compensating for
  the oversampled RF channel's frequency response before the PLL
  recovers T-values.

  The FIR design (windowed-sinc lowpass, FFT-based fast convolution) is
  grounded on codec/pcm/filters.go's newLoHiFilter/fastConvolve, the
  same construction applied here to a raw RF sample stream instead of
  decoded PCM audio.

AUTHOR
  Ella Pietraroia <ella@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package filter

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// ISIFilter compensates for inter-symbol interference by convolving an
// RF sample stream with a windowed-sinc FIR lowpass tuned to the
// channel's nominal bit rate.
type ISIFilter struct {
	coeffs []float64
}

// NewISIFilter returns an ISI filter for a capture at sampleRate Hz,
// with a lowpass cutoff at cutoffHz (typically the nominal channel bit
// rate) and the given odd-or-even tap count.
func NewISIFilter(sampleRate, cutoffHz float64, taps int) *ISIFilter {
	fd := cutoffHz / sampleRate
	size := taps + 1
	coeffs := make([]float64, size)
	b := 2 * math.Pi * fd
	winData := window.FlatTop(size)
	for n := 0; n < taps/2; n++ {
		c := float64(n) - float64(taps)/2
		y := math.Sin(c*b) / (math.Pi * c)
		coeffs[n] = y * winData[n]
		coeffs[size-1-n] = coeffs[n]
	}
	coeffs[taps/2] = 2 * fd * winData[taps/2]
	return &ISIFilter{coeffs: coeffs}
}

// Apply convolves samples with the filter's FIR coefficients, clamping
// the result back to the int16 range and truncating to len(samples).
func (f *ISIFilter) Apply(samples []int16) []int16 {
	if len(samples) == 0 {
		return nil
	}
	in := make([]float64, len(samples))
	for i, s := range samples {
		in[i] = float64(s)
	}
	out := isiConvolve(in, f.coeffs)

	result := make([]int16, len(samples))
	for i := range result {
		v := out[i]
		switch {
		case v > math.MaxInt16:
			v = math.MaxInt16
		case v < math.MinInt16:
			v = math.MinInt16
		}
		result[i] = int16(v)
	}
	return result
}

// isiConvolve computes the linear convolution of x and h via zero-padded
// FFT multiplication, matching codec/pcm/filters.go's fastConvolve.
func isiConvolve(x, h []float64) []float64 {
	convLen := len(x) + len(h) - 1
	padLen := int(math.Pow(2, math.Ceil(math.Log2(float64(convLen)))))

	xPad := make([]float64, padLen)
	copy(xPad, x)
	hPad := make([]float64, padLen)
	copy(hPad, h)

	xFFT, hFFT := fft.FFTReal(xPad), fft.FFTReal(hPad)
	yFFT := make([]complex128, padLen)
	for i := range xFFT {
		yFFT[i] = xFFT[i] * hFFT[i]
	}

	iy := fft.IFFT(yFFT)
	y := make([]float64, convLen)
	for i := range y {
		y[i] = real(iy[i])
	}
	return y
}
