/*
NAME
  reclock.go

DESCRIPTION
  reclock.go implements the bit reclocker: an NCO-driven PI loop that
  locks onto the QPSK eye-pattern clock and emits exactly one symbol per
  recovered clock cycle, per spec.md §4.7.

  Translated directly from
  original_source/tools/ld-process-ac3/demodulate/Reclocker.hpp (itself
  grounded on the SDP-EP9ES QPSK demodulator IC's reference block
  diagram, per that file's own comments).

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package ac3

const (
	counterBits      = 16
	nominalFrequency = 288000
	reclockSampleRate = 2_880_000 * samplesPerCarrierCycle // 2.88e6 * 16
	nominalAdd        = (1 << counterBits) * nominalFrequency / reclockSampleRate
	maxErrorSum       = 0x7ffff
	minErrorSum       = -0x80000
	counterMask       = (1 << counterBits) - 1
)

// Reclocker recovers one bit per QPSK eye-pattern clock cycle from a
// stream of demodulated bits, using a clamped-integrator NCO and PI
// filter to track the carrier clock.
type Reclocker struct {
	clkCounter      int
	lastIn          byte
	errorVal        int
	errorSum        int
	filterOut       int
	togglePositions []int
	totalBitsIn     int
}

// NewReclocker returns a reclocker in its just-constructed state.
func NewReclocker() *Reclocker { return &Reclocker{} }

// Process consumes a run of demodulated bits and returns the reclocked
// output: exactly one bit per recovered clock cycle found within bits.
func (r *Reclocker) Process(bits []byte) []byte {
	var out []byte
	for _, dataIn := range bits {
		r.totalBitsIn++
		if dataIn != r.lastIn {
			r.togglePositions = append(r.togglePositions, r.clkCounter)
			r.lastIn = dataIn
		}

		var filterNow int
		if r.filterOut < -nominalAdd {
			r.filterOut += nominalAdd
			filterNow = -nominalAdd
		} else {
			filterNow = r.filterOut
			r.filterOut = 0
		}

		newCounter := (r.clkCounter + nominalAdd + filterNow) & counterMask
		if newCounter < r.clkCounter {
			if len(r.togglePositions) > 0 {
				togglePos := (r.togglePositions[0] + r.togglePositions[len(r.togglePositions)-1]) / 2
				r.errorVal = -(togglePos - (1 << (counterBits - 1)))
				switch {
				case r.errorVal > 0 && r.errorSum+r.errorVal > maxErrorSum:
					r.errorSum = maxErrorSum
				case r.errorVal < 0 && r.errorSum+r.errorVal < minErrorSum:
					r.errorSum = minErrorSum
				default:
					r.errorSum += r.errorVal
				}
				r.filterOut = r.errorVal/128 + r.errorSum/(1<<12)
			} else {
				r.filterOut = r.errorSum / (1 << 12)
			}
			r.togglePositions = r.togglePositions[:0]
			r.clkCounter = newCounter
			out = append(out, r.lastIn)
			continue
		}
		r.clkCounter = newCounter
	}
	return out
}
