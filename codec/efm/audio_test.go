package efm

import (
	"testing"

	containerefm "github.com/ld-decode/ldcore/container/efm"
)

func stereoF1(left, right [6]int16) containerefm.F1Frame {
	data := encodeStereoFrame(left, right)
	return containerefm.F1Frame{Data: data}
}

// TestSilenceTreatmentZeroesCorrupt exercises the fast silence/pass-through
// path: corrupt and missing frames are counted and zeroed.
func TestSilenceTreatmentZeroesCorrupt(t *testing.T) {
	a := NewAudioConverter(Silence, Linear, true)
	good := stereoF1([6]int16{1, 2, 3, 4, 5, 6}, [6]int16{10, 20, 30, 40, 50, 60})
	bad := containerefm.F1Frame{Corrupt: true}
	out := a.Process([]containerefm.F1Frame{good, bad})

	if len(out) != 48 {
		t.Fatalf("len(out) = %d, want 48", len(out))
	}
	for _, b := range out[24:] {
		if b != 0 {
			t.Fatal("corrupt frame was not zeroed under Silence treatment")
		}
	}
	stats := a.Statistics()
	if stats.AudioSamples != 6 || stats.CorruptSamples != 6 || stats.TotalSamples != 12 {
		t.Errorf("stats = %+v, want AudioSamples=6 CorruptSamples=6 TotalSamples=12", stats)
	}
}

// TestConcealLinearInterpolatesBetweenGoodFrames exercises P4-adjacent
// concealment behavior: a single corrupt frame between two known values is
// filled with a straight-line interpolation.
func TestConcealLinearInterpolatesBetweenGoodFrames(t *testing.T) {
	a := NewAudioConverter(Conceal, Linear, true)
	first := stereoF1([6]int16{0, 0, 0, 0, 0, 100}, [6]int16{0, 0, 0, 0, 0, 100})
	bad := containerefm.F1Frame{Corrupt: true}
	last := stereoF1([6]int16{200, 0, 0, 0, 0, 0}, [6]int16{200, 0, 0, 0, 0, 0})

	out := a.Process([]containerefm.F1Frame{first, bad, last})
	if len(out) != 72 {
		t.Fatalf("len(out) = %d, want 72", len(out))
	}
	concealed := out[24:48]
	left, _ := decodeStereoFrame([24]byte(concealed))
	// Values should rise monotonically from ~100 towards ~200.
	for i := 1; i < len(left); i++ {
		if left[i] < left[i-1] {
			t.Errorf("interpolated samples not monotonically increasing: %v", left)
			break
		}
	}
	stats := a.Statistics()
	if stats.ConcealedSamples != 6 {
		t.Errorf("ConcealedSamples = %d, want 6", stats.ConcealedSamples)
	}
}

func TestStereoFrameRoundTrip(t *testing.T) {
	left := [6]int16{1, -2, 3, -4, 5, -6}
	right := [6]int16{100, -200, 300, -400, 500, -600}
	data := encodeStereoFrame(left, right)
	gotLeft, gotRight := decodeStereoFrame(data)
	if gotLeft != left || gotRight != right {
		t.Fatalf("round trip mismatch: left=%v right=%v", gotLeft, gotRight)
	}
}
