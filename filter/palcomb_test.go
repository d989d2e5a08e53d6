package filter

import (
	"testing"

	"github.com/ld-decode/ldcore/container/video"
)

func TestPALCombFilterSeparateLineCancelsChroma(t *testing.T) {
	f := PALCombFilter{}
	luma := int16(1000)
	chromaAmplitude := int16(200)

	prev := []int16{luma - chromaAmplitude}
	cur := []int16{luma + chromaAmplitude}
	next := []int16{luma - chromaAmplitude}

	gotLuma, gotChroma := f.SeparateLine(prev, cur, next)
	if gotLuma[0] != luma {
		t.Errorf("luma = %d, want %d", gotLuma[0], luma)
	}
	if gotChroma[0] != chromaAmplitude {
		t.Errorf("chroma = %d, want %d", gotChroma[0], chromaAmplitude)
	}
}

func TestPALCombFilterSeparateLineEdges(t *testing.T) {
	f := PALCombFilter{}
	cur := []int16{500}

	luma, chroma := f.SeparateLine(nil, cur, nil)
	if luma[0] != cur[0] {
		t.Errorf("no neighbours: luma = %d, want %d", luma[0], cur[0])
	}
	if chroma[0] != 0 {
		t.Errorf("no neighbours: chroma = %d, want 0", chroma[0])
	}

	luma, _ = f.SeparateLine([]int16{300}, cur, nil)
	if luma[0] != 400 {
		t.Errorf("prev only: luma = %d, want 400", luma[0])
	}

	luma, _ = f.SeparateLine(nil, cur, []int16{700})
	if luma[0] != 600 {
		t.Errorf("next only: luma = %d, want 600", luma[0])
	}
}

func TestPALCombFilterSeparateFieldSkipsNTSC(t *testing.T) {
	f := PALCombFilter{}
	field := video.Field{
		Standard: video.NTSC,
		Samples:  [][]int16{{1, 2, 3}},
	}
	luma, chroma := f.SeparateField(field)
	if chroma != nil {
		t.Errorf("NTSC field: chroma = %v, want nil", chroma)
	}
	if luma.Samples[0][0] != 1 || luma.Samples[0][1] != 2 || luma.Samples[0][2] != 3 {
		t.Errorf("NTSC field samples changed: got %v", luma.Samples)
	}
}

func TestPALCombFilterSeparateFieldShape(t *testing.T) {
	f := PALCombFilter{}
	field := video.Field{
		Standard: video.PAL,
		Samples: [][]int16{
			{100, 100},
			{200, 200},
			{300, 300},
		},
	}
	luma, chroma := f.SeparateField(field)
	if len(luma.Samples) != 3 || len(chroma) != 3 {
		t.Fatalf("got %d luma rows, %d chroma rows, want 3 each", len(luma.Samples), len(chroma))
	}
	if luma.Standard != video.PAL {
		t.Errorf("luma.Standard = %v, want PAL", luma.Standard)
	}
}
