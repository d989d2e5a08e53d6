package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ld-decode/ldcore/container/video"
	"github.com/ld-decode/ldcore/vbi"
)

func TestBuildFieldRecordCapturesCC(t *testing.T) {
	f := video.Field{
		FrameNum: 42,
		Standard: video.NTSC,
		IsOdd:    true,
		VBI:      video.VBICode{HasCC: true, CC: [2]byte{0x80, 0x94}},
	}
	rec := vbi.NewRecord()
	fr := BuildFieldRecord(f, rec)

	if fr.FrameNum != 42 || fr.Standard != "NTSC" || !fr.IsOdd {
		t.Fatalf("unexpected record: %+v", fr)
	}
	if fr.ClosedCaption == nil {
		t.Fatal("expected closed caption to be captured")
	}
	if fr.ClosedCaption.Byte1 != 0x80 || fr.ClosedCaption.Byte2 != 0x94 {
		t.Errorf("closed caption = %+v", fr.ClosedCaption)
	}
}

func TestBuildFieldRecordNoCC(t *testing.T) {
	f := video.Field{FrameNum: 1, Standard: video.PAL}
	fr := BuildFieldRecord(f, vbi.NewRecord())
	if fr.ClosedCaption != nil {
		t.Errorf("expected no closed caption, got %+v", fr.ClosedCaption)
	}
	if fr.Standard != "PAL" {
		t.Errorf("Standard = %q, want PAL", fr.Standard)
	}
}

func TestCollectClosedCaptions(t *testing.T) {
	records := []FieldRecord{
		{FrameNum: 0},
		{FrameNum: 1, ClosedCaption: &ClosedCaption{FrameNum: 1, Byte1: 1, Byte2: 2}},
		{FrameNum: 2},
		{FrameNum: 3, ClosedCaption: &ClosedCaption{FrameNum: 3, Byte1: 3, Byte2: 4}},
	}
	ccs := CollectClosedCaptions(records)
	want := []ClosedCaption{
		{FrameNum: 1, Byte1: 1, Byte2: 2},
		{FrameNum: 3, Byte1: 3, Byte2: 4},
	}
	if diff := cmp.Diff(want, ccs); diff != "" {
		t.Errorf("CollectClosedCaptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldVBIsMarksFirstField(t *testing.T) {
	fields := []video.Field{
		{IsOdd: true, VBI: video.VBICode{Line17: 0x800DDD}},
		{IsOdd: false},
	}
	out := FieldVBIs(fields)
	if len(out) != 2 {
		t.Fatalf("got %d, want 2", len(out))
	}
	if !out[0].IsFirstField || out[1].IsFirstField {
		t.Errorf("IsFirstField = %v, %v", out[0].IsFirstField, out[1].IsFirstField)
	}
	if out[0].VBI17 != 0x800DDD {
		t.Errorf("VBI17 = %#x, want 0x800ddd", out[0].VBI17)
	}
}
