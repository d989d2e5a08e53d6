/*
NAME
  metadata.go

DESCRIPTION
  metadata.go defines the per-field metadata record spec.md §3/§6 names
  ("a structured record per field... serialized as JSON") and the
  closed-caption byte-stream assembler from SPEC_FULL.md §4.11. The
  record is read-only once produced (spec.md §3's ownership rule:
  "metadata records are shared by read-only reference... the core never
  mutates metadata it did not produce") and carries everything the
  out-of-scope JSON/SQLite export layer needs without this package
  implementing that layer itself.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package pipeline

import (
	"github.com/ld-decode/ldcore/container/video"
	"github.com/ld-decode/ldcore/vbi"
)

// VITSMetrics is the video-in-the-sync test-signal measurement slot
// original_source's ld-export-metadata populates into its vits_metrics
// table. Computing it requires the full chroma decode spec.md's
// Non-goals exclude ("disc-geometry modelling beyond VBI/subcode"), so
// this is always the zero value; it exists only so FieldRecord's JSON
// shape matches the schema table in spec.md §6 in full.
type VITSMetrics struct {
	WhiteSNR float64 `json:"white_snr"`
	BlackSNR float64 `json:"black_snr"`
}

// ClosedCaption is one field's decoded EIA-608 byte pair, addressed by
// the field it came from.
type ClosedCaption struct {
	FrameNum int  `json:"frame_num"`
	Byte1    byte `json:"byte1"`
	Byte2    byte `json:"byte2"`
}

// FieldRecord is the structured per-field metadata record spec.md §3
// and §6 describe: frame number, time code, dropout map and closed
// caption, plus the VBI record decoded from the field's three line
// codes. It is produced once per field by BuildFieldRecord and never
// mutated afterward.
type FieldRecord struct {
	FrameNum int    `json:"frame_num"`
	Standard string `json:"standard"`
	IsOdd    bool   `json:"is_odd"`

	VBI vbi.Record `json:"vbi"`

	Dropouts []video.DropoutRun `json:"dropouts"`

	ClosedCaption *ClosedCaption `json:"closed_caption,omitempty"`

	VITS VITSMetrics `json:"vits_metrics"`
}

// standardName renders a video.Standard the way a relational schema's
// capture table would store it.
func standardName(s video.Standard) string {
	if s == video.PAL {
		return "PAL"
	}
	return "NTSC"
}

// BuildFieldRecord assembles one field's metadata record from the
// field itself and the VBI record already decoded from its three line
// codes (vbi.DecodeField or vbi.MergeFrame, depending on whether the
// caller wants field- or frame-level VBI granularity).
func BuildFieldRecord(f video.Field, rec vbi.Record) FieldRecord {
	fr := FieldRecord{
		FrameNum: f.FrameNum,
		Standard: standardName(f.Standard),
		IsOdd:    f.IsOdd,
		VBI:      rec,
		Dropouts: f.Dropouts,
	}
	if f.VBI.HasCC {
		fr.ClosedCaption = &ClosedCaption{FrameNum: f.FrameNum, Byte1: f.VBI.CC[0], Byte2: f.VBI.CC[1]}
	}
	return fr
}

// FieldVBIs converts a run of fields into the vbi.FieldVBI slice
// ExtractNavigation expects. The odd field of each pair is treated as
// the frame's first field (IEC 60857's transmission order puts the odd
// field first for both NTSC and PAL), matching the assumption
// vbi.ExtractNavigation's chapter-open logic depends on.
func FieldVBIs(fields []video.Field) []vbi.FieldVBI {
	out := make([]vbi.FieldVBI, len(fields))
	for i, f := range fields {
		out[i] = vbi.FieldVBI{
			VBI16:        f.VBI.Line16,
			VBI17:        f.VBI.Line17,
			VBI18:        f.VBI.Line18,
			IsFirstField: f.IsOdd,
		}
	}
	return out
}

// CollectClosedCaptions gathers every field's decoded caption byte
// pair, in field order, into the stream an external caption formatter
// would consume (the formatter itself is out of scope per spec.md §1).
func CollectClosedCaptions(records []FieldRecord) []ClosedCaption {
	var out []ClosedCaption
	for _, r := range records {
		if r.ClosedCaption != nil {
			out = append(out, *r.ClosedCaption)
		}
	}
	return out
}
