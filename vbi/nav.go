/*
NAME
  nav.go

DESCRIPTION
  nav.go scans a disc's per-field VBI codes into a navigation chapter
  list and a set of stop-code fields, per spec.md §4.10.

  Grounded on original_source/tools/library/tbc/navigation.cpp's
  NavigationInfo constructor: walk fields in order, open a chapter on
  every chapter-number change (recorded at the pair's first-field
  index), drop chapters shorter than 10 fields or that duplicate their
  predecessor's number, then fill each kept chapter's endField from the
  next kept chapter's startField.

  ExtractNavigationParallel decodes each field's three VBI codes
  concurrently through pipeline/workerpool before running the same
  sequential scan: DecodeField is a pure function of one field's three
  codes, so fanning it out across workers is safe, but the chapter/stop-
  code scan itself walks fields in order and accumulates state across
  them (firstFieldIndex, the open chapter number), so unlike the VBI
  decode step it stays single-threaded — nothing in the pool's
  out-of-order-dispatch, in-order-drain contract fits a scan whose next
  step depends on what the previous one decided.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package vbi

import (
	"github.com/ld-decode/ldcore/container/video"
	"github.com/ld-decode/ldcore/pipeline/workerpool"
)

// MinChapterFields is the shortest chapter length (in fields) the
// extractor trusts; anything shorter is treated as a VBI bit error
// rather than a real chapter change.
const MinChapterFields = 10

// FieldVBI is one field's raw VBI codes and whether it is the first
// field of its frame pair, as required by ExtractNavigation.
type FieldVBI struct {
	VBI16, VBI17, VBI18 uint32
	IsFirstField        bool // true if this is the first field of its frame pair.
}

// ExtractNavigation scans fields in order and returns the disc's
// stop-code field set and gap-free chapter list.
func ExtractNavigation(fields []FieldVBI) video.NavigationInfo {
	records := make([]Record, len(fields))
	for i, f := range fields {
		records[i] = DecodeField(f.VBI16, f.VBI17, f.VBI18)
	}
	return scanNavigation(fields, records)
}

// ExtractNavigationParallel decodes every field's VBI record across
// numWorkers workers, then runs the same ordered chapter/stop-code scan
// ExtractNavigation does. Field order in the result is unaffected by
// decode completion order.
func ExtractNavigationParallel(fields []FieldVBI, numWorkers int) video.NavigationInfo {
	records := make([]Record, len(fields))

	jobs := make([]workerpool.Job, len(fields))
	for i, f := range fields {
		jobs[i] = workerpool.Job{FrameNumber: i, Data: f}
	}
	pool := workerpool.New(jobs, func(frameNumber int, result interface{}) {
		records[frameNumber] = result.(Record)
	})

	if numWorkers < 1 {
		numWorkers = 1
	}
	pool.Run(numWorkers, func(workerID int, job workerpool.Job) interface{} {
		f := job.Data.(FieldVBI)
		return DecodeField(f.VBI16, f.VBI17, f.VBI18)
	})

	return scanNavigation(fields, records)
}

// scanNavigation walks fields and their already-decoded records in
// order, producing the disc's stop-code field set and gap-free chapter
// list. len(records) must equal len(fields).
func scanNavigation(fields []FieldVBI, records []Record) video.NavigationInfo {
	type rawChapter struct {
		startField, endField, number int
	}

	stopCodes := make(map[int]bool)
	var rawChapters []rawChapter
	chapter := -1
	firstFieldIndex := 0

	for i, f := range fields {
		if f.IsFirstField {
			firstFieldIndex = i
		}

		rec := records[i]

		if rec.ChNo != -1 && rec.ChNo != chapter {
			chapter = rec.ChNo
			rawChapters = append(rawChapters, rawChapter{startField: firstFieldIndex, endField: -1, number: chapter})
		}

		if rec.PicStop {
			stopCodes[firstFieldIndex] = true
		}
	}

	// A dummy trailing chapter lets the last real chapter's length be
	// computed without special-casing the end of the scan.
	rawChapters = append(rawChapters, rawChapter{startField: len(fields), endField: -1, number: -1})

	var chapters []video.Chapter
	for i := 0; i < len(rawChapters)-1; i++ {
		c := rawChapters[i]
		next := rawChapters[i+1]

		if next.startField-c.startField < MinChapterFields {
			continue
		}
		if len(chapters) > 0 && c.number == chapters[len(chapters)-1].Number {
			continue
		}
		chapters = append(chapters, video.Chapter{StartField: c.startField, Number: c.number})
	}

	for i := 0; i < len(chapters)-1; i++ {
		chapters[i].EndField = chapters[i+1].StartField
	}
	if len(chapters) > 0 {
		chapters[len(chapters)-1].EndField = rawChapters[len(rawChapters)-1].startField
	}

	return video.NavigationInfo{StopCodeFields: stopCodes, Chapters: chapters}
}
