/*
LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package vbi

import "testing"

func chapterCode(n uint32) uint32 {
	return 0x800DDD | (n << 12)
}

func fieldsWithChapters(spans ...[2]int) []FieldVBI {
	// spans is (chapter, length) pairs.
	var fields []FieldVBI
	for _, span := range spans {
		chapter, length := span[0], span[1]
		for i := 0; i < length; i++ {
			fields = append(fields, FieldVBI{
				VBI17:        chapterCode(uint32(chapter)),
				IsFirstField: i%2 == 0,
			})
		}
	}
	return fields
}

func TestExtractNavigationDropsShortChapter(t *testing.T) {
	fields := fieldsWithChapters([2]int{1, 600}, [2]int{2, 5}, [2]int{1, 600})
	nav := ExtractNavigation(fields)

	if len(nav.Chapters) != 1 {
		t.Fatalf("len(Chapters) = %d, want 1", len(nav.Chapters))
	}
	c := nav.Chapters[0]
	if c.StartField != 0 || c.Number != 1 {
		t.Errorf("Chapters[0] = %+v, want start=0 number=1", c)
	}
	if c.EndField != len(fields) {
		t.Errorf("EndField = %d, want %d", c.EndField, len(fields))
	}
}

func TestExtractNavigationKeepsDistinctChapters(t *testing.T) {
	fields := fieldsWithChapters([2]int{1, 20}, [2]int{2, 20})
	nav := ExtractNavigation(fields)

	if len(nav.Chapters) != 2 {
		t.Fatalf("len(Chapters) = %d, want 2", len(nav.Chapters))
	}
	if nav.Chapters[0].Number != 1 || nav.Chapters[1].Number != 2 {
		t.Errorf("Chapters = %+v, want numbers [1 2]", nav.Chapters)
	}
	if nav.Chapters[0].EndField != nav.Chapters[1].StartField {
		t.Errorf("Chapters[0].EndField = %d, want %d (Chapters[1].StartField)",
			nav.Chapters[0].EndField, nav.Chapters[1].StartField)
	}
}

func TestExtractNavigationCollectsStopCodes(t *testing.T) {
	fields := []FieldVBI{
		{VBI16: 0x82CFFF, IsFirstField: true},
		{VBI16: 0x82CFFF, IsFirstField: false},
	}
	nav := ExtractNavigation(fields)
	if !nav.StopCodeFields[0] {
		t.Error("StopCodeFields[0] = false, want true")
	}
}

func TestExtractNavigationParallelMatchesSequential(t *testing.T) {
	fields := fieldsWithChapters([2]int{1, 600}, [2]int{2, 600}, [2]int{3, 600})

	want := ExtractNavigation(fields)
	got := ExtractNavigationParallel(fields, 8)

	if len(got.Chapters) != len(want.Chapters) {
		t.Fatalf("got %d chapters, want %d", len(got.Chapters), len(want.Chapters))
	}
	for i := range want.Chapters {
		if got.Chapters[i] != want.Chapters[i] {
			t.Errorf("Chapters[%d] = %+v, want %+v", i, got.Chapters[i], want.Chapters[i])
		}
	}
	if len(got.StopCodeFields) != len(want.StopCodeFields) {
		t.Errorf("got %d stop-code fields, want %d", len(got.StopCodeFields), len(want.StopCodeFields))
	}
}
