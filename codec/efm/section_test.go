package efm

import (
	"testing"

	containerefm "github.com/ld-decode/ldcore/container/efm"
)

func syncFrame(marker containerefm.SubcodeMarker) containerefm.F3Frame {
	return containerefm.F3Frame{Marker: marker}
}

func plainFrame() containerefm.F3Frame {
	return containerefm.F3Frame{Marker: containerefm.SubcodeNone}
}

// TestCleanSectionSync exercises P1 against a realistic subcode stream —
// every section carries SYNC0 at frame 0 and SYNC1 at frame 1, followed by
// 96 plain frames, repeating — and asserts every emitted section (not just
// the first) starts on SYNC0.
func TestCleanSectionSync(t *testing.T) {
	s := NewSectionSync()
	var sections []containerefm.Section
	feed := func(f containerefm.F3Frame) {
		if sec, done := s.Process(f); done {
			sections = append(sections, sec)
		}
	}

	const numSections = 4
	for i := 0; i < numSections; i++ {
		feed(syncFrame(containerefm.SubcodeSync0))
		feed(syncFrame(containerefm.SubcodeSync1))
		for j := 0; j < 96; j++ {
			feed(plainFrame())
		}
	}
	// One more section's SYNC0/SYNC1 so the last fed section's lookahead
	// sync frame is actually observed and the section is emitted.
	feed(syncFrame(containerefm.SubcodeSync0))
	feed(syncFrame(containerefm.SubcodeSync1))

	if len(sections) != numSections {
		t.Fatalf("got %d sections, want %d", len(sections), numSections)
	}
	for i, sec := range sections {
		if sec.Frames[0].Marker != containerefm.SubcodeSync0 {
			t.Errorf("section %d: first frame marker = %v, want SubcodeSync0", i, sec.Frames[0].Marker)
		}
		if sec.Frames[1].Marker != containerefm.SubcodeSync1 {
			t.Errorf("section %d: second frame marker = %v, want SubcodeSync1", i, sec.Frames[1].Marker)
		}
	}
}

func TestSyncRecoveryThenLost(t *testing.T) {
	s := NewSectionSync()
	s.Process(syncFrame(containerefm.SubcodeSync0))
	for i := 0; i < 97; i++ {
		s.Process(plainFrame())
	}
	// Frame 98 (the would-be next sync) is not a marker: enters recovery.
	s.Process(plainFrame())
	if s.state != sectionSyncRecovery {
		t.Fatalf("state = %v, want sectionSyncRecovery", s.state)
	}
	// Feed enough frames through 5 failed recovery attempts to reach
	// sectionFindInitialSync0 again via sectionSyncLost.
	for i := 0; i < containerefm.SectionLength*(maxRecoveryAttempts+2); i++ {
		s.Process(plainFrame())
	}
	if s.state != sectionFindInitialSync0 {
		t.Errorf("state = %v, want sectionFindInitialSync0 after exhausting recovery attempts", s.state)
	}
	if s.stats.DiscardedFrames == 0 {
		t.Error("DiscardedFrames = 0, want frames discarded after sync loss")
	}
}
