package efm

import (
	"testing"

	"github.com/ld-decode/ldcore/bcd"
	containerefm "github.com/ld-decode/ldcore/container/efm"
	"github.com/ld-decode/ldcore/container/sector"
)

func f1Frame(data [24]byte) containerefm.F1Frame {
	return containerefm.F1Frame{Data: data}
}

func rawSector(t *testing.T, address bcd.DiscTime, mode sector.Mode, payload [2336]byte) []byte {
	t.Helper()
	return sector.Encode(sector.Sector{Address: address, Mode: mode, Payload: payload})
}

func feedRaw(d *SectorDispatcher, raw []byte) []sector.Sector {
	var out []sector.Sector
	for i := 0; i < len(raw); i += 24 {
		var chunk [24]byte
		copy(chunk[:], raw[i:i+24])
		d.Feed(f1Frame(chunk))
	}
	out = append(out, d.Process()...)
	return out
}

// TestSectorDispatchAllZeroPayloadMode0 exercises the "all-zero payload and
// valid address decodes as Mode-0, emitted verbatim" boundary scenario.
func TestSectorDispatchAllZeroPayloadMode0(t *testing.T) {
	d := NewSectorDispatcher()
	addr := bcd.DiscTime{Min: 0, Sec: 2, Frame: 0}
	raw := rawSector(t, addr, sector.Mode0, [2336]byte{})
	got := feedRaw(d, raw)
	if len(got) != 1 {
		t.Fatalf("got %d sectors, want 1", len(got))
	}
	if got[0].Mode != sector.Mode0 {
		t.Errorf("Mode = %v, want Mode0", got[0].Mode)
	}
	if !got[0].Valid {
		t.Error("Valid = false, want true for an all-zero Mode-0 sector")
	}
	if got[0].Address.Frames() != addr.Frames() {
		t.Errorf("Address = %+v, want %+v", got[0].Address, addr)
	}
}

// TestSectorDispatchGapPadding exercises P5: when a sector's address jumps
// ahead, padding sectors fill the gap such that next = prev + 1.
func TestSectorDispatchGapPadding(t *testing.T) {
	d := NewSectorDispatcher()

	first := rawSector(t, bcd.DiscTime{Min: 0, Sec: 0, Frame: 0}, sector.Mode1, [2336]byte{})
	got := feedRaw(d, first)
	if len(got) != 1 {
		t.Fatalf("first feed: got %d sectors, want 1", len(got))
	}

	// Jump ahead by 3 frames; expect 2 padding sectors plus the new one.
	jumpAddr := bcd.FromFrames(bcd.DiscTime{Min: 0, Sec: 0, Frame: 0}.Frames() + 3)
	second := rawSector(t, jumpAddr, sector.Mode1, [2336]byte{})
	got = feedRaw(d, second)
	if len(got) != 3 {
		t.Fatalf("second feed: got %d sectors, want 3 (2 padding + 1 real)", len(got))
	}
	prev := d.stats.LastAddress.Frames() - 3
	for _, s := range got {
		if s.Address.Frames() != prev+1 {
			t.Errorf("Address.Frames() = %d, want %d", s.Address.Frames(), prev+1)
		}
		prev = s.Address.Frames()
	}
	if got[0].Mode != sector.Mode0 || got[1].Mode != sector.Mode0 {
		t.Error("padding sectors should be Mode0")
	}
	if got[2].Address.Frames() != jumpAddr.Frames() {
		t.Error("final sector address does not match the sector that caused the gap")
	}
}

func TestSectorDispatchBadSyncDiscardsBytes(t *testing.T) {
	d := NewSectorDispatcher()
	noise := make([]byte, sector.Size+24)
	for i := range noise {
		noise[i] = byte(i % 251) // avoid an accidental sync pattern match.
	}
	feedRaw(d, noise)
	if d.stats.TotalSectors != 0 {
		t.Errorf("TotalSectors = %d, want 0 for pure noise", d.stats.TotalSectors)
	}
}
