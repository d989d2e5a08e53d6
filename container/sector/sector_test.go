package sector

import (
	"testing"

	"github.com/ld-decode/ldcore/bcd"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := Sector{
		Address: bcd.DiscTime{Min: 1, Sec: 2, Frame: 3},
		Mode:    Mode1,
	}
	for i := range s.Payload[:2048] {
		s.Payload[i] = byte(i)
	}
	raw := Encode(s)
	if len(raw) != Size {
		t.Fatalf("Encode produced %d bytes, want %d", len(raw), Size)
	}
	got, ok := Decode(raw)
	if !ok {
		t.Fatal("Decode rejected a freshly encoded sector")
	}
	if !got.Valid {
		t.Error("Decode reported an invalid EDC on a freshly encoded sector")
	}
	if got.Address != s.Address {
		t.Errorf("Address = %+v, want %+v", got.Address, s.Address)
	}
	for i := range s.Payload[:2048] {
		if got.Payload[i] != s.Payload[i] {
			t.Fatalf("Payload[%d] = %#x, want %#x", i, got.Payload[i], s.Payload[i])
		}
	}
}

func TestDecodeBadSync(t *testing.T) {
	raw := make([]byte, Size)
	if _, ok := Decode(raw); ok {
		t.Error("Decode accepted a sector with no sync pattern")
	}
}

func TestDecodeCorruptedEDCStillEmitted(t *testing.T) {
	s := Sector{Address: bcd.DiscTime{Min: 0, Sec: 0, Frame: 1}, Mode: Mode1}
	raw := Encode(s)
	raw[16] ^= 0xFF // corrupt a user-data byte after the EDC was computed.
	got, ok := Decode(raw)
	if !ok {
		t.Fatal("Decode rejected the sector outright; spec requires emission with Valid=false")
	}
	if got.Valid {
		t.Error("Valid = true on a corrupted sector")
	}
}

func TestMode0UserDataIsFullPayload(t *testing.T) {
	s := Sector{Mode: Mode0}
	if len(s.UserData()) != 2336 {
		t.Errorf("len(UserData()) = %d, want 2336 for Mode0", len(s.UserData()))
	}
}
