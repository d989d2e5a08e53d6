package rs

import "testing"

func TestEncodeDecodeNoErrors(t *testing.T) {
	c := NewCodec(36, 32, 0)
	msg := make([]byte, 32)
	for i := range msg {
		msg[i] = byte(i * 3)
	}
	cw, err := c.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	res, ok := c.Decode(cw, nil)
	if !ok {
		t.Fatal("Decode failed on an untouched codeword")
	}
	if res.Errors != 0 || res.Erasures != 0 {
		t.Errorf("Errors=%d Erasures=%d, want 0,0", res.Errors, res.Erasures)
	}
	got := res.Corrected[:32]
	for i := range msg {
		if got[i] != msg[i] {
			t.Fatalf("Corrected[%d] = %#x, want %#x", i, got[i], msg[i])
		}
	}
}

func TestDecodeSingleErasure(t *testing.T) {
	c := NewCodec(36, 32, 0)
	msg := make([]byte, 32)
	for i := range msg {
		msg[i] = byte(i + 1)
	}
	cw, err := c.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	damaged := append([]byte(nil), cw...)
	damaged[5] = 0xff
	res, ok := c.Decode(damaged, []int{5})
	if !ok {
		t.Fatal("Decode failed to correct a single known erasure")
	}
	for i := range msg {
		if res.Corrected[i] != msg[i] {
			t.Fatalf("Corrected[%d] = %#x, want %#x", i, res.Corrected[i], msg[i])
		}
	}
}

func TestDecodeUncorrectable(t *testing.T) {
	c := NewCodec(36, 32, 0)
	msg := make([]byte, 32)
	cw, err := c.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// nsym=4, so five simultaneous erasures exceeds the correction budget.
	if _, ok := c.Decode(cw, []int{0, 1, 2, 3, 4}); ok {
		t.Error("Decode reported success with more erasures than parity allows")
	}
}

func TestEncodeWrongLength(t *testing.T) {
	c := NewCodec(36, 32, 0)
	if _, err := c.Encode(make([]byte, 10)); err == nil {
		t.Error("Encode accepted a message of the wrong length")
	}
}

func TestCIRCDecodeC1RoundTrip(t *testing.T) {
	msg := make([]byte, 28)
	for i := range msg {
		msg[i] = byte(i * 5)
	}
	cw, err := C1.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var row [32]byte
	copy(row[:], cw)
	var stats CIRCStats
	data, ok := DecodeC1(row, nil, &stats)
	if !ok {
		t.Fatal("DecodeC1 failed on a clean codeword")
	}
	if stats.Valid != 1 {
		t.Errorf("stats.Valid = %d, want 1", stats.Valid)
	}
	for i := range msg {
		if data[i] != msg[i] {
			t.Fatalf("data[%d] = %#x, want %#x", i, data[i], msg[i])
		}
	}
}
