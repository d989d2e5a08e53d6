package bcd

import "testing"

func TestDecode(t *testing.T) {
	cases := []struct {
		in      [2]byte
		want    int
		wantErr bool
	}{
		{[2]byte{0x01, 0x23}, 123, false},
		{[2]byte{0x12, 0x34}, 1234, false},
		{[2]byte{0x1A, 0x34}, 0, true},
		{[2]byte{0x00, 0x00}, 0, false},
		{[2]byte{0x99, 0x99}, 9999, false},
	}
	for _, c := range cases {
		got, err := Decode(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("Decode(%v) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if err == nil && got != c.want {
			t.Errorf("Decode(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, v := range []int{0, 1, 9, 10, 99, 100, 999, 1234, 9999} {
		b := Encode(v)
		got, err := Decode(b)
		if err != nil {
			t.Fatalf("Decode(Encode(%d)) returned error: %v", v, err)
		}
		if got != v {
			t.Errorf("Decode(Encode(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestDiscTimeFrames(t *testing.T) {
	dt := DiscTime{Min: 2, Sec: 30, Frame: 10}
	frames := dt.Frames()
	got := FromFrames(frames)
	if got != dt {
		t.Errorf("FromFrames(Frames(%v)) = %v, want %v", dt, got, dt)
	}
}

func TestDiscTimeEncodeDecode(t *testing.T) {
	dt := DiscTime{Min: 12, Sec: 34, Frame: 56}
	b := dt.Encode()
	got, err := DecodeDiscTime(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != dt {
		t.Errorf("DecodeDiscTime(Encode(%v)) = %v, want %v", dt, got, dt)
	}
}
