/*
LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package rf

import "testing"

func TestLDS10RoundTrip(t *testing.T) {
	cases := [][4]uint16{
		{0, 0, 0, 0},
		{1023, 1023, 1023, 1023},
		{512, 256, 768, 1},
		{1, 2, 3, 4},
		{1023, 0, 1023, 0},
	}
	for _, v := range cases {
		b := encodeLDS10(v)
		out := make([]int16, 4)
		n := decodeLDS10(b[:], out)
		if n != 4 {
			t.Fatalf("decodeLDS10(%v) returned n=%d, want 4", v, n)
		}
		for i, orig := range v {
			want := rescaleLDS(orig)
			if out[i] != want {
				t.Errorf("case %v sample %d = %d, want %d", v, i, out[i], want)
			}
		}
	}
}

func TestRescaleLDSBounds(t *testing.T) {
	if got := rescaleLDS(0); got != -512*64 {
		t.Errorf("rescaleLDS(0) = %d, want %d", got, -512*64)
	}
	if got := rescaleLDS(1023); got != 511*64 {
		t.Errorf("rescaleLDS(1023) = %d, want %d", got, 511*64)
	}
	if got := rescaleLDS(512); got != 0 {
		t.Errorf("rescaleLDS(512) = %d, want 0", got)
	}
}

func TestDecodeLDS10IgnoresTrailingPartialGroup(t *testing.T) {
	b := encodeLDS10([4]uint16{1, 2, 3, 4})
	raw := append(b[:], 0xFF, 0xFF) // two trailing bytes, not a full group.
	out := make([]int16, 4)
	n := decodeLDS10(raw, out)
	if n != 4 {
		t.Errorf("decodeLDS10 with trailing partial bytes returned n=%d, want 4", n)
	}
}
