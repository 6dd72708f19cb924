// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package art

import "testing"

func TestPfxToIdxRoundTrip(t *testing.T) {
	for pfxLen := 0; pfxLen <= 8; pfxLen++ {
		mask := HostMask(pfxLen)
		for o := 0; o < 256; o++ {
			octet := byte(o)
			if octet&mask != 0 {
				continue // only aligned octets are valid prefixes
			}
			idx := PfxToIdx(octet, pfxLen)
			gotOctet, gotLen := IdxToPfx(idx)
			if gotOctet != octet || gotLen != pfxLen {
				t.Fatalf("IdxToPfx(PfxToIdx(%d,%d)) = (%d,%d), want (%d,%d)",
					octet, pfxLen, gotOctet, gotLen, octet, pfxLen)
			}
		}
	}
}

func TestHostIdxConsistency(t *testing.T) {
	for o := 0; o < 256; o++ {
		if got, want := HostIdx(uint(o)), PfxToIdx(byte(o), 8); got != want {
			t.Errorf("HostIdx(%d) = %d, want %d", o, got, want)
		}
	}
}

func TestBaseIndexKnownValues(t *testing.T) {
	tests := []struct {
		octet  byte
		pfxLen int
		want   uint
	}{
		{0, 0, 1},
		{0, 1, 2},
		{128, 1, 3},
		{0, 8, 256},
		{255, 8, 511},
	}
	for _, tt := range tests {
		if got := PfxToIdx(tt.octet, tt.pfxLen); got != tt.want {
			t.Errorf("PfxToIdx(%d,%d) = %d, want %d", tt.octet, tt.pfxLen, got, tt.want)
		}
	}
}

func TestLowerUpper(t *testing.T) {
	// 192.168.0.0/26 as the last octet: octet=0, pfxLen=2 in-stride ->
	// covers host routes 0..63 within this stride.
	idx := PfxToIdx(0, 2)
	lb, ub := LowerUpper(idx)
	if lb != 256 || ub != 256+63 {
		t.Fatalf("LowerUpper(%d) = (%d,%d), want (256,319)", idx, lb, ub)
	}

	// full host route covers only itself.
	idx = PfxToIdx(42, 8)
	lb, ub = LowerUpper(idx)
	if lb != 256+42 || ub != 256+42 {
		t.Fatalf("LowerUpper(%d) = (%d,%d), want (%d,%d)", idx, lb, ub, 256+42, 256+42)
	}
}

func TestHostMask(t *testing.T) {
	if HostMask(0) != 0xff {
		t.Errorf("HostMask(0) = %#x, want 0xff", HostMask(0))
	}
	if HostMask(8) != 0 {
		t.Errorf("HostMask(8) = %#x, want 0", HostMask(8))
	}
	if HostMask(2) != 0x3f {
		t.Errorf("HostMask(2) = %#x, want 0x3f", HostMask(2))
	}
}
