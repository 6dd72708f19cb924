// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bitset provides the dense bitvector building block used
// throughout bart: a growable general-purpose Bitset on top of
// [github.com/bits-and-blooms/bitset], plus the fixed-size,
// zero-allocation bitsets ([BitSet256], [BitSet512]) used inside a
// trie node, where the domain is bounded and growth logic would only
// get in the way.
package bitset

import "github.com/bits-and-blooms/bitset"

// Bitset is a growable, dense vector of bits. It is a thin facade over
// [bitset.BitSet] that exposes exactly the operations the core needs
// (contains/set/try-set/clear/rank/next-set/popcount), so callers never
// reach for the wider upstream API by accident.
type Bitset struct {
	bs *bitset.BitSet
}

// New returns a Bitset with an initial capacity of length bits. The zero
// value is also usable; capacity grows on demand.
func New(length uint) *Bitset {
	return &Bitset{bs: bitset.New(length)}
}

// Contains reports whether bit i is set. Out-of-range is false.
func (b *Bitset) Contains(i uint) bool {
	if b == nil || b.bs == nil {
		return false
	}
	return b.bs.Test(i)
}

// Set ensures bit i is 1, growing capacity if needed. Idempotent.
func (b *Bitset) Set(i uint) {
	b.ensure()
	b.bs.Set(i)
}

// TrySet is like Set but reports whether the bit was previously 0.
func (b *Bitset) TrySet(i uint) bool {
	b.ensure()
	if b.bs.Test(i) {
		return false
	}
	b.bs.Set(i)
	return true
}

// Clear ensures bit i is 0. A no-op if i is out of range or already 0.
func (b *Bitset) Clear(i uint) {
	if b == nil || b.bs == nil {
		return
	}
	b.bs.Clear(i)
}

// Rank returns the number of 1-bits at positions 0..i inclusive. For
// i >= length it returns the popcount of the whole bitset.
func (b *Bitset) Rank(i uint) uint {
	if b == nil || b.bs == nil {
		return 0
	}
	return b.bs.Rank(i)
}

// NextSet returns the least j >= from with bit j set, or (0, false).
func (b *Bitset) NextSet(from uint) (uint, bool) {
	if b == nil || b.bs == nil {
		return 0, false
	}
	return b.bs.NextSet(from)
}

// Popcount returns the total number of set bits.
func (b *Bitset) Popcount() uint {
	if b == nil || b.bs == nil {
		return 0
	}
	return b.bs.Count()
}

// IsEmpty reports whether no bit is set.
func (b *Bitset) IsEmpty() bool {
	return b == nil || b.bs == nil || b.bs.None()
}

func (b *Bitset) ensure() {
	if b.bs == nil {
		b.bs = bitset.New(0)
	}
}
