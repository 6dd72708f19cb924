// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bart

import (
	"net/netip"

	"github.com/gaissmai/bart/internal/art"
)

// Table is a longest-prefix-match routing table parameterized over a
// value type V. The zero value is ready to use. Table holds two
// otherwise-identical root nodes, one per address family, and routes
// every operation to the matching root by octet-decomposing the
// address.
type Table[V any] struct {
	root4 node[V]
	root6 node[V]
}

// rootFor returns the root node for addr's family.
func (t *Table[V]) rootFor(addr netip.Addr) *node[V] {
	if addr.Is4() {
		return &t.root4
	}
	return &t.root6
}

// validateInsert checks a prefix for Insert/Update: it must carry an
// address, be non-mapped, and have its length in range. It returns the
// normalized prefix (masked to its own bits) ready for octet
// decomposition.
func validateInsert(pfx netip.Prefix) (netip.Prefix, error) {
	// An out-of-range length leaves the address valid but Bits() at -1,
	// so only a missing address is reported as ErrNullAddress.
	if !pfx.Addr().IsValid() {
		return netip.Prefix{}, ErrNullAddress
	}

	addr := pfx.Addr()
	if addr.Is4In6() {
		return netip.Prefix{}, ErrMappedAddressOnInsert
	}
	if !addr.Is4() && !addr.Is6() {
		return netip.Prefix{}, ErrUnsupportedFamily
	}

	bits := pfx.Bits()
	maxBits := 32
	if addr.Is6() {
		maxBits = 128
	}
	if bits < 0 || bits > maxBits {
		return netip.Prefix{}, ErrPrefixLengthOutOfRange
	}

	return pfx.Masked(), nil
}

// Insert stores val under pfx, overwriting any value already stored
// under the exact same prefix.
func (t *Table[V]) Insert(pfx netip.Prefix, val V) error {
	pfx, err := validateInsert(pfx)
	if err != nil {
		return err
	}

	n := t.rootFor(pfx.Addr())
	octets := pfx.Addr().AsSlice()
	remaining := pfx.Bits()

	for _, octet := range octets {
		if remaining <= 8 {
			n.insertPrefix(octet, remaining, val)
			return nil
		}
		n = n.getOrInsertChild(octet)
		remaining -= 8
	}

	return nil
}

// Update applies cb to the current value stored at pfx (zero value and
// false if absent) and stores whatever it returns, creating
// intermediate nodes as needed.
func (t *Table[V]) Update(pfx netip.Prefix, cb func(oldVal V, existed bool) V) (V, error) {
	pfx, err := validateInsert(pfx)
	if err != nil {
		var zero V
		return zero, err
	}

	n := t.rootFor(pfx.Addr())
	octets := pfx.Addr().AsSlice()
	remaining := pfx.Bits()

	for _, octet := range octets {
		if remaining <= 8 {
			return n.addOrUpdatePrefix(octet, remaining, cb), nil
		}
		n = n.getOrInsertChild(octet)
		remaining -= 8
	}

	var zero V
	return zero, nil
}

// normalizeLookup demaps an IPv4-mapped-IPv6 address to plain IPv4
// before choosing a root. Insert rejects mapped prefixes outright, but
// Lookup demaps silently — the same logical address must never be
// reachable through both roots.
func normalizeLookup(addr netip.Addr) netip.Addr {
	if addr.Is4In6() {
		return addr.Unmap()
	}
	return addr
}

// Lookup returns the value of the longest prefix covering addr, and
// whether one was found.
func (t *Table[V]) Lookup(addr netip.Addr) (val V, ok bool) {
	if !addr.IsValid() {
		return val, false
	}
	addr = normalizeLookup(addr)

	n := t.rootFor(addr)
	octets := addr.AsSlice()

	var pathStack [maxTreeDepth]*node[V]
	depth := 0
	octet := octets[0]

	for {
		child := n.tryGetChild(octet)
		if child == nil {
			break
		}
		pathStack[depth] = n
		n = child
		depth++
		if depth == len(octets) {
			break
		}
		octet = octets[depth]
	}

	for {
		if n.hasPrefixes() {
			if _, v, ok := n.lpmByOctet(octet); ok {
				return v, true
			}
		}
		if depth == 0 {
			break
		}
		depth--
		octet = octets[depth]
		n = pathStack[depth]
	}

	return val, false
}

// Contains reports whether any stored prefix covers addr.
func (t *Table[V]) Contains(addr netip.Addr) bool {
	_, ok := t.Lookup(addr)
	return ok
}

// OverlapsPrefix reports whether pfx overlaps any prefix stored in t:
// either pfx is covered by a stored prefix, or pfx covers one.
func (t *Table[V]) OverlapsPrefix(pfx netip.Prefix) bool {
	if !pfx.IsValid() {
		return false
	}

	addr := pfx.Addr()
	if addr.Is4In6() {
		addr = addr.Unmap()
	}

	n := t.rootFor(addr)
	octets := addr.AsSlice()
	remaining := pfx.Bits()

	for _, octet := range octets {
		if remaining <= 8 {
			return n.overlapsPrefix(octet, remaining)
		}

		// A less-specific prefix already stored at this level covers
		// every address (and so every deeper prefix) below octet.
		if n.hasPrefixes() && n.lpmTest(art.HostIdx(uint(octet))) {
			return true
		}

		child := n.tryGetChild(octet)
		if child == nil {
			return false
		}
		n = child
		remaining -= 8
	}

	return false
}

// Overlaps reports whether t and o share any overlapping prefix, in
// either address family.
func (t *Table[V]) Overlaps(o *Table[V]) bool {
	return t.root4.overlaps(&o.root4) || t.root6.overlaps(&o.root6)
}
