// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bart

import (
	"github.com/gaissmai/bart/internal/art"
	"github.com/gaissmai/bart/internal/bitset"
)

const hostRowOffset = 256

// overlaps reports whether n and o share any prefix↔prefix, prefix↔host,
// or descendant overlap, via a three-phase allotment walk. Recursion
// depth is bounded by the trie's max depth, so this always terminates.
func (n *node[V]) overlaps(o *node[V]) bool {
	var nAllot, oAllot bitset.BitSet512
	var nOctets, oOctets bitset.BitSet256

	// Phase 1: route <-> route, zig-zag over both prefix bitsets.
	nIdx, nOk := n.prefixes.NextSet(0)
	oIdx, oOk := o.prefixes.NextSet(0)

	for nOk || oOk {
		if nOk && (!oOk || nIdx <= oIdx) {
			if markAllot(&nAllot, &oAllot, nIdx) {
				return true
			}
			nIdx, nOk = n.prefixes.NextSet(nIdx + 1)
		} else {
			if markAllot(&oAllot, &nAllot, oIdx) {
				return true
			}
			oIdx, oOk = o.prefixes.NextSet(oIdx + 1)
		}
	}

	for k := uint(art.FirstHostIdx); k <= art.LastHostIdx; k++ {
		if nAllot.Test(k) && oAllot.Test(k) {
			return true
		}
	}

	// Phase 2: route <-> child.
	nOctet, nOk := n.children.NextSet(0)
	oOctet, oOk := o.children.NextSet(0)

	for nOk || oOk {
		if nOk && (!oOk || nOctet <= oOctet) {
			if oAllot.Test(nOctet + hostRowOffset) {
				return true
			}
			nOctets.Set(nOctet)
			nOctet, nOk = n.children.NextSet(nOctet + 1)
		} else {
			if nAllot.Test(oOctet + hostRowOffset) {
				return true
			}
			oOctets.Set(oOctet)
			oOctet, oOk = o.children.NextSet(oOctet + 1)
		}
	}

	// Phase 3: child <-> child, only where both sides have a child at
	// the same octet.
	for octet := uint(0); ; octet++ {
		next, found := nOctets.NextSet(octet)
		if !found {
			break
		}
		octet = next
		if oOctets.Test(octet) {
			nc := n.tryGetChild(byte(octet))
			oc := o.tryGetChild(byte(octet))
			if nc != nil && oc != nil && nc.overlaps(oc) {
				return true
			}
		}
	}

	return false
}

// markAllot marks the allotment range of prefix idx (owned by the X
// side) into xAllot, reporting true the instant it finds a cell the Y
// side had already marked — the fast-exit of phase 1.
func markAllot(xAllot, yAllot *bitset.BitSet512, idx uint) bool {
	lb, ub := art.LowerUpper(idx)
	for k := lb; k <= ub; k++ {
		if yAllot.Test(k) {
			return true
		}
		xAllot.Set(k)
	}
	return false
}
