// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bart

import (
	"slices"

	"github.com/gaissmai/bart/internal/art"
	"github.com/gaissmai/bart/internal/bitset"
)

const (
	strideLen       = art.StrideLen    // 8
	maxTreeDepth    = 128 / strideLen  // 16
	maxNodeChildren = art.MaxChildren  // 256
	maxNodePrefixes = art.MaxPrefixes  // 512
)

// node is one level of the multibit trie. It owns a prefix complete
// binary tree (popcount-compressed against prefixes/values) and a
// child array (popcount-compressed against children/kids). There is no
// path compression: every intermediate stride that insert needs is
// materialized as a node and is never collapsed on remove.
type node[V any] struct {
	prefixes bitset.BitSet512
	values   []V

	children bitset.BitSet256
	kids     []*node[V]
}

// isEmpty reports whether the node stores neither prefixes nor children.
func (n *node[V]) isEmpty() bool {
	return len(n.values) == 0 && len(n.kids) == 0
}

func (n *node[V]) hasPrefixes() bool { return len(n.values) > 0 }
func (n *node[V]) hasChildren() bool { return len(n.kids) > 0 }

// prefixRank maps baseIdx to its position in values, the key of the
// popcount-compression scheme: rank(Pbs, i) - 1.
func (n *node[V]) prefixRank(baseIdx uint) int {
	return n.prefixes.Rank0(baseIdx)
}

// childRank maps octet to its position in kids.
func (n *node[V]) childRank(octet uint) int {
	return n.children.Rank0(octet)
}

// insertPrefix adds/overwrites the route at (octet, pfxLen) with val.
// Reports whether the prefix already existed.
func (n *node[V]) insertPrefix(octet byte, pfxLen int, val V) (exists bool) {
	baseIdx := art.PfxToIdx(octet, pfxLen)

	if n.prefixes.Test(baseIdx) {
		n.values[n.prefixRank(baseIdx)] = val
		return true
	}

	n.prefixes.Set(baseIdx)
	rnk := n.prefixRank(baseIdx)
	n.values = slices.Insert(n.values, rnk, val)
	return false
}

// removePrefix deletes the route at (octet, pfxLen). Reports whether it
// was present.
func (n *node[V]) removePrefix(octet byte, pfxLen int) bool {
	baseIdx := art.PfxToIdx(octet, pfxLen)

	if !n.prefixes.Test(baseIdx) {
		return false
	}

	rnk := n.prefixRank(baseIdx)
	n.values = slices.Delete(n.values, rnk, rnk+1)
	n.prefixes.Clear(baseIdx)
	return true
}

// addOrUpdatePrefix is the fused upsert: cb receives the current value
// (zero if absent) and whether it existed, and returns the value to
// store.
func (n *node[V]) addOrUpdatePrefix(octet byte, pfxLen int, cb func(old V, existed bool) V) V {
	baseIdx := art.PfxToIdx(octet, pfxLen)

	if n.prefixes.Test(baseIdx) {
		rnk := n.prefixRank(baseIdx)
		n.values[rnk] = cb(n.values[rnk], true)
		return n.values[rnk]
	}

	var zero V
	newVal := cb(zero, false)

	n.prefixes.Set(baseIdx)
	rnk := n.prefixRank(baseIdx)
	n.values = slices.Insert(n.values, rnk, newVal)
	return newVal
}

// getValByIndex returns the stored value at an exact baseIdx, if any.
func (n *node[V]) getValByIndex(baseIdx uint) (val V, ok bool) {
	if n.prefixes.Test(baseIdx) {
		return n.values[n.prefixRank(baseIdx)], true
	}
	return val, false
}

// lpmByIndex walks the prefix CBT from idx toward the root of this
// stride, in at most log2(idx)+1 bit-shifts.
func (n *node[V]) lpmByIndex(idx uint) (baseIdx uint, val V, ok bool) {
	for {
		if n.prefixes.Test(idx) {
			return idx, n.values[n.prefixRank(idx)], true
		}
		if idx == 0 {
			return 0, val, false
		}
		idx >>= 1
	}
}

// lpmByOctet is the address-lookup entry point: it starts from the
// host-route row.
func (n *node[V]) lpmByOctet(octet byte) (baseIdx uint, val V, ok bool) {
	return n.lpmByIndex(art.HostIdx(uint(octet)))
}

// lpmByPrefix starts the backtrack from an arbitrary in-stride prefix.
func (n *node[V]) lpmByPrefix(octet byte, pfxLen int) (baseIdx uint, val V, ok bool) {
	return n.lpmByIndex(art.PfxToIdx(octet, pfxLen))
}

// lpmTest is lpmByIndex without the value, used by overlapsPrefix and
// by Table.OverlapsPrefix's descent.
func (n *node[V]) lpmTest(idx uint) bool {
	for {
		if n.prefixes.Test(idx) {
			return true
		}
		if idx == 0 {
			return false
		}
		idx >>= 1
	}
}

// insertChild attaches child at octet, growing the popcount-compressed
// children array.
func (n *node[V]) insertChild(octet byte, child *node[V]) {
	addr := uint(octet)
	n.children.Set(addr)
	rnk := n.childRank(addr)
	n.kids = slices.Insert(n.kids, rnk, child)
}

// removeChild detaches the child at octet, if any. Reports whether one
// was present.
func (n *node[V]) removeChild(octet byte) bool {
	addr := uint(octet)
	if !n.children.Test(addr) {
		return false
	}
	rnk := n.childRank(addr)
	n.kids = slices.Delete(n.kids, rnk, rnk+1)
	n.children.Clear(addr)
	return true
}

// tryGetChild returns the child at octet, or nil.
func (n *node[V]) tryGetChild(octet byte) *node[V] {
	addr := uint(octet)
	if !n.children.Test(addr) {
		return nil
	}
	return n.kids[n.childRank(addr)]
}

// getOrInsertChild returns the existing child at octet, materializing
// an empty one if none exists yet. This is the only place a node is
// ever created.
func (n *node[V]) getOrInsertChild(octet byte) *node[V] {
	if c := n.tryGetChild(octet); c != nil {
		return c
	}
	c := &node[V]{}
	n.insertChild(octet, c)
	return c
}

// overlapsPrefix reports whether any stored prefix in n overlaps the
// query prefix (octet, pfxLen), by three short-circuiting tests: the
// query is covered by a stored prefix, the query covers a stored
// prefix, or the query covers a child octet.
func (n *node[V]) overlapsPrefix(octet byte, pfxLen int) bool {
	// 1. query covered by a stored prefix.
	pfxIdx := art.PfxToIdx(octet, pfxLen)
	if n.lpmTest(pfxIdx) {
		return true
	}

	// 2. query covers a stored prefix: scan routes whose allotment lies
	// entirely inside the query's host-route range.
	lb, ub := art.HostIdx(uint(octet)), lastHostIndexOfPrefix(octet, pfxLen)

	routeIdx := pfxIdx << 1
	for {
		next, ok := n.prefixes.NextSet(routeIdx)
		if !ok {
			break
		}
		routeIdx = next

		rlb, rub := art.LowerUpper(routeIdx)
		if rlb >= lb && rub <= ub {
			return true
		}
		routeIdx++
	}

	// 3. query covers a child octet.
	childOctet := uint(octet)
	for {
		next, ok := n.children.NextSet(childOctet)
		if !ok {
			break
		}
		childOctet = next

		childIdx := art.HostIdx(childOctet)
		if childIdx >= lb && childIdx <= ub {
			return true
		}
		childOctet++
	}

	return false
}

// lastHostIndexOfPrefix is the upper host-route bound of prefix
// (octet, pfxLen): the LowerUpper of its own baseIdx.
func lastHostIndexOfPrefix(octet byte, pfxLen int) uint {
	_, upper := art.LowerUpper(art.PfxToIdx(octet, pfxLen))
	return upper
}
