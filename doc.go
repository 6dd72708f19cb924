// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bart implements a Balanced Adaptive Routing Table: an
// in-memory longest-prefix-match structure for both IPv4 and IPv6,
// built on a popcount-compressed complete binary tree per trie level.
//
// Table[V] is the only exported type. It holds two otherwise-identical
// root nodes, one per address family, and is ready to use at its zero
// value:
//
//	var t bart.Table[string]
//	t.Insert(netip.MustParsePrefix("192.168.0.0/24"), "local")
//	v, ok := t.Lookup(netip.MustParseAddr("192.168.0.42"))
//
// Every node is a fixed-width prefix bitset paired with a compact,
// rank-indexed value list, plus a child bitset/list pair for the next
// trie level. There is no path compression: every stride an inserted
// prefix passes through gets its own node, and Table offers no delete
// operation, so nodes are never reclaimed. This keeps LPM and Overlaps a straight bit-shift
// walk over cache-resident words instead of a pointer chase through
// collapsed path segments.
//
// Table is not safe for concurrent mutation; concurrent read-only
// access is safe as long as nothing is mutating at the same time.
package bart
