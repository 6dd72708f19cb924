// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bart

import "errors"

// Errors returned by Table.Insert. Lookup, Contains and Overlaps never
// fail: they signal "not found" by returning a zero value / false, not
// an error.
var (
	// ErrNullAddress is returned when the prefix carries no address
	// (a zero netip.Prefix).
	ErrNullAddress = errors.New("bart: null address")

	// ErrUnsupportedFamily is returned when the prefix's address is
	// neither IPv4 nor IPv6.
	ErrUnsupportedFamily = errors.New("bart: unsupported address family")

	// ErrPrefixLengthOutOfRange is returned when the prefix length is
	// negative or exceeds the address family's bit width.
	ErrPrefixLengthOutOfRange = errors.New("bart: prefix length out of range")

	// ErrMappedAddressOnInsert is returned when the caller tries to
	// insert an IPv4-mapped IPv6 prefix. Insert rejects these; Lookup
	// silently demaps instead (see Table.Lookup).
	ErrMappedAddressOnInsert = errors.New("bart: mapped IPv4-in-IPv6 address on insert")
)
