// Package routingtable implements an in-memory IP routing table, backed by
// either a bit-granular PrefixTrie or a path-compressed RadixTrie, both
// satisfying the RoutingTable contract: longest-prefix-match lookup plus
// ancestor, descendant, prefix-match and wildcard-range queries over
// installed Routes.
package routingtable

import "inet.af/netaddr"

// RoutingTable is the operation set both PrefixTrie and RadixTrie satisfy.
// Every operation accepts an attribute filter; pass nil for no filtering.
//
// prefix arguments accept either a string in CIDR form or an already
// parsed netaddr.IPPrefix. Textual inputs are non-strict: host bits set
// beyond the mask are dropped before the bit-string is extracted.
type RoutingTable interface {
	// Add installs Route(prefix, attrs). A Route identical to one already
	// present (same prefix, same attrs) is a no-op.
	Add(prefix any, attrs Attrs) error

	// Get returns the longest-prefix-match bucket along the path of
	// prefix, filtered by attrs. Returns an empty slice and a nil error if
	// nothing on the path matches.
	Get(prefix any, attrs Attrs) ([]Route, error)

	// Show returns routes matching prefix/attrs/asRoot per §4.3: with no
	// prefix, every installed Route; with prefix only, the exact-match
	// bucket; with prefix and asRoot, every Route in the subtree rooted at
	// prefix (inclusive). asRoot without prefix is a usage error.
	Show(prefix any, asRoot bool, attrs Attrs) ([]Route, error)

	// Parent returns the bucket at the deepest strict ancestor of prefix.
	// Fails with KindNoExactMatch if prefix itself has no bucket.
	Parent(prefix any, attrs Attrs) ([]Route, error)

	// Children returns every Route strictly descended from prefix. Fails
	// with KindNoExactMatch if prefix itself has no bucket.
	Children(prefix any, attrs Attrs) ([]Route, error)

	// Match returns every Route on the path from the root to prefix,
	// including at prefix itself if present.
	Match(prefix any, attrs Attrs) ([]Route, error)

	// WildcardMatch returns every Route whose prefix boundary interval
	// lies inside [address, address|wildcard].
	WildcardMatch(address, wildcard string, attrs Attrs) ([]Route, error)

	// Delete removes Routes at exactly prefix: the whole bucket if attrs
	// is empty, otherwise only the matching subset. Fails with
	// KindNoExactMatch if prefix has no bucket, or KindNoAttrMatch if
	// attrs is non-empty and nothing there matches.
	Delete(prefix any, attrs Attrs) error

	// Flush deletes by prefix (delegates to Delete), by attrs alone
	// (removes every matching Route anywhere), or resets the table to
	// empty when called with neither.
	Flush(prefix any, attrs Attrs) error

	// Contains reports whether Get(prefix, nil) is non-empty.
	Contains(prefix any) (bool, error)

	// Len returns the total installed Route count.
	Len() int

	// Slice returns every installed Route, in unspecified but stable
	// traversal order.
	Slice() []Route
}

// normalizePrefix accepts a string or netaddr.IPPrefix and returns the
// masked (non-strict) prefix every operation works with internally.
func normalizePrefix(prefix any) (netaddr.IPPrefix, error) {
	return asPrefix(prefix)
}
