package routingtable

import (
	"inet.af/netaddr"
)

// prefixNode is a branching node of a PrefixTrie: up to two children keyed
// by bit value, plus an optional route bucket for the path-from-root
// bit-string.
type prefixNode struct {
	bucket   []Route
	children [2]*prefixNode
}

// PrefixTrie is an uncompressed binary trie: one edge per bit. It
// satisfies RoutingTable.
type PrefixTrie struct {
	root    *prefixNode
	counter int
}

// NewPrefixTrie returns an empty PrefixTrie.
func NewPrefixTrie() *PrefixTrie {
	return &PrefixTrie{root: &prefixNode{}}
}

func (t *PrefixTrie) Len() int { return t.counter }

func (t *PrefixTrie) Contains(prefix any) (bool, error) {
	routes, err := t.Get(prefix, nil)
	if err != nil {
		return false, err
	}
	return len(routes) > 0, nil
}

func (t *PrefixTrie) Add(prefix any, attrs Attrs) error {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return err
	}
	bs := bits(p)

	node := t.root
	for _, bit := range bs {
		if node.children[bit] == nil {
			node.children[bit] = &prefixNode{}
		}
		node = node.children[bit]
	}

	route := NewRoute(p, attrs)
	if appendIfAbsent(&node.bucket, route) {
		t.counter++
	}
	return nil
}

func (t *PrefixTrie) Get(prefix any, attrs Attrs) ([]Route, error) {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	bs := bits(p)

	node := t.root
	routes := node.bucket
	for _, bit := range bs {
		if node.children[bit] == nil {
			break
		}
		node = node.children[bit]
		if node.bucket != nil {
			routes = node.bucket
		}
	}
	return filterRoutes(routes, attrs), nil
}

func (t *PrefixTrie) Show(prefix any, asRoot bool, attrs Attrs) ([]Route, error) {
	if asRoot && prefix == nil {
		return nil, newUsageError("as_root requires a prefix")
	}

	node := t.root
	if prefix != nil {
		p, err := normalizePrefix(prefix)
		if err != nil {
			return nil, err
		}
		for _, bit := range bits(p) {
			if node.children[bit] == nil {
				return []Route{}, nil
			}
			node = node.children[bit]
		}
		if !asRoot {
			return filterRoutes(node.bucket, attrs), nil
		}
	}

	routes := collectPrefixSubtree(node, attrs)
	byNetworkOrder(routes)
	return routes, nil
}

func (t *PrefixTrie) Parent(prefix any, attrs Attrs) ([]Route, error) {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	bs := bits(p)

	node := t.root
	var parentRoutes []Route
	for _, bit := range bs {
		if node.bucket != nil {
			parentRoutes = node.bucket
		}
		if node.children[bit] == nil {
			return nil, newNoExactMatchError(p)
		}
		node = node.children[bit]
	}

	if node.bucket == nil {
		return nil, newNoExactMatchError(p)
	}
	return filterRoutes(parentRoutes, attrs), nil
}

func (t *PrefixTrie) Children(prefix any, attrs Attrs) ([]Route, error) {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	node := t.root
	for _, bit := range bits(p) {
		if node.children[bit] == nil {
			return nil, newNoExactMatchError(p)
		}
		node = node.children[bit]
	}
	if node.bucket == nil {
		return nil, newNoExactMatchError(p)
	}

	routes := []Route{}
	for _, c := range node.children {
		if c != nil {
			routes = append(routes, collectPrefixSubtree(c, attrs)...)
		}
	}
	byNetworkOrder(routes)
	return routes, nil
}

func (t *PrefixTrie) Match(prefix any, attrs Attrs) ([]Route, error) {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}

	matches := []Route{}
	node := t.root
	matches = append(matches, node.bucket...)
	for _, bit := range bits(p) {
		if node.children[bit] == nil {
			break
		}
		node = node.children[bit]
		matches = append(matches, node.bucket...)
	}

	out := filterRoutes(matches, attrs)
	byNetworkOrder(out)
	return out, nil
}

func (t *PrefixTrie) WildcardMatch(address, wildcard string, attrs Attrs) ([]Route, error) {
	addr, err := ParseAddr(address)
	if err != nil {
		return nil, err
	}
	mask, err := ParseAddr(wildcard)
	if err != nil {
		return nil, err
	}
	wcLo, wcHi, err := wildcardBoundaries(addr, mask)
	if err != nil {
		return nil, err
	}

	all := collectPrefixSubtree(t.root, attrs)
	matches := filterByWildcard(all, wcLo, wcHi)
	byNetworkOrder(matches)
	return matches, nil
}

func (t *PrefixTrie) Delete(prefix any, attrs Attrs) error {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return err
	}
	bs := bits(p)

	var branchNode *prefixNode
	var branchBit byte

	node := t.root
	for _, bit := range bs {
		if childCount(node) > 1 || node.bucket != nil {
			branchNode = node
			branchBit = bit
		}
		if node.children[bit] == nil {
			return newNoExactMatchError(p)
		}
		node = node.children[bit]
	}

	if node.bucket == nil {
		return newNoExactMatchError(p)
	}

	removed, err := removeFromBucket(&node.bucket, attrs, p)
	if err != nil {
		return err
	}
	t.counter -= removed

	if len(node.bucket) > 0 {
		return nil
	}
	node.bucket = nil

	if childCount(node) > 0 {
		return nil
	}
	if branchNode != nil {
		branchNode.children[branchBit] = nil
		return nil
	}
	t.root = &prefixNode{}
	return nil
}

func (t *PrefixTrie) Flush(prefix any, attrs Attrs) error {
	if prefix != nil {
		return t.Delete(prefix, attrs)
	}
	if len(attrs) == 0 {
		t.root = &prefixNode{}
		t.counter = 0
		return nil
	}
	return flushByAttrs(t, attrs)
}

func (t *PrefixTrie) Slice() []Route {
	return collectPrefixSubtree(t.root, nil)
}

func collectPrefixSubtree(root *prefixNode, attrs Attrs) []Route {
	if root == nil {
		return []Route{}
	}
	type frame struct{ n *prefixNode }
	stack := []frame{{root}}
	out := []Route{}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, r := range f.n.bucket {
			if Matches(r, attrs) {
				out = append(out, r)
			}
		}
		for _, c := range f.n.children {
			if c != nil {
				stack = append(stack, frame{c})
			}
		}
	}
	return out
}

func filterByWildcard(routes []Route, wcLo, wcHi netaddr.IP) []Route {
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		lo, hi := boundaries(r.Prefix)
		if lo.Is4() != wcLo.Is4() {
			continue
		}
		if ipAnd(lo, wcHi) == lo && ipAnd(wcLo, hi) == wcLo {
			out = append(out, r)
		}
	}
	return out
}

// ipAnd computes the bitwise AND of two IPs of the same family.
func ipAnd(a, b netaddr.IP) netaddr.IP {
	if a.Is4() {
		x, y := a.As4(), b.As4()
		var o [4]byte
		for i := range o {
			o[i] = x[i] & y[i]
		}
		return netaddr.IPFrom4(o)
	}
	x, y := a.As16(), b.As16()
	var o [16]byte
	for i := range o {
		o[i] = x[i] & y[i]
	}
	return netaddr.IPFrom16(o)
}

func childCount(n *prefixNode) int {
	c := 0
	for _, ch := range n.children {
		if ch != nil {
			c++
		}
	}
	return c
}

// removeFromBucket removes routes satisfying attrs from *bucket (all of
// them, if attrs is empty) and returns how many were removed. It fails
// with KindNoAttrMatch if attrs is non-empty and nothing matched.
func removeFromBucket(bucket *[]Route, attrs Attrs, p netaddr.IPPrefix) (int, error) {
	if len(attrs) == 0 {
		removed := len(*bucket)
		*bucket = nil
		return removed, nil
	}

	kept := make([]Route, 0, len(*bucket))
	removed := 0
	for _, r := range *bucket {
		if Matches(r, attrs) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return 0, newNoAttrMatchError(p)
	}
	*bucket = kept
	return removed, nil
}
