package routingtable

import (
	"github.com/ahmad-rateb/routingtable/internal/bitstring"
)

// radixNode is a node of a RadixTrie: an edge labelled by a non-empty
// bit-string (stored as bits, the label from its parent), up to two
// children keyed by the first bit of their own label, and an optional
// route bucket for the concatenation of edges from the root.
//
// Grounded directly on the teacher's rstrie.node (bits bitslice.BitSlice;
// children *[2]*node): since a radix-2 edge is keyed by its first bit, and
// a bit has only two values, the fixed [2]*radixNode array already is the
// "sorted small-vector" the design notes ask for, no map required.
type radixNode struct {
	bits     bitstring.BitString
	bucket   []Route
	children [2]*radixNode
}

// RadixTrie is a path-compressed, PATRICIA-style radix-2 trie. It
// satisfies RoutingTable.
type RadixTrie struct {
	root    *radixNode
	counter int
}

// NewRadixTrie returns an empty RadixTrie. The root node represents the
// empty bit-string (the default route) and is never pruned by Delete;
// Flush with neither prefix nor attrs replaces it with a fresh empty root.
func NewRadixTrie() *RadixTrie {
	return &RadixTrie{root: &radixNode{}}
}

func (t *RadixTrie) Len() int { return t.counter }

func (t *RadixTrie) Contains(prefix any) (bool, error) {
	routes, err := t.Get(prefix, nil)
	if err != nil {
		return false, err
	}
	return len(routes) > 0, nil
}

func (t *RadixTrie) Add(prefix any, attrs Attrs) error {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return err
	}
	remaining := bits(p)
	route := NewRoute(p, attrs)

	node := t.root
	for {
		if len(remaining) == 0 {
			if appendIfAbsent(&node.bucket, route) {
				t.counter++
			}
			return nil
		}

		bit := remaining[0]
		child := node.children[bit]
		if child == nil {
			leaf := &radixNode{bits: remaining}
			node.children[bit] = leaf
			if appendIfAbsent(&leaf.bucket, route) {
				t.counter++
			}
			return nil
		}

		common := bitstring.Common(child.bits, remaining)
		if len(common) == len(child.bits) {
			// The whole edge label is consumed: descend.
			node = child
			remaining = remaining[len(common):]
			continue
		}

		// common is a strict prefix of child.bits: split the edge.
		mid := &radixNode{bits: common}
		child.bits = child.bits[len(common):]
		mid.children[child.bits[0]] = child
		node.children[bit] = mid

		remaining = remaining[len(common):]
		if len(remaining) == 0 {
			if appendIfAbsent(&mid.bucket, route) {
				t.counter++
			}
			return nil
		}
		leaf := &radixNode{bits: remaining}
		mid.children[remaining[0]] = leaf
		if appendIfAbsent(&leaf.bucket, route) {
			t.counter++
		}
		return nil
	}
}

func (t *RadixTrie) Get(prefix any, attrs Attrs) ([]Route, error) {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	remaining := bits(p)

	node := t.root
	routes := node.bucket
	for len(remaining) > 0 {
		bit := remaining[0]
		child := node.children[bit]
		if child == nil {
			break
		}
		common := bitstring.Common(child.bits, remaining)
		if len(common) != len(child.bits) {
			break
		}
		node = child
		remaining = remaining[len(common):]
		if node.bucket != nil {
			routes = node.bucket
		}
	}
	return filterRoutes(routes, attrs), nil
}

func (t *RadixTrie) Show(prefix any, asRoot bool, attrs Attrs) ([]Route, error) {
	if asRoot && prefix == nil {
		return nil, newUsageError("as_root requires a prefix")
	}

	node := t.root
	if prefix != nil {
		p, err := normalizePrefix(prefix)
		if err != nil {
			return nil, err
		}
		remaining := bits(p)
		for len(remaining) > 0 {
			bit := remaining[0]
			child := node.children[bit]
			if child == nil {
				return []Route{}, nil
			}
			common := bitstring.Common(child.bits, remaining)
			if len(common) != len(child.bits) {
				return []Route{}, nil
			}
			node = child
			remaining = remaining[len(common):]
		}
		if !asRoot {
			return filterRoutes(node.bucket, attrs), nil
		}
	}

	routes := collectRadixSubtree(node, attrs)
	byNetworkOrder(routes)
	return routes, nil
}

func (t *RadixTrie) Parent(prefix any, attrs Attrs) ([]Route, error) {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	remaining := bits(p)

	node := t.root
	var parentRoutes []Route
	for len(remaining) > 0 {
		if node.bucket != nil {
			parentRoutes = node.bucket
		}
		bit := remaining[0]
		child := node.children[bit]
		if child == nil {
			return nil, newNoExactMatchError(p)
		}
		common := bitstring.Common(child.bits, remaining)
		if len(common) != len(child.bits) {
			return nil, newNoExactMatchError(p)
		}
		node = child
		remaining = remaining[len(common):]
	}

	if node.bucket == nil {
		return nil, newNoExactMatchError(p)
	}
	return filterRoutes(parentRoutes, attrs), nil
}

func (t *RadixTrie) Children(prefix any, attrs Attrs) ([]Route, error) {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	node, ok := t.exactNode(bits(p))
	if !ok || node.bucket == nil {
		return nil, newNoExactMatchError(p)
	}

	routes := []Route{}
	for _, c := range node.children {
		if c != nil {
			routes = append(routes, collectRadixSubtree(c, attrs)...)
		}
	}
	byNetworkOrder(routes)
	return routes, nil
}

func (t *RadixTrie) Match(prefix any, attrs Attrs) ([]Route, error) {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return nil, err
	}
	remaining := bits(p)

	node := t.root
	matches := append([]Route{}, node.bucket...)
	for len(remaining) > 0 {
		bit := remaining[0]
		child := node.children[bit]
		if child == nil {
			break
		}
		common := bitstring.Common(child.bits, remaining)
		if len(common) != len(child.bits) {
			break
		}
		node = child
		remaining = remaining[len(common):]
		matches = append(matches, node.bucket...)
	}

	out := filterRoutes(matches, attrs)
	byNetworkOrder(out)
	return out, nil
}

func (t *RadixTrie) WildcardMatch(address, wildcard string, attrs Attrs) ([]Route, error) {
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

	all := collectRadixSubtree(t.root, attrs)
	matches := filterByWildcard(all, wcLo, wcHi)
	byNetworkOrder(matches)
	return matches, nil
}

// radixAncestor records, for a node visited while walking down from the
// root, the node it was reached from and the bit (child-array index) used
// to reach it — exactly what Delete needs to detach or splice an edge.
type radixAncestor struct {
	node *radixNode
	bit  byte
}

// exactNode walks remaining from the root and returns the node reached
// when the bit-string is fully consumed, or (nil, false) if no such node
// exists.
func (t *RadixTrie) exactNode(remaining bitstring.BitString) (*radixNode, bool) {
	node := t.root
	for len(remaining) > 0 {
		bit := remaining[0]
		child := node.children[bit]
		if child == nil {
			return nil, false
		}
		common := bitstring.Common(child.bits, remaining)
		if len(common) != len(child.bits) {
			return nil, false
		}
		node = child
		remaining = remaining[len(common):]
	}
	return node, true
}

func (t *RadixTrie) Delete(prefix any, attrs Attrs) error {
	p, err := normalizePrefix(prefix)
	if err != nil {
		return err
	}
	remaining := bits(p)

	node := t.root
	var ancestors []radixAncestor
	for len(remaining) > 0 {
		bit := remaining[0]
		child := node.children[bit]
		if child == nil {
			return newNoExactMatchError(p)
		}
		common := bitstring.Common(child.bits, remaining)
		if len(common) != len(child.bits) {
			return newNoExactMatchError(p)
		}
		ancestors = append(ancestors, radixAncestor{node: node, bit: bit})
		node = child
		remaining = remaining[len(common):]
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

	return mergeUp(node, ancestors)
}

// mergeUp restores radix canonical form (invariant 2/3) after node's
// bucket has just been cleared. It walks the stored ancestors from the
// deepest up, detaching 0-child nodes and splicing 1-child nodes into
// their parent's edge. A splice never changes the parent's own child
// count, so — unlike a detach, which can expose the parent as newly
// collapsible — it always terminates the walk. The teacher's Python
// original only keeps the last two ancestors around, since in a radix-2
// trie a deletion can only ever touch the immediate parent's child count;
// this keeps the whole stored path instead, which is simpler to get right
// and behaves identically.
func mergeUp(cur *radixNode, ancestors []radixAncestor) error {
	for i := len(ancestors) - 1; i >= 0; i-- {
		anc := ancestors[i]
		switch radixChildCount(cur) {
		case 0:
			anc.node.children[anc.bit] = nil
			cur = anc.node
			if cur.bucket != nil {
				return nil
			}
		case 1:
			var only *radixNode
			for b := 0; b < 2; b++ {
				if cur.children[b] != nil {
					only = cur.children[b]
					break
				}
			}
			combined := make(bitstring.BitString, 0, len(cur.bits)+len(only.bits))
			combined = append(combined, cur.bits...)
			combined = append(combined, only.bits...)
			only.bits = combined
			anc.node.children[anc.bit] = only
			return nil
		default:
			return nil
		}
	}
	return nil
}

func (t *RadixTrie) Flush(prefix any, attrs Attrs) error {
	if prefix != nil {
		return t.Delete(prefix, attrs)
	}
	if len(attrs) == 0 {
		t.root = &radixNode{}
		t.counter = 0
		return nil
	}
	return flushByAttrs(t, attrs)
}

func (t *RadixTrie) Slice() []Route {
	return collectRadixSubtree(t.root, nil)
}

func collectRadixSubtree(root *radixNode, attrs Attrs) []Route {
	if root == nil {
		return []Route{}
	}
	stack := []*radixNode{root}
	out := []Route{}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, r := range n.bucket {
			if Matches(r, attrs) {
				out = append(out, r)
			}
		}
		for _, c := range n.children {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
	return out
}

func radixChildCount(n *radixNode) int {
	c := 0
	for _, ch := range n.children {
		if ch != nil {
			c++
		}
	}
	return c
}

// appendIfAbsent appends route to *bucket unless an equal Route is
// already present, reporting whether it added one.
func appendIfAbsent(bucket *[]Route, route Route) bool {
	for _, existing := range *bucket {
		if existing.Equal(route) {
			return false
		}
	}
	*bucket = append(*bucket, route)
	return true
}
